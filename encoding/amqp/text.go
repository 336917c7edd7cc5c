package amqp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Text pretty-prints a Tree as one indented line per atom, tag:value,
// with composites opening a nested block closed by END -- the same
// shape as the teacher's atomToTextBuffer (encoding/atom/text.go), but
// over AMQP's tag set and value encodings instead of ADE's.

// Text renders every top-level value in the Tree.
func (t *Tree) Text() string {
	var buf bytes.Buffer
	idx := t.downOf(0)
	for idx != 0 {
		t.writeTextNode(&buf, idx, 0)
		idx = t.nodes[idx].next
	}
	return buf.String()
}

func (t *Tree) writeTextNode(buf *bytes.Buffer, idx uint32, depth int) {
	n := t.nodes[idx]
	indent := strings.Repeat("  ", depth)
	if n.tag.isComposite() {
		fmt.Fprintf(buf, "%s%s:\n", indent, n.tag)
		child := n.down
		for child != 0 {
			t.writeTextNode(buf, child, depth+1)
			child = t.nodes[child].next
		}
		fmt.Fprintf(buf, "%sEND\n", indent)
		return
	}
	fmt.Fprintf(buf, "%s%s:%s\n", indent, n.tag, t.textValue(idx))
}

func (t *Tree) textValue(idx uint32) string {
	a := t.atomAt(idx)
	switch a.Tag {
	case Null:
		return ""
	case Bool:
		if a.Bool {
			return "true"
		}
		return "false"
	case Ubyte, Ushort, Uint, ULong:
		return strconv.FormatUint(a.Uint, 10)
	case Byte, Short, Int, Long:
		return strconv.FormatInt(a.Int, 10)
	case Char:
		return strconv.QuoteRune(a.Char)
	case Timestamp:
		return strconv.FormatInt(a.Tstamp, 10)
	case Float:
		return strconv.FormatFloat(float64(a.Float32), 'g', -1, 32)
	case Double:
		return strconv.FormatFloat(a.Float64, 'g', -1, 64)
	case Decimal32:
		return fmt.Sprintf("%x", a.Dec32)
	case Decimal64:
		return fmt.Sprintf("%x", a.Dec64)
	case Decimal128:
		return fmt.Sprintf("%x", a.Dec128)
	case UUID:
		return formatUUID(a.UUID)
	case Binary:
		return fmt.Sprintf("%x", a.Bytes)
	case String:
		return quoteIfNeeded(string(a.Bytes))
	case Symbol:
		return quoteIfNeeded(string(a.Bytes))
	default:
		return ""
	}
}

func formatUUID(u [16]byte) string {
	return fmt.Sprintf("%x-%x-%x-%x-%x", u[0:4], u[4:6], u[6:8], u[8:10], u[10:16])
}

// barePrintable reports whether r may appear in an unquoted symbol or
// string per the REDESIGN FLAG generalizing the teacher's
// isPrintableBytes charset check (which enumerated an ASCII allowlist
// for ADE's comparatively narrow symbol grammar): anything outside
// this set forces quoting rather than risking ambiguity with the
// text format's own delimiters.
func barePrintable(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_' || r == '.' || r == ':' || r == '-':
		return true
	default:
		return false
	}
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if !barePrintable(r) {
			return strconv.Quote(s)
		}
	}
	return s
}
