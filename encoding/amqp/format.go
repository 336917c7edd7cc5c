package amqp

import "strconv"

// Fill and Scan are the format-string mini-languages: Fill appends
// into a Tree from a flat argument list driven by a terse per-atom
// code string; Scan reads the Tree's current top level back out into
// caller-supplied output pointers using the same codes. This mirrors
// the teacher's own preference for compact codec-driven get/set
// (encoding/atom/codec.go's Codec table of encode/decode funcs keyed
// by type) generalized from a fixed struct of functions to a runtime
// format string, per the format DSL component of the design.
//
// Supported codes: n null, o bool, B/b ubyte/byte, H/h ushort/short,
// I/i uint/int, c char, L/l ulong/long, t timestamp, f/d float/double,
// z binary, S string, s symbol, [ ] list, { } map, D described (takes
// the two following codes as descriptor and value), @T[...] array
// (@DT[...] for a described array; the T right after @ or @D takes the
// element type from a Tag argument in Fill and writes it to a *Tag
// output in Scan -- the parser reads it by looking ahead from @, not by
// looking back from [), ? optional modifier, . scan-only atom skip,
// * repeat-count prefix (symbol arrays only), C copy a subtree to/from
// another Tree. In Scan, a bare T inside an entered array scope writes
// that array's element type to a *Tag output.

// Fill appends values described by format, consuming args in order.
func (t *Tree) Fill(format string, args ...interface{}) error {
	f := &filler{t: t, fmt: format, args: args}
	for f.pos < len(f.fmt) {
		if err := f.step(); err != nil {
			return err
		}
	}
	if f.argPos != len(f.args) {
		return errBadStructure("fill", "format %q consumed %d of %d arguments", format, f.argPos, len(f.args))
	}
	return nil
}

// Scan reads values described by format from the Tree's current top
// level (after an implicit Rewind) into outs, in order.
func (t *Tree) Scan(format string, outs ...interface{}) error {
	t.Rewind()
	s := &scanner{t: t, fmt: format, outs: outs}
	for s.pos < len(s.fmt) {
		if err := s.step(); err != nil {
			return err
		}
	}
	return nil
}

type filler struct {
	t      *Tree
	fmt    string
	pos    int
	args   []interface{}
	argPos int
}

func (f *filler) peek() byte {
	if f.pos >= len(f.fmt) {
		return 0
	}
	return f.fmt[f.pos]
}

func (f *filler) advance() byte {
	b := f.fmt[f.pos]
	f.pos++
	return b
}

func (f *filler) expect(want byte) error {
	if f.peek() != want {
		return errBadStructure("fill", "format %q: expected %q at position %d", f.fmt, want, f.pos)
	}
	f.advance()
	return nil
}

func (f *filler) nextArg() (interface{}, error) {
	if f.argPos >= len(f.args) {
		return nil, errBadStructure("fill", "format %q: not enough arguments", f.fmt)
	}
	a := f.args[f.argPos]
	f.argPos++
	return a, nil
}

// emit runs the fill auto-exit rule: after any atom is placed (a list,
// map or array once its closing bracket is reached), if its parent is
// a described node that now has two children, exit it (and
// repeat, since exiting may complete a grandparent described pair).
func (f *filler) emit(err error) error {
	if err != nil {
		return err
	}
	for f.t.parent != 0 && f.t.nodes[f.t.parent].tag == Described && f.t.nodes[f.t.parent].children == 2 {
		if _, err := f.t.Exit(); err != nil {
			return err
		}
	}
	return nil
}

func (f *filler) step() error {
	code := f.advance()
	switch code {
	case 'n':
		_, err := f.t.PutNull()
		return f.emit(err)
	case 'o':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		b, ok := v.(bool)
		if !ok {
			return errBadStructure("fill", "'o' wants bool, got %T", v)
		}
		_, err = f.t.PutBool(b)
		return f.emit(err)
	case 'B':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(uint8)
		if !ok {
			return errBadStructure("fill", "'B' wants uint8, got %T", v)
		}
		_, err = f.t.PutUbyte(n)
		return f.emit(err)
	case 'b':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(int8)
		if !ok {
			return errBadStructure("fill", "'b' wants int8, got %T", v)
		}
		_, err = f.t.PutByte(n)
		return f.emit(err)
	case 'H':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(uint16)
		if !ok {
			return errBadStructure("fill", "'H' wants uint16, got %T", v)
		}
		_, err = f.t.PutUshort(n)
		return f.emit(err)
	case 'h':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(int16)
		if !ok {
			return errBadStructure("fill", "'h' wants int16, got %T", v)
		}
		_, err = f.t.PutShort(n)
		return f.emit(err)
	case 'I':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(uint32)
		if !ok {
			return errBadStructure("fill", "'I' wants uint32, got %T", v)
		}
		_, err = f.t.PutUint(n)
		return f.emit(err)
	case 'i':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(int32)
		if !ok {
			return errBadStructure("fill", "'i' wants int32, got %T", v)
		}
		_, err = f.t.PutInt(n)
		return f.emit(err)
	case 'c':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		r, ok := v.(rune)
		if !ok {
			return errBadStructure("fill", "'c' wants rune, got %T", v)
		}
		_, err = f.t.PutChar(r)
		return f.emit(err)
	case 'L':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(uint64)
		if !ok {
			return errBadStructure("fill", "'L' wants uint64, got %T", v)
		}
		_, err = f.t.PutULong(n)
		return f.emit(err)
	case 'l':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(int64)
		if !ok {
			return errBadStructure("fill", "'l' wants int64, got %T", v)
		}
		_, err = f.t.PutLong(n)
		return f.emit(err)
	case 't':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(int64)
		if !ok {
			return errBadStructure("fill", "'t' wants int64, got %T", v)
		}
		_, err = f.t.PutTimestamp(n)
		return f.emit(err)
	case 'f':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(float32)
		if !ok {
			return errBadStructure("fill", "'f' wants float32, got %T", v)
		}
		_, err = f.t.PutFloat(n)
		return f.emit(err)
	case 'd':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		n, ok := v.(float64)
		if !ok {
			return errBadStructure("fill", "'d' wants float64, got %T", v)
		}
		_, err = f.t.PutDouble(n)
		return f.emit(err)
	case 'z':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		b, ok := v.([]byte)
		if !ok {
			return errBadStructure("fill", "'z' wants []byte, got %T", v)
		}
		_, err = f.t.PutBinary(b)
		return f.emit(err)
	case 'S':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		s, ok := v.(string)
		if !ok {
			return errBadStructure("fill", "'S' wants string, got %T", v)
		}
		_, err = f.t.PutString(s)
		return f.emit(err)
	case 's':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		s, ok := v.(string)
		if !ok {
			return errBadStructure("fill", "'s' wants string, got %T", v)
		}
		_, err = f.t.PutSymbol(s)
		return f.emit(err)
	case '[':
		return f.fillContainer(List, ']', f.t.PutList)
	case '{':
		return f.fillContainer(Map, '}', f.t.PutMap)
	case '@':
		return f.fillArray()
	case 'D':
		return f.fillDescribed()
	case '?':
		return f.fillOptional()
	case '*':
		return f.fillRepeat()
	case 'C':
		v, err := f.nextArg()
		if err != nil {
			return err
		}
		src, ok := v.(*Tree)
		if !ok {
			return errBadStructure("fill", "'C' wants *Tree, got %T", v)
		}
		if err := f.t.Append(src); err != nil {
			return err
		}
		return f.emit(nil)
	default:
		return errSemantic("fill", "format %q: unknown code %q", f.fmt, code)
	}
}

func (f *filler) fillContainer(tag Tag, closeByte byte, put func() (uint32, error)) error {
	if _, err := put(); err != nil {
		return err
	}
	f.t.Enter()
	for f.peek() != closeByte {
		if f.pos >= len(f.fmt) {
			return errBadStructure("fill", "format %q: missing closing %q", f.fmt, closeByte)
		}
		if err := f.step(); err != nil {
			return err
		}
	}
	f.advance()
	_, err := f.t.Exit()
	return f.emit(err)
}

// fillDescribed places the described node and fills its two children;
// the second child's emit exits the node.
func (f *filler) fillDescribed() error {
	if _, err := f.t.PutDescribed(); err != nil {
		return err
	}
	f.t.Enter()
	if err := f.step(); err != nil {
		return err
	}
	return f.step()
}

func (f *filler) fillArray() error {
	described := false
	if f.peek() == 'D' {
		described = true
		f.advance()
	}
	if f.peek() != 'T' {
		return errBadStructure("fill", "array in %q must be written @T[...] or @DT[...]", f.fmt)
	}
	f.advance()
	v, err := f.nextArg()
	if err != nil {
		return err
	}
	elemTag, ok := v.(Tag)
	if !ok {
		return errBadStructure("fill", "'T' wants Tag, got %T", v)
	}
	if err := f.expect('['); err != nil {
		return err
	}
	if _, err := f.t.PutArray(described, elemTag); err != nil {
		return err
	}
	f.t.Enter()
	if described {
		if err := f.step(); err != nil {
			return err
		}
	}
	for f.peek() != ']' {
		if f.pos >= len(f.fmt) {
			return errBadStructure("fill", "format %q: missing closing ']'", f.fmt)
		}
		if err := f.step(); err != nil {
			return err
		}
	}
	f.advance()
	_, err = f.t.Exit()
	return f.emit(err)
}

// fillOptional implements the ? modifier by running the governed code
// against a scratch tree first. If the boolean argument is true, the
// scratch result is appended for real; if false, a null is emitted
// instead and the scratch content -- including any nested D children
// -- is discarded, matching the rule that false skips nested content.
func (f *filler) fillOptional() error {
	v, err := f.nextArg()
	if err != nil {
		return err
	}
	want, ok := v.(bool)
	if !ok {
		return errBadStructure("fill", "'?' wants bool, got %T", v)
	}

	scratch := NewTree(4)
	sf := &filler{t: scratch, fmt: f.fmt, pos: f.pos, args: f.args, argPos: f.argPos}
	if err := sf.step(); err != nil {
		return err
	}
	f.pos = sf.pos
	f.argPos = sf.argPos

	if !want {
		_, err := f.t.PutNull()
		return f.emit(err)
	}
	if err := f.t.Append(scratch); err != nil {
		return err
	}
	return f.emit(nil)
}

// fillRepeat implements *N<code>, currently restricted to symbols: a
// single []string argument supplies all N values.
func (f *filler) fillRepeat() error {
	start := f.pos
	for f.pos < len(f.fmt) && f.fmt[f.pos] >= '0' && f.fmt[f.pos] <= '9' {
		f.pos++
	}
	if f.pos == start {
		return errBadStructure("fill", "format %q: '*' must be followed by a count", f.fmt)
	}
	n, _ := strconv.Atoi(f.fmt[start:f.pos])
	code := f.advance()
	if code != 's' {
		return errBadStructure("fill", "'*' repeat is only supported for 's' (symbol), got %q", code)
	}
	v, err := f.nextArg()
	if err != nil {
		return err
	}
	syms, ok := v.([]string)
	if !ok {
		return errBadStructure("fill", "'*%ds' wants []string, got %T", n, v)
	}
	if len(syms) != n {
		return errBadStructure("fill", "'*%ds' argument has %d elements", n, len(syms))
	}
	for _, s := range syms {
		if _, err := f.t.PutSymbol(s); err != nil {
			return err
		}
		if err := f.emit(nil); err != nil {
			return err
		}
	}
	return nil
}

type scanner struct {
	t      *Tree
	fmt    string
	pos    int
	outs   []interface{}
	outPos int
	dry    bool // suspended: parse format syntax and consume outs, but neither move the tree cursor nor write out pointers, except that a nested ? flag is set to false
}

func (s *scanner) peek() byte {
	if s.pos >= len(s.fmt) {
		return 0
	}
	return s.fmt[s.pos]
}

func (s *scanner) advance() byte {
	b := s.fmt[s.pos]
	s.pos++
	return b
}

func (s *scanner) expect(want byte) error {
	if s.peek() != want {
		return errBadStructure("scan", "format %q: expected %q at position %d", s.fmt, want, s.pos)
	}
	s.advance()
	return nil
}

func (s *scanner) nextOut() (interface{}, error) {
	if s.outPos >= len(s.outs) {
		return nil, errBadStructure("scan", "format %q: not enough outputs", s.fmt)
	}
	o := s.outs[s.outPos]
	s.outPos++
	return o, nil
}

// peekTag reports the tag of the atom that the next Next() call would
// move to, without moving the cursor.
func (t *Tree) peekTag() (Tag, bool) {
	var idx uint32
	if t.current == 0 {
		idx = t.downOf(t.parent)
	} else {
		idx = t.nodes[t.current].next
	}
	if idx == 0 {
		return 0, false
	}
	return t.nodes[idx].tag, true
}

func (s *scanner) advanceAtom() (Atom, bool) {
	if !s.t.Next() {
		return Atom{}, false
	}
	return s.t.Current()
}

func (s *scanner) step() error {
	code := s.advance()
	return s.dispatch(code)
}

func (s *scanner) dispatch(code byte) error {
	switch code {
	case 'n':
		return s.scanPrimitive(Null, func(Atom) interface{} { return nil })
	case 'o':
		return s.scanPrimitive(Bool, func(a Atom) interface{} { return a.Bool })
	case 'B':
		return s.scanPrimitive(Ubyte, func(a Atom) interface{} { return uint8(a.Uint) })
	case 'b':
		return s.scanPrimitive(Byte, func(a Atom) interface{} { return int8(a.Int) })
	case 'H':
		return s.scanPrimitive(Ushort, func(a Atom) interface{} { return uint16(a.Uint) })
	case 'h':
		return s.scanPrimitive(Short, func(a Atom) interface{} { return int16(a.Int) })
	case 'I':
		return s.scanPrimitive(Uint, func(a Atom) interface{} { return uint32(a.Uint) })
	case 'i':
		return s.scanPrimitive(Int, func(a Atom) interface{} { return int32(a.Int) })
	case 'c':
		return s.scanPrimitive(Char, func(a Atom) interface{} { return a.Char })
	case 'L':
		return s.scanPrimitive(ULong, func(a Atom) interface{} { return a.Uint })
	case 'l':
		return s.scanPrimitive(Long, func(a Atom) interface{} { return a.Int })
	case 't':
		return s.scanPrimitive(Timestamp, func(a Atom) interface{} { return a.Tstamp })
	case 'f':
		return s.scanPrimitive(Float, func(a Atom) interface{} { return a.Float32 })
	case 'd':
		return s.scanPrimitive(Double, func(a Atom) interface{} { return a.Float64 })
	case 'z':
		return s.scanPrimitive(Binary, func(a Atom) interface{} { return a.Bytes })
	case 'S':
		return s.scanPrimitive(String, func(a Atom) interface{} { return string(a.Bytes) })
	case 's':
		return s.scanPrimitive(Symbol, func(a Atom) interface{} { return string(a.Bytes) })
	case '[':
		return s.container(List, ']')
	case '{':
		return s.container(Map, '}')
	case '@':
		return s.array()
	case 'D':
		return s.described()
	case '.':
		if s.dry {
			return nil
		}
		if !s.t.Next() {
			return errSemantic("scan", "'.' found no atom to skip")
		}
		return nil
	case '?':
		return s.scanOptional()
	case '*':
		return s.scanRepeat()
	case 'C':
		return s.scanCopy()
	case 'T':
		out, err := s.nextOut()
		if err != nil || s.dry {
			return err
		}
		tagPtr, ok := out.(*Tag)
		if !ok {
			return errBadStructure("scan", "'T' wants *Tag, got %T", out)
		}
		if s.t.parent == 0 || s.t.nodes[s.t.parent].tag != Array {
			return errBadStructure("scan", "'T' outside an array")
		}
		*tagPtr = s.t.nodes[s.t.parent].elementType
		return nil
	default:
		return errSemantic("scan", "format %q: unknown code %q", s.fmt, code)
	}
}

func (s *scanner) scanPrimitive(want Tag, extract func(Atom) interface{}) error {
	if s.dry {
		_, err := s.nextOut()
		return err
	}
	a, ok := s.advanceAtom()
	if !ok || a.Tag != want {
		return errSemantic("scan", "expected %s, found none or mismatched tag", want)
	}
	out, err := s.nextOut()
	if err != nil {
		return err
	}
	return assignOut(out, extract(a))
}

func (s *scanner) container(want Tag, closeByte byte) error {
	if !s.dry {
		a, ok := s.advanceAtom()
		if !ok || a.Tag != want {
			return errSemantic("scan", "expected %s container", want)
		}
		if !s.t.Enter() {
			return errSemantic("scan", "cannot enter %s", want)
		}
	}
	for s.peek() != closeByte {
		if s.pos >= len(s.fmt) {
			return errBadStructure("scan", "format %q: missing closing %q", s.fmt, closeByte)
		}
		if err := s.step(); err != nil {
			return err
		}
	}
	s.advance()
	if !s.dry {
		if _, err := s.t.Exit(); err != nil {
			return err
		}
	}
	return nil
}

func (s *scanner) described() error {
	if !s.dry {
		a, ok := s.advanceAtom()
		if !ok || a.Tag != Described {
			return errSemantic("scan", "expected described value")
		}
		if !s.t.Enter() {
			return errSemantic("scan", "cannot enter described")
		}
	}
	if err := s.step(); err != nil {
		return err
	}
	if err := s.step(); err != nil {
		return err
	}
	if !s.dry {
		_, err := s.t.Exit()
		return err
	}
	return nil
}

func (s *scanner) array() error {
	described := false
	if s.peek() == 'D' {
		described = true
		s.advance()
	}
	var elemTag Tag
	if !s.dry {
		a, ok := s.advanceAtom()
		if !ok || a.Tag != Array {
			return errSemantic("scan", "expected array")
		}
		elemTag = a.ElementType
	}
	if s.peek() != 'T' {
		return errBadStructure("scan", "array in %q must be written @T[...] or @DT[...]", s.fmt)
	}
	s.advance()
	out, err := s.nextOut()
	if err != nil {
		return err
	}
	if err := s.expect('['); err != nil {
		return err
	}
	if !s.dry {
		tagPtr, ok := out.(*Tag)
		if !ok {
			return errBadStructure("scan", "'T' wants *Tag, got %T", out)
		}
		*tagPtr = elemTag
		if !s.t.Enter() {
			return errSemantic("scan", "cannot enter array")
		}
	}
	if described {
		if err := s.step(); err != nil {
			return err
		}
	}
	for s.peek() != ']' {
		if s.pos >= len(s.fmt) {
			return errBadStructure("scan", "format %q: missing closing ']'", s.fmt)
		}
		if err := s.step(); err != nil {
			return err
		}
	}
	s.advance()
	if !s.dry {
		_, err := s.t.Exit()
		return err
	}
	return nil
}

// scanOptional implements the ? modifier and the suspended-scan rule:
// it peeks the upcoming atom's tag without moving the cursor, reports
// the match in a *bool output, and if unmatched replays the governed
// code in dry mode so format parsing and output-slot consumption stay
// aligned without touching the tree or writing any other output.
func (s *scanner) scanOptional() error {
	code := s.advance()
	wantTag, checkable := expectedTag(code)
	matched := !s.dry
	if checkable && !s.dry {
		gotTag, ok := s.t.peekTag()
		matched = ok && gotTag == wantTag
	}
	out, err := s.nextOut()
	if err != nil {
		return err
	}
	flag, ok := out.(*bool)
	if !ok {
		return errBadStructure("scan", "'?' wants *bool, got %T", out)
	}
	*flag = matched

	saved := s.dry
	if !matched {
		s.dry = true
	}
	err = s.dispatch(code)
	s.dry = saved
	return err
}

func expectedTag(code byte) (Tag, bool) {
	switch code {
	case 'n':
		return Null, true
	case 'o':
		return Bool, true
	case 'B':
		return Ubyte, true
	case 'b':
		return Byte, true
	case 'H':
		return Ushort, true
	case 'h':
		return Short, true
	case 'I':
		return Uint, true
	case 'i':
		return Int, true
	case 'c':
		return Char, true
	case 'L':
		return ULong, true
	case 'l':
		return Long, true
	case 't':
		return Timestamp, true
	case 'f':
		return Float, true
	case 'd':
		return Double, true
	case 'z':
		return Binary, true
	case 'S':
		return String, true
	case 's':
		return Symbol, true
	case '[':
		return List, true
	case '{':
		return Map, true
	case '@':
		return Array, true
	case 'D':
		return Described, true
	default:
		return 0, false
	}
}

func (s *scanner) scanRepeat() error {
	start := s.pos
	for s.pos < len(s.fmt) && s.fmt[s.pos] >= '0' && s.fmt[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return errBadStructure("scan", "format %q: '*' must be followed by a count", s.fmt)
	}
	n, _ := strconv.Atoi(s.fmt[start:s.pos])
	code := s.advance()
	if code != 's' {
		return errBadStructure("scan", "'*' repeat is only supported for 's' (symbol), got %q", code)
	}
	out, err := s.nextOut()
	if err != nil {
		return err
	}
	if s.dry {
		return nil
	}
	dst, ok := out.(*[]string)
	if !ok {
		return errBadStructure("scan", "'*%ds' wants *[]string, got %T", n, out)
	}
	syms := make([]string, 0, n)
	for i := 0; i < n; i++ {
		a, ok := s.advanceAtom()
		if !ok || a.Tag != Symbol {
			return errSemantic("scan", "expected %d symbols, found fewer", n)
		}
		syms = append(syms, string(a.Bytes))
	}
	*dst = syms
	return nil
}

func (s *scanner) scanCopy() error {
	out, err := s.nextOut()
	if err != nil {
		return err
	}
	if s.dry {
		return nil
	}
	dst, ok := out.(*Tree)
	if !ok {
		return errBadStructure("scan", "'C' wants *Tree, got %T", out)
	}
	if !s.t.Next() {
		return errSemantic("scan", "'C' found no atom to copy")
	}
	return dst.copyNode(s.t, s.t.current)
}

func assignOut(out, v interface{}) error {
	switch p := out.(type) {
	case *bool:
		b, ok := v.(bool)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning bool")
		}
		*p = b
	case *uint8:
		n, ok := v.(uint8)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning uint8")
		}
		*p = n
	case *int8:
		n, ok := v.(int8)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning int8")
		}
		*p = n
	case *uint16:
		n, ok := v.(uint16)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning uint16")
		}
		*p = n
	case *int16:
		n, ok := v.(int16)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning int16")
		}
		*p = n
	case *uint32:
		n, ok := v.(uint32)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning uint32")
		}
		*p = n
	case *int32:
		// rune is an alias for int32, so this case also matches *rune
		// outputs (e.g. the 'c' char code).
		n, ok := v.(int32)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning int32")
		}
		*p = n
	case *uint64:
		n, ok := v.(uint64)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning uint64")
		}
		*p = n
	case *int64:
		n, ok := v.(int64)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning int64")
		}
		*p = n
	case *float32:
		n, ok := v.(float32)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning float32")
		}
		*p = n
	case *float64:
		n, ok := v.(float64)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning float64")
		}
		*p = n
	case *[]byte:
		b, ok := v.([]byte)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning []byte")
		}
		*p = b
	case *string:
		str, ok := v.(string)
		if !ok {
			return errBadStructure("scan", "type mismatch assigning string")
		}
		*p = str
	default:
		return errBadStructure("scan", "unsupported output pointer type %T", out)
	}
	return nil
}
