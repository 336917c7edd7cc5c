package amqp

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/unicode/norm"
)

// internRef locates an interned variable-length payload as an
// (offset, size) pair into the Tree's intern buffer. Storing an offset
// rather than a raw pointer means growth of the buffer never needs an
// explicit rebase pass: the byte slice is re-derived from the offset
// at every access, so it is automatically correct against the buffer's
// current backing array.
type internRef struct {
	off, size uint32
}

func (r internRef) bytes(buf []byte) []byte {
	return buf[r.off : r.off+r.size]
}

// internTable deduplicates interned payloads by content hash. AMQP
// traffic commonly repeats a small set of symbols (descriptor names,
// annotation keys) across many atoms in one tree; hashing lets repeats
// share one slot instead of growing the intern buffer every time,
// mirroring arloliu-mebo's use of xxhash for its blob identity cache
// (internal/hash/id.go) repurposed here for payload dedup rather than
// blob IDs.
type internTable struct {
	buf   []byte
	index map[uint64][]internRef
}

func newInternTable() *internTable {
	return &internTable{index: make(map[uint64][]internRef)}
}

func (t *internTable) reset() {
	t.buf = t.buf[:0]
	for k := range t.index {
		delete(t.index, k)
	}
}

// intern stores data (or reuses an existing identical entry) and
// returns its reference. string and symbol payloads are normalized to
// NFC first, the same canonicalization TomTonic-multimap applies to
// map keys (key.go) before they are used as comparison keys: the
// format engine's C (copy) code and any caller comparing Bytes()
// output across atoms gets codepoint-equivalent results without
// re-normalizing on every comparison.
func (t *internTable) intern(tag Tag, data []byte) internRef {
	if tag == String || tag == Symbol {
		data = norm.NFC.Bytes(data)
	}
	h := xxhash.Sum64(data)
	for _, ref := range t.index[h] {
		if bytes.Equal(ref.bytes(t.buf), data) {
			return ref
		}
	}
	off := uint32(len(t.buf))
	t.buf = append(t.buf, data...)
	ref := internRef{off: off, size: uint32(len(data))}
	t.index[h] = append(t.index[h], ref)
	return ref
}
