package amqp

import "math"

// node is one entry in the Tree's arena. Indices into Tree.nodes are
// the only stable references; a *node taken across any call that may
// grow the arena (any Put*, Append, or Decode) is stale the instant
// the backing array is reallocated. Every method below re-derives node
// access through an index rather than caching a pointer across such a
// call.
type node struct {
	tag      Tag
	parent   uint32
	prev     uint32
	next     uint32
	down     uint32
	children uint32

	elementType    Tag // valid when tag == Array
	arrayDescribed bool

	bits uint64  // bool, ubyte/ushort/uint/ulong, byte/short/int/long, char, timestamp, float, double
	blob [16]byte // decimal32 (first 4), decimal64 (first 8), decimal128, uuid
	ref  internRef // binary, string, symbol
}

// anchor is the (parent, current) pair narrow/widen and rewind operate
// on, confining navigation to a subtree.
type anchor struct {
	parent, current uint32
}

// Pos is an opaque cursor snapshot produced by Point and consumed by
// Restore.
type Pos struct {
	parent, current uint32
}

// Tree is a navigable arena of Atoms, grown by Put* operations and
// walked with Enter/Exit/Next/Prev. Index 0 means "no node" everywhere
// a node index is used, including as a parent (the implicit top-level
// scope).
type Tree struct {
	nodes  []node
	intern *internTable

	current uint32
	parent  uint32
	base    anchor

	rootDown     uint32
	rootChildren uint32
}

// NewTree returns an empty Tree with room for capacity nodes before the
// arena must grow.
func NewTree(capacity int) *Tree {
	if capacity < 1 {
		capacity = 1
	}
	nodes := make([]node, 1, capacity+1)
	return &Tree{nodes: nodes, intern: newInternTable()}
}

// Clear resets size, cursor, and the intern buffer without releasing
// arena capacity, so a cleared Tree can be refilled without further
// allocation up to its previous high-water mark.
func (t *Tree) Clear() {
	t.nodes = t.nodes[:1]
	t.intern.reset()
	t.current = 0
	t.parent = 0
	t.base = anchor{}
	t.rootDown = 0
	t.rootChildren = 0
}

// Free releases all memory owned by the Tree. The Tree must not be
// used afterward except through a fresh assignment.
func (t *Tree) Free() {
	*t = Tree{}
}

func (t *Tree) downOf(parent uint32) uint32 {
	if parent == 0 {
		return t.rootDown
	}
	return t.nodes[parent].down
}

func (t *Tree) childrenOf(parent uint32) uint32 {
	if parent == 0 {
		return t.rootChildren
	}
	return t.nodes[parent].children
}

func (t *Tree) setDown(parent, idx uint32) {
	if parent == 0 {
		t.rootDown = idx
		return
	}
	t.nodes[parent].down = idx
}

func (t *Tree) incChildren(parent uint32) {
	if parent == 0 {
		t.rootChildren++
		return
	}
	t.nodes[parent].children++
}

func (t *Tree) alloc(tag Tag) uint32 {
	t.nodes = append(t.nodes, node{tag: tag})
	return uint32(len(t.nodes) - 1)
}

// appendChild allocates a node of the given tag as the next sibling
// after the current cursor position and advances current to it. It
// enforces the array element-type invariant: when the current parent
// is an Array, every child but an optional leading descriptor must
// carry the array's elementType.
func (t *Tree) appendChild(tag Tag) (uint32, error) {
	if t.parent != 0 {
		pn := t.nodes[t.parent]
		if pn.tag == Array {
			descriptorSlot := pn.arrayDescribed && pn.children == 0
			if !descriptorSlot && tag != pn.elementType {
				return 0, errBadStructure("put", "array element has tag %s, want %s", tag, pn.elementType)
			}
		}
	}

	idx := t.alloc(tag)
	if t.current == 0 {
		t.setDown(t.parent, idx)
	} else {
		t.nodes[t.current].next = idx
		t.nodes[idx].prev = t.current
	}
	t.nodes[idx].parent = t.parent
	t.incChildren(t.parent)
	t.current = idx
	return idx, nil
}

func (t *Tree) PutNull() (uint32, error) { return t.appendChild(Null) }

func (t *Tree) PutBool(v bool) (uint32, error) {
	idx, err := t.appendChild(Bool)
	if err != nil {
		return 0, err
	}
	if v {
		t.nodes[idx].bits = 1
	}
	return idx, nil
}

func (t *Tree) PutUbyte(v uint8) (uint32, error)  { return t.putUint(Ubyte, uint64(v)) }
func (t *Tree) PutUshort(v uint16) (uint32, error) { return t.putUint(Ushort, uint64(v)) }
func (t *Tree) PutUint(v uint32) (uint32, error)   { return t.putUint(Uint, uint64(v)) }
func (t *Tree) PutULong(v uint64) (uint32, error)  { return t.putUint(ULong, v) }

func (t *Tree) putUint(tag Tag, v uint64) (uint32, error) {
	idx, err := t.appendChild(tag)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].bits = v
	return idx, nil
}

func (t *Tree) PutByte(v int8) (uint32, error)  { return t.putInt(Byte, int64(v)) }
func (t *Tree) PutShort(v int16) (uint32, error) { return t.putInt(Short, int64(v)) }
func (t *Tree) PutInt(v int32) (uint32, error)   { return t.putInt(Int, int64(v)) }
func (t *Tree) PutLong(v int64) (uint32, error)  { return t.putInt(Long, v) }

func (t *Tree) putInt(tag Tag, v int64) (uint32, error) {
	idx, err := t.appendChild(tag)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].bits = uint64(v)
	return idx, nil
}

func (t *Tree) PutChar(v rune) (uint32, error) {
	idx, err := t.appendChild(Char)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].bits = uint64(uint32(v))
	return idx, nil
}

func (t *Tree) PutTimestamp(v int64) (uint32, error) {
	idx, err := t.appendChild(Timestamp)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].bits = uint64(v)
	return idx, nil
}

func (t *Tree) PutFloat(v float32) (uint32, error) {
	idx, err := t.appendChild(Float)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].bits = uint64(math.Float32bits(v))
	return idx, nil
}

func (t *Tree) PutDouble(v float64) (uint32, error) {
	idx, err := t.appendChild(Double)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].bits = math.Float64bits(v)
	return idx, nil
}

func (t *Tree) PutDecimal32(v [4]byte) (uint32, error) {
	idx, err := t.appendChild(Decimal32)
	if err != nil {
		return 0, err
	}
	copy(t.nodes[idx].blob[:], v[:])
	return idx, nil
}

func (t *Tree) PutDecimal64(v [8]byte) (uint32, error) {
	idx, err := t.appendChild(Decimal64)
	if err != nil {
		return 0, err
	}
	copy(t.nodes[idx].blob[:], v[:])
	return idx, nil
}

func (t *Tree) PutDecimal128(v [16]byte) (uint32, error) {
	idx, err := t.appendChild(Decimal128)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].blob = v
	return idx, nil
}

func (t *Tree) PutUUID(v [16]byte) (uint32, error) {
	idx, err := t.appendChild(UUID)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].blob = v
	return idx, nil
}

func (t *Tree) PutBinary(v []byte) (uint32, error) { return t.putBytes(Binary, v) }
func (t *Tree) PutString(v string) (uint32, error) { return t.putBytes(String, []byte(v)) }
func (t *Tree) PutSymbol(v string) (uint32, error) { return t.putBytes(Symbol, []byte(v)) }

func (t *Tree) putBytes(tag Tag, v []byte) (uint32, error) {
	idx, err := t.appendChild(tag)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].ref = t.intern.intern(tag, v)
	return idx, nil
}

func (t *Tree) PutList() (uint32, error) { return t.appendChild(List) }
func (t *Tree) PutMap() (uint32, error)  { return t.appendChild(Map) }

// PutDescribed appends a described-value node. The caller must Enter
// it and Put exactly two children: the descriptor, then the value.
func (t *Tree) PutDescribed() (uint32, error) { return t.appendChild(Described) }

// PutArray appends an array node with its element type preselected, as
// required before Enter. When described is true, the first child
// Entered and Put is the array's descriptor (any tag); every
// subsequent child must carry elementType.
func (t *Tree) PutArray(described bool, elementType Tag) (uint32, error) {
	idx, err := t.appendChild(Array)
	if err != nil {
		return 0, err
	}
	t.nodes[idx].elementType = elementType
	t.nodes[idx].arrayDescribed = described
	return idx, nil
}

// Enter moves parent to current and current to none, so subsequent
// Puts append inside the composite current pointed to.
func (t *Tree) Enter() bool {
	if t.current == 0 || !t.nodes[t.current].tag.isComposite() {
		return false
	}
	t.parent = t.current
	t.current = 0
	return true
}

// Exit moves current back to the composite just navigated out of and
// parent back to its former parent. It fails if the composite being
// exited violates its own child-count invariant (map needs an even
// number of children; described needs exactly two).
func (t *Tree) Exit() (bool, error) {
	if t.parent == 0 {
		return false, nil
	}
	p := t.parent
	switch t.nodes[p].tag {
	case Map:
		if t.nodes[p].children%2 != 0 {
			return false, errSemantic("exit", "map has odd number of children (%d)", t.nodes[p].children)
		}
	case Described:
		if t.nodes[p].children != 2 {
			return false, errSemantic("exit", "described value has %d children, want 2", t.nodes[p].children)
		}
	}
	t.current = p
	t.parent = t.nodes[p].parent
	return true, nil
}

// Next moves to the next sibling, or descends into the first child of
// the current scope if current is none.
func (t *Tree) Next() bool {
	if t.current == 0 {
		d := t.downOf(t.parent)
		if d == 0 {
			return false
		}
		t.current = d
		return true
	}
	n := t.nodes[t.current].next
	if n == 0 {
		return false
	}
	t.current = n
	return true
}

// Prev moves to the previous sibling.
func (t *Tree) Prev() bool {
	if t.current == 0 {
		return false
	}
	p := t.nodes[t.current].prev
	if p == 0 {
		return false
	}
	t.current = p
	return true
}

// Rewind reverts current and parent to the base anchors set by the
// most recent Narrow (or to the top level, if Narrow was never called
// or Widen cleared it).
func (t *Tree) Rewind() {
	t.current = t.base.current
	t.parent = t.base.parent
}

// Narrow confines subsequent Rewind/navigation to the current scope by
// setting the base anchors to the cursor's present position.
func (t *Tree) Narrow() {
	t.base.parent = t.parent
	t.base.current = t.current
}

// Widen clears the base anchors, restoring Rewind to the top level.
func (t *Tree) Widen() {
	t.base = anchor{}
}

// Point snapshots the cursor.
func (t *Tree) Point() Pos { return Pos{parent: t.parent, current: t.current} }

// Restore reverts the cursor to a snapshot taken by Point. If the
// snapshot's current index no longer exists (the Tree was Cleared in
// the interim), Restore falls back to the snapshot's parent with
// current set to none.
func (t *Tree) Restore(p Pos) {
	if int(p.current) >= len(t.nodes) {
		if int(p.parent) < len(t.nodes) {
			t.parent = p.parent
		} else {
			t.parent = 0
		}
		t.current = 0
		return
	}
	t.parent = p.parent
	t.current = p.current
}

// Size returns the number of values at the current navigation level.
func (t *Tree) Size() int { return int(t.childrenOf(t.parent)) }

// CurrentTag returns the tag of the atom at the current position.
func (t *Tree) CurrentTag() (Tag, bool) {
	if t.current == 0 {
		return 0, false
	}
	return t.nodes[t.current].tag, true
}

// CurrentChildren returns the number of children of the composite atom
// at the current position (0 for a primitive).
func (t *Tree) CurrentChildren() uint32 {
	if t.current == 0 {
		return 0
	}
	return t.nodes[t.current].children
}

// CurrentArrayDescribed reports whether the array at the current
// position carries a leading descriptor child.
func (t *Tree) CurrentArrayDescribed() bool {
	if t.current == 0 {
		return false
	}
	return t.nodes[t.current].arrayDescribed
}

// Current reads the Atom at the current position.
func (t *Tree) Current() (Atom, bool) {
	if t.current == 0 {
		return Atom{}, false
	}
	return t.atomAt(t.current), true
}

func (t *Tree) atomAt(idx uint32) Atom {
	n := t.nodes[idx]
	switch n.tag {
	case Null:
		return Atom{Tag: Null}
	case Bool:
		return Atom{Tag: Bool, Bool: n.bits != 0}
	case Ubyte, Ushort, Uint, ULong:
		return Atom{Tag: n.tag, Uint: n.bits}
	case Byte, Short, Int, Long:
		return Atom{Tag: n.tag, Int: int64(n.bits)}
	case Char:
		return Atom{Tag: Char, Char: rune(uint32(n.bits))}
	case Timestamp:
		return Atom{Tag: Timestamp, Tstamp: int64(n.bits)}
	case Float:
		return Atom{Tag: Float, Float32: math.Float32frombits(uint32(n.bits))}
	case Double:
		return Atom{Tag: Double, Float64: math.Float64frombits(n.bits)}
	case Decimal32:
		var d [4]byte
		copy(d[:], n.blob[:4])
		return Atom{Tag: Decimal32, Dec32: d}
	case Decimal64:
		var d [8]byte
		copy(d[:], n.blob[:8])
		return Atom{Tag: Decimal64, Dec64: d}
	case Decimal128:
		return Atom{Tag: Decimal128, Dec128: n.blob}
	case UUID:
		return Atom{Tag: UUID, UUID: n.blob}
	case Binary, String, Symbol:
		return Atom{Tag: n.tag, Bytes: n.ref.bytes(t.intern.buf)}
	case Array:
		return Atom{Tag: Array, ElementType: n.elementType}
	default:
		return Atom{Tag: n.tag}
	}
}

// Append deep-copies src's entire top-level sequence into this Tree's
// current position, preserving structure, array element types, and
// described-ness.
func (t *Tree) Append(src *Tree) error { return t.AppendN(src, -1) }

// AppendN is Append, limited to the first limit top-level items (no
// limit if limit < 0).
func (t *Tree) AppendN(src *Tree, limit int) error {
	n := 0
	idx := src.downOf(0)
	for idx != 0 && (limit < 0 || n < limit) {
		if err := t.copyNode(src, idx); err != nil {
			return err
		}
		idx = src.nodes[idx].next
		n++
	}
	return nil
}

func (t *Tree) copyNode(src *Tree, srcIdx uint32) error {
	a := src.atomAt(srcIdx)
	switch a.Tag {
	case Null:
		_, err := t.PutNull()
		return err
	case Bool:
		_, err := t.PutBool(a.Bool)
		return err
	case Ubyte:
		_, err := t.PutUbyte(uint8(a.Uint))
		return err
	case Ushort:
		_, err := t.PutUshort(uint16(a.Uint))
		return err
	case Uint:
		_, err := t.PutUint(uint32(a.Uint))
		return err
	case ULong:
		_, err := t.PutULong(a.Uint)
		return err
	case Byte:
		_, err := t.PutByte(int8(a.Int))
		return err
	case Short:
		_, err := t.PutShort(int16(a.Int))
		return err
	case Int:
		_, err := t.PutInt(int32(a.Int))
		return err
	case Long:
		_, err := t.PutLong(a.Int)
		return err
	case Char:
		_, err := t.PutChar(a.Char)
		return err
	case Timestamp:
		_, err := t.PutTimestamp(a.Tstamp)
		return err
	case Float:
		_, err := t.PutFloat(a.Float32)
		return err
	case Double:
		_, err := t.PutDouble(a.Float64)
		return err
	case Decimal32:
		_, err := t.PutDecimal32(a.Dec32)
		return err
	case Decimal64:
		_, err := t.PutDecimal64(a.Dec64)
		return err
	case Decimal128:
		_, err := t.PutDecimal128(a.Dec128)
		return err
	case UUID:
		_, err := t.PutUUID(a.UUID)
		return err
	case Binary:
		_, err := t.PutBinary(a.Bytes)
		return err
	case String:
		_, err := t.PutString(string(a.Bytes))
		return err
	case Symbol:
		_, err := t.PutSymbol(string(a.Bytes))
		return err
	case List, Map, Described:
		var err error
		switch a.Tag {
		case List:
			_, err = t.PutList()
		case Map:
			_, err = t.PutMap()
		case Described:
			_, err = t.PutDescribed()
		}
		if err != nil {
			return err
		}
		return t.copyChildren(src, srcIdx)
	case Array:
		described := src.nodes[srcIdx].arrayDescribed
		if _, err := t.PutArray(described, a.ElementType); err != nil {
			return err
		}
		return t.copyChildren(src, srcIdx)
	}
	return nil
}

func (t *Tree) copyChildren(src *Tree, srcIdx uint32) error {
	t.Enter()
	child := src.downOf(srcIdx)
	for child != 0 {
		if err := t.copyNode(src, child); err != nil {
			return err
		}
		child = src.nodes[child].next
	}
	_, err := t.Exit()
	return err
}
