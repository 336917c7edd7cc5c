package amqp

// Atom is a single detached AMQP value: a Tag plus the union of
// primitive payloads or composite markers described in the data model.
// It is what Tree.Current returns for the atom at the cursor; it does
// not itself hold tree structure.
//
// Only the fields relevant to Tag are meaningful; Go has no true union,
// so an Atom carries one field per primitive payload shape instead of
// a single interface{}, matching the teacher's tagged-struct style
// (encoding/atom/atom.go's Atom.typ + data []byte, generalized here to
// typed fields instead of a raw byte slice).
type Atom struct {
	Tag Tag

	Bool    bool
	Uint    uint64 // ubyte, ushort, uint, ulong
	Int     int64  // byte, short, int, long
	Char    rune
	Tstamp  int64 // milliseconds since epoch
	Float32 float32
	Float64 float64
	Dec32   [4]byte
	Dec64   [8]byte
	Dec128  [16]byte
	UUID    [16]byte
	Bytes   []byte // binary, string (UTF-8), symbol (ASCII)

	// ElementType is meaningful only when Tag == Array: the typecode
	// shared by every data element (excluding an optional descriptor).
	ElementType Tag
}

func AtomNull() Atom { return Atom{Tag: Null} }

func AtomBool(v bool) Atom { return Atom{Tag: Bool, Bool: v} }

func AtomUbyte(v uint8) Atom { return Atom{Tag: Ubyte, Uint: uint64(v)} }
func AtomByte(v int8) Atom   { return Atom{Tag: Byte, Int: int64(v)} }

func AtomUshort(v uint16) Atom { return Atom{Tag: Ushort, Uint: uint64(v)} }
func AtomShort(v int16) Atom   { return Atom{Tag: Short, Int: int64(v)} }

func AtomUint(v uint32) Atom { return Atom{Tag: Uint, Uint: uint64(v)} }
func AtomInt(v int32) Atom   { return Atom{Tag: Int, Int: int64(v)} }

func AtomChar(v rune) Atom { return Atom{Tag: Char, Char: v} }

func AtomULong(v uint64) Atom { return Atom{Tag: ULong, Uint: v} }
func AtomLong(v int64) Atom   { return Atom{Tag: Long, Int: v} }

func AtomTimestamp(v int64) Atom { return Atom{Tag: Timestamp, Tstamp: v} }

func AtomFloat(v float32) Atom  { return Atom{Tag: Float, Float32: v} }
func AtomDouble(v float64) Atom { return Atom{Tag: Double, Float64: v} }

func AtomDecimal32(v [4]byte) Atom   { return Atom{Tag: Decimal32, Dec32: v} }
func AtomDecimal64(v [8]byte) Atom   { return Atom{Tag: Decimal64, Dec64: v} }
func AtomDecimal128(v [16]byte) Atom { return Atom{Tag: Decimal128, Dec128: v} }

func AtomUUID(v [16]byte) Atom { return Atom{Tag: UUID, UUID: v} }

func AtomBinary(b []byte) Atom { return Atom{Tag: Binary, Bytes: b} }
func AtomString(s string) Atom { return Atom{Tag: String, Bytes: []byte(s)} }
func AtomSymbol(s string) Atom { return Atom{Tag: Symbol, Bytes: []byte(s)} }

func AtomList() Atom       { return Atom{Tag: List} }
func AtomMap() Atom        { return Atom{Tag: Map} }
func AtomDescribed() Atom  { return Atom{Tag: Described} }
func AtomArray(elem Tag) Atom {
	return Atom{Tag: Array, ElementType: elem}
}

// String returns the Go UTF-8 string view of a string/symbol Atom.
func (a Atom) String() string { return string(a.Bytes) }
