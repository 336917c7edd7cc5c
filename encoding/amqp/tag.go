package amqp

// Tag identifies the logical AMQP type of an Atom or Node. The set is
// closed: every value constructed through this package carries one of
// these tags.
type Tag uint8

const (
	Null Tag = iota
	Bool
	Ubyte
	Byte
	Ushort
	Short
	Uint
	Int
	Char
	ULong
	Long
	Timestamp
	Float
	Double
	Decimal32
	Decimal64
	Decimal128
	UUID
	Binary
	String
	Symbol
	Described
	Array
	List
	Map

	// typeTag and descriptorTag are internal-only names for the
	// transient TYPE and descriptor markers of the data model. No code
	// in this package stores or produces either tag: the decoder reads
	// an array's element typecode directly, and fill counts a Described
	// node's children on the node itself.
	typeTag
	descriptorTag
)

func (t Tag) String() string {
	switch t {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Ubyte:
		return "ubyte"
	case Byte:
		return "byte"
	case Ushort:
		return "ushort"
	case Short:
		return "short"
	case Uint:
		return "uint"
	case Int:
		return "int"
	case Char:
		return "char"
	case ULong:
		return "ulong"
	case Long:
		return "long"
	case Timestamp:
		return "timestamp"
	case Float:
		return "float"
	case Double:
		return "double"
	case Decimal32:
		return "decimal32"
	case Decimal64:
		return "decimal64"
	case Decimal128:
		return "decimal128"
	case UUID:
		return "uuid"
	case Binary:
		return "binary"
	case String:
		return "string"
	case Symbol:
		return "symbol"
	case Described:
		return "described"
	case Array:
		return "array"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// isComposite reports whether values of this tag carry children in the
// tree store (described, array, list, map).
func (t Tag) isComposite() bool {
	switch t {
	case Described, Array, List, Map:
		return true
	default:
		return false
	}
}

// Wire typecodes, AMQP 1.0 section 1.6.
const (
	codeDescriptor = 0x00

	codeNull = 0x40

	codeBoolGeneric = 0x56
	codeBoolTrue    = 0x41
	codeBoolFalse   = 0x42

	codeUbyte = 0x50
	codeByte  = 0x51

	codeUshort = 0x60
	codeShort  = 0x61

	codeUint0     = 0x43
	codeSmallUint = 0x52
	codeUint      = 0x70

	codeSmallInt = 0x54
	codeInt      = 0x71

	codeChar = 0x73

	codeUlong0     = 0x44
	codeSmallUlong = 0x53
	codeUlong      = 0x80

	codeSmallLong = 0x55
	codeLong      = 0x81

	codeTimestamp = 0x83

	codeFloat  = 0x72
	codeDouble = 0x82

	codeDecimal32  = 0x74
	codeDecimal64  = 0x84
	codeDecimal128 = 0x94

	codeUUID = 0x98

	codeVbin8  = 0xA0
	codeVbin32 = 0xB0

	codeStr8  = 0xA1
	codeStr32 = 0xB1

	codeSym8  = 0xA3
	codeSym32 = 0xB3

	codeList0  = 0x45
	codeList8  = 0xC0
	codeList32 = 0xD0

	codeMap8  = 0xC1
	codeMap32 = 0xD1

	codeArray8  = 0xE0
	codeArray32 = 0xF0
)

// fixedWidth returns the number of payload bytes that follow a
// primitive typecode with a fixed-size encoding, or -1 if the code has
// a variable-length or composite encoding.
func fixedWidth(code byte) int {
	switch code {
	case codeNull, codeUint0, codeUlong0, codeList0, codeBoolTrue, codeBoolFalse:
		return 0
	case codeBoolGeneric, codeUbyte, codeByte, codeSmallUint, codeSmallInt, codeSmallUlong, codeSmallLong:
		return 1
	case codeUshort, codeShort:
		return 2
	case codeUint, codeInt, codeChar, codeFloat, codeDecimal32:
		return 4
	case codeUlong, codeLong, codeTimestamp, codeDouble, codeDecimal64:
		return 8
	case codeDecimal128, codeUUID:
		return 16
	default:
		return -1
	}
}

// tagForCode maps a wire typecode, primitive or composite, to its
// logical Tag. It does not handle the descriptor code 0x00; callers
// check that first.
func tagForCode(code byte) (Tag, bool) {
	switch code {
	case codeNull:
		return Null, true
	case codeBoolGeneric, codeBoolTrue, codeBoolFalse:
		return Bool, true
	case codeUbyte:
		return Ubyte, true
	case codeByte:
		return Byte, true
	case codeUshort:
		return Ushort, true
	case codeShort:
		return Short, true
	case codeUint0, codeSmallUint, codeUint:
		return Uint, true
	case codeSmallInt, codeInt:
		return Int, true
	case codeChar:
		return Char, true
	case codeUlong0, codeSmallUlong, codeUlong:
		return ULong, true
	case codeSmallLong, codeLong:
		return Long, true
	case codeTimestamp:
		return Timestamp, true
	case codeFloat:
		return Float, true
	case codeDouble:
		return Double, true
	case codeDecimal32:
		return Decimal32, true
	case codeDecimal64:
		return Decimal64, true
	case codeDecimal128:
		return Decimal128, true
	case codeUUID:
		return UUID, true
	case codeVbin8, codeVbin32:
		return Binary, true
	case codeStr8, codeStr32:
		return String, true
	case codeSym8, codeSym32:
		return Symbol, true
	case codeList0, codeList8, codeList32:
		return List, true
	case codeMap8, codeMap32:
		return Map, true
	case codeArray8, codeArray32:
		return Array, true
	default:
		return 0, false
	}
}

// isShortComposite reports whether a composite typecode uses the 1-byte
// size/count form.
func isShortComposite(code byte) bool {
	switch code {
	case codeList8, codeMap8, codeArray8:
		return true
	default:
		return false
	}
}
