package amqp

import "math"

// Binary encoding and decoding between a Tree and the AMQP 1.0 wire
// format (section 1.6). The encoder always prefers the narrowest code
// that fits a value (zero/small/wide for the integer families,
// short/long for binary/string/symbol by measured length) except for
// list, map and array, which are always emitted in long (32-bit
// size/count) form (an empty list is the one-byte 0x45); the decoder accepts every code a conformant peer may send,
// including the short forms the encoder itself never produces, so
// round-tripping a peer's short-form composite back out is lossy only
// in wire size, never in value.

// Decode appends exactly one logical value, read from the start of
// buf, at the Tree's current position. It returns the number of bytes
// consumed. On error the Tree is left exactly as it was before the
// call: any nodes allocated while decoding the failed value are
// discarded.
func (t *Tree) Decode(buf []byte) (int, error) {
	c := newReadCursor(buf)
	if err := t.decodeTopLevel(c); err != nil {
		return c.pos, err
	}
	return c.pos, nil
}

// DecodeAll repeatedly decodes top-level values until buf is
// exhausted, returning how many were appended. On error, every value
// decoded before the failing one remains in the Tree.
func (t *Tree) DecodeAll(buf []byte) (int, error) {
	c := newReadCursor(buf)
	count := 0
	for c.remaining() > 0 {
		if err := t.decodeTopLevel(c); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// decodeTopLevel decodes one value, rolling the arena and the current
// scope's child linkage back to their pre-call state if decodeValue
// fails partway through.
func (t *Tree) decodeTopLevel(c *cursor) error {
	savedLen := len(t.nodes)
	savedCurrent := t.current
	savedParent := t.parent
	savedDown, savedChildren := t.downOf(t.parent), t.childrenOf(t.parent)

	if err := t.decodeValue(c); err != nil {
		t.nodes = t.nodes[:savedLen]
		t.current = savedCurrent
		t.parent = savedParent
		t.setDown(t.parent, savedDown)
		if t.parent == 0 {
			t.rootChildren = savedChildren
		} else {
			t.nodes[t.parent].children = savedChildren
		}
		if savedCurrent != 0 {
			t.nodes[savedCurrent].next = 0
		}
		return err
	}
	return nil
}

// decodeValue decodes one value at the cursor, recursing through any
// number of stacked descriptor prefixes before the primitive or
// composite body.
func (t *Tree) decodeValue(c *cursor) error {
	code, err := c.readByte("decode")
	if err != nil {
		return err
	}
	if code == codeDescriptor {
		if _, err := t.PutDescribed(); err != nil {
			return err
		}
		t.Enter()
		if err := t.decodeValue(c); err != nil {
			return err
		}
		if err := t.decodeValue(c); err != nil {
			return err
		}
		_, err := t.Exit()
		return err
	}
	return t.decodeByCode(c, code)
}

// decodeByCode decodes the payload that follows a typecode already
// read from the wire (or, inside an array, shared across every
// element and supplied by the caller instead of freshly read).
func (t *Tree) decodeByCode(c *cursor, code byte) error {
	switch code {
	case codeNull:
		_, err := t.PutNull()
		return err
	case codeBoolTrue:
		_, err := t.PutBool(true)
		return err
	case codeBoolFalse:
		_, err := t.PutBool(false)
		return err
	case codeBoolGeneric:
		v, err := c.readUint8("decode")
		if err != nil {
			return err
		}
		_, err = t.PutBool(v != 0)
		return err
	case codeUbyte:
		v, err := c.readUint8("decode")
		if err != nil {
			return err
		}
		_, err = t.PutUbyte(v)
		return err
	case codeByte:
		v, err := c.readUint8("decode")
		if err != nil {
			return err
		}
		_, err = t.PutByte(int8(v))
		return err
	case codeUshort:
		v, err := c.readUint16("decode")
		if err != nil {
			return err
		}
		_, err = t.PutUshort(v)
		return err
	case codeShort:
		v, err := c.readUint16("decode")
		if err != nil {
			return err
		}
		_, err = t.PutShort(int16(v))
		return err
	case codeUint0:
		_, err := t.PutUint(0)
		return err
	case codeSmallUint:
		v, err := c.readUint8("decode")
		if err != nil {
			return err
		}
		_, err = t.PutUint(uint32(v))
		return err
	case codeUint:
		v, err := c.readUint32("decode")
		if err != nil {
			return err
		}
		_, err = t.PutUint(v)
		return err
	case codeSmallInt:
		v, err := c.readUint8("decode")
		if err != nil {
			return err
		}
		_, err = t.PutInt(int32(int8(v)))
		return err
	case codeInt:
		v, err := c.readUint32("decode")
		if err != nil {
			return err
		}
		_, err = t.PutInt(int32(v))
		return err
	case codeChar:
		v, err := c.readUint32("decode")
		if err != nil {
			return err
		}
		_, err = t.PutChar(rune(v))
		return err
	case codeUlong0:
		_, err := t.PutULong(0)
		return err
	case codeSmallUlong:
		v, err := c.readUint8("decode")
		if err != nil {
			return err
		}
		_, err = t.PutULong(uint64(v))
		return err
	case codeUlong:
		v, err := c.readUint64("decode")
		if err != nil {
			return err
		}
		_, err = t.PutULong(v)
		return err
	case codeSmallLong:
		v, err := c.readUint8("decode")
		if err != nil {
			return err
		}
		_, err = t.PutLong(int64(int8(v)))
		return err
	case codeLong:
		v, err := c.readUint64("decode")
		if err != nil {
			return err
		}
		_, err = t.PutLong(int64(v))
		return err
	case codeTimestamp:
		v, err := c.readUint64("decode")
		if err != nil {
			return err
		}
		_, err = t.PutTimestamp(int64(v))
		return err
	case codeFloat:
		v, err := c.readUint32("decode")
		if err != nil {
			return err
		}
		_, err = t.PutFloat(math.Float32frombits(v))
		return err
	case codeDouble:
		v, err := c.readUint64("decode")
		if err != nil {
			return err
		}
		_, err = t.PutDouble(math.Float64frombits(v))
		return err
	case codeDecimal32:
		b, err := c.readN("decode", 4)
		if err != nil {
			return err
		}
		var d [4]byte
		copy(d[:], b)
		_, err = t.PutDecimal32(d)
		return err
	case codeDecimal64:
		b, err := c.readN("decode", 8)
		if err != nil {
			return err
		}
		var d [8]byte
		copy(d[:], b)
		_, err = t.PutDecimal64(d)
		return err
	case codeDecimal128:
		b, err := c.readN("decode", 16)
		if err != nil {
			return err
		}
		var d [16]byte
		copy(d[:], b)
		_, err = t.PutDecimal128(d)
		return err
	case codeUUID:
		v, err := c.readBytes16("decode")
		if err != nil {
			return err
		}
		_, err = t.PutUUID(v)
		return err
	case codeVbin8, codeStr8, codeSym8:
		b, err := c.readSpan8("decode")
		if err != nil {
			return err
		}
		return t.putSpanByCode(code, b)
	case codeVbin32, codeStr32, codeSym32:
		b, err := c.readSpan32("decode")
		if err != nil {
			return err
		}
		return t.putSpanByCode(code, b)
	case codeList0:
		_, err := t.PutList()
		return err
	case codeList8, codeList32:
		return t.decodeComposite(c, List, code)
	case codeMap8, codeMap32:
		return t.decodeComposite(c, Map, code)
	case codeArray8, codeArray32:
		return t.decodeArray(c, code)
	default:
		return errUnknownTypecode("decode", code)
	}
}

func (t *Tree) putSpanByCode(code byte, b []byte) error {
	switch code {
	case codeVbin8, codeVbin32:
		_, err := t.PutBinary(b)
		return err
	case codeStr8, codeStr32:
		_, err := t.PutString(string(b))
		return err
	default:
		_, err := t.PutSymbol(string(b))
		return err
	}
}

// decodeComposite reads a list or map's size/count header, in whichever
// width code selected, then decodes exactly count child values.
func (t *Tree) decodeComposite(c *cursor, tag Tag, code byte) error {
	count, err := t.readCompositeHeader(c, code)
	if err != nil {
		return err
	}
	switch tag {
	case List:
		_, err = t.PutList()
	case Map:
		_, err = t.PutMap()
	}
	if err != nil {
		return err
	}
	t.Enter()
	for i := uint32(0); i < count; i++ {
		if err := t.decodeValue(c); err != nil {
			return err
		}
	}
	_, err = t.Exit()
	return err
}

// readCompositeHeader reads a composite's size then count field (the
// size field itself is not separately validated against the bytes
// consumed; a mismatch surfaces as underflow or a trailing-bytes
// mismatch at the caller).
func (t *Tree) readCompositeHeader(c *cursor, code byte) (uint32, error) {
	if isShortComposite(code) {
		if _, err := c.readUint8("decode"); err != nil {
			return 0, err
		}
		n, err := c.readUint8("decode")
		return uint32(n), err
	}
	if _, err := c.readUint32("decode"); err != nil {
		return 0, err
	}
	return c.readUint32("decode")
}

// decodeArray reads an array's size/count header, an optional leading
// descriptor, the single shared element typecode, and then count data
// elements each decoded through decodeByCode with that code.
func (t *Tree) decodeArray(c *cursor, code byte) error {
	count, err := t.readCompositeHeader(c, code)
	if err != nil {
		return err
	}

	first, err := c.readByte("decode")
	if err != nil {
		return err
	}

	described := false
	var descriptor *Tree
	elemCode := first
	if first == codeDescriptor {
		described = true
		descriptor = NewTree(4)
		if err := descriptor.decodeValue(c); err != nil {
			return err
		}
		elemCode, err = c.readByte("decode")
		if err != nil {
			return err
		}
	}

	elemTag, ok := tagForCode(elemCode)
	if !ok {
		return errUnknownTypecode("decode", elemCode)
	}

	if _, err := t.PutArray(described, elemTag); err != nil {
		return err
	}
	t.Enter()
	if described {
		if err := t.copyNode(descriptor, descriptor.downOf(0)); err != nil {
			return err
		}
	}
	for i := uint32(0); i < count; i++ {
		if err := t.decodeByCode(c, elemCode); err != nil {
			return err
		}
	}
	_, err = t.Exit()
	return err
}

// Encode writes every top-level value in the Tree to buf, growing a
// fresh buffer and retrying if buf is too small, and returns the
// slice actually written (a prefix of, or a replacement for, buf).
func (t *Tree) Encode(buf []byte) ([]byte, error) {
	return t.encodeGrow(buf, func(c *cursor) error {
		idx := t.downOf(0)
		for idx != 0 {
			if err := t.encodeNode(c, idx); err != nil {
				return err
			}
			idx = t.nodes[idx].next
		}
		return nil
	})
}

// EncodeOne writes just the value at the Tree's current position.
func (t *Tree) EncodeOne(buf []byte) ([]byte, error) {
	return t.encodeGrow(buf, func(c *cursor) error {
		if t.current == 0 {
			return errSemantic("encode", "no current value")
		}
		return t.encodeNode(c, t.current)
	})
}

// encodeGrow runs fn against buf; if fn reports Overflow, it doubles
// the buffer and retries, mirroring the qpid-proton-go Marshal/encode
// retry-on-ENOSPC pattern (original_source's encode.c calls the same
// encoder twice, once to measure and once to fill; here a growing
// cursor makes the second call unnecessary except on genuine overflow).
func (t *Tree) encodeGrow(buf []byte, fn func(c *cursor) error) ([]byte, error) {
	buf = buf[:cap(buf)]
	if len(buf) == 0 {
		buf = make([]byte, 256)
	}
	for {
		c := newWriteCursor(buf)
		err := fn(c)
		if err == nil {
			return buf[:c.pos], nil
		}
		if !IsKind(err, Overflow) {
			return nil, err
		}
		buf = make([]byte, len(buf)*2)
	}
}

// encodeNode writes one value's full typecode-and-payload encoding.
func (t *Tree) encodeNode(c *cursor, idx uint32) error {
	n := t.nodes[idx]
	switch n.tag {
	case Null:
		return c.writeByte("encode", codeNull)
	case Bool:
		if n.bits != 0 {
			return c.writeByte("encode", codeBoolTrue)
		}
		return c.writeByte("encode", codeBoolFalse)
	case Ubyte:
		return writeCodeByte(c, codeUbyte, byte(n.bits))
	case Byte:
		return writeCodeByte(c, codeByte, byte(n.bits))
	case Ushort:
		return writeCodeUint16(c, codeUshort, uint16(n.bits))
	case Short:
		return writeCodeUint16(c, codeShort, uint16(n.bits))
	case Uint:
		return t.encodeUintLike(c, uint64(uint32(n.bits)), codeUint0, codeSmallUint, codeUint)
	case ULong:
		return t.encodeUintLike(c, n.bits, codeUlong0, codeSmallUlong, codeUlong)
	case Int:
		return encodeIntLike(c, int64(int32(n.bits)), codeSmallInt, codeInt, 4)
	case Long:
		return encodeIntLike(c, int64(n.bits), codeSmallLong, codeLong, 8)
	case Char:
		return writeCodeUint32(c, codeChar, uint32(n.bits))
	case Timestamp:
		return writeCodeUint64(c, codeTimestamp, n.bits)
	case Float:
		return writeCodeUint32(c, codeFloat, uint32(n.bits))
	case Double:
		return writeCodeUint64(c, codeDouble, n.bits)
	case Decimal32:
		return writeCodeBlob(c, codeDecimal32, n.blob[:4])
	case Decimal64:
		return writeCodeBlob(c, codeDecimal64, n.blob[:8])
	case Decimal128:
		return writeCodeBlob(c, codeDecimal128, n.blob[:16])
	case UUID:
		return writeCodeBlob(c, codeUUID, n.blob[:16])
	case Binary:
		return t.encodeSpan(c, n.ref, codeVbin8, codeVbin32)
	case String:
		return t.encodeSpan(c, n.ref, codeStr8, codeStr32)
	case Symbol:
		return t.encodeSpan(c, n.ref, codeSym8, codeSym32)
	case List:
		return t.encodeComposite(c, idx, codeList0, codeList32)
	case Map:
		return t.encodeComposite(c, idx, 0, codeMap32)
	case Described:
		return t.encodeDescribed(c, idx)
	case Array:
		return t.encodeArray(c, idx)
	default:
		return errSemantic("encode", "unhandled tag %s", n.tag)
	}
}

func writeCodeByte(c *cursor, code, v byte) error {
	if err := c.writeByte("encode", code); err != nil {
		return err
	}
	return c.writeByte("encode", v)
}

func writeCodeUint16(c *cursor, code byte, v uint16) error {
	if err := c.writeByte("encode", code); err != nil {
		return err
	}
	return c.writeUint16("encode", v)
}

func writeCodeUint32(c *cursor, code byte, v uint32) error {
	if err := c.writeByte("encode", code); err != nil {
		return err
	}
	return c.writeUint32("encode", v)
}

func writeCodeUint64(c *cursor, code byte, v uint64) error {
	if err := c.writeByte("encode", code); err != nil {
		return err
	}
	return c.writeUint64("encode", v)
}

func writeCodeBlob(c *cursor, code byte, b []byte) error {
	if err := c.writeByte("encode", code); err != nil {
		return err
	}
	return c.writeN("encode", b)
}

// encodeUintLike picks the zero/small/wide code for an unsigned
// integer family member and writes it, matching go-amqp's
// writeUint32/writeUint64 thresholds (0 -> zero code, <256 -> 1-byte
// small code, else the full-width code).
func (t *Tree) encodeUintLike(c *cursor, v uint64, zeroCode, smallCode, wideCode byte) error {
	switch {
	case v == 0:
		return c.writeByte("encode", zeroCode)
	case v < 256:
		return writeCodeByte(c, smallCode, byte(v))
	case wideCode == codeUlong:
		return writeCodeUint64(c, wideCode, v)
	default:
		return writeCodeUint32(c, wideCode, uint32(v))
	}
}

// encodeIntLike picks the small/wide code for a signed integer family
// member, matching go-amqp's writeInt32/writeInt64 thresholds
// (-128 <= n < 128 -> 1-byte small code, else the full-width code).
func encodeIntLike(c *cursor, v int64, smallCode, wideCode byte, wideWidth int) error {
	if v >= -128 && v < 128 {
		return writeCodeByte(c, smallCode, byte(int8(v)))
	}
	if err := c.writeByte("encode", wideCode); err != nil {
		return err
	}
	if wideWidth == 8 {
		return c.writeUint64("encode", uint64(v))
	}
	return c.writeUint32("encode", uint32(v))
}

func (t *Tree) encodeSpan(c *cursor, ref internRef, shortCode, longCode byte) error {
	data := ref.bytes(t.intern.buf)
	if len(data) < 256 {
		if err := c.writeByte("encode", shortCode); err != nil {
			return err
		}
		if err := c.writeByte("encode", byte(len(data))); err != nil {
			return err
		}
		return c.writeN("encode", data)
	}
	if err := c.writeByte("encode", longCode); err != nil {
		return err
	}
	if err := c.writeUint32("encode", uint32(len(data))); err != nil {
		return err
	}
	return c.writeN("encode", data)
}

// encodeComposite writes a list or map, taking the empty-list shortcut
// (a bare 0x45, per go-amqp's MarshalComposite behavior for a
// zero-field composite) when emptyCode is nonzero and there are no
// children; otherwise it always uses the long (32-bit size/count)
// form. A short-form encoder was considered and rejected: see the
// composite size-class note in the design notes.
func (t *Tree) encodeComposite(c *cursor, idx uint32, emptyCode, longCode byte) error {
	n := t.nodes[idx]
	if n.children == 0 && emptyCode != 0 {
		return c.writeByte("encode", emptyCode)
	}
	if err := c.writeByte("encode", longCode); err != nil {
		return err
	}
	return t.encodeCompositeBody(c, idx)
}

// encodeCompositeBody writes a composite's size/count header (long
// form) and its children, without the leading typecode byte -- reused
// both by encodeComposite and by array elements that share one
// outer typecode but still carry their own per-element framing.
func (t *Tree) encodeCompositeBody(c *cursor, idx uint32) error {
	n := t.nodes[idx]
	sizePos := c.pos
	if err := c.writeUint32("encode", 0); err != nil {
		return err
	}
	countPos := c.pos
	if err := c.writeUint32("encode", n.children); err != nil {
		return err
	}
	child := n.down
	for child != 0 {
		if err := t.encodeNode(c, child); err != nil {
			return err
		}
		child = t.nodes[child].next
	}
	c.patchUint32(sizePos, uint32(c.pos-countPos))
	return nil
}

func (t *Tree) encodeDescribed(c *cursor, idx uint32) error {
	n := t.nodes[idx]
	if n.children != 2 {
		return errSemantic("encode", "described value has %d children, want 2", n.children)
	}
	if err := c.writeByte("encode", codeDescriptor); err != nil {
		return err
	}
	descIdx := n.down
	if err := t.encodeNode(c, descIdx); err != nil {
		return err
	}
	return t.encodeNode(c, t.nodes[descIdx].next)
}

// encodeArray writes an array's size/count header, its optional
// descriptor, the single shared element typecode, and then every data
// element's payload without repeating that typecode -- even when
// there are zero data elements, so a described array with nothing but
// a descriptor still round-trips its element type.
func (t *Tree) encodeArray(c *cursor, idx uint32) error {
	if err := c.writeByte("encode", codeArray32); err != nil {
		return err
	}
	return t.encodeArrayBody(c, idx)
}

// chooseArrayElementCode picks the one typecode shared by every data
// element of an array. Fixed-shape tags have exactly one code; the
// variable-width families (the integer families, and the span types)
// scan every data element so the chosen code's width accommodates the
// widest one, since an array's per-element stride cannot vary once
// its constructor code is fixed.
func (t *Tree) chooseArrayElementCode(elemTag Tag, dataStart uint32) (byte, error) {
	switch elemTag {
	case Null:
		return codeNull, nil
	case Bool:
		return codeBoolGeneric, nil
	case Ubyte:
		return codeUbyte, nil
	case Byte:
		return codeByte, nil
	case Ushort:
		return codeUshort, nil
	case Short:
		return codeShort, nil
	case Char:
		return codeChar, nil
	case Timestamp:
		return codeTimestamp, nil
	case Float:
		return codeFloat, nil
	case Double:
		return codeDouble, nil
	case Decimal32:
		return codeDecimal32, nil
	case Decimal64:
		return codeDecimal64, nil
	case Decimal128:
		return codeDecimal128, nil
	case UUID:
		return codeUUID, nil
	case List:
		return codeList32, nil
	case Map:
		return codeMap32, nil
	case Array:
		return codeArray32, nil
	case Uint:
		return t.chooseUintArrayCode(dataStart, codeUint0, codeSmallUint, codeUint)
	case ULong:
		return t.chooseUintArrayCode(dataStart, codeUlong0, codeSmallUlong, codeUlong)
	case Int:
		return t.chooseIntArrayCode(dataStart, codeSmallInt, codeInt)
	case Long:
		return t.chooseIntArrayCode(dataStart, codeSmallLong, codeLong)
	case Binary:
		return t.chooseSpanArrayCode(dataStart, codeVbin8, codeVbin32)
	case String:
		return t.chooseSpanArrayCode(dataStart, codeStr8, codeStr32)
	case Symbol:
		return t.chooseSpanArrayCode(dataStart, codeSym8, codeSym32)
	default:
		return 0, errBadStructure("encode", "array element tag %s has no wire code", elemTag)
	}
}

func (t *Tree) chooseUintArrayCode(dataStart uint32, zeroCode, smallCode, wideCode byte) (byte, error) {
	allZero, allSmall := true, true
	for idx := dataStart; idx != 0; idx = t.nodes[idx].next {
		v := t.nodes[idx].bits
		if v != 0 {
			allZero = false
		}
		if v >= 256 {
			allSmall = false
		}
	}
	switch {
	case allZero:
		return zeroCode, nil
	case allSmall:
		return smallCode, nil
	default:
		return wideCode, nil
	}
}

func (t *Tree) chooseIntArrayCode(dataStart uint32, smallCode, wideCode byte) (byte, error) {
	allSmall := true
	for idx := dataStart; idx != 0; idx = t.nodes[idx].next {
		iv := int64(int32(t.nodes[idx].bits))
		if wideCode == codeLong {
			iv = int64(t.nodes[idx].bits)
		}
		if iv < -128 || iv >= 128 {
			allSmall = false
		}
	}
	if allSmall {
		return smallCode, nil
	}
	return wideCode, nil
}

func (t *Tree) chooseSpanArrayCode(dataStart uint32, shortCode, longCode byte) (byte, error) {
	allShort := true
	for idx := dataStart; idx != 0; idx = t.nodes[idx].next {
		if t.nodes[idx].ref.size >= 256 {
			allShort = false
			break
		}
	}
	if allShort {
		return shortCode, nil
	}
	return longCode, nil
}

// encodeArrayElement writes one data element's payload under a shared
// element code, with no per-element typecode byte. Variable-length
// and composite elements still carry their own length or size/count
// framing; only the leading constructor byte is shared.
func (t *Tree) encodeArrayElement(c *cursor, idx uint32, elemCode byte) error {
	n := t.nodes[idx]
	switch n.tag {
	case Null:
		return nil
	case Bool:
		if n.bits != 0 {
			return c.writeByte("encode", 1)
		}
		return c.writeByte("encode", 0)
	case Ubyte, Byte:
		return c.writeByte("encode", byte(n.bits))
	case Ushort, Short:
		return c.writeUint16("encode", uint16(n.bits))
	case Uint, ULong:
		switch elemCode {
		case codeUint0, codeUlong0:
			return nil
		case codeSmallUint, codeSmallUlong:
			return c.writeByte("encode", byte(n.bits))
		case codeUlong:
			return c.writeUint64("encode", n.bits)
		default:
			return c.writeUint32("encode", uint32(n.bits))
		}
	case Int, Long:
		switch elemCode {
		case codeSmallInt, codeSmallLong:
			return c.writeByte("encode", byte(int8(int64(n.bits))))
		case codeLong:
			return c.writeUint64("encode", n.bits)
		default:
			return c.writeUint32("encode", uint32(n.bits))
		}
	case Char:
		return c.writeUint32("encode", uint32(n.bits))
	case Timestamp:
		return c.writeUint64("encode", n.bits)
	case Float:
		return c.writeUint32("encode", uint32(n.bits))
	case Double:
		return c.writeUint64("encode", n.bits)
	case Decimal32:
		return c.writeN("encode", n.blob[:4])
	case Decimal64:
		return c.writeN("encode", n.blob[:8])
	case Decimal128:
		return c.writeN("encode", n.blob[:16])
	case UUID:
		return c.writeN("encode", n.blob[:16])
	case Binary, String, Symbol:
		data := n.ref.bytes(t.intern.buf)
		if elemCode == codeVbin8 || elemCode == codeStr8 || elemCode == codeSym8 {
			if err := c.writeByte("encode", byte(len(data))); err != nil {
				return err
			}
		} else {
			if err := c.writeUint32("encode", uint32(len(data))); err != nil {
				return err
			}
		}
		return c.writeN("encode", data)
	case List, Map:
		return t.encodeCompositeBody(c, idx)
	case Array:
		return t.encodeArrayBody(c, idx)
	default:
		return errSemantic("encode", "unhandled array element tag %s", n.tag)
	}
}

// encodeArrayBody writes a nested array's size/count header, optional
// descriptor, shared element code, and elements, without the leading
// 0xF0 constructor byte (shared with the outer array).
func (t *Tree) encodeArrayBody(c *cursor, idx uint32) error {
	n := t.nodes[idx]
	described := n.arrayDescribed
	dataStart := n.down
	var descIdx uint32
	if described {
		descIdx = n.down
		dataStart = t.nodes[descIdx].next
	}
	elemCode, err := t.chooseArrayElementCode(n.elementType, dataStart)
	if err != nil {
		return err
	}
	sizePos := c.pos
	if err := c.writeUint32("encode", 0); err != nil {
		return err
	}
	countPos := c.pos
	dataCount := uint32(0)
	for child := dataStart; child != 0; child = t.nodes[child].next {
		dataCount++
	}
	if err := c.writeUint32("encode", dataCount); err != nil {
		return err
	}
	if described {
		if err := c.writeByte("encode", codeDescriptor); err != nil {
			return err
		}
		if err := t.encodeNode(c, descIdx); err != nil {
			return err
		}
	}
	if err := c.writeByte("encode", elemCode); err != nil {
		return err
	}
	for child := dataStart; child != 0; child = t.nodes[child].next {
		if err := t.encodeArrayElement(c, child, elemCode); err != nil {
			return err
		}
	}
	c.patchUint32(sizePos, uint32(c.pos-countPos))
	return nil
}
