package amqp

import "encoding/binary"

// cursor is a mutable view over a byte slice supporting bounded,
// big-endian reads and writes of fixed-width scalars and
// length-prefixed spans. Every method either succeeds and advances pos
// by exactly the width consumed, or returns an error and leaves pos
// unchanged.
type cursor struct {
	buf []byte
	pos int
}

func newReadCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func newWriteCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

func (c *cursor) readByte(op string) (byte, error) {
	if c.remaining() < 1 {
		return 0, errUnderflow(op)
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readN(op string, n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, errUnderflow(op)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) readUint8(op string) (uint8, error) {
	b, err := c.readByte(op)
	return b, err
}

func (c *cursor) readUint16(op string) (uint16, error) {
	b, err := c.readN(op, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *cursor) readUint32(op string) (uint32, error) {
	b, err := c.readN(op, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *cursor) readUint64(op string) (uint64, error) {
	b, err := c.readN(op, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (c *cursor) readBytes16(op string) ([16]byte, error) {
	var out [16]byte
	b, err := c.readN(op, 16)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// readSpan8 reads a 1-byte length prefix followed by that many bytes.
func (c *cursor) readSpan8(op string) ([]byte, error) {
	start := c.pos
	n, err := c.readUint8(op)
	if err != nil {
		return nil, err
	}
	b, err := c.readN(op, int(n))
	if err != nil {
		c.pos = start
	}
	return b, err
}

// readSpan32 reads a 4-byte length prefix followed by that many bytes.
func (c *cursor) readSpan32(op string) ([]byte, error) {
	start := c.pos
	n, err := c.readUint32(op)
	if err != nil {
		return nil, err
	}
	b, err := c.readN(op, int(n))
	if err != nil {
		c.pos = start
	}
	return b, err
}

func (c *cursor) writeByte(op string, b byte) error {
	if c.remaining() < 1 {
		return errOverflow(op, 1)
	}
	c.buf[c.pos] = b
	c.pos++
	return nil
}

func (c *cursor) writeN(op string, b []byte) error {
	if c.remaining() < len(b) {
		return errOverflow(op, len(b)-c.remaining())
	}
	copy(c.buf[c.pos:], b)
	c.pos += len(b)
	return nil
}

func (c *cursor) writeUint8(op string, v uint8) error {
	return c.writeByte(op, v)
}

func (c *cursor) writeUint16(op string, v uint16) error {
	if c.remaining() < 2 {
		return errOverflow(op, 2-c.remaining())
	}
	binary.BigEndian.PutUint16(c.buf[c.pos:], v)
	c.pos += 2
	return nil
}

func (c *cursor) writeUint32(op string, v uint32) error {
	if c.remaining() < 4 {
		return errOverflow(op, 4-c.remaining())
	}
	binary.BigEndian.PutUint32(c.buf[c.pos:], v)
	c.pos += 4
	return nil
}

func (c *cursor) writeUint64(op string, v uint64) error {
	if c.remaining() < 8 {
		return errOverflow(op, 8-c.remaining())
	}
	binary.BigEndian.PutUint64(c.buf[c.pos:], v)
	c.pos += 8
	return nil
}

// patchUint32 overwrites 4 bytes already written at pos, for composite
// and array size fields that are reserved before their length is known
// and filled in once the body has been written.
func (c *cursor) patchUint32(pos int, v uint32) {
	binary.BigEndian.PutUint32(c.buf[pos:], v)
}
