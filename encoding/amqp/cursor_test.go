package amqp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorReadWriteRoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	w := newWriteCursor(buf)
	require.NoError(t, w.writeUint8("test", 0x12))
	require.NoError(t, w.writeUint16("test", 0x3456))
	require.NoError(t, w.writeUint32("test", 0x789abcde))
	require.NoError(t, w.writeUint64("test", 0x1122334455667788))
	require.NoError(t, w.writeN("test", []byte("hello")))

	r := newReadCursor(buf[:w.pos])
	b, err := r.readUint8("test")
	require.NoError(t, err)
	require.Equal(t, uint8(0x12), b)

	u16, err := r.readUint16("test")
	require.NoError(t, err)
	require.Equal(t, uint16(0x3456), u16)

	u32, err := r.readUint32("test")
	require.NoError(t, err)
	require.Equal(t, uint32(0x789abcde), u32)

	u64, err := r.readUint64("test")
	require.NoError(t, err)
	require.Equal(t, uint64(0x1122334455667788), u64)

	n, err := r.readN("test", 5)
	require.NoError(t, err)
	require.Equal(t, "hello", string(n))
}

func TestCursorUnderflow(t *testing.T) {
	r := newReadCursor([]byte{0x01})
	_, err := r.readUint32("test")
	require.Error(t, err)
	require.True(t, IsKind(err, Underflow))
}

func TestCursorOverflow(t *testing.T) {
	w := newWriteCursor(make([]byte, 1))
	err := w.writeUint32("test", 1)
	require.Error(t, err)
	require.True(t, IsKind(err, Overflow))
}

func TestCursorSpans(t *testing.T) {
	buf := []byte{0x03, 'f', 'o', 'o'}
	r := newReadCursor(buf)
	b, err := r.readSpan8("test")
	require.NoError(t, err)
	require.Equal(t, "foo", string(b))

	buf32 := []byte{0x00, 0x00, 0x00, 0x02, 'h', 'i'}
	r32 := newReadCursor(buf32)
	b32, err := r32.readSpan32("test")
	require.NoError(t, err)
	require.Equal(t, "hi", string(b32))
}

func TestCursorPatchUint32(t *testing.T) {
	buf := make([]byte, 8)
	w := newWriteCursor(buf)
	require.NoError(t, w.writeUint32("test", 0))
	require.NoError(t, w.writeUint32("test", 0xffffffff))
	w.patchUint32(0, 42)
	require.Equal(t, []byte{0, 0, 0, 42}, buf[:4])
}
