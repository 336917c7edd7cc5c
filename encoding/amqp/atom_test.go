package amqp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomConstructors(t *testing.T) {
	require.Equal(t, Atom{Tag: Null}, AtomNull())
	require.Equal(t, Atom{Tag: Bool, Bool: true}, AtomBool(true))
	require.Equal(t, Atom{Tag: Uint, Uint: 7}, AtomUint(7))
	require.Equal(t, Atom{Tag: Int, Int: -7}, AtomInt(-7))
	require.Equal(t, Atom{Tag: ULong, Uint: 7}, AtomULong(7))
	require.Equal(t, Atom{Tag: Long, Int: -7}, AtomLong(-7))
	require.Equal(t, Atom{Tag: Char, Char: 'x'}, AtomChar('x'))
	require.Equal(t, Atom{Tag: Timestamp, Tstamp: 123}, AtomTimestamp(123))
	require.Equal(t, Atom{Tag: Float, Float32: 1.5}, AtomFloat(1.5))
	require.Equal(t, Atom{Tag: Double, Float64: 2.5}, AtomDouble(2.5))
	require.Equal(t, Atom{Tag: Binary, Bytes: []byte("x")}, AtomBinary([]byte("x")))
	require.Equal(t, Atom{Tag: String, Bytes: []byte("x")}, AtomString("x"))
	require.Equal(t, Atom{Tag: Symbol, Bytes: []byte("x")}, AtomSymbol("x"))
	require.Equal(t, Atom{Tag: Array, ElementType: Int}, AtomArray(Int))
}

func TestAtomStringView(t *testing.T) {
	require.Equal(t, "hello", AtomString("hello").String())
	require.Equal(t, "world", AtomSymbol("world").String())
}
