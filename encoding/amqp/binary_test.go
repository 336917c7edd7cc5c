package amqp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, build func(tr *Tree)) *Tree {
	t.Helper()
	tr := NewTree(8)
	build(tr)
	buf, err := tr.Encode(nil)
	require.NoError(t, err)

	out := NewTree(8)
	n, err := out.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
	return out
}

func TestRoundTripPrimitiveBoundaryValues(t *testing.T) {
	cases := []struct {
		name  string
		build func(tr *Tree) (uint32, error)
		check func(t *testing.T, a Atom)
	}{
		{"uint-min", func(tr *Tree) (uint32, error) { return tr.PutUint(0) }, func(t *testing.T, a Atom) { require.Equal(t, uint64(0), a.Uint) }},
		{"uint-max", func(tr *Tree) (uint32, error) { return tr.PutUint(math.MaxUint32) }, func(t *testing.T, a Atom) { require.Equal(t, uint64(math.MaxUint32), a.Uint) }},
		{"int-min", func(tr *Tree) (uint32, error) { return tr.PutInt(math.MinInt32) }, func(t *testing.T, a Atom) { require.Equal(t, int64(math.MinInt32), a.Int) }},
		{"int-neg-one", func(tr *Tree) (uint32, error) { return tr.PutInt(-1) }, func(t *testing.T, a Atom) { require.Equal(t, int64(-1), a.Int) }},
		{"int-max", func(tr *Tree) (uint32, error) { return tr.PutInt(math.MaxInt32) }, func(t *testing.T, a Atom) { require.Equal(t, int64(math.MaxInt32), a.Int) }},
		{"ulong-max", func(tr *Tree) (uint32, error) { return tr.PutULong(math.MaxUint64) }, func(t *testing.T, a Atom) { require.Equal(t, uint64(math.MaxUint64), a.Uint) }},
		{"long-min", func(tr *Tree) (uint32, error) { return tr.PutLong(math.MinInt64) }, func(t *testing.T, a Atom) { require.Equal(t, int64(math.MinInt64), a.Int) }},
		{"float-subnormal", func(tr *Tree) (uint32, error) { return tr.PutFloat(math.SmallestNonzeroFloat32) }, func(t *testing.T, a Atom) { require.Equal(t, float32(math.SmallestNonzeroFloat32), a.Float32) }},
		{"double-nan", func(tr *Tree) (uint32, error) { return tr.PutDouble(math.NaN()) }, func(t *testing.T, a Atom) { require.True(t, math.IsNaN(a.Float64)) }},
		{"string-empty", func(tr *Tree) (uint32, error) { return tr.PutString("") }, func(t *testing.T, a Atom) { require.Equal(t, "", a.String()) }},
		{"binary-empty", func(tr *Tree) (uint32, error) { return tr.PutBinary(nil) }, func(t *testing.T, a Atom) { require.Empty(t, a.Bytes) }},
		{"binary-255", func(tr *Tree) (uint32, error) { return tr.PutBinary(make([]byte, 255)) }, func(t *testing.T, a Atom) { require.Len(t, a.Bytes, 255) }},
		{"binary-256", func(tr *Tree) (uint32, error) { return tr.PutBinary(make([]byte, 256)) }, func(t *testing.T, a Atom) { require.Len(t, a.Bytes, 256) }},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			out := roundTrip(t, func(tr *Tree) {
				_, err := tt.build(tr)
				require.NoError(t, err)
			})
			out.Rewind()
			require.True(t, out.Next())
			a, ok := out.Current()
			require.True(t, ok)
			tt.check(t, a)
		})
	}
}

func TestRoundTripNestedComposite(t *testing.T) {
	out := roundTrip(t, func(tr *Tree) {
		depth := 8
		for i := 0; i < depth; i++ {
			_, err := tr.PutList()
			require.NoError(t, err)
			require.True(t, tr.Enter())
		}
		_, err := tr.PutInt(int32(depth))
		require.NoError(t, err)
	})

	out.Rewind()
	for i := 0; i < 8; i++ {
		require.True(t, out.Next())
		tag, ok := out.CurrentTag()
		require.True(t, ok)
		require.Equal(t, List, tag)
		require.True(t, out.Enter())
	}
	require.True(t, out.Next())
	a, _ := out.Current()
	require.Equal(t, int64(8), a.Int)
}

func TestRoundTripDescribedDescriptorItselfDescribed(t *testing.T) {
	out := roundTrip(t, func(tr *Tree) {
		_, err := tr.PutDescribed()
		require.NoError(t, err)
		require.True(t, tr.Enter())

		_, err = tr.PutDescribed()
		require.NoError(t, err)
		require.True(t, tr.Enter())
		_, err = tr.PutSymbol("urn:inner-descriptor")
		require.NoError(t, err)
		_, err = tr.PutInt(1)
		require.NoError(t, err)
		ok, err := tr.Exit()
		require.NoError(t, err)
		require.True(t, ok)

		_, err = tr.PutString("outer value")
		require.NoError(t, err)
	})

	out.Rewind()
	require.True(t, out.Next())
	tag, _ := out.CurrentTag()
	require.Equal(t, Described, tag)
	require.True(t, out.Enter())

	require.True(t, out.Next())
	tag, _ = out.CurrentTag()
	require.Equal(t, Described, tag)
	require.True(t, out.Enter())
	require.True(t, out.Next())
	a, _ := out.Current()
	require.Equal(t, "urn:inner-descriptor", a.String())
	require.True(t, out.Next())
	a, _ = out.Current()
	require.Equal(t, int64(1), a.Int)
	ok, err := out.Exit()
	require.NoError(t, err)
	require.True(t, ok)

	require.True(t, out.Next())
	a, _ = out.Current()
	require.Equal(t, "outer value", a.String())
}

func TestCompositeSizeBoundaryShortAndLongForm(t *testing.T) {
	build := func(n int) *Tree {
		tr := NewTree(512)
		_, err := tr.PutList()
		require.NoError(t, err)
		require.True(t, tr.Enter())
		for i := 0; i < n; i++ {
			_, err := tr.PutBool(false)
			require.NoError(t, err)
		}
		_, err = tr.Exit()
		require.NoError(t, err)
		return tr
	}

	small := build(255)
	buf255, err := small.Encode(nil)
	require.NoError(t, err)

	big := build(256)
	buf256, err := big.Encode(nil)
	require.NoError(t, err)

	// The encoder always emits long-form lists, so both buffers carry
	// the codeList32 constructor; what differs is the decoder's
	// acceptance of a short-form peer encoding, exercised directly here.
	shortForm := []byte{codeList8, 0xFF, 0xFF}
	for i := 0; i < 255; i++ {
		shortForm = append(shortForm, codeBoolFalse)
	}

	decoded := NewTree(512)
	_, err = decoded.Decode(shortForm)
	require.NoError(t, err)
	decoded.Rewind()
	require.True(t, decoded.Next())
	require.Equal(t, uint32(255), decoded.CurrentChildren())

	for _, buf := range [][]byte{buf255, buf256} {
		out := NewTree(512)
		_, err := out.Decode(buf)
		require.NoError(t, err)
		out.Rewind()
		require.True(t, out.Next())
		tag, _ := out.CurrentTag()
		require.Equal(t, List, tag)
	}
}

func TestEncodeEmptyListUsesShortcutByte(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutList()
	require.NoError(t, err)
	buf, err := tr.Encode(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{codeList0}, buf)

	out := NewTree(4)
	_, err = out.Decode(buf)
	require.NoError(t, err)
	out.Rewind()
	require.True(t, out.Next())
	tag, _ := out.CurrentTag()
	require.Equal(t, List, tag)
	require.Equal(t, uint32(0), out.CurrentChildren())
}

func TestInternRebaseAfterGrowth(t *testing.T) {
	tr := NewTree(16)
	var refs []string
	for i := 0; i < 10000; i++ {
		s := randishString(i)
		_, err := tr.PutBinary([]byte(s))
		require.NoError(t, err)
		if i%500 == 0 {
			_, err := tr.PutBinary(make([]byte, 4096))
			require.NoError(t, err)
		}
		refs = append(refs, s)
	}

	tr.Rewind()
	i := 0
	for tr.Next() {
		a, _ := tr.Current()
		if len(a.Bytes) == 4096 {
			continue
		}
		require.Equal(t, refs[i], string(a.Bytes))
		i++
	}
}

func randishString(seed int) string {
	b := make([]byte, 1+(seed%37))
	for i := range b {
		b[i] = byte('a' + (seed+i)%26)
	}
	return string(b)
}

func TestDecodeErrorRollsBackFailedTopLevelValue(t *testing.T) {
	src := NewTree(4)
	_, err := src.PutInt(1)
	require.NoError(t, err)
	buf, err := src.Encode(nil)
	require.NoError(t, err)
	// Append a truncated second value (codeInt constructor with no payload).
	truncated := append(buf, codeInt)

	tr := NewTree(4)
	n, err := tr.DecodeAll(truncated)
	require.Error(t, err)
	require.Equal(t, 1, n)

	afterFirstOnly := NewTree(4)
	m, err := afterFirstOnly.DecodeAll(buf)
	require.NoError(t, err)
	require.Equal(t, 1, m)
	require.Equal(t, len(afterFirstOnly.nodes), len(tr.nodes), "failed second value must not leave partial nodes behind")
}

// A lone descriptor-prefix byte descends into a composite node (parent
// != 0) before the inner decodeValue underflows; the rollback must
// restore t.parent itself before using it to patch down/children, not
// just the arena length, or it indexes a node that the arena truncation
// already discarded.
func TestDecodeErrorRollsBackNestedDescriptorUnderflow(t *testing.T) {
	tr := NewTree(4)
	n, err := tr.Decode([]byte{codeDescriptor})
	require.Error(t, err)
	require.Equal(t, 0, tr.Size())
	require.Equal(t, uint32(0), tr.parent)
	_ = n

	// The tree must still be usable afterward.
	_, err = tr.PutInt(5)
	require.NoError(t, err)
	tr.Rewind()
	require.True(t, tr.Next())
	a, _ := tr.Current()
	require.Equal(t, int64(5), a.Int)
}

// A truncated long-form list header (size/count present, body absent)
// exercises the same rollback path one level deeper.
func TestDecodeErrorRollsBackTruncatedListBody(t *testing.T) {
	tr := NewTree(4)
	buf := []byte{codeList32, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x01}
	_, err := tr.Decode(buf)
	require.Error(t, err)
	require.Equal(t, 0, tr.Size())
	require.Equal(t, uint32(0), tr.parent)

	_, err = tr.PutInt(9)
	require.NoError(t, err)
	tr.Rewind()
	require.True(t, tr.Next())
	a, _ := tr.Current()
	require.Equal(t, int64(9), a.Int)
}
