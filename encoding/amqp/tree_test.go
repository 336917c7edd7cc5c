package amqp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreePutPrimitivesAndNavigate(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutUint(7)
	require.NoError(t, err)
	_, err = tr.PutString("hi")
	require.NoError(t, err)

	tr.Rewind()
	require.True(t, tr.Next())
	a, ok := tr.Current()
	require.True(t, ok)
	require.Equal(t, Atom{Tag: Uint, Uint: 7}, a)

	require.True(t, tr.Next())
	a, ok = tr.Current()
	require.True(t, ok)
	require.Equal(t, "hi", a.String())

	require.False(t, tr.Next())
}

func TestTreeListRoundTrip(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutList()
	require.NoError(t, err)
	require.True(t, tr.Enter())
	_, err = tr.PutInt(1)
	require.NoError(t, err)
	_, err = tr.PutInt(2)
	require.NoError(t, err)
	ok, err := tr.Exit()
	require.NoError(t, err)
	require.True(t, ok)

	tr.Rewind()
	require.True(t, tr.Next())
	tag, ok := tr.CurrentTag()
	require.True(t, ok)
	require.Equal(t, List, tag)
	require.Equal(t, uint32(2), tr.CurrentChildren())

	require.True(t, tr.Enter())
	require.True(t, tr.Next())
	a, _ := tr.Current()
	require.Equal(t, int64(1), a.Int)
	require.True(t, tr.Next())
	a, _ = tr.Current()
	require.Equal(t, int64(2), a.Int)
}

func TestTreeMapOddChildrenRejectedOnExit(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutMap()
	require.NoError(t, err)
	require.True(t, tr.Enter())
	_, err = tr.PutSymbol("key")
	require.NoError(t, err)
	_, err = tr.Exit()
	require.Error(t, err)
	require.True(t, IsKind(err, Err))
}

func TestTreeDescribedRequiresExactlyTwoChildren(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutDescribed()
	require.NoError(t, err)
	require.True(t, tr.Enter())
	_, err = tr.PutSymbol("urn:x")
	require.NoError(t, err)
	_, err = tr.Exit()
	require.Error(t, err)

	_, err = tr.PutInt(1)
	require.NoError(t, err)
	ok, err := tr.Exit()
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTreeArrayElementTypeEnforced(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutArray(false, Int)
	require.NoError(t, err)
	require.True(t, tr.Enter())
	_, err = tr.PutInt(1)
	require.NoError(t, err)
	_, err = tr.PutString("wrong type")
	require.Error(t, err)
	require.True(t, IsKind(err, ArgErr))
}

func TestTreeArrayDescribedFirstChildExemptFromElementType(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutArray(true, Int)
	require.NoError(t, err)
	require.True(t, tr.Enter())
	_, err = tr.PutSymbol("urn:descriptor") // descriptor, any tag
	require.NoError(t, err)
	_, err = tr.PutInt(42)
	require.NoError(t, err)
	_, err = tr.PutString("nope")
	require.Error(t, err)
}

func TestTreeNarrowWidenRewind(t *testing.T) {
	tr := NewTree(4)
	_, err := tr.PutList()
	require.NoError(t, err)
	require.True(t, tr.Enter())
	_, err = tr.PutInt(1)
	require.NoError(t, err)
	tr.Narrow()
	_, err = tr.PutInt(2)
	require.NoError(t, err)

	tr.Rewind()
	tag, ok := tr.CurrentTag()
	require.True(t, ok, "rewind returns to the position saved by Narrow")
	require.Equal(t, Int, tag)

	tr.Widen()
	_, err = tr.Exit()
	require.NoError(t, err)
	tr.Rewind()
	_, ok = tr.CurrentTag()
	require.False(t, ok)
}

func TestTreePointRestore(t *testing.T) {
	tr := NewTree(4)
	_, _ = tr.PutInt(1)
	_, _ = tr.PutInt(2)
	tr.Rewind()
	tr.Next()
	p := tr.Point()
	tr.Next()
	a, _ := tr.Current()
	require.Equal(t, int64(2), a.Int)

	tr.Restore(p)
	a, _ = tr.Current()
	require.Equal(t, int64(1), a.Int)
}

func TestTreeRestoreAfterClearFallsBackToParent(t *testing.T) {
	tr := NewTree(4)
	_, _ = tr.PutInt(1)
	tr.Rewind()
	tr.Next()
	p := tr.Point()

	tr.Clear()
	tr.Restore(p)
	_, ok := tr.CurrentTag()
	require.False(t, ok)
}

func TestTreeAppendDeepCopiesStructure(t *testing.T) {
	src := NewTree(4)
	_, err := src.PutDescribed()
	require.NoError(t, err)
	require.True(t, src.Enter())
	_, err = src.PutSymbol("urn:thing")
	require.NoError(t, err)
	_, err = src.PutArray(false, Int)
	require.NoError(t, err)
	require.True(t, src.Enter())
	_, err = src.PutInt(1)
	require.NoError(t, err)
	_, err = src.PutInt(2)
	require.NoError(t, err)
	_, err = src.Exit()
	require.NoError(t, err)
	_, err = src.Exit()
	require.NoError(t, err)

	dst := NewTree(4)
	require.NoError(t, dst.Append(src))

	dst.Rewind()
	require.True(t, dst.Next())
	tag, _ := dst.CurrentTag()
	require.Equal(t, Described, tag)
	require.True(t, dst.Enter())
	require.True(t, dst.Next())
	a, _ := dst.Current()
	require.Equal(t, "urn:thing", a.String())
	require.True(t, dst.Next())
	tag, _ = dst.CurrentTag()
	require.Equal(t, Array, tag)
}

func TestTreeAppendNLimitsTopLevelItems(t *testing.T) {
	src := NewTree(4)
	_, _ = src.PutInt(1)
	_, _ = src.PutInt(2)
	_, _ = src.PutInt(3)

	dst := NewTree(4)
	require.NoError(t, dst.AppendN(src, 2))
	require.Equal(t, 2, dst.Size())
}

func TestTreeClearReusesArena(t *testing.T) {
	tr := NewTree(4)
	_, _ = tr.PutInt(1)
	tr.Clear()
	require.Equal(t, 0, tr.Size())
	_, err := tr.PutInt(2)
	require.NoError(t, err)
	tr.Rewind()
	tr.Next()
	a, _ := tr.Current()
	require.Equal(t, int64(2), a.Int)
}
