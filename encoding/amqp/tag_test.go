package amqp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTagString(t *testing.T) {
	require.Equal(t, "null", Null.String())
	require.Equal(t, "ulong", ULong.String())
	require.Equal(t, "described", Described.String())
	require.Equal(t, "unknown", Tag(255).String())
}

func TestTagIsComposite(t *testing.T) {
	for _, tag := range []Tag{Described, Array, List, Map} {
		require.True(t, tag.isComposite(), tag)
	}
	for _, tag := range []Tag{Null, Bool, Uint, Binary, String} {
		require.False(t, tag.isComposite(), tag)
	}
}

func TestTagForCode(t *testing.T) {
	tests := []struct {
		code byte
		want Tag
	}{
		{codeNull, Null},
		{codeUint0, Uint},
		{codeSmallUint, Uint},
		{codeUint, Uint},
		{codeVbin8, Binary},
		{codeVbin32, Binary},
		{codeStr8, String},
		{codeSym32, Symbol},
		{codeList0, List},
		{codeArray32, Array},
	}
	for _, tt := range tests {
		got, ok := tagForCode(tt.code)
		require.True(t, ok)
		require.Equal(t, tt.want, got)
	}
	_, ok := tagForCode(0xff)
	require.False(t, ok)
}

func TestIsShortComposite(t *testing.T) {
	require.True(t, isShortComposite(codeList8))
	require.True(t, isShortComposite(codeMap8))
	require.True(t, isShortComposite(codeArray8))
	require.False(t, isShortComposite(codeList32))
}

func TestFixedWidth(t *testing.T) {
	require.Equal(t, 0, fixedWidth(codeNull))
	require.Equal(t, 1, fixedWidth(codeUbyte))
	require.Equal(t, 2, fixedWidth(codeShort))
	require.Equal(t, 4, fixedWidth(codeUint))
	require.Equal(t, 8, fixedWidth(codeLong))
	require.Equal(t, 16, fixedWidth(codeUUID))
	require.Equal(t, -1, fixedWidth(codeVbin8))
}
