package strpool_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lalang-run/lalang/internal/strpool"
)

func TestInternIsStableAndShared(t *testing.T) {
	p := strpool.New()
	a := p.Intern("foo")
	b := p.Intern("bar")
	c := p.Intern("foo")
	require.Equal(t, a, c, "re-interning the same name returns the same index")
	require.NotEqual(t, a, b)
	require.Equal(t, "foo", p.Name(a))
	require.Equal(t, "bar", p.Name(b))
}

func TestInternByteUsesCache(t *testing.T) {
	p := strpool.New()
	a := p.InternByte('+')
	b := p.Intern("+")
	require.Equal(t, a, b)
}

func TestSmallIntRange(t *testing.T) {
	require.True(t, strpool.SmallInt(-100))
	require.True(t, strpool.SmallInt(100))
	require.True(t, strpool.SmallInt(0))
	require.False(t, strpool.SmallInt(-101))
	require.False(t, strpool.SmallInt(101))
}
