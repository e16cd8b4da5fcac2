package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternReturnsEqualContent(t *testing.T) {
	c := NewCache(8)
	a := c.Intern([]byte("hello"))
	b := c.Intern([]byte("hello"))
	require.Equal(t, a, b)
}

func TestInternCopiesInput(t *testing.T) {
	c := NewCache(8)
	src := []byte("hello")
	got := c.Intern(src)
	src[0] = 'x'
	require.Equal(t, byte('h'), got[0])
}

func TestContains(t *testing.T) {
	c := NewCache(8)
	require.False(t, c.Contains([]byte("a")))
	c.Intern([]byte("a"))
	require.True(t, c.Contains([]byte("a")))
}

func TestNewCacheZeroSizeUsesDefault(t *testing.T) {
	c := NewCache(0)
	require.NotNil(t, c)
}
