package QP

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewParseCache(2)
	a := &NullLiteral{}
	b := &NullLiteral{}
	c.Set("a", a)
	c.Set("b", b)

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	c.Set("c", &NullLiteral{})
	assert.Equal(t, 2, c.Len())
	_, ok = c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)

	hits, misses := c.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestParserWithCache(t *testing.T) {
	p := NewParser().WithCache(NewParseCache(8))
	first, err := p.ParseExpression("a + ?")
	require.NoError(t, err)
	second, err := p.ParseExpression("a + ?")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = p.ParseExpression("a +")
	assert.Error(t, err)
	assert.Equal(t, 1, p.Cache().Len())

	assert.Nil(t, NewParser().Cache())
}
