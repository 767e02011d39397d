package QE

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextFieldValueQualification(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetTableRow("shop", "u", Row{"id": int64(1), "name": "ann"})
	ctx.SetTableRow("shop", "p", Row{"id": int64(7), "title": "hello"})

	v, err := ctx.FieldValue("name", "", "")
	require.NoError(t, err)
	assert.Equal(t, "ann", v)

	v, err = ctx.FieldValue("id", "p", "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)

	v, err = ctx.FieldValue("id", "u", "shop")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestContextAmbiguousField(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetTableRow("shop", "a", Row{"id": int64(1)})
	ctx.SetTableRow("shop", "b", Row{"id": int64(2)})

	_, err := ctx.FieldValue("id", "", "")
	var amb *AmbiguousFieldError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{"shop.a", "shop.b"}, amb.Candidates)
	assert.Contains(t, err.Error(), "shop.a")
	assert.Contains(t, err.Error(), "shop.b")

	// The same table name bound in two databases is ambiguous without the
	// database qualifier.
	ctx = NewContext(nil)
	ctx.SetTableRow("one", "t", Row{"x": int64(1)})
	ctx.SetTableRow("two", "t", Row{"x": int64(2)})
	_, err = ctx.FieldValue("x", "t", "")
	require.ErrorAs(t, err, &amb)

	v, err := ctx.FieldValue("x", "t", "two")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestContextUnknownField(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetTableRow("shop", "u", Row{"id": int64(1)})

	for _, tc := range []struct{ field, table, db string }{
		{"missing", "", ""},
		{"id", "other", ""},
		{"id", "u", "elsewhere"},
	} {
		_, err := ctx.FieldValue(tc.field, tc.table, tc.db)
		var unknown *UnknownFieldError
		require.ErrorAs(t, err, &unknown, tc)
		assert.Equal(t, []string{"shop.u.id"}, unknown.Known)
	}
}

func TestContextRebindReplacesRow(t *testing.T) {
	ctx := NewContext(nil)
	ctx.SetTableRow("db", "t", Row{"v": int64(1)})
	ctx.SetTableRow("db", "t", Row{"v": int64(2)})

	v, err := ctx.FieldValue("v", "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestContextCloneIsolation(t *testing.T) {
	base := NewContext([]interface{}{"a", "b"})
	require.NoError(t, base.AddTableAlias("u", "users"))
	base.SetTableRow("db", "u", Row{"id": int64(1)})

	clone := base.Clone()
	clone.SetTableRow("db", "p", Row{"pid": int64(9)})
	require.NoError(t, clone.AddTableAlias("p", "posts"))
	first, ok := clone.ExtractOneBoundParam()
	require.True(t, ok)
	assert.Equal(t, "a", first)

	_, err := base.FieldValue("pid", "", "")
	assert.Error(t, err)
	_, ok = base.ResolveAlias("p")
	assert.False(t, ok)

	v, ok := base.ExtractOneBoundParam()
	require.True(t, ok)
	assert.Equal(t, "a", v, "clone must not consume the parent's parameters")
}

func TestContextBoundParamsFIFO(t *testing.T) {
	ctx := NewContext([]interface{}{1, "two", nil})
	for _, want := range []interface{}{1, "two", nil} {
		v, ok := ctx.ExtractOneBoundParam()
		require.True(t, ok)
		assert.Equal(t, want, v)
	}
	_, ok := ctx.ExtractOneBoundParam()
	assert.False(t, ok)
}

func TestContextDuplicateAlias(t *testing.T) {
	ctx := NewContext(nil)
	require.NoError(t, ctx.AddTableAlias("t", "t"))
	err := ctx.AddTableAlias("t", "other")
	var dup *NonUniqueAliasError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "t", dup.Alias)

	table, ok := ctx.ResolveAlias("t")
	assert.True(t, ok)
	assert.Equal(t, "t", table)
}
