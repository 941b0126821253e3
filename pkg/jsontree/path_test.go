package jsontree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microfin-hq/microfin/pkg/jsontree"
)

func TestPath_Child(t *testing.T) {
	t.Parallel()

	base := make(jsontree.Path, 1, 4)
	base[0] = "a"

	left := base.Child("b")
	right := base.Child("c")

	assert.Equal(t, jsontree.Path{"a", "b"}, left)
	assert.Equal(t, jsontree.Path{"a", "c"}, right)
	assert.Equal(t, jsontree.Path{"a"}, base)
}

func TestPath_Pointer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path jsontree.Path
		ptr  string
	}{
		{jsontree.Path{}, ""},
		{jsontree.Path{"a", "0"}, "/a/0"},
		{jsontree.Path{"a/b", "m~n"}, "/a~1b/m~0n"},
		{jsontree.Path{""}, "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.ptr, tt.path.Pointer())
		parsed, err := jsontree.ParsePointer(tt.ptr)
		require.NoError(t, err)
		assert.True(t, tt.path.Equal(parsed), "%q round trip", tt.ptr)
	}

	_, err := jsontree.ParsePointer("no-slash")
	assert.ErrorIs(t, err, jsontree.ErrPathNotFound)
}

func TestPath_Helpers(t *testing.T) {
	t.Parallel()

	p := jsontree.Path{"a", "b"}
	assert.Equal(t, "b", p.Last())
	assert.Equal(t, "", jsontree.Path{}.Last())
	assert.True(t, p.HasPrefix(jsontree.Path{"a"}))
	assert.True(t, p.HasPrefix(nil))
	assert.False(t, p.HasPrefix(jsontree.Path{"b"}))
	assert.False(t, jsontree.Path{"a"}.HasPrefix(p))
	assert.Equal(t, jsontree.Path{"x", "a", "b"}, jsontree.Path{"x"}.Join(p))
	assert.Equal(t, "/a/b", p.String())
	assert.Equal(t, "/", jsontree.Path{}.String())
}
