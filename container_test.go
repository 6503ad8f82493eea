package toml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainer_AppendAndGet(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Append("name", NewString("Alice")))
	require.NoError(t, c.Append("age", NewInteger(30)))

	assert.True(t, c.Contains("name"))
	assert.Equal(t, []string{"name", "age"}, c.Keys())

	item := c.Get("name")
	require.NotNil(t, item)
	s, ok := item.(*StringItem)
	require.True(t, ok)
	assert.Equal(t, "Alice", s.Value)
}

func TestContainer_AppendDuplicateErrors(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Append("a", NewInteger(1)))
	err := c.Append("a", NewInteger(2))
	assert.ErrorIs(t, err, ErrKeyAlreadyPresent)
}

func TestContainer_RemoveLeavesTombstone(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Append("a", NewInteger(1)))
	require.NoError(t, c.Append("b", NewInteger(2)))

	require.NoError(t, c.Remove("a"))
	assert.False(t, c.Contains("a"))
	assert.Equal(t, 2, c.Len())
	assert.IsType(t, &NullItem{}, c.at(0).item)
}

func TestContainer_Replace_PreservesTrivia(t *testing.T) {
	c := newContainer()
	old := NewInteger(1)
	old.trivia = Trivia{Indent: "  ", Comment: "# keep", Trail: "\n"}
	require.NoError(t, c.Append("a", old))

	require.NoError(t, c.Replace("a", NewInteger(2)))
	item := c.Get("a").(*IntegerItem)
	assert.Equal(t, int64(2), item.Value)
	assert.Equal(t, "# keep", item.Trivia().Comment)
}

func TestContainer_RenamePreservesPosition(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Append("a", NewInteger(1)))
	require.NoError(t, c.Append("b", NewInteger(2)))

	require.NoError(t, c.Rename("a", "z"))
	assert.False(t, c.Contains("a"))
	assert.Equal(t, []string{"z", "b"}, c.Keys())
}

func TestContainer_DottedEntryIsOneSlot(t *testing.T) {
	doc, err := Parse("a.b.c = 1\n")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.root.Len())
	assert.Equal(t, int64(1), doc.root.GetDotted([]string{"a", "b", "c"}).(*IntegerItem).Value)
}

func TestContainer_CloneIsIndependent(t *testing.T) {
	c := newContainer()
	require.NoError(t, c.Append("a", NewInteger(1)))
	clone := c.clone()
	require.NoError(t, clone.Replace("a", NewInteger(9)))
	assert.Equal(t, int64(1), c.Get("a").(*IntegerItem).Value)
	assert.Equal(t, int64(9), clone.Get("a").(*IntegerItem).Value)
}
