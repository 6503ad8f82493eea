package toml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Set_MapDefaultsToTable(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Set("server", map[string]any{"host": "localhost"}))

	item, found := doc.Get("server", nil)
	require.True(t, found)
	table, ok := item.(*TableItem)
	require.True(t, ok, "map should coerce to a Table by default, got %T", item)
	assert.True(t, table.Explicit)
	assert.Equal(t, "server", table.Path.Render())
	assert.Equal(t, "localhost", table.Get("host").(*StringItem).Value)
}

func TestDocument_Set_MapReplacingInlineStaysInline(t *testing.T) {
	doc, err := Parse("owner = { name = \"Tom\" }\n")
	require.NoError(t, err)

	require.NoError(t, doc.Set("owner", map[string]any{"name": "Ada"}))

	item, found := doc.Get("owner", nil)
	require.True(t, found)
	inline, ok := item.(*InlineTableItem)
	require.True(t, ok, "replacing an inline value should stay inline, got %T", item)
	assert.Equal(t, "Ada", inline.Get("name").(*StringItem).Value)
}

func TestDocument_Unwrap(t *testing.T) {
	src := "title = \"demo\"\n\n[owner]\nname = \"Tom\"\nports = [1, 2, 3]\n"
	doc, err := Parse(src)
	require.NoError(t, err)

	out := doc.Unwrap().(map[string]any)
	assert.Equal(t, "demo", out["title"])
	owner := out["owner"].(map[string]any)
	assert.Equal(t, "Tom", owner["name"])
	assert.Equal(t, []any{int64(1), int64(2), int64(3)}, owner["ports"])
}
