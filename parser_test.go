package toml

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleKeyValue(t *testing.T) {
	doc, err := Parse("key = \"value\"\n")
	require.NoError(t, err)
	item, found := doc.Get("key", nil)
	require.True(t, found)
	s, ok := item.(*StringItem)
	require.True(t, ok)
	assert.Equal(t, "value", s.Value)
}

func TestDocument_Get_MissingReturnsDefault(t *testing.T) {
	doc, err := Parse("key = \"value\"\n")
	require.NoError(t, err)
	item, found := doc.Get("absent", "fallback")
	assert.False(t, found)
	assert.Equal(t, "fallback", item.(*StringItem).Value)
}

func TestParse_RoundTripPreservesStyle(t *testing.T) {
	src := "# comment\nname = \"Tom\"   # trailing\n\n[owner]\ndob = 1979-05-27T07:32:00Z\n"
	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, doc.String())
}

func TestParse_ArrayOfTables(t *testing.T) {
	src := `[[products]]
name = "Hammer"
sku = 738594937

[[products]]
name = "Nails"
sku = 284758393
count = 100
`
	doc, err := Parse(src)
	require.NoError(t, err)
	prod := doc.Root().Get("products").(*AoTItem)
	require.Len(t, prod.Entries, 2)
	name := prod.Entries[1].Get("name").(*StringItem)
	assert.Equal(t, "Nails", name.Value)
	assert.Equal(t, src, doc.String())
}

func TestParse_OutOfOrderTableUnderAoT(t *testing.T) {
	src := `[[fruits]]
name = "apple"

[fruits.physical]
color = "red"
`
	doc, err := Parse(src)
	require.NoError(t, err)
	fruits := doc.Root().Get("fruits").(*AoTItem)
	physical := fruits.Entries[0].Get("physical").(*TableItem)
	assert.Equal(t, "red", physical.Get("color").(*StringItem).Value)
	assert.Equal(t, src, doc.String())
}

func TestParse_InlineTable(t *testing.T) {
	src := `owner = { name = "Tom", dob = 1979-05-27T07:32:00Z }`
	doc, err := Parse(src)
	require.NoError(t, err)
	item, found := doc.Get("owner", nil)
	require.True(t, found)
	owner := item.(*InlineTableItem)
	assert.Equal(t, "Tom", owner.Get("name").(*StringItem).Value)
	assert.Equal(t, src, doc.String())
}

func TestParse_InlineTableDottedKeyRoundTrips(t *testing.T) {
	src := `point = { x.a = 1, y = 2 }`
	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, doc.String())
}

func TestParse_QuotedKeys(t *testing.T) {
	src := "\"a.b\" = 1\na.c = 2\n"
	doc, err := Parse(src)
	require.NoError(t, err)
	ab, found := doc.Get(`"a.b"`, nil)
	require.True(t, found)
	assert.Equal(t, int64(1), ab.(*IntegerItem).Value)
	ac, found := doc.Get("a.c", nil)
	require.True(t, found)
	assert.Equal(t, int64(2), ac.(*IntegerItem).Value)
}

func TestParse_SpecialFloatsAndInts(t *testing.T) {
	src := "f1 = +inf\nf2 = -inf\nf3 = nan\ni1 = 1_000\nhex = 0xDEADBEEF\noct = 0o755\nbin = 0b1010\n"
	doc, err := Parse(src)
	require.NoError(t, err)

	f1item, _ := doc.Get("f1", nil)
	f1 := f1item.(*FloatItem)
	v1, err := f1.Float64()
	require.NoError(t, err)
	assert.True(t, math.IsInf(v1, 1))

	i1item, _ := doc.Get("i1", nil)
	i1 := i1item.(*IntegerItem)
	assert.Equal(t, int64(1000), i1.Value)

	hexItem, _ := doc.Get("hex", nil)
	hex := hexItem.(*IntegerItem)
	assert.Equal(t, int64(0xDEADBEEF), hex.Value)
}

func TestParse_MultilineArrayTrailingComma(t *testing.T) {
	src := "ports = [\n  8001,\n  8002,\n]\n"
	doc, err := Parse(src)
	require.NoError(t, err)
	item, found := doc.Get("ports", nil)
	require.True(t, found)
	arr := item.(*ArrayItem)
	vals := arr.Values()
	require.Len(t, vals, 2)
	assert.Equal(t, int64(8001), vals[0].(*IntegerItem).Value)
	assert.Equal(t, src, doc.String())
}

func TestParse_DuplicateKeyErrors(t *testing.T) {
	_, err := Parse("a = 1\na = 2\n")
	assert.ErrorIs(t, err, ErrKeyAlreadyPresent)
}

func TestParse_DuplicateExplicitTableErrors(t *testing.T) {
	_, err := Parse("[a]\nx = 1\n[a]\ny = 2\n")
	assert.Error(t, err)
}

func TestParse_RedeclareArrayOfTablesAsTableErrors(t *testing.T) {
	_, err := Parse("[[a]]\nx = 1\n[a]\ny = 2\n")
	assert.Error(t, err)
}

func TestParse_OutOfOrderTableReopenAfterSiblingErrors(t *testing.T) {
	_, err := Parse("[a.a]\nk = 1\n[a.b]\n[a.a.c]\n")
	assert.Error(t, err)
}

func TestParse_MixedArrayTypesErrorsByDefault(t *testing.T) {
	_, err := Parse("mixed = [1, \"two\"]\n")
	assert.ErrorIs(t, err, ErrMixedArrayTypes)
}

func TestParse_AllowMixedArraysOption(t *testing.T) {
	doc, err := ParseWithOptions("mixed = [1, \"two\"]\n", ParseOptions{AllowMixedArrays: true})
	require.NoError(t, err)
	item, found := doc.Get("mixed", nil)
	require.True(t, found)
	assert.False(t, item.(*ArrayItem).IsHomogeneous())
}

func TestParse_MultilineBasicString(t *testing.T) {
	src := "desc = \"\"\"first\nsecond\nthird\"\"\""
	doc, err := Parse(src)
	require.NoError(t, err)
	item, found := doc.Get("desc", nil)
	require.True(t, found)
	s := item.(*StringItem)
	assert.Equal(t, "first\nsecond\nthird", s.Value)
}
