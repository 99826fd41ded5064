package mapping

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	yaml := `
types:
  - type: warehouse.Order
    121:
      OrderNo: Number
      Buyer: Customer
    aliases:
      Customer: CustomerName
      Lines: [OrderLines, Items]
    ignore:
      - Audit
`

	mf, err := Parse([]byte(yaml))
	require.NoError(t, err)
	require.NotNil(t, mf)

	assert.Equal(t, "1", mf.Version)
	require.Len(t, mf.Types, 1)

	tm := mf.Types[0]
	assert.Equal(t, "warehouse.Order", tm.Type)
	assert.Nil(t, tm.OneToOne, "121 entries are merged into aliases")
	assert.Equal(t, StringOrArray{"CustomerName", "Buyer"}, tm.Aliases["Customer"])
	assert.Equal(t, StringOrArray{"OrderNo"}, tm.Aliases["Number"])
	assert.Equal(t, StringOrArray{"OrderLines", "Items"}, tm.Aliases["Lines"])
	assert.Equal(t, []string{"Audit"}, tm.Ignore)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("types: [{type: Order, aliases: {A: {x: y}}}]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string or array")

	_, err = Parse([]byte("types: ["))
	require.Error(t, err)
}

func TestNormalizeTypeMapping(t *testing.T) {
	tm := TypeMapping{
		Type:     "Order",
		OneToOne: map[string]string{"b": "B", "a": "B", "c": "C"},
		Aliases:  map[string]StringOrArray{"B": {"a"}},
	}

	NormalizeTypeMapping(&tm)

	assert.Equal(t, StringOrArray{"a", "b"}, tm.Aliases["B"])
	assert.Equal(t, StringOrArray{"c"}, tm.Aliases["C"])
	assert.Nil(t, tm.OneToOne)
}

func TestWriteAndLoadFile(t *testing.T) {
	mf := &MappingFile{
		Version: "1",
		Types: []TypeMapping{{
			Type:    "XmlClass",
			Aliases: map[string]StringOrArray{"C": {"c"}, "D": {"D", "dd"}},
			Ignore:  []string{"Secret"},
		}},
	}

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	require.NoError(t, WriteFile(mf, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mf, loaded)

	data, err := Marshal(mf)
	require.NoError(t, err)
	assert.Contains(t, string(data), "C: c\n")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestStringOrArray(t *testing.T) {
	assert.True(t, StringOrArray{}.IsEmpty())
	assert.True(t, StringOrArray{"a"}.IsSingle())
	assert.True(t, StringOrArray{"a", "b"}.IsMultiple())
	assert.Equal(t, "a", StringOrArray{"a", "b"}.First())
	assert.Equal(t, "", StringOrArray{}.First())
	assert.True(t, StringOrArray{"a", "b"}.Contains("b"))
}
