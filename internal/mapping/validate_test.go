package mapping_test

import (
	"encoding/xml"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xml-migrator/internal/diagnostic"
	"xml-migrator/internal/mapping"
	"xml-migrator/internal/schema"
)

type Order struct {
	XMLName  xml.Name `xml:"order"`
	Number   string   `xml:"number,attr"`
	Customer string   `xml:"customer"`
	Lines    []string `xml:"lines>line"`
	Audit    string   `xml:"audit"`
}

var orderType = reflect.TypeFor[Order]()

func parse(t *testing.T, data string) *mapping.MappingFile {
	t.Helper()

	mf, err := mapping.Parse([]byte(data))
	require.NoError(t, err)

	return mf
}

func TestResolveType(t *testing.T) {
	reg := schema.NewRegistry()
	types := []reflect.Type{reflect.TypeFor[*Order]()}

	for _, id := range []string{"Order", "mapping_test.Order", "xml-migrator/internal/mapping_test.Order", "order"} {
		assert.Equal(t, orderType, mapping.ResolveType(id, reg, types), id)
	}

	assert.Nil(t, mapping.ResolveType("Invoice", reg, types))
}

func TestValidate(t *testing.T) {
	mf := parse(t, `
types:
  - type: order
    121:
      no: number
    aliases:
      Customer: [buyer, client]
      Lines: []
    ignore: [Audit]
`)

	res := mapping.Validate(mf, orderType)
	assert.True(t, res.IsValid(), res.Error())
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, `"Lines" declares no legacy names`)
}

func TestValidateErrors(t *testing.T) {
	mf := parse(t, `
types:
  - aliases: {Customer: x}
  - type: Invoice
  - type: Order
    aliases:
      Customer: [buyer, audit]
      Number: buyer
      Ghost: spooky
    ignore: [Phantom]
`)

	res := mapping.Validate(mf, orderType)
	require.True(t, res.HasErrors())

	codes := map[string]int{}
	for _, d := range res.Errors {
		codes[d.Code]++
	}

	assert.Equal(t, map[string]int{
		diagnostic.CodeInvalidMapping: 3, // missing type, buyer twice, audit is a current name
		diagnostic.CodeUnknownType:    1,
		diagnostic.CodeUnknownMember:  2,
	}, codes)

	assert.False(t, mapping.Validate(nil).IsValid())
}

func TestValidateWithoutTypes(t *testing.T) {
	mf := parse(t, `
types:
  - type: Anything
    aliases: {A: x, B: x}
`)

	res := mapping.Validate(mf)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0].Message, `"x" declared for A and B`)
}

func TestApply(t *testing.T) {
	mf := parse(t, `
types:
  - type: mapping_test.Order
    aliases:
      customer: [buyer, client]
    ignore: [Audit]
`)

	reg := schema.NewRegistry()
	mapping.Apply(mf, reg, orderType)

	m, ok := reg.ResolveMember(orderType, "client")
	require.True(t, ok)
	assert.Equal(t, "Customer", m.Field)

	_, ok = reg.ResolveMember(orderType, "audit")
	assert.False(t, ok)

	// unresolved entries are declared by name
	mf = parse(t, "types: [{type: order, 121: {no: number}}]")
	mapping.Apply(mf, reg)

	m, ok = reg.ResolveMember(orderType, "no")
	require.True(t, ok)
	assert.Equal(t, "Number", m.Field)

	mapping.Apply(nil, reg)
}
