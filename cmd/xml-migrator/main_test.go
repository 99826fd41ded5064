package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestTreeCommand(t *testing.T) {
	path := writeFile(t, "doc.xml", `<r a="1"><c>x</c></r>`)

	out, err := run(t, "tree", path)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"˯Element",
		" ˯Attribute",
		"   Value a = 1",
		"  ˯Element",
		`    Value c = "x"`,
	}, "\n")+"\n", out)

	_, err = run(t, "tree", writeFile(t, "bad.xml", `<r>`))
	require.Error(t, err)
}

func TestCanonicalCommand(t *testing.T) {
	path := writeFile(t, "order.xml", `
<order id="42">
  <customer_id>3</customer_id>
  <status>SHIPPED</status>
  <total_cents>2599</total_cents>
  <items>
    <item product_id="7"><name>Mug</name><quantity>2</quantity><unit_price>800</unit_price></item>
  </items>
</order>`)

	out, err := run(t, "canonical", "--type", "warehouse.Order", path)
	require.NoError(t, err)

	assert.Contains(t, out, "<status>shipped</status>")
	assert.Contains(t, out, "<total>2599</total>")
	assert.Contains(t, out, `<line product="7">`)
	assert.Contains(t, out, "<qty>2</qty>")

	_, err = run(t, "canonical", "--type", "warehouse.Nope", path)
	require.ErrorContains(t, err, "unknown type")
}

func TestCheckCommand(t *testing.T) {
	valid := writeFile(t, "valid.yaml", `
types:
  - type: warehouse.Order
    aliases:
      TotalAmount: [grand_total]
`)

	out, err := run(t, "check", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (1 types)")

	invalid := writeFile(t, "invalid.yaml", `
types:
  - type: warehouse.Nope
    aliases:
      Total: [grand_total]
`)

	out, err = run(t, "check", invalid)
	require.Error(t, err)
	assert.Contains(t, out, "warehouse.Nope")
}

func TestTypesCommand(t *testing.T) {
	out, err := run(t, "types")
	require.NoError(t, err)
	assert.Equal(t, "warehouse.Catalog\nwarehouse.Order\nwarehouse.Product\n", out)
}

func TestSuggestCommand(t *testing.T) {
	path := writeFile(t, "order.xml", `<order id="1"><totl>10</totl><customer><emial>a@b.c</emial></customer></order>`)
	out := filepath.Join(t.TempDir(), "draft.yaml")

	_, err := run(t, "suggest", "--type", "warehouse.Order", "--out", out, path)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "totl: total")
	assert.Contains(t, string(data), "emial: email")
}
