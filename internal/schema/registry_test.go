package schema_test

import (
	"encoding/xml"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xml-migrator/internal/schema"
)

type Leaf struct {
	XMLName xml.Name `xml:"XmlClass"`
	A       int      `xml:"a,attr"`
	B       string   `xml:"b,attr"`
	C       *Leaf    `migrate:"c"`
	D       []string `xml:"d>str" migrate:"D"`

	Skip    string `xml:"-"`
	Ignored string `migrate:"-"`
	Comment string `xml:",comment"`
	Fn      func()
	Table   map[string]int
	hidden  int
}

type Base struct {
	ID   string `xml:"id,attr"`
	Note string `xml:"note"`
}

type Derived struct {
	Base
	*Audit
	Note  string `xml:"note" migrate:"remark"`
	Items []int  `xml:"item"`
	Text  string `xml:",chardata"`
}

type Audit struct {
	Author string `xml:"author" migrate:"writer"`
}

func TestRegister(t *testing.T) {
	reg := schema.NewRegistry()

	st, err := reg.Register(reflect.TypeFor[Leaf]())
	require.NoError(t, err)

	assert.Equal(t, "XmlClass", st.Root)

	var fields []string
	for _, m := range st.Members {
		fields = append(fields, m.Field)
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, fields)

	a, ok := st.Attribute("a")
	require.True(t, ok)
	assert.Equal(t, schema.KindPrimitive, a.Kind)
	assert.True(t, a.Attr)

	c, ok := st.Element("C")
	require.True(t, ok)
	assert.Equal(t, schema.KindCustom, c.Kind)
	assert.True(t, c.HasAlias("c"))

	d, ok := st.Element("d")
	require.True(t, ok)
	assert.Equal(t, schema.KindCollection, d.Kind)
	assert.True(t, d.Wrapped())
	assert.False(t, d.Repeated())
	assert.Equal(t, "str", d.Item)
	assert.Equal(t, reflect.TypeFor[string](), d.ElemType())

	assert.Equal(t, []string{"C", "D", "a", "b", "c", "d"}, st.Names())
	assert.Equal(t, []string{"C", "a", "b", "d"}, st.MemberNames())
}

func TestResolve(t *testing.T) {
	reg := schema.NewRegistry()
	typ := reflect.TypeFor[*Leaf]()

	for name, field := range map[string]string{
		"a": "A",
		"b": "B",
		"C": "C",
		"c": "C",
		"d": "D",
		"D": "D",
	} {
		m, ok := reg.ResolveMember(typ, name)
		require.True(t, ok, name)
		assert.Equal(t, field, m.Field, name)
	}

	for _, name := range []string{"Skip", "Ignored", "Fn", "Table", "hidden", "x", "str"} {
		_, ok := reg.ResolveMember(typ, name)
		assert.False(t, ok, name)
	}

	_, ok := reg.ResolveMember(reflect.TypeFor[int](), "a")
	assert.False(t, ok)
}

func TestRegisterCaches(t *testing.T) {
	reg := schema.NewRegistry()

	first, err := reg.Register(reflect.TypeFor[Leaf]())
	require.NoError(t, err)

	second, err := reg.Register(reflect.TypeFor[*Leaf]())
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestRegisterEmbedded(t *testing.T) {
	reg := schema.NewRegistry()

	st, err := reg.Register(reflect.TypeFor[Derived]())
	require.NoError(t, err)
	assert.Equal(t, "Derived", st.Root)

	id, ok := st.Resolve("id")
	require.True(t, ok)
	assert.Equal(t, "ID", id.Field)

	note, ok := st.Resolve("remark")
	require.True(t, ok)
	assert.Equal(t, "Note", note.Field)

	author, ok := st.Resolve("writer")
	require.True(t, ok)
	assert.Equal(t, "Author", author.Field)

	items, ok := st.Resolve("item")
	require.True(t, ok)
	assert.True(t, items.Repeated())

	text, ok := st.CharData()
	require.True(t, ok)
	assert.Equal(t, "Text", text.Field)

	var v Derived
	owner := reflect.ValueOf(&v).Elem()

	require.NoError(t, note.Set(owner, reflect.ValueOf("outer")))
	require.NoError(t, author.Set(owner, reflect.ValueOf("ann")))
	require.NoError(t, id.Set(owner, reflect.ValueOf("42")))

	assert.Equal(t, "outer", v.Note)
	assert.Empty(t, v.Base.Note)
	require.NotNil(t, v.Audit)
	assert.Equal(t, "ann", v.Author)
	assert.Equal(t, "42", v.ID)
}

func TestRegisterErrors(t *testing.T) {
	type twoAliases struct {
		A int `migrate:"x"`
		B int `migrate:"x"`
	}

	type aliasShadowsName struct {
		A int
		B int `migrate:"A"`
	}

	type sameName struct {
		A int `xml:"v"`
		B int `xml:"v"`
	}

	type deepPath struct {
		A []string `xml:"a>b>c"`
	}

	type scalarPath struct {
		A string `xml:"a>b"`
	}

	tests := []struct {
		name string
		typ  reflect.Type
		err  error
	}{
		{"int", reflect.TypeFor[int](), schema.ErrNotStruct},
		{"time", reflect.TypeFor[time.Time](), schema.ErrNotStruct},
		{"slice", reflect.TypeFor[[]Leaf](), schema.ErrNotStruct},
		{"two aliases", reflect.TypeFor[twoAliases](), schema.ErrAliasConflict},
		{"alias shadows name", reflect.TypeFor[aliasShadowsName](), schema.ErrAliasConflict},
		{"same name", reflect.TypeFor[sameName](), schema.ErrNameConflict},
		{"deep path", reflect.TypeFor[deepPath](), schema.ErrUnsupportedTag},
		{"scalar path", reflect.TypeFor[scalarPath](), schema.ErrUnsupportedTag},
	}

	reg := schema.NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reg.Register(tt.typ)
			require.ErrorIs(t, err, tt.err)
		})
	}

	_, err := reg.Register(nil)
	require.ErrorIs(t, err, schema.ErrNotStruct)
}

func TestDeclareAndExclude(t *testing.T) {
	reg := schema.NewRegistry()
	typ := reflect.TypeFor[Leaf]()

	_, ok := reg.ResolveMember(typ, "bee")
	assert.False(t, ok)

	reg.Declare("Leaf", "B", "bee", "bee")
	m, ok := reg.ResolveMember(typ, "bee")
	require.True(t, ok)
	assert.Equal(t, "B", m.Field)
	assert.Equal(t, []string{"bee"}, m.Aliases)

	// declarations accept the root name and the serialized name too
	reg.Declare("XmlClass", "a", "alpha")
	m, ok = reg.ResolveMember(typ, "alpha")
	require.True(t, ok)
	assert.Equal(t, "A", m.Field)

	reg.Exclude("schema_test.Leaf", "b")
	_, ok = reg.ResolveMember(typ, "b")
	assert.False(t, ok)
	_, ok = reg.ResolveMember(typ, "bee")
	assert.False(t, ok)

	reg.Declare("Leaf", "A", "c")
	_, err := reg.Register(typ)
	require.ErrorIs(t, err, schema.ErrAliasConflict)
}

func TestMemberSetAndAppend(t *testing.T) {
	reg := schema.NewRegistry()

	st, err := reg.Register(reflect.TypeFor[Leaf]())
	require.NoError(t, err)

	var v Leaf
	owner := reflect.ValueOf(&v)

	c, _ := st.Element("C")
	require.NoError(t, c.Set(owner, reflect.ValueOf(Leaf{A: 2})))
	require.NotNil(t, v.C)
	assert.Equal(t, 2, v.C.A)

	require.NoError(t, c.Set(owner, reflect.Value{}))
	assert.Nil(t, v.C)

	d, _ := st.Element("d")
	require.NoError(t, d.Append(owner, reflect.ValueOf("abc1")))
	require.NoError(t, d.Append(owner, reflect.ValueOf("abc2")))
	assert.Equal(t, []string{"abc1", "abc2"}, v.D)

	a, _ := st.Attribute("a")
	err = a.Set(owner, reflect.ValueOf("one"))
	require.ErrorIs(t, err, schema.ErrTypeMismatch)

	err = a.Append(owner, reflect.ValueOf(1))
	require.ErrorIs(t, err, schema.ErrTypeMismatch)

	n := 7
	require.NoError(t, a.Set(owner, reflect.ValueOf(&n)))
	assert.Equal(t, 7, v.A)
}

func TestValueKindString(t *testing.T) {
	assert.Equal(t, "Primitive", schema.KindPrimitive.String())
	assert.Equal(t, "OrderedCollection", schema.KindCollection.String())
	assert.Equal(t, "Custom", schema.KindCustom.String())
	assert.Equal(t, "Unknown", schema.KindUnknown.String())
}
