// Package decode is the name-matched baseline decoder: it fills a Go value
// from a legacy node tree using current serialized names only, and reports
// every element or attribute it could not place through Hooks.
package decode

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"xml-migrator/internal/schema"
	"xml-migrator/node"
	"xml-migrator/primitive"
)

var (
	ErrRootMismatch = errors.New("document root does not match type")
	ErrNotLeaf      = errors.New("node has no leaf text")
)

// Hooks receive the nodes the baseline decode leaves unmatched together with
// the addressable struct value that owns them. Items of a repeated member
// that also appears under an alias are all left to the hooks.
type Hooks struct {
	UnknownElement   func(n node.Node, owner reflect.Value)
	UnknownAttribute func(n node.Node, owner reflect.Value)
}

type Decoder struct {
	Registry   *schema.Registry
	Categories primitive.CategoryEnum
	Hooks      Hooks
}

// CheckRoot verifies that the document element is named name.
func CheckRoot(root node.Node, name string) error {
	if !root.Valid() || root.Kind() != node.KindElement {
		return fmt.Errorf("%w: no root element, want <%s>", ErrRootMismatch, name)
	}

	if root.Name() != name {
		return fmt.Errorf("%w: got <%s>, want <%s>", ErrRootMismatch, root.Name(), name)
	}

	return nil
}

// Decode allocates a new value of struct type t (or pointer to struct) and
// fills it from n. The result is always a pointer.
func (d *Decoder) Decode(n node.Node, t reflect.Type) (reflect.Value, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	ptr := reflect.New(t)
	if err := d.decodeInto(n, ptr.Elem()); err != nil {
		return reflect.Value{}, err
	}

	return ptr, nil
}

func (d *Decoder) decodeInto(n node.Node, target reflect.Value) error {
	st, err := d.Registry.Register(target.Type())
	if err != nil {
		return err
	}

	d.decodeStruct(n, target, st)

	return nil
}

func (d *Decoder) decodeStruct(n node.Node, owner reflect.Value, st *schema.Type) {
	for _, attr := range n.Attrs() {
		m, ok := st.Attribute(attr.Name())
		if !ok || m.Kind != schema.KindPrimitive || !d.setLeaf(attr, owner, m) {
			d.unknownAttribute(attr, owner)
		}
	}

	if m, ok := st.CharData(); ok && m.Kind == schema.KindPrimitive {
		if v, err := d.parse(directText(n), m.Type); err == nil {
			_ = m.Set(owner, v)
		}
	}

	d.reserve(n, owner, st)

	mixed := mixedRepeated(n, st)
	for _, c := range n.Elements() {
		m, ok := st.Element(c.Name())
		if !ok || mixed[m] || !d.decodeElement(c, owner, m) {
			d.unknownElement(c, owner)
		}
	}
}

// mixedRepeated lists the repeated members that n holds items of under an
// alias. All their items, current names included, go through the hooks so
// that they are appended in document order.
func mixedRepeated(n node.Node, st *schema.Type) map[*schema.Member]bool {
	var out map[*schema.Member]bool

	for _, c := range n.Elements() {
		if _, ok := st.Element(c.Name()); ok {
			continue
		}

		m, ok := st.Resolve(c.Name())
		if !ok || !m.Repeated() {
			continue
		}

		if out == nil {
			out = make(map[*schema.Member]bool)
		}
		out[m] = true
	}

	return out
}

// reserve grows struct slice members up front to hold every item the element
// children may add, by name or alias, so that owners handed to hooks keep
// pointing at the final slice elements.
func (d *Decoder) reserve(n node.Node, owner reflect.Value, st *schema.Type) {
	need := make(map[*schema.Member]int)

	for _, c := range n.Elements() {
		m, ok := st.Element(c.Name())
		if !ok {
			m, ok = st.Resolve(c.Name())
		}
		if !ok || m.Kind != schema.KindCollection || m.Type.Kind() != reflect.Slice {
			continue
		}

		if elem := m.Type.Elem(); elem.Kind() != reflect.Struct || isLeafType(elem) {
			continue
		}

		if m.Wrapped() {
			need[m] += len(c.Elements())
		} else {
			need[m]++
		}
	}

	for m, count := range need {
		field := m.Value(owner)
		if field.Cap()-field.Len() >= count {
			continue
		}

		grown := reflect.MakeSlice(field.Type(), field.Len(), field.Len()+count)
		reflect.Copy(grown, field)
		field.Set(grown)
	}
}

// decodeElement reports false when the element could not be placed into m.
func (d *Decoder) decodeElement(c node.Node, owner reflect.Value, m *schema.Member) bool {
	switch {
	case m.Attr || m.CharData:
		return false

	case m.Wrapped():
		return d.decodeWrapped(c, owner, m)

	case m.Repeated():
		return d.decodeItem(c, m.Value(owner))

	case m.Kind == schema.KindPrimitive:
		return d.setLeaf(c, owner, m)

	case m.Kind == schema.KindCustom:
		target := m.Value(owner)
		if target.Kind() == reflect.Pointer {
			if target.IsNil() {
				target.Set(reflect.New(target.Type().Elem()))
			}
			target = target.Elem()
		}

		return d.decodeInto(c, target) == nil
	}

	return false
}

func (d *Decoder) decodeWrapped(c node.Node, owner reflect.Value, m *schema.Member) bool {
	field := m.Value(owner)
	if field.Kind() != reflect.Slice {
		return false
	}

	var items []node.Node
	for _, it := range c.Elements() {
		if it.Name() == m.Item {
			items = append(items, it)
		}
	}

	// primitive items are all or nothing, a failing list is migrated later
	// item by item
	if isLeafType(field.Type().Elem()) {
		values := make([]reflect.Value, 0, len(items))
		for _, it := range items {
			v, err := d.leaf(it, field.Type().Elem())
			if err != nil {
				return false
			}
			values = append(values, v)
		}

		field.Set(reflect.Append(field, values...))

		return true
	}

	for _, it := range items {
		d.decodeItem(it, field)
	}

	return true
}

// decodeItem appends the value of n to the slice field. Struct items are
// decoded in place.
func (d *Decoder) decodeItem(n node.Node, field reflect.Value) bool {
	elem := field.Type().Elem()

	if isLeafType(elem) {
		v, err := d.leaf(n, elem)
		if err != nil {
			return false
		}
		field.Set(reflect.Append(field, v))

		return true
	}

	if base(elem).Kind() != reflect.Struct {
		return false
	}

	field.Set(reflect.Append(field, reflect.Zero(elem)))
	target := field.Index(field.Len() - 1)
	if target.Kind() == reflect.Pointer {
		target.Set(reflect.New(elem.Elem()))
		target = target.Elem()
	}

	if err := d.decodeInto(n, target); err != nil {
		field.SetLen(field.Len() - 1)
		return false
	}

	return true
}

func (d *Decoder) setLeaf(n node.Node, owner reflect.Value, m *schema.Member) bool {
	v, err := d.leaf(n, m.Type)
	if err != nil {
		return false
	}

	return m.Set(owner, v) == nil
}

func (d *Decoder) leaf(n node.Node, t reflect.Type) (reflect.Value, error) {
	text, ok := n.Text()
	if !ok || (n.Kind() == node.KindElement && hasElements(n)) {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotLeaf, n.Path())
	}

	return d.parse(text, t)
}

func (d *Decoder) parse(text string, t reflect.Type) (reflect.Value, error) {
	v, err := primitive.Parse(text, base(t), d.Categories)
	if err != nil {
		return reflect.Value{}, err
	}

	if t.Kind() == reflect.Pointer {
		p := reflect.New(t.Elem())
		p.Elem().Set(v)
		return p, nil
	}

	return v, nil
}

func (d *Decoder) unknownElement(n node.Node, owner reflect.Value) {
	if d.Hooks.UnknownElement != nil {
		d.Hooks.UnknownElement(n, owner)
	}
}

func (d *Decoder) unknownAttribute(n node.Node, owner reflect.Value) {
	if d.Hooks.UnknownAttribute != nil {
		d.Hooks.UnknownAttribute(n, owner)
	}
}

func directText(n node.Node) string {
	var b strings.Builder
	for _, c := range n.Children() {
		if c.Kind() == node.KindText {
			text, _ := c.Text()
			b.WriteString(text)
		}
	}

	return b.String()
}

func hasElements(n node.Node) bool {
	for _, c := range n.Children() {
		if c.Kind() == node.KindElement {
			return true
		}
	}

	return false
}

func isLeafType(t reflect.Type) bool {
	return primitive.FromReflectType(base(t)) != 0
}

func base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
