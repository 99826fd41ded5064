package schema

import (
	"fmt"
	"reflect"
	"slices"
)

// ValueKind classifies how a member's content is converted.
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindPrimitive
	KindCollection
	KindCustom

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k ValueKind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindCollection:
		return "OrderedCollection"
	case KindCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// Member describes one migratable field of a registered type.
type Member struct {
	// Field is the Go identifier.
	Field string
	// Name is the serialized element or attribute name.
	Name string
	// Item is the element name of wrapped collection items, xml:"Name>Item".
	Item     string
	Attr     bool
	CharData bool
	// Aliases are the names the member was serialized under before.
	Aliases []string
	Kind    ValueKind
	Type    reflect.Type

	index []int
}

// Wrapped reports whether collection items live under a wrapper element.
func (m *Member) Wrapped() bool {
	return m.Item != ""
}

// Repeated reports whether the member is a slice whose items appear as
// sibling elements named after the member.
func (m *Member) Repeated() bool {
	return m.Kind == KindCollection && !m.Wrapped() && !m.Attr && m.Type.Kind() == reflect.Slice
}

// HasAlias reports whether name is one of the member's aliases.
func (m *Member) HasAlias(name string) bool {
	return slices.Contains(m.Aliases, name)
}

// Value returns the addressable field of owner. Nil embedded struct pointers
// on the way are allocated.
func (m *Member) Value(owner reflect.Value) reflect.Value {
	v := owner
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}

	for i, x := range m.index {
		if i > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}

	return v
}

// Set assigns v to the member of owner. An invalid v assigns the zero value.
func (m *Member) Set(owner, v reflect.Value) error {
	field := m.Value(owner)

	out, err := assignable(v, field.Type())
	if err != nil {
		return fmt.Errorf("set %s: %w", m.Field, err)
	}

	field.Set(out)

	return nil
}

// Append adds v to a slice member of owner.
func (m *Member) Append(owner, v reflect.Value) error {
	field := m.Value(owner)
	if field.Kind() != reflect.Slice {
		return fmt.Errorf("append %s: %w: %s is not a slice", m.Field, ErrTypeMismatch, field.Type())
	}

	out, err := assignable(v, field.Type().Elem())
	if err != nil {
		return fmt.Errorf("append %s: %w", m.Field, err)
	}

	field.Set(reflect.Append(field, out))

	return nil
}

// ElemType returns the item type of a collection member, or the member type
// itself.
func (m *Member) ElemType() reflect.Type {
	t := m.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if m.Kind == KindCollection {
		return t.Elem()
	}

	return m.Type
}

// assignable adapts v to type to, taking or dropping one pointer level.
func assignable(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if !v.IsValid() {
		return reflect.Zero(to), nil
	}

	from := v.Type()

	switch {
	case from.AssignableTo(to):
		return v, nil

	case to.Kind() == reflect.Pointer && from.AssignableTo(to.Elem()):
		p := reflect.New(to.Elem())
		p.Elem().Set(v)
		return p, nil

	case from.Kind() == reflect.Pointer && from.Elem().AssignableTo(to):
		if v.IsNil() {
			return reflect.Zero(to), nil
		}
		return v.Elem(), nil
	}

	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrTypeMismatch, from, to)
}

// classify maps a field type to its conversion kind. Arrays, double pointers,
// maps, channels, functions and interfaces are not migratable, matching what
// encoding/xml can decode.
func classify(t reflect.Type) ValueKind {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		if t.Kind() == reflect.Pointer {
			return KindUnknown
		}
	}

	if isPrimitive(t) {
		return KindPrimitive
	}

	switch t.Kind() {
	case reflect.Slice:
		if classify(t.Elem()) == KindUnknown {
			return KindUnknown
		}
		return KindCollection
	case reflect.Struct:
		return KindCustom
	default:
		return KindUnknown
	}
}
