// Package schema builds the per-type member registry the migrator resolves
// legacy names against: serialized names, declared aliases and bound setters.
package schema

import (
	"encoding/xml"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"sync"

	"xml-migrator/primitive"
)

var (
	ErrNotStruct      = errors.New("type is not a struct")
	ErrNameConflict   = errors.New("serialized name used by more than one member")
	ErrAliasConflict  = errors.New("alias used by more than one member")
	ErrUnsupportedTag = errors.New("unsupported xml tag")
	ErrTypeMismatch   = errors.New("value type does not match member")
)

var xmlNameType = reflect.TypeOf(xml.Name{})

// Type is the registered schema of one struct type.
type Type struct {
	GoType reflect.Type
	// Root is the element name a document of this type starts with.
	Root    string
	Members []*Member

	names    map[string]*Member
	elements map[string]*Member
	attrs    map[string]*Member
	aliases  map[string]*Member
	charData *Member
}

// Resolve finds the member a legacy node name belongs to: first by serialized
// name, then by alias.
func (t *Type) Resolve(name string) (*Member, bool) {
	if m, ok := t.names[name]; ok {
		return m, true
	}

	m, ok := t.aliases[name]

	return m, ok
}

// Element returns the element member serialized as name.
func (t *Type) Element(name string) (*Member, bool) {
	m, ok := t.elements[name]
	return m, ok
}

// Attribute returns the attribute member serialized as name.
func (t *Type) Attribute(name string) (*Member, bool) {
	m, ok := t.attrs[name]
	return m, ok
}

// CharData returns the member holding the element text, if any.
func (t *Type) CharData() (*Member, bool) {
	return t.charData, t.charData != nil
}

// Names lists serialized names and aliases, sorted.
func (t *Type) Names() []string {
	out := make([]string, 0, len(t.names)+len(t.aliases))
	for name := range t.names {
		out = append(out, name)
	}
	for alias := range t.aliases {
		out = append(out, alias)
	}
	sort.Strings(out)

	return out
}

// MemberNames lists the serialized names of the members, without aliases,
// sorted.
func (t *Type) MemberNames() []string {
	out := make([]string, 0, len(t.names))
	for name := range t.names {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}

// Registry caches Type schemas. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*Type

	// declarations made outside struct tags, keyed by type name then member
	declared map[string]map[string][]string
	excluded map[string]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{
		types:    make(map[reflect.Type]*Type),
		declared: make(map[string]map[string][]string),
		excluded: make(map[string]map[string]struct{}),
	}
}

// Declare adds aliases to a member. typeName is the Go type name, qualified
// by package name or import path, or the type's root name; member is the Go
// identifier or the serialized name.
func (r *Registry) Declare(typeName, member string, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.declared[typeName] == nil {
		r.declared[typeName] = make(map[string][]string)
	}

	for _, a := range aliases {
		if !slices.Contains(r.declared[typeName][member], a) {
			r.declared[typeName][member] = append(r.declared[typeName][member], a)
		}
	}

	clear(r.types)
}

// Exclude removes a member from migration, like `migrate:"-"`.
func (r *Registry) Exclude(typeName, member string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.excluded[typeName] == nil {
		r.excluded[typeName] = make(map[string]struct{})
	}
	r.excluded[typeName][member] = struct{}{}

	clear(r.types)
}

// Register builds, or returns the cached, schema of t. Pointers to structs
// are accepted.
func (r *Registry) Register(t reflect.Type) (*Type, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotStruct)
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct || isPrimitive(t) {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, t)
	}

	r.mu.RLock()
	cached, ok := r.types[t]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.types[t]; ok {
		return cached, nil
	}

	st, err := r.build(t)
	if err != nil {
		return nil, err
	}
	r.types[t] = st

	return st, nil
}

// ResolveMember registers t when needed and resolves name against it.
func (r *Registry) ResolveMember(t reflect.Type, name string) (*Member, bool) {
	st, err := r.Register(t)
	if err != nil {
		return nil, false
	}

	return st.Resolve(name)
}

func (r *Registry) build(t reflect.Type) (*Type, error) {
	st := &Type{
		GoType:   t,
		Root:     t.Name(),
		names:    make(map[string]*Member),
		elements: make(map[string]*Member),
		attrs:    make(map[string]*Member),
		aliases:  make(map[string]*Member),
	}

	keys := []string{t.Name(), t.String(), t.PkgPath() + "." + t.Name()}
	if f, ok := t.FieldByName("XMLName"); ok && f.Type == xmlNameType && len(f.Index) == 1 {
		if tag := parseXMLTag(f); tag.name != "" {
			st.Root = tag.name
			keys = append(keys, tag.name)
		}
	}

	if err := r.collect(st, t, nil, keys); err != nil {
		return nil, fmt.Errorf("register %s: %w", t, err)
	}

	if err := st.index(); err != nil {
		return nil, fmt.Errorf("register %s: %w", t, err)
	}

	return st, nil
}

func (r *Registry) collect(st *Type, t reflect.Type, index []int, keys []string) error {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Type == xmlNameType && f.Name == "XMLName" {
			continue
		}

		tag := parseXMLTag(f)
		if tag.skip || tag.foreign {
			continue
		}

		path := append(slices.Clone(index), i)

		if f.Anonymous && tag.name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
				if !f.IsExported() {
					continue // cannot allocate through an unexported pointer
				}
			}

			if ft.Kind() == reflect.Struct && !isPrimitive(ft) {
				if err := r.collect(st, ft, path, keys); err != nil {
					return err
				}
				continue
			}
		}

		if !f.IsExported() {
			continue
		}

		aliases, excluded := parseMigrateTag(f)
		if excluded || r.isExcluded(keys, f.Name) {
			continue
		}

		kind := classify(f.Type)
		if kind == KindUnknown {
			continue
		}

		m := &Member{
			Field:    f.Name,
			Name:     f.Name,
			Attr:     tag.attr,
			CharData: tag.chardata,
			Kind:     kind,
			Type:     f.Type,
			index:    path,
		}

		if tag.name != "" {
			m.Name = tag.name
		}

		if tag.depth > 2 || (tag.depth == 2 && (kind != KindCollection || tag.attr)) {
			return fmt.Errorf("%w: %s `xml:%q`", ErrUnsupportedTag, f.Name, f.Tag.Get("xml"))
		}
		m.Item = tag.item

		if r.isExcluded(keys, m.Name) {
			continue
		}

		m.Aliases = append(aliases, r.declaredAliases(keys, m.Field, m.Name)...)
		st.Members = append(st.Members, m)
	}

	return nil
}

func (r *Registry) isExcluded(keys []string, member string) bool {
	for _, k := range keys {
		if _, ok := r.excluded[k][member]; ok {
			return true
		}
	}

	return false
}

func (r *Registry) declaredAliases(keys []string, names ...string) []string {
	var out []string
	for _, k := range keys {
		for _, name := range names {
			for _, a := range r.declared[k][name] {
				if !slices.Contains(out, a) {
					out = append(out, a)
				}
			}
		}
	}

	return out
}

// index builds the lookup maps. A shallower member shadows a deeper embedded
// one with the same name, as encoding/xml does.
func (t *Type) index() error {
	kept := make([]*Member, 0, len(t.Members))

	for _, m := range t.Members {
		var table map[string]*Member
		switch {
		case m.CharData:
			if t.charData != nil {
				if len(t.charData.index) == len(m.index) {
					return fmt.Errorf("%w: chardata on %s and %s", ErrNameConflict, t.charData.Field, m.Field)
				}
				if len(t.charData.index) < len(m.index) {
					continue
				}
			}
			t.charData = m
			kept = append(kept, m)
			continue
		case m.Attr:
			table = t.attrs
		default:
			table = t.elements
		}

		if other, ok := table[m.Name]; ok {
			if len(other.index) == len(m.index) {
				return fmt.Errorf("%w: %q on %s and %s", ErrNameConflict, m.Name, other.Field, m.Field)
			}
			if len(other.index) < len(m.index) {
				continue
			}
			kept = slices.DeleteFunc(kept, func(x *Member) bool { return x == other })
		}

		table[m.Name] = m
		kept = append(kept, m)
	}
	t.Members = kept

	// an element and an attribute may share a name, the first declared wins
	for _, m := range t.Members {
		if m.CharData {
			continue
		}
		if _, ok := t.names[m.Name]; !ok {
			t.names[m.Name] = m
		}
	}

	for _, m := range t.Members {
		for _, alias := range m.Aliases {
			if alias == m.Name {
				continue
			}

			if other, ok := t.names[alias]; ok && other != m {
				return fmt.Errorf("%w: %q of %s is the name of %s", ErrAliasConflict, alias, m.Field, other.Field)
			}

			if other, ok := t.aliases[alias]; ok && other != m {
				return fmt.Errorf("%w: %q on %s and %s", ErrAliasConflict, alias, other.Field, m.Field)
			}

			t.aliases[alias] = m
		}
	}

	return nil
}

func isPrimitive(t reflect.Type) bool {
	return primitive.FromReflectType(t) != 0
}
