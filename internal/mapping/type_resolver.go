package mapping

import (
	"reflect"
	"slices"

	"xml-migrator/internal/common"
	"xml-migrator/internal/schema"
)

// ResolveType finds the type an entry refers to among types. Qualified names
// win over bare names and root element names. Returns nil if not found.
func ResolveType(id string, reg *schema.Registry, types []reflect.Type) reflect.Type {
	var byName, byRoot reflect.Type

	for _, t := range types {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}

		names := common.TypeNames(t.PkgPath(), t.Name())
		if i := slices.Index(names, id); i > 0 {
			return t
		} else if i == 0 && byName == nil {
			byName = t
		}

		if byRoot == nil {
			if st, err := reg.Register(t); err == nil && st.Root == id {
				byRoot = t
			}
		}
	}

	if byName != nil {
		return byName
	}

	return byRoot
}
