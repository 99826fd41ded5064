package mapping

import (
	"reflect"
	"sort"

	"xml-migrator/internal/schema"
)

// Apply declares the aliases and exclusions of mf in reg. Entries naming one
// of types are bound to that exact type, others are declared by the name they
// were written with.
func Apply(mf *MappingFile, reg *schema.Registry, types ...reflect.Type) {
	if mf == nil {
		return
	}

	for i := range mf.Types {
		tm := &mf.Types[i]
		NormalizeTypeMapping(tm)

		key := tm.Type
		if t := ResolveType(tm.Type, reg, types); t != nil {
			key = t.String()
		}

		members := make([]string, 0, len(tm.Aliases))
		for member := range tm.Aliases {
			members = append(members, member)
		}
		sort.Strings(members)

		for _, member := range members {
			reg.Declare(key, member, tm.Aliases[member]...)
		}

		for _, member := range tm.Ignore {
			reg.Exclude(key, member)
		}
	}
}
