package mapping

import (
	"fmt"
	"reflect"
	"sort"

	"xml-migrator/internal/diagnostic"
	"xml-migrator/internal/schema"
)

// Validate checks a mapping file against the given current types. Without
// types only the file structure is checked.
func Validate(mf *MappingFile, types ...reflect.Type) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if mf == nil {
		res.AddError(diagnostic.CodeInvalidMapping, "mapping file is nil", "", "")
		return res
	}

	// a clean registry: the file must not validate against its own declarations
	reg := schema.NewRegistry()

	for i := range mf.Types {
		tm := mf.Types[i]
		NormalizeTypeMapping(&tm)

		path := fmt.Sprintf("types[%d]", i)
		if tm.Type == "" {
			res.AddError(diagnostic.CodeInvalidMapping, "type is required", "", path)
			continue
		}

		members := make([]string, 0, len(tm.Aliases))
		for member := range tm.Aliases {
			members = append(members, member)
		}
		sort.Strings(members)

		validateLegacyNames(res, &tm, members, path)

		if len(types) == 0 {
			continue
		}

		t := ResolveType(tm.Type, reg, types)
		if t == nil {
			res.AddError(diagnostic.CodeUnknownType, fmt.Sprintf("type %q not found", tm.Type), tm.Type, path)
			continue
		}

		st, err := reg.Register(t)
		if err != nil {
			res.AddError(diagnostic.CodeUnknownType, err.Error(), tm.Type, path)
			continue
		}

		for _, member := range append(members, tm.Ignore...) {
			if findMember(st, member) == nil {
				res.AddError(diagnostic.CodeUnknownMember, fmt.Sprintf("type %s has no migratable member %q", t, member), tm.Type, path)
			}
		}

		for _, member := range members {
			for _, legacy := range tm.Aliases[member] {
				other := findMember(st, legacy)
				if other != nil && other != findMember(st, member) {
					res.AddError(diagnostic.CodeInvalidMapping,
						fmt.Sprintf("legacy name %q of %s is the current name of %s", legacy, member, other.Field), tm.Type, path)
				}
			}
		}
	}

	return res
}

func validateLegacyNames(res *diagnostic.Diagnostics, tm *TypeMapping, members []string, path string) {
	owner := make(map[string]string)

	for _, member := range members {
		aliases := tm.Aliases[member]
		if aliases.IsEmpty() {
			res.AddWarning(diagnostic.CodeInvalidMapping, fmt.Sprintf("member %q declares no legacy names", member), tm.Type, path)
			continue
		}

		for _, legacy := range aliases {
			if prev, ok := owner[legacy]; ok && prev != member {
				res.AddError(diagnostic.CodeInvalidMapping,
					fmt.Sprintf("legacy name %q declared for %s and %s", legacy, prev, member), tm.Type, path)
				continue
			}
			owner[legacy] = member
		}
	}
}

func findMember(st *schema.Type, name string) *schema.Member {
	for _, m := range st.Members {
		if m.Field == name || m.Name == name {
			return m
		}
	}

	return nil
}
