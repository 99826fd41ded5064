package mapping

import (
	"sort"
	"strings"

	"xml-migrator/internal/diagnostic"
)

// ExportSuggestions drafts a mapping file from the unmapped node reports of a
// migration. Every dropped name with a suggestion becomes a 121 entry
// pointing at the best candidate. The draft is meant for review; nothing is
// applied until it is loaded back.
func ExportSuggestions(diags []diagnostic.Diagnostic) *MappingFile {
	byType := make(map[string]*TypeMapping)

	for _, d := range diags {
		if d.Code != diagnostic.CodeUnmappedNode || len(d.Suggestions) == 0 || d.Type == "" {
			continue
		}

		legacy := legacyName(d.Path)
		if legacy == "" {
			continue
		}

		tm, ok := byType[d.Type]
		if !ok {
			tm = &TypeMapping{Type: d.Type, OneToOne: make(map[string]string)}
			byType[d.Type] = tm
		}

		if _, seen := tm.OneToOne[legacy]; !seen {
			tm.OneToOne[legacy] = d.Suggestions[0]
		}
	}

	names := make([]string, 0, len(byType))
	for name := range byType {
		names = append(names, name)
	}
	sort.Strings(names)

	mf := &MappingFile{Version: "1", Types: make([]TypeMapping, 0, len(names))}
	for _, name := range names {
		mf.Types = append(mf.Types, *byType[name])
	}

	return mf
}

// legacyName is the node name at the end of a diagnostic path such as
// /order/customer/@cust_id.
func legacyName(path string) string {
	name := path[strings.LastIndexByte(path, '/')+1:]

	return strings.TrimPrefix(name, "@")
}
