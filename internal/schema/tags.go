package schema

import (
	"reflect"
	"strings"
)

// MigrateTagKey is the struct tag holding the previous names of a member.
const MigrateTagKey = "migrate"

type xmlTag struct {
	name      string
	item      string // second path segment: xml:"d>str"
	depth     int    // number of path segments
	attr      bool
	chardata  bool
	omitempty bool
	skip      bool // xml:"-"
	foreign   bool // innerxml, comment, any: content the migrator does not own
}

// parseXMLTag reads the subset of encoding/xml tag syntax the migrator
// understands: name, a>b wrapper paths, and the attr, chardata, cdata and
// omitempty flags.
func parseXMLTag(f reflect.StructField) xmlTag {
	raw, ok := f.Tag.Lookup("xml")
	if !ok {
		return xmlTag{}
	}

	if raw == "-" {
		return xmlTag{skip: true}
	}

	var tag xmlTag

	name, flags, _ := strings.Cut(raw, ",")
	for _, flag := range strings.Split(flags, ",") {
		switch flag {
		case "attr":
			tag.attr = true
		case "chardata", "cdata":
			tag.chardata = true
		case "omitempty":
			tag.omitempty = true
		case "innerxml", "comment", "any":
			tag.foreign = true
		}
	}

	// drop the namespace part of "ns name"
	if i := strings.LastIndexByte(name, ' '); i >= 0 {
		name = name[i+1:]
	}

	if name == "" {
		return tag
	}

	parts := strings.Split(name, ">")
	tag.depth = len(parts)
	tag.name = parts[0]
	if len(parts) > 1 {
		tag.item = parts[1]
	}

	return tag
}

// parseMigrateTag returns the aliases declared with `migrate:"old1,old2"`;
// `migrate:"-"` excludes the member from migration.
func parseMigrateTag(f reflect.StructField) (aliases []string, excluded bool) {
	raw := strings.TrimSpace(f.Tag.Get(MigrateTagKey))
	if raw == "" {
		return nil, false
	}

	if raw == "-" {
		return nil, true
	}

	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}

	return aliases, false
}
