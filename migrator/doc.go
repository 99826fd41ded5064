// Package migrator reads XML written under an obsolete schema into values of
// the current Go types.
//
// A current type declares the names its members were serialized under before
// with a `migrate` struct tag, or through an alias mapping file:
//
//	type XmlClass struct {
//		A int       `xml:"a,attr"`
//		C *XmlClass `migrate:"c"`
//		D []string  `xml:"d>str" migrate:"D"`
//	}
//
// Migration first decodes everything that still matches by name. Elements
// and attributes left over are queued and then resolved in document order
// against member names and aliases; their content is parsed as a primitive,
// collected as an ordered list, or migrated as a nested value in a session of
// its own. Nodes that match nothing are dropped and reported, conversions that
// fail leave the member zeroed and are reported too. Only malformed input and
// a wrong root element stop a migration.
//
// After migration the value is serialized again with encoding/xml; the
// result is available as canonical bytes and as a parsed snapshot.
package migrator
