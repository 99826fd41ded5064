package mapping

// MappingFile represents the root of a YAML alias mapping file.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Types lists per type declarations.
	Types []TypeMapping `yaml:"types"`
}

// TypeMapping declares the legacy names of one current type's members.
type TypeMapping struct {
	// Type identifier: "Order", "warehouse.Order", the full package path
	// form, or the root element name.
	Type string `yaml:"type"`

	// OneToOne maps a single legacy name to the current member.
	// Example: { "OrderNo": "Number" }
	OneToOne map[string]string `yaml:"121,omitempty"`

	// Aliases maps a current member to its legacy names.
	Aliases map[string]StringOrArray `yaml:"aliases,omitempty"`

	// Ignore lists members excluded from migration.
	Ignore []string `yaml:"ignore,omitempty"`
}

// StringOrArray represents a value that can be either a single string or an array of strings.
// YAML: "Name" or ["Name", "FullName"].
type StringOrArray []string
