package mapping

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a normalized MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	var mf MappingFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)
	NormalizeMappingFile(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = "1"
	}
}

// Marshal serializes a MappingFile to YAML.
func Marshal(mf *MappingFile) ([]byte, error) {
	return yaml.Marshal(mf)
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}

// NormalizeTypeMapping merges the 121 shorthand into Aliases, in legacy name
// order so the result does not depend on map iteration.
func NormalizeTypeMapping(tm *TypeMapping) {
	if len(tm.OneToOne) == 0 {
		return
	}

	legacy := make([]string, 0, len(tm.OneToOne))
	for name := range tm.OneToOne {
		legacy = append(legacy, name)
	}
	sort.Strings(legacy)

	if tm.Aliases == nil {
		tm.Aliases = make(map[string]StringOrArray)
	}

	for _, name := range legacy {
		member := tm.OneToOne[name]
		if !tm.Aliases[member].Contains(name) {
			tm.Aliases[member] = append(tm.Aliases[member], name)
		}
	}

	tm.OneToOne = nil
}

// NormalizeMappingFile normalizes all type mappings in a file.
func NormalizeMappingFile(mf *MappingFile) {
	for i := range mf.Types {
		NormalizeTypeMapping(&mf.Types[i])
	}
}
