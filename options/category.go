package options

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"xml-migrator/primitive"
)

// Categories is a primitive.CategoryEnum that reads and writes itself as a
// list of names in YAML and as a comma-separated list in the environment.
type Categories primitive.CategoryEnum

const (
	categoryAllName  = "all"
	categoryNoneName = "none"
)

var categoryNames = map[string]primitive.CategoryEnum{
	"text-number":      primitive.CategoryTextNumber,
	"numeric-bool":     primitive.CategoryNumericBool,
	"textual-bool":     primitive.CategoryTextualBool,
	"datetime":         primitive.CategoryDatetime,
	"timestamp":        primitive.CategoryTimestamp,
	"duration":         primitive.CategoryDuration,
	"nanoseconds":      primitive.CategoryNanoseconds,
	"seconds":          primitive.CategorySeconds,
	"enum-string":      primitive.CategoryEnumString,
	"text-unmarshaler": primitive.CategoryTextUnmarshaler,
}

// ParseCategories parses category names. "all" and "none" are accepted too.
func ParseCategories(names []string) (Categories, error) {
	var res primitive.CategoryEnum

	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))

		switch name {
		case "":
			continue
		case categoryAllName:
			res |= primitive.CategoryAll
			continue
		case categoryNoneName:
			continue
		}

		c, ok := categoryNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown category %q", raw)
		}

		res |= c
	}

	return Categories(res), nil
}

// Enum returns the underlying category set.
func (c Categories) Enum() primitive.CategoryEnum {
	return primitive.CategoryEnum(c)
}

// Names lists the category names in the set, sorted.
func (c Categories) Names() []string {
	switch primitive.CategoryEnum(c) {
	case primitive.CategoryAll:
		return []string{categoryAllName}
	case primitive.CategoryNone:
		return []string{categoryNoneName}
	}

	var names []string
	for name, bit := range categoryNames {
		if primitive.CategoryEnum(c).Has(bit) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}

// UnmarshalYAML accepts a single name or a list of names.
func (c *Categories) UnmarshalYAML(node *yaml.Node) error {
	var names []string

	switch node.Kind {
	case yaml.ScalarNode:
		var str string
		if err := node.Decode(&str); err != nil {
			return err
		}
		names = []string{str}

	case yaml.SequenceNode:
		if err := node.Decode(&names); err != nil {
			return err
		}

	default:
		return fmt.Errorf("expected category name or list of names, got %v", node.Kind)
	}

	parsed, err := ParseCategories(names)
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// MarshalYAML writes the set as a list of names.
func (c Categories) MarshalYAML() (any, error) {
	return c.Names(), nil
}

// UnmarshalText parses a comma-separated list of names.
func (c *Categories) UnmarshalText(text []byte) error {
	parsed, err := ParseCategories(strings.Split(string(text), ","))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}
