package node

type KindEnum int

const (
	KindUnknown KindEnum = iota
	KindElement
	KindAttribute
	KindText

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// String returns the label used by the tree dump.
func (k KindEnum) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindAttribute:
		return "Attribute"
	case KindText:
		return "Value"
	default:
		return "Unknown"
	}
}
