package primitive

// CategoryEnum is a set of textual representations Parse is allowed to accept.
// Plain strings and raw bytes need no category.
type CategoryEnum int

const (
	CategoryTextNumber      CategoryEnum = 1 << iota // int, uint, float: textual number representation
	CategoryNumericBool                              // "0", "1" representation of boolean values
	CategoryTextualBool                              // yes, no, on, off, true, false representation of boolean values
	CategoryDatetime                                 // RFC3339Nano, xsd:dateTime without zone and xsd:date representation of time.Time
	CategoryTimestamp                                // integer Unix seconds representation of time.Time
	CategoryDuration                                 // textual duration representation (2h45m)
	CategoryNanoseconds                              // integer nanoseconds representation of time.Duration
	CategorySeconds                                  // floating-point seconds representation of time.Duration
	CategoryEnumString                               // named string/number/bool types, validated with IsValid when present
	CategoryTextUnmarshaler                          // types implementing encoding.TextUnmarshaler

	CategoryAll  = (1 << iota) - 1 //all categories combined
	CategoryNone = 0               // no categories selected
)

// Has reports whether every bit of c is present in the set.
func (s CategoryEnum) Has(c CategoryEnum) bool {
	return s&c == c
}

// categoriesOf lists the categories that can produce a value of the kind,
// in the order Parse tries them.
func categoriesOf(kind KindEnum) []CategoryEnum {
	switch {
	case kind.IsNumber():
		return []CategoryEnum{CategoryTextNumber}
	}

	switch kind {
	case KindBool:
		return []CategoryEnum{CategoryTextualBool, CategoryNumericBool}
	case KindTime:
		return []CategoryEnum{CategoryDatetime, CategoryTimestamp}
	case KindDuration:
		return []CategoryEnum{CategoryDuration, CategoryNanoseconds, CategorySeconds}
	case KindPrimitiveEnum:
		return []CategoryEnum{CategoryEnumString}
	case KindText:
		return []CategoryEnum{CategoryTextUnmarshaler}
	default:
		return nil
	}
}
