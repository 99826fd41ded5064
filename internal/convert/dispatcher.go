package convert

import (
	"reflect"

	"xml-migrator/primitive"
)

//go:generate go tool stringer -type=DispatcherEnum -trimprefix=Dispatcher -output=dispatcher_string.go

// DispatcherEnum names the strategy used to build a value.
type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherCaster
	DispatcherPrimitive
	DispatcherSlice
	DispatcherStruct

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)

// Dispatch selects the strategy for dst. Registered casters take precedence
// over primitive parsing.
func (c *Converter) Dispatch(dst reflect.Type) DispatcherEnum {
	if dst.Kind() == reflect.Pointer {
		panic("dispatcher is not allowing pointer reflect types")
	}

	if _, ok := c.caster(dst); ok {
		return DispatcherCaster
	}

	if primitive.FromReflectType(dst) != 0 {
		return DispatcherPrimitive
	}

	switch dst.Kind() {
	case reflect.Slice:
		return DispatcherSlice
	case reflect.Struct:
		return DispatcherStruct
	default:
		return DispatcherUnknown
	}
}
