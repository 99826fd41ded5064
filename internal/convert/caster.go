package convert

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"xml-migrator/utils"
)

var (
	ErrIsNotACaster         = errors.New("provided function is not a recognizable caster")
	ErrCasterIsNotAFunction = errors.New("provided caster is not a function")
	ErrDoublePointer        = errors.New("caster function does not support double pointers")
	ErrSourceNotText        = errors.New("caster must accept a string")
	ErrCasterRejected       = errors.New("caster rejected the value")
)

// Caster is a user function turning legacy text into a value of Dst.
type Caster struct {
	Src, Dst     reflect.Type
	PackageAlias string
	Name         string
	HasBool      bool
	HasErr       bool

	fn reflect.Value
}

// ParseCaster inspects the provided function and returns a Caster struct if it is a valid caster function.
//
// Supports interfaces:
//   - func(src string) (dst Type)
//   - func(src string) (dst Type, bool)
//   - func(src string) (dst Type, error)
//   - func(src string) (dst Type, bool, error)
//
// A string-based named type is accepted as src.
func ParseCaster(fn any) (Caster, error) {
	if fn == nil {
		return Caster{}, ErrCasterIsNotAFunction
	}

	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return Caster{}, ErrCasterIsNotAFunction
	}

	if fnType.NumIn() != 1 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Caster{}, ErrIsNotACaster
	}

	src := fnType.In(0)
	if src.Kind() != reflect.String {
		return Caster{}, fmt.Errorf("%w, got %s", ErrSourceNotText, typeStr(src))
	}

	dst := fnType.Out(0)
	if dst.Kind() == reflect.Pointer && dst.Elem().Kind() == reflect.Pointer {
		return Caster{}, ErrDoublePointer
	}

	// Get the function object from the pointer
	fnPC := runtime.FuncForPC(fnVal.Pointer())
	alias, name := utils.Unpack2(strings.SplitN(fnPC.Name(), ".", 2))

	caster := Caster{
		Src:          src,
		Dst:          dst,
		Name:         name,
		PackageAlias: utils.Second(path.Split(alias)),
		fn:           fnVal,
	}

	switch fnType.NumOut() {
	default:
		return Caster{}, ErrIsNotACaster

	case 1:
		return caster, nil

	case 2:
		last := fnType.Out(1)

		switch {
		default:
			return Caster{}, ErrIsNotACaster
		case last.Kind() == reflect.Bool:
			caster.HasBool = true
		case isError(last):
			caster.HasErr = true
		}
		return caster, nil

	case 3:
		tbool, terr := fnType.Out(1), fnType.Out(2)
		if tbool.Kind() != reflect.Bool || !isError(terr) {
			return Caster{}, ErrIsNotACaster
		}

		caster.HasBool = true
		caster.HasErr = true
		return caster, nil
	}
}

// Target is the value type the caster produces, without a pointer.
func (c Caster) Target() reflect.Type {
	if c.Dst.Kind() == reflect.Pointer {
		return c.Dst.Elem()
	}

	return c.Dst
}

// Call runs the caster on text. The result has type Target.
func (c Caster) Call(text string) (reflect.Value, error) {
	outs := c.fn.Call([]reflect.Value{reflect.ValueOf(text).Convert(c.Src)})
	out := outs[0]

	if c.HasErr {
		if err, _ := outs[len(outs)-1].Interface().(error); err != nil {
			return reflect.Value{}, fmt.Errorf("%s.%s: %w", c.PackageAlias, c.Name, err)
		}
	}

	if c.HasBool && !outs[1].Bool() {
		return reflect.Value{}, fmt.Errorf("%s.%s: %w: %q", c.PackageAlias, c.Name, ErrCasterRejected, text)
	}

	if c.Dst.Kind() == reflect.Pointer {
		if out.IsNil() {
			return reflect.Value{}, fmt.Errorf("%s.%s: %w: nil result", c.PackageAlias, c.Name, ErrCasterRejected)
		}
		out = out.Elem()
	}

	return out, nil
}
