package primitive

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotPrimitive       = errors.New("type is not a primitive")
	ErrCategoryNotAllowed = errors.New("no allowed category can represent the type")
	ErrInvalidBool        = errors.New("only true/false, yes/no, on/off and 0/1 are allowed for bool")
	ErrInvalidEnum        = errors.New("value is not a valid enumerant")
)

// dateTimeLayouts are tried in order for CategoryDatetime.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

type validator interface{ IsValid() bool }

// Parse converts text into a value of type dst using the first allowed
// category that accepts it. The returned value has type dst exactly.
func Parse(text string, dst reflect.Type, allowed CategoryEnum) (reflect.Value, error) {
	kind := FromReflectType(dst)

	switch kind {
	case 0:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotPrimitive, typeName(dst))
	case KindString:
		return reflect.ValueOf(text).Convert(dst), nil
	case KindBytes:
		return reflect.ValueOf([]byte(text)).Convert(dst), nil
	}

	var lastErr error

	for _, category := range categoriesOf(kind) {
		if !allowed.Has(category) {
			continue
		}

		v, err := parseAs(category, kind, text, dst)
		if err == nil {
			return v, nil
		}

		lastErr = err
	}

	if lastErr == nil {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrCategoryNotAllowed, typeName(dst))
	}

	return reflect.Value{}, fmt.Errorf("cannot parse %q as %s: %w", text, typeName(dst), lastErr)
}

// MustParse is Parse for tests and static tables; it panics on error.
func MustParse(text string, dst reflect.Type, allowed CategoryEnum) reflect.Value {
	v, err := Parse(text, dst, allowed)
	if err != nil {
		panic(err)
	}

	return v
}

func parseAs(category CategoryEnum, kind KindEnum, text string, dst reflect.Type) (reflect.Value, error) {
	trimmed := strings.TrimSpace(text)
	out := reflect.New(dst).Elem()

	switch category {
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrCategoryNotAllowed, typeName(dst))

	case CategoryTextNumber:
		return out, setNumber(out, kind, trimmed)

	case CategoryTextualBool:
		switch strings.ToLower(trimmed) {
		default:
			return reflect.Value{}, ErrInvalidBool
		case "true", "yes", "on":
			out.SetBool(true)
		case "false", "no", "off":
			out.SetBool(false)
		}
		return out, nil

	case CategoryNumericBool:
		switch trimmed {
		default:
			return reflect.Value{}, ErrInvalidBool
		case "1":
			out.SetBool(true)
		case "0":
			out.SetBool(false)
		}
		return out, nil

	case CategoryDatetime:
		var err error
		for _, layout := range dateTimeLayouts {
			var t time.Time
			if t, err = time.Parse(layout, trimmed); err == nil {
				out.Set(reflect.ValueOf(t))
				return out, nil
			}
		}
		return reflect.Value{}, err

	case CategoryTimestamp:
		sec, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Set(reflect.ValueOf(time.Unix(sec, 0).UTC()))
		return out, nil

	case CategoryDuration:
		d, err := time.ParseDuration(trimmed)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(int64(d))
		return out, nil

	case CategoryNanoseconds:
		ns, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(ns)
		return out, nil

	case CategorySeconds:
		sec, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(int64(sec * float64(time.Second)))
		return out, nil

	case CategoryEnumString:
		return parseEnum(out, text, trimmed)

	case CategoryTextUnmarshaler:
		ptr := reflect.New(dst)
		err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
		if err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
}

func parseEnum(out reflect.Value, text, trimmed string) (reflect.Value, error) {
	kind := underlying(out.Type())

	switch {
	case kind == KindString:
		out.SetString(text)
	case kind == KindBool:
		v, err := parseAs(CategoryTextualBool, KindBool, trimmed, reflect.TypeOf(false))
		if err != nil {
			v, err = parseAs(CategoryNumericBool, KindBool, trimmed, reflect.TypeOf(false))
		}
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(v.Bool())
	case kind.IsNumber():
		if err := setNumber(out, kind, trimmed); err != nil {
			return reflect.Value{}, err
		}
	default:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotPrimitive, typeName(out.Type()))
	}

	if v, ok := out.Interface().(validator); ok && !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("%w: %q for %s", ErrInvalidEnum, text, typeName(out.Type()))
	}

	return out, nil
}

func setNumber(out reflect.Value, kind KindEnum, text string) error {
	switch {
	case kind.IsSigned():
		n, err := strconv.ParseInt(text, 10, kind.Bits())
		if err != nil {
			return err
		}
		out.SetInt(n)

	case kind.IsUnsigned():
		n, err := strconv.ParseUint(text, 10, kind.Bits())
		if err != nil {
			return err
		}
		out.SetUint(n)

	case kind.IsFloat():
		f, err := strconv.ParseFloat(text, kind.Bits())
		if err != nil {
			return err
		}
		out.SetFloat(f)

	default:
		return fmt.Errorf("%w: %s", ErrNotPrimitive, kind)
	}

	return nil
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
