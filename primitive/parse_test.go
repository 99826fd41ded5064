package primitive_test

import (
	"net/netip"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xml-migrator/primitive"
)

type Color string

func (c Color) IsValid() bool { return c == "red" || c == "green" }

type Level int

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		dst  reflect.Type
		want any
	}{
		{"int", " 42 ", reflect.TypeFor[int](), 42},
		{"negative int8", "-128", reflect.TypeFor[int8](), int8(-128)},
		{"uint16", "65535", reflect.TypeFor[uint16](), uint16(65535)},
		{"float64", "1.5", reflect.TypeFor[float64](), 1.5},
		{"string keeps spaces", " text1 ", reflect.TypeFor[string](), " text1 "},
		{"bytes", "abc", reflect.TypeFor[[]byte](), []byte("abc")},
		{"bool textual", "Yes", reflect.TypeFor[bool](), true},
		{"bool numeric", "0", reflect.TypeFor[bool](), false},
		{"time rfc3339", "2024-05-01T10:00:00Z", reflect.TypeFor[time.Time](), time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
		{"time date only", "2024-05-01", reflect.TypeFor[time.Time](), time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{"time unix seconds", "0", reflect.TypeFor[time.Time](), time.Unix(0, 0).UTC()},
		{"duration text", "2h45m", reflect.TypeFor[time.Duration](), 2*time.Hour + 45*time.Minute},
		{"duration nanoseconds", "1500", reflect.TypeFor[time.Duration](), 1500 * time.Nanosecond},
		{"duration seconds", "1.5", reflect.TypeFor[time.Duration](), 1500 * time.Millisecond},
		{"string enum", "red", reflect.TypeFor[Color](), Color("red")},
		{"int enum", "3", reflect.TypeFor[Level](), Level(3)},
		{"text unmarshaler", "10.0.0.1", reflect.TypeFor[netip.Addr](), netip.MustParseAddr("10.0.0.1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := primitive.Parse(tt.text, tt.dst, primitive.CategoryAll)
			require.NoError(t, err)
			assert.Equal(t, tt.dst, v.Type())
			assert.Equal(t, tt.want, v.Interface())
		})
	}
}

func TestParseFailures(t *testing.T) {
	t.Parallel()

	t.Run("not a number", func(t *testing.T) {
		t.Parallel()

		_, err := primitive.Parse("abc", reflect.TypeFor[int](), primitive.CategoryAll)
		require.Error(t, err)
	})

	t.Run("overflow", func(t *testing.T) {
		t.Parallel()

		_, err := primitive.Parse("300", reflect.TypeFor[uint8](), primitive.CategoryAll)
		require.Error(t, err)
	})

	t.Run("struct is not primitive", func(t *testing.T) {
		t.Parallel()

		_, err := primitive.Parse("x", reflect.TypeFor[struct{ A int }](), primitive.CategoryAll)
		require.ErrorIs(t, err, primitive.ErrNotPrimitive)
	})

	t.Run("slice is not primitive", func(t *testing.T) {
		t.Parallel()

		_, err := primitive.Parse("x", reflect.TypeFor[[]string](), primitive.CategoryAll)
		require.ErrorIs(t, err, primitive.ErrNotPrimitive)
	})

	t.Run("invalid enumerant", func(t *testing.T) {
		t.Parallel()

		_, err := primitive.Parse("blue", reflect.TypeFor[Color](), primitive.CategoryAll)
		require.ErrorIs(t, err, primitive.ErrInvalidEnum)
	})

	t.Run("category disabled", func(t *testing.T) {
		t.Parallel()

		_, err := primitive.Parse("1", reflect.TypeFor[int](), primitive.CategoryNone)
		require.ErrorIs(t, err, primitive.ErrCategoryNotAllowed)
	})

	t.Run("numeric bool only", func(t *testing.T) {
		t.Parallel()

		_, err := primitive.Parse("yes", reflect.TypeFor[bool](), primitive.CategoryNumericBool)
		require.ErrorIs(t, err, primitive.ErrInvalidBool)

		v := primitive.MustParse("1", reflect.TypeFor[bool](), primitive.CategoryNumericBool)
		assert.True(t, v.Bool())
	})

	t.Run("duration ambiguity prefers text", func(t *testing.T) {
		t.Parallel()

		v, err := primitive.Parse("90s", reflect.TypeFor[time.Duration](), primitive.CategoryDuration|primitive.CategorySeconds)
		require.NoError(t, err)
		assert.Equal(t, 90*time.Second, v.Interface())
	})
}
