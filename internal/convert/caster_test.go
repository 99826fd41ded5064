package convert_test

import (
	"fmt"
	"strconv"
	"strings"

	"xml-migrator/internal/convert"
)

type moreThanError interface {
	error
	More()
}

func empty()                             { panic("not implemented") }
func wrong(string) (string, error, bool) { panic("not implemented") }

func full(string) (int, bool, error)             { panic("not implemented") }
func customError(string) (string, moreThanError) { panic("not implemented") }

func ExampleParseCaster() {
	desc, err := convert.ParseCaster(full)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = convert.ParseCaster(strings.ToUpper)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = convert.ParseCaster(strconv.Atoi)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	desc, err = convert.ParseCaster(customError)
	fmt.Println(err, desc.PackageAlias, desc.Name, desc.Src.Kind(), desc.Dst.Kind(), desc.HasBool, desc.HasErr)

	_, err = convert.ParseCaster(strconv.Itoa)
	fmt.Println(err)

	_, err = convert.ParseCaster(empty)
	fmt.Println(err)

	_, err = convert.ParseCaster(wrong)
	fmt.Println(err)

	_, err = convert.ParseCaster(42)
	fmt.Println(err)

	// Output:
	// <nil> convert_test full string int true true
	// <nil> strings ToUpper string string false false
	// <nil> strconv Atoi string int false true
	// <nil> convert_test customError string string false true
	// caster must accept a string, got int
	// provided function is not a recognizable caster
	// provided function is not a recognizable caster
	// provided caster is not a function
}
