package main

import (
	"reflect"
	"slices"

	"xml-migrator/warehouse"
)

// knownTypes are the current types a document can be migrated into.
var knownTypes = map[string]reflect.Type{
	"warehouse.Order":   reflect.TypeFor[warehouse.Order](),
	"warehouse.Catalog": reflect.TypeFor[warehouse.Catalog](),
	"warehouse.Product": reflect.TypeFor[warehouse.Product](),
}

// casters are registered on every migrator the CLI builds.
var casters = []any{
	warehouse.ParseStatus,
}

func typeNames() []string {
	names := make([]string, 0, len(knownTypes))
	for name := range knownTypes {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

func typeList() []reflect.Type {
	out := make([]reflect.Type, 0, len(knownTypes))
	for _, name := range typeNames() {
		out = append(out, knownTypes[name])
	}

	return out
}
