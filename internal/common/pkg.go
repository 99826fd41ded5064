package common

import "path"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// TypeNames lists the identifiers a named type can be referred to by in
// configuration: bare name, alias qualified and import path qualified.
func TypeNames(pkgPath, name string) []string {
	if pkgPath == "" {
		return []string{name}
	}

	return []string{name, PkgAlias(pkgPath) + "." + name, pkgPath + "." + name}
}
