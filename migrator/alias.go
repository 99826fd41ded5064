package migrator

import (
	"xml-migrator/internal/convert"
	"xml-migrator/internal/diagnostic"
)

// Re-exported so callers outside the module can observe conversions and read
// reports.
type (
	Observer    = convert.Observer
	Event       = convert.Event
	Result      = convert.Result
	Object      = convert.Object
	Diagnostics = diagnostic.Diagnostics
	Diagnostic  = diagnostic.Diagnostic
)

const (
	CodeUnmappedNode     = diagnostic.CodeUnmappedNode
	CodeConversionFailed = diagnostic.CodeConversionFailed
	CodePartialList      = diagnostic.CodePartialList
	CodeAssignFailed     = diagnostic.CodeAssignFailed
	CodeSnapshotFailed   = diagnostic.CodeSnapshotFailed
)
