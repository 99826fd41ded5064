// Package diagnostic collects the structured, non-fatal reports of a
// migration and of alias mapping validation.
//
// Key capabilities:
//   - Dropped node reports with "did you mean" suggestions
//   - Degraded conversion warnings
//   - Mapping file validation errors
package diagnostic
