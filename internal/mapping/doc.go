// Package mapping provides the YAML alias mapping file: declarations of
// legacy names and exclusions kept outside the Go types, for types that
// cannot carry `migrate` tags (generated or third-party code).
//
// # Schema Overview
//
//	version: "1"
//	types:
//	  - type: warehouse.Order      # Go name, package qualified name or root element
//	    # legacy name: current member, the shorthand for single aliases
//	    121:
//	      OrderNo: Number
//	    # current member: one or more legacy names
//	    aliases:
//	      Customer: [CustomerName, Buyer]
//	      Lines: OrderLines
//	    # members never migrated
//	    ignore:
//	      - Audit
//
// Members are named by Go identifier or by serialized name. Entries of "121"
// are merged into "aliases" by NormalizeMappingFile. ExportSuggestions drafts
// a file in the "121" form from the nodes a migration dropped.
package mapping
