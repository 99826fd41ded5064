// Package match scores how close two XML names are. The migrator uses it to
// suggest current members for legacy nodes it had to drop; suggestions are
// only reported, never applied.
package match
