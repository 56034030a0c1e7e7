// Package normalize prepares free-text statement descriptions for rule matching.
package normalize

import "strings"

// Description uppercases, trims and collapses internal whitespace so that
// rule patterns match statement text regardless of casing and spacing.
func Description(s string) string {
	return strings.Join(strings.Fields(strings.ToUpper(s)), " ")
}
