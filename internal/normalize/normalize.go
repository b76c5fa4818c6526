// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import "strings"

// EntityName normalizes a character, location, or project name for storage:
// surrounding whitespace is trimmed, interior runs of whitespace collapse to a
// single space, and the result is upper-cased.
//
//	EntityName("  alice  ") == "ALICE"
//	EntityName("the  hideout") == "THE HIDEOUT"
func EntityName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(strings.Join(fields, " "))
}

// Email normalizes an email address for case-insensitive comparison.
// The stored address keeps its original casing; this form is only a lookup key.
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Nickname normalizes a nickname for case-insensitive uniqueness checks.
func Nickname(nickname string) string {
	return strings.ToLower(strings.TrimSpace(nickname))
}
