// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email lowercases and trims an email for storage and lookups. Email
// matching is case-insensitive throughout the app.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role uppercases and trims a role value before enum validation.
func Role(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Enum uppercases and trims a status/priority value before validation.
func Enum(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
