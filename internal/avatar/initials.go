package avatar

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxInitials = 2

func isNameDelimiter(r rune) bool {
	return r == ' ' || r == '-' || r == '\t'
}

// Initials returns the uppercased first letter of the first two words of
// name. Words are separated by spaces, hyphens or tabs.
func Initials(name string) string {
	parts := strings.FieldsFunc(name, isNameDelimiter)
	if len(parts) > maxInitials {
		parts = parts[:maxInitials]
	}

	initials := make([]rune, 0, maxInitials)
	for _, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		if size > 0 {
			initials = append(initials, unicode.ToUpper(r))
		}
	}
	return string(initials)
}
