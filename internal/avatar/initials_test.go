package avatar

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Ada Lovelace", "AL"},
		{"cher", "C"},
		{"  ", ""},
		{"", ""},
		{"Gérald Barré", "GB"},
		{"jean-luc picard", "JL"},
		{"  grace \t  hopper  ", "GH"},
		{"Éric de la Composition", "ÉD"},
		{"--- ---", ""},
		{"Пьер", "П"},
		{"mary-kate olsen twins", "MK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Initials(tt.name))
		})
	}
}

func TestInitialsAreShortAndUppercase(t *testing.T) {
	names := []string{
		"a b c d e",
		"zoë-ann o'brien",
		"\t\tx",
		"ünïcode ñame",
		strings.Repeat("word ", 50),
	}

	for _, name := range names {
		initials := Initials(name)
		assert.LessOrEqual(t, utf8.RuneCountInString(initials), 2, name)
		for _, r := range initials {
			assert.True(t, unicode.IsUpper(r), "%q in %q", r, initials)
		}
	}
}
