package model

import (
	"strings"
	"unicode"
)

// DefaultLabeler converts a field name into a lowercase human label the way
// form libraries usually do: "first_name" and "firstName" become "first name".
func DefaultLabeler(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	var out strings.Builder
	prev := rune(0)
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			r = ' '
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(prev):
			out.WriteRune(' ')
		}
		if r == ' ' && prev == ' ' {
			continue
		}
		out.WriteRune(unicode.ToLower(r))
		prev = r
	}
	return strings.TrimSpace(out.String())
}
