package common

import (
	"go/token"
	"strings"
	"unicode"
)

// IsCIdent reports whether s is a valid C identifier: a letter or underscore
// followed by letters, digits or underscores, ASCII only.
func IsCIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// ToSnakeCase converts "SomeWord" or "XMLParser" to "some_word" / "xml_parser".
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		isUpper := r >= 'A' && r <= 'Z'

		if i > 0 && isUpper {
			prevIsLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			// end of an acronym: "XMLParser" at 'P'
			nextIsLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevIsLower || nextIsLower {
				b.WriteByte('_')
			}
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// GoPackageName turns an arbitrary name into a lower-case Go package name.
// Returns "" when nothing usable is left.
func GoPackageName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	name := strings.TrimLeft(b.String(), "0123456789")
	if name == "" || token.IsKeyword(name) {
		return ""
	}
	return name
}

// RustModuleName turns a name into a snake_case Rust module name.
func RustModuleName(s string) string {
	s = ToSnakeCase(s)
	s = strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || unicode.IsSpace(r) {
			return '_'
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return r
		}
		return -1
	}, s)
	return strings.TrimLeft(s, "0123456789_")
}
