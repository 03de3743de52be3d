// File: lixenwraith/argbind/helper.go
package argbind

import (
	"strings"
	"unicode"
)

// kebabCase derives an argument name from a Go field name: OutputDir -> output-dir, HTTPPort -> http-port.
func kebabCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Break before an upper-case rune that starts a new word
			startsWord := i > 0 && runes[i-1] != '_' && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]) ||
				(i+1 < len(runes) && unicode.IsLower(runes[i+1])))
			if startsWord {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if r == '_' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isValidName checks a dotted argument name; every segment must be a valid key segment.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	for _, segment := range strings.Split(name, ".") {
		if !isValidKeySegment(segment) {
			return false
		}
	}
	return true
}

// isValidKeySegment checks if a single name segment is valid.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	firstChar := rune(s[0])
	if !isAlpha(firstChar) && !isNumeric(firstChar) && firstChar != '_' {
		return false
	}
	for _, r := range s[1:] {
		if !isAlpha(r) && !isNumeric(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}

// isAlpha checks if a character is a letter (A-Z, a-z)
func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isNumeric checks if a character is a digit (0-9)
func isNumeric(c rune) bool {
	return c >= '0' && c <= '9'
}

// looksNumeric reports whether a dash-prefixed token is a negative number rather than an option
func looksNumeric(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	seenDigit := false
	for _, r := range s {
		switch {
		case isNumeric(r):
			seenDigit = true
		case r == '.' || r == 'e' || r == 'E' || r == '_':
		default:
			return false
		}
	}
	return seenDigit
}
