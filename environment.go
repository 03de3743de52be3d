package argbind

import (
	"os"
	"strings"
)

// Environment expands variable references in raw argument values.
type Environment interface {
	ExpandEnvironmentVariables(s string) string
	Lookup(name string) (string, bool)
}

// LookupFunc resolves a variable name
type LookupFunc func(name string) (string, bool)

// lookupEnvironment expands $VAR, ${VAR} and %VAR%. Undefined references are kept verbatim.
type lookupEnvironment struct {
	lookup LookupFunc
}

// OSEnvironment expands against the process environment.
func OSEnvironment() Environment {
	return lookupEnvironment{lookup: os.LookupEnv}
}

// MapEnvironment expands against a fixed map, mostly for tests.
func MapEnvironment(vars map[string]string) Environment {
	return lookupEnvironment{lookup: func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}}
}

// LookupEnvironment expands through an arbitrary lookup function.
func LookupEnvironment(fn LookupFunc) Environment {
	return lookupEnvironment{lookup: fn}
}

func (e lookupEnvironment) Lookup(name string) (string, bool) {
	return e.lookup(name)
}

func (e lookupEnvironment) ExpandEnvironmentVariables(s string) string {
	if !strings.ContainsAny(s, "$%") {
		return s
	}

	var b strings.Builder
	i := 0
	for i < len(s) {
		c := s[i]
		if c != '$' && c != '%' {
			b.WriteByte(c)
			i++
			continue
		}

		name, width := referenceAt(s[i:])
		if width > 0 {
			if v, ok := e.lookup(name); ok {
				b.WriteString(v)
				i += width
				continue
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// referenceAt parses a variable reference at the start of s.
// Returns the variable name and the byte width of the reference, or width 0.
func referenceAt(s string) (string, int) {
	switch {
	case strings.HasPrefix(s, "${"):
		end := strings.IndexByte(s, '}')
		if end < 0 || !isVarName(s[2:end]) {
			return "", 0
		}
		return s[2:end], end + 1
	case s[0] == '$':
		n := 1
		for n < len(s) && isVarChar(s[n], n == 1) {
			n++
		}
		if n == 1 {
			return "", 0
		}
		return s[1:n], n
	case s[0] == '%':
		end := strings.IndexByte(s[1:], '%')
		if end <= 0 || !isVarName(s[1:end+1]) {
			return "", 0
		}
		return s[1 : end+1], end + 2
	}
	return "", 0
}

func isVarName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isVarChar(s[i], i == 0) {
			return false
		}
	}
	return true
}

func isVarChar(c byte, first bool) bool {
	isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
	isDigit := c >= '0' && c <= '9'
	if first {
		return isLetter || c == '_'
	}
	return isLetter || isDigit || c == '_'
}
