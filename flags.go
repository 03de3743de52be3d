package argbind

import (
	"fmt"
	"strings"
)

// ArgumentFlags is a set of converter-selection hints attached to an argument.
type ArgumentFlags uint

const (
	// AssumeBase64 decodes byte targets as standard base64
	AssumeBase64 ArgumentFlags = 1 << iota
	// AssumeHexadecimal decodes byte targets as hex, with or without a 0x prefix
	AssumeHexadecimal
	// ExistingDirectory requires the value to name a directory that exists
	ExistingDirectory
	// ReadFileContent treats the value as a path and converts the file's content
	ReadFileContent

	// NoFlags is the empty set
	NoFlags ArgumentFlags = 0
)

var flagNames = []struct {
	flag ArgumentFlags
	name string
	tag  string
}{
	{AssumeBase64, "AssumeBase64", "base64"},
	{AssumeHexadecimal, "AssumeHexadecimal", "hex"},
	{ExistingDirectory, "ExistingDirectory", "dir"},
	{ReadFileContent, "ReadFileContent", "file"},
}

// Has reports whether all bits of f are set.
func (a ArgumentFlags) Has(f ArgumentFlags) bool {
	return a&f == f
}

func (a ArgumentFlags) String() string {
	if a == NoFlags {
		return "None"
	}
	var parts []string
	rest := a
	for _, fn := range flagNames {
		if a.Has(fn.flag) {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseArgumentFlags reads the `flags=` struct tag form, e.g. "hex|file".
// Both the short tag names and the full flag names are accepted, case-insensitively.
func ParseArgumentFlags(s string) (ArgumentFlags, error) {
	var out ArgumentFlags
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, fn := range flagNames {
			if strings.EqualFold(part, fn.tag) || strings.EqualFold(part, fn.name) {
				out |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return NoFlags, fmt.Errorf("%w: unknown argument flag %q", ErrInvalidSchema, part)
		}
	}
	return out, nil
}
