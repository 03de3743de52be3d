package argbind

import (
	"fmt"
	"net"
	"net/url"
	"reflect"
	"strings"
	"time"
)

// Multiplicity is how many raw tokens an argument consumes per occurrence.
type Multiplicity int

const (
	// Switch takes no token; its presence means true
	Switch Multiplicity = iota
	// Single takes exactly one token and may occur once
	Single
	// Many takes one or more tokens per occurrence and accumulates
	Many
)

func (m Multiplicity) String() string {
	switch m {
	case Switch:
		return "switch"
	case Single:
		return "single"
	case Many:
		return "many"
	default:
		return fmt.Sprintf("Multiplicity(%d)", int(m))
	}
}

// Argument is one declared command-line parameter.
type Argument struct {
	Name         string
	Short        string
	Aliases      []string
	Help         string
	Default      string
	HasDefault   bool
	Flags        ArgumentFlags
	Multiplicity Multiplicity
	Required     bool
	Positional   bool
	Target       TargetType

	index []int // field path from the bound struct
}

// valueStructs are struct types converted as a whole rather than flattened into sub-arguments
var valueStructs = map[reflect.Type]bool{
	reflect.TypeOf(time.Time{}):      true,
	reflect.TypeOf(url.URL{}):        true,
	reflect.TypeOf(net.IPNet{}):      true,
	reflect.TypeOf(DirectoryEntry{}): true,
	reflect.TypeOf(FileEntry{}):      true,
	yamlDocumentType:                 true,
}

func isValueStruct(t reflect.Type) bool {
	return valueStructs[t] || reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// buildSchema derives the arguments from struct tags.
// The tag form is `arg:"name,short=n,alias=other,flags=hex|file,required,positional,many"`,
// with optional `help:"..."` and `default:"..."` tags alongside.
func buildSchema(t reflect.Type) ([]*Argument, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: bind target must be a struct, got %s", ErrInvalidSchema, t)
	}

	var errors []string
	var args []*Argument
	registerFields(t, "", nil, &args, &errors)

	if len(errors) > 0 {
		return nil, fmt.Errorf("%w: failed to register %d field(s): %s", ErrInvalidSchema, len(errors), strings.Join(errors, "; "))
	}
	return args, nil
}

// registerFields is a helper function that handles the recursive field registration.
func registerFields(t reflect.Type, pathPrefix string, index []int, args *[]*Argument, errors *[]string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("arg")
		if tag == "-" {
			continue // Skip this field
		}

		fieldIndex := append(append([]int(nil), index...), i)
		parts := strings.Split(tag, ",")

		key := kebabCase(field.Name)
		if parts[0] != "" {
			key = parts[0]
		}

		// Embedded structs contribute their fields without a prefix
		if field.Anonymous && field.Type.Kind() == reflect.Struct && parts[0] == "" {
			registerFields(field.Type, pathPrefix, fieldIndex, args, errors)
			continue
		}

		currentPath := pathPrefix + key

		if field.Type.Kind() == reflect.Struct && !isValueStruct(field.Type) {
			registerFields(field.Type, currentPath+".", fieldIndex, args, errors)
			continue
		}

		arg, err := newArgument(currentPath, field, parts[1:])
		if err != nil {
			*errors = append(*errors, fmt.Sprintf("field %s (argument %s): %v", field.Name, currentPath, err))
			continue
		}
		arg.index = fieldIndex
		*args = append(*args, arg)
	}
}

func newArgument(name string, field reflect.StructField, options []string) (*Argument, error) {
	if !isValidName(name) {
		return nil, fmt.Errorf("invalid argument name %q", name)
	}

	arg := &Argument{
		Name:   name,
		Help:   field.Tag.Get("help"),
		Target: NewTargetType(field.Type),
	}
	arg.Default, arg.HasDefault = field.Tag.Lookup("default")

	var forced *Multiplicity
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		key, value, _ := strings.Cut(opt, "=")
		switch key {
		case "":
		case "short":
			if len(value) != 1 || !(isAlpha(rune(value[0])) || isNumeric(rune(value[0]))) {
				return nil, fmt.Errorf("short name must be a single ASCII letter or digit, got %q", value)
			}
			arg.Short = value
		case "alias":
			if !isValidName(value) {
				return nil, fmt.Errorf("invalid alias %q", value)
			}
			arg.Aliases = append(arg.Aliases, value)
		case "flags":
			flags, err := ParseArgumentFlags(value)
			if err != nil {
				return nil, err
			}
			arg.Flags = flags
		case "required":
			arg.Required = true
		case "positional":
			arg.Positional = true
		case "many":
			m := Many
			forced = &m
		case "single":
			m := Single
			forced = &m
		default:
			return nil, fmt.Errorf("unknown tag option %q", opt)
		}
	}

	arg.Multiplicity = defaultMultiplicity(arg)
	if forced != nil {
		if *forced == Many && !arg.Target.IsVector() {
			return nil, fmt.Errorf("option many needs a slice field, got %s", arg.Target)
		}
		arg.Multiplicity = *forced
	}
	if arg.Positional && arg.Multiplicity == Switch {
		arg.Multiplicity = Single
	}
	return arg, nil
}

// defaultMultiplicity picks Switch for booleans and Many for plain vectors.
// Vectors produced whole from one token (byte blobs, file lines, directory listings) stay Single.
func defaultMultiplicity(arg *Argument) Multiplicity {
	t := arg.Target
	if !t.IsVector() && t.Scalar().Kind() == reflect.Bool {
		return Switch
	}
	if t.IsVector() && !isByte(t.Scalar()) && !arg.Flags.Has(ReadFileContent) && !arg.Flags.Has(ExistingDirectory) {
		return Many
	}
	return Single
}
