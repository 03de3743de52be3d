package argbind

import (
	"fmt"
	"reflect"
)

// ConverterKind identifies one of the closed set of converter variants.
type ConverterKind int

const (
	KindBinary ConverterKind = iota + 1
	KindExistingDirectory
	KindFileContent
	KindDescriptor
)

func (k ConverterKind) String() string {
	switch k {
	case KindBinary:
		return "binary"
	case KindExistingDirectory:
		return "existing-directory"
	case KindFileContent:
		return "file-content"
	case KindDescriptor:
		return "descriptor"
	default:
		return fmt.Sprintf("ConverterKind(%d)", int(k))
	}
}

// DefaultConverterKinds is the standard precedence, descriptor last as the catch-all.
func DefaultConverterKinds() []ConverterKind {
	return []ConverterKind{KindBinary, KindExistingDirectory, KindFileContent, KindDescriptor}
}

// Converter turns one raw token into typed values.
//
// A converter that is not responsible for the (value, target, flags) combination
// returns Unsuccessful and a nil error. Once it has committed to the value, any
// failure is reported as a *ParseError instead.
type Converter interface {
	Kind() ConverterKind
	TryConvert(value string, target TargetType, flags ArgumentFlags) (Result, error)
}

// boxAs returns v as a reflect.Value of exactly type t
func boxAs(v any, t reflect.Type) reflect.Value {
	rv := reflect.ValueOf(v)
	if rv.Type() == t {
		return rv
	}
	out := reflect.New(t).Elem()
	if rv.Type().AssignableTo(t) {
		out.Set(rv)
	} else {
		out.Set(rv.Convert(t))
	}
	return out
}
