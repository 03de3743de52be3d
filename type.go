// File: lixenwraith/argbind/type.go
package argbind

import (
	"encoding"
	"reflect"
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	stringType          = reflect.TypeOf("")
	emptyInterfaceType  = reflect.TypeOf((*any)(nil)).Elem()
)

// TargetType describes the shape a raw string must become.
// Scalar is Declared itself unless Declared is a vector shape, in which case it is the element type.
type TargetType struct {
	declared reflect.Type
	scalar   reflect.Type
	vector   bool
}

// NewTargetType builds the descriptor for a declared Go type.
// Slices are vectors, except slice types that unmarshal themselves from text (net.IP).
func NewTargetType(t reflect.Type) TargetType {
	if t == nil {
		t = emptyInterfaceType
	}
	if isVectorShape(t) {
		return TargetType{declared: t, scalar: t.Elem(), vector: true}
	}
	return TargetType{declared: t, scalar: t}
}

// TargetOf is NewTargetType for a type parameter.
func TargetOf[T any]() TargetType {
	return NewTargetType(reflect.TypeOf((*T)(nil)).Elem())
}

func isVectorShape(t reflect.Type) bool {
	if t.Kind() != reflect.Slice {
		return false
	}
	return !reflect.PointerTo(t).Implements(textUnmarshalerType)
}

// Declared returns the type as written on the argument.
func (t TargetType) Declared() reflect.Type { return t.declared }

// Scalar returns the element type for vectors, otherwise the declared type.
func (t TargetType) Scalar() reflect.Type { return t.scalar }

// IsVector reports whether the target collects several values.
func (t TargetType) IsVector() bool { return t.vector }

// IsZero reports whether the descriptor was never initialized.
func (t TargetType) IsZero() bool { return t.declared == nil }

func (t TargetType) String() string {
	if t.declared == nil {
		return "<nil>"
	}
	return t.declared.String()
}

// scalarTarget returns the descriptor of a single element of t.
func (t TargetType) scalarTarget() TargetType {
	return TargetType{declared: t.scalar, scalar: t.scalar}
}

// isByte matches byte and named byte types
func isByte(t reflect.Type) bool {
	return t.Kind() == reflect.Uint8
}

// isPassThrough matches targets the raw string satisfies unchanged
func isPassThrough(t reflect.Type) bool {
	return t == stringType || t == emptyInterfaceType
}
