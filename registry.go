// FILE: lixenwraith/argbind/registry.go
package argbind

import (
	"fmt"
	"reflect"
)

// Registry owns one instance per converter kind and selects among them in insertion order.
// It is built once and only read afterwards, so a registry whose FileSystem is safe for
// concurrent reads may be shared between goroutines.
type Registry struct {
	converters []Converter
	byKind     map[ConverterKind]Converter

	fs         FileSystem
	env        Environment
	descriptor *descriptorConverter
}

// NewRegistry creates an empty registry. Nil collaborators fall back to the OS.
func NewRegistry(fs FileSystem, env Environment) *Registry {
	if fs == nil {
		fs = OSFileSystem()
	}
	if env == nil {
		env = OSEnvironment()
	}
	return &Registry{
		byKind:     make(map[ConverterKind]Converter),
		fs:         fs,
		env:        env,
		descriptor: newDescriptorConverter(),
	}
}

// NewDefaultRegistry creates a registry holding DefaultConverterKinds.
func NewDefaultRegistry(fs FileSystem, env Environment) *Registry {
	r := NewRegistry(fs, env)
	for _, kind := range DefaultConverterKinds() {
		// Kinds are distinct and known, Add cannot fail here
		_ = r.Add(kind)
	}
	return r
}

// Add constructs the converter of the given kind and appends it to the precedence order.
func (r *Registry) Add(kind ConverterKind) error {
	if _, exists := r.byKind[kind]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateConverter, kind)
	}

	var c Converter
	switch kind {
	case KindBinary:
		c = &binaryConverter{}
	case KindExistingDirectory:
		c = &directoryConverter{fs: r.fs, env: r.env}
	case KindFileContent:
		c = &fileContentConverter{fs: r.fs, env: r.env, lines: r.descriptor}
	case KindDescriptor:
		c = r.descriptor
	default:
		return fmt.Errorf("unsupported converter kind %s", kind)
	}

	r.converters = append(r.converters, c)
	r.byKind[kind] = c
	return nil
}

// Get returns the previously added converter of the given kind.
func (r *Registry) Get(kind ConverterKind) (Converter, error) {
	c, ok := r.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConverterNotFound, kind)
	}
	return c, nil
}

// Kinds returns the registered kinds in precedence order.
func (r *Registry) Kinds() []ConverterKind {
	kinds := make([]ConverterKind, len(r.converters))
	for i, c := range r.converters {
		kinds[i] = c.Kind()
	}
	return kinds
}

// TryConvert returns the first successful result in precedence order.
// When every converter declines it returns Unsuccessful and a nil error;
// a fatal error from a committed converter stops the search.
func (r *Registry) TryConvert(value string, target TargetType, flags ArgumentFlags) (Result, error) {
	for _, c := range r.converters {
		res, err := c.TryConvert(value, target, flags)
		if err != nil {
			return Unsuccessful, err
		}
		if res.Ok() {
			return res, nil
		}
	}
	return Unsuccessful, nil
}

// Convert runs value through the registry and assigns the produced values to a T.
// T is the declared type: Convert[[]byte] decodes a blob, Convert[int] a single number.
func Convert[T any](r *Registry, value string, flags ArgumentFlags) (T, error) {
	var out T
	target := TargetOf[T]()

	res, err := r.TryConvert(value, target, flags)
	if err != nil {
		return out, err
	}
	if !res.Ok() {
		return out, parseErrorf(nil, "cannot convert %q to %s", truncateValue(value), target)
	}

	dst := reflect.ValueOf(&out).Elem()
	if err := assignValues(dst, target, res.Values(), false); err != nil {
		return out, err
	}
	return out, nil
}
