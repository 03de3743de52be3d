package argbind

import (
	"reflect"

	"github.com/davecgh/go-spew/spew"
)

// Result is the outcome of a conversion attempt: either Unsuccessful, or a
// successful ordered sequence of values whose type is the target's scalar type.
type Result struct {
	ok     bool
	values []reflect.Value
}

// Unsuccessful signals a decline; the registry moves on to the next converter.
var Unsuccessful = Result{}

// Successful wraps produced values. A scalar conversion yields one value.
func Successful(values ...reflect.Value) Result {
	if values == nil {
		values = []reflect.Value{}
	}
	return Result{ok: true, values: values}
}

// Ok reports whether a converter accepted the value.
func (r Result) Ok() bool { return r.ok }

// Values returns the produced values in order.
func (r Result) Values() []reflect.Value { return r.values }

// Len returns the number of produced values.
func (r Result) Len() int { return len(r.values) }

// Interfaces unboxes the produced values.
func (r Result) Interfaces() []any {
	out := make([]any, len(r.values))
	for i, v := range r.values {
		out[i] = v.Interface()
	}
	return out
}

func (r Result) GoString() string {
	if !r.ok {
		return "argbind.Unsuccessful"
	}
	return "argbind.Successful" + spew.Sdump(r.Interfaces())
}
