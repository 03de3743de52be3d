package argbind

import (
	"fmt"
	"reflect"
)

// assignValues stores converted values into dst.
// Vector targets replace the slice unless appendTo is set; scalar targets need exactly one value.
func assignValues(dst reflect.Value, target TargetType, values []reflect.Value, appendTo bool) error {
	if !dst.CanSet() {
		return fmt.Errorf("%w: destination of type %s is not settable", ErrBinding, dst.Type())
	}

	if target.IsVector() {
		slice := dst
		if !appendTo || slice.IsNil() {
			slice = reflect.MakeSlice(dst.Type(), 0, len(values))
		}
		elem := dst.Type().Elem()
		for _, v := range values {
			ev, err := fitValue(v, elem)
			if err != nil {
				return err
			}
			slice = reflect.Append(slice, ev)
		}
		dst.Set(slice)
		return nil
	}

	if len(values) != 1 {
		return fmt.Errorf("%w: %d values produced for scalar type %s", ErrBinding, len(values), target)
	}
	v, err := fitValue(values[0], dst.Type())
	if err != nil {
		return err
	}
	dst.Set(v)
	return nil
}

// fitValue adapts v to type t by assignment or a same-kind conversion
func fitValue(v reflect.Value, t reflect.Type) (reflect.Value, error) {
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if v.Kind() == t.Kind() && v.Type().ConvertibleTo(t) {
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: value of type %s is not assignable to %s", ErrBinding, v.Type(), t)
}
