// Package optional models a JSON field that can be absent, explicitly null, or set.
package optional

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Value[T any] struct {
	V    T
	Set  bool
	Null bool
}

func Of[T any](v T) Value[T] {
	return Value[T]{V: v, Set: true}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// Present reports whether the field carries a non-null value.
func (v Value[T]) Present() bool {
	return v.Set && !v.Null
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Set = true
	if string(data) == "null" {
		var zero T
		v.V = zero
		v.Null = true
		return nil
	}
	v.Null = false
	return json.Unmarshal(data, &v.V)
}
