// Package optional provides a tri-state value that distinguishes an absent
// field from an explicit JSON null and from a present value.
//
// Converters between the host model and the wire format must preserve all
// three states: an absent range stays absent and a null range stays null.
package optional

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	absent state = iota
	null
	present
)

// Value holds an optional T. The zero Value is absent.
type Value[T any] struct {
	v     T
	state state
}

// Absent returns an absent value.
func Absent[T any]() Value[T] { return Value[T]{} }

// Null returns an explicit null value.
func Null[T any]() Value[T] { return Value[T]{state: null} }

// Of returns a present value.
func Of[T any](v T) Value[T] { return Value[T]{v: v, state: present} }

// FromPtr returns Null for a nil pointer and Of(*p) otherwise.
func FromPtr[T any](p *T) Value[T] {
	if p == nil {
		return Null[T]()
	}
	return Of(*p)
}

// IsAbsent reports whether the value was never set.
func (o Value[T]) IsAbsent() bool { return o.state == absent }

// IsNull reports whether the value is an explicit null.
func (o Value[T]) IsNull() bool { return o.state == null }

// IsPresent reports whether the value holds a T.
func (o Value[T]) IsPresent() bool { return o.state == present }

// IsZero reports absence; it lets `omitzero` drop absent fields.
func (o Value[T]) IsZero() bool { return o.state == absent }

// Get returns the held value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.state == present
}

// OrElse returns the held value, or def when absent or null.
func (o Value[T]) OrElse(def T) T {
	if o.state == present {
		return o.v
	}
	return def
}

// Ptr returns a pointer to the held value, or nil when absent or null.
func (o Value[T]) Ptr() *T {
	if o.state != present {
		return nil
	}
	v := o.v
	return &v
}

// Map converts a present value with fn and keeps absent and null as they are.
func Map[T, U any](o Value[T], fn func(T) U) Value[U] {
	switch o.state {
	case null:
		return Null[U]()
	case present:
		return Of(fn(o.v))
	default:
		return Absent[U]()
	}
}

// MarshalJSON encodes absent and null as null. Use `omitzero` to skip
// absent fields entirely.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if o.state != present {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON decodes null as Null and anything else as a present value.
// Fields missing from the input stay absent.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.v = zero
		o.state = null
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.v = v
	o.state = present
	return nil
}
