package normalize

import (
	"fmt"
	"reflect"
)

// presence is the initialization state of a Field.
type presence uint8

const (
	absent presence = iota
	null
	present
)

// Field is a tri-state model attribute: unset, explicitly null, or set to a
// value. The zero Field is unset.
//
// Unset fields are omitted from encoded output. Explicitly null fields are
// emitted as null, which lets a partial update say "clear this" as opposed to
// "leave unchanged".
type Field[T any] struct {
	value T
	state presence
}

// Some returns a Field set to v.
func Some[T any](v T) Field[T] {
	return Field[T]{value: v, state: present}
}

// Null returns a Field explicitly set to null.
func Null[T any]() Field[T] {
	return Field[T]{state: null}
}

// Set assigns v.
func (f *Field[T]) Set(v T) {
	f.value = v
	f.state = present
}

// SetNull marks the field as explicitly null.
func (f *Field[T]) SetNull() {
	var zero T
	f.value = zero
	f.state = null
}

// Unset returns the field to the never-touched state.
func (f *Field[T]) Unset() {
	var zero T
	f.value = zero
	f.state = absent
}

// Get returns the value and whether the field holds one.
// Unset and null fields both report false.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == present
}

// Value returns the value, or the zero value when the field holds none.
func (f Field[T]) Value() T {
	return f.value
}

// OrElse returns the value, or def when the field holds none.
func (f Field[T]) OrElse(def T) T {
	if f.state != present {
		return def
	}
	return f.value
}

// IsSet reports whether the field was initialized, either to a value or to null.
func (f Field[T]) IsSet() bool {
	return f.state != absent
}

// IsNull reports whether the field was explicitly set to null.
func (f Field[T]) IsNull() bool {
	return f.state == null
}

func (f Field[T]) String() string {
	switch f.state {
	case absent:
		return "<unset>"
	case null:
		return "<null>"
	}
	return fmt.Sprint(f.value)
}

// slot is the reflective view of a Field used by object handlers.
type slot interface {
	slotState() presence
	slotValue() reflect.Value
	slotType() reflect.Type
	slotMark(presence)
}

func (f *Field[T]) slotState() presence {
	return f.state
}

func (f *Field[T]) slotValue() reflect.Value {
	return reflect.ValueOf(&f.value).Elem()
}

func (f *Field[T]) slotType() reflect.Type {
	return reflect.TypeFor[T]()
}

func (f *Field[T]) slotMark(p presence) {
	if p != present {
		var zero T
		f.value = zero
	}
	f.state = p
}

var slotIface = reflect.TypeFor[slot]()

// slotElem returns T when rt is a Field[T].
func slotElem(rt reflect.Type) (reflect.Type, bool) {
	if rt.Kind() != reflect.Struct || !reflect.PointerTo(rt).Implements(slotIface) {
		return nil, false
	}
	return reflect.New(rt).Interface().(slot).slotType(), true
}
