package normalize

import (
	"context"
	"reflect"
)

// TypeID is the stable name a type is registered under.
type TypeID string

// Handler converts between wire values and one model type.
type Handler interface {
	// TypeID returns the identifier the handler serves.
	TypeID() TypeID

	// FromWire builds a model from raw. Raw mappings carrying $ref or
	// $recursiveRef yield a Reference; null or non-mapping input yields a
	// default model.
	FromWire(s *Scope, raw any) (any, error)

	// ToWire renders v, emitting only initialized fields.
	ToWire(s *Scope, v any) (any, error)

	// SupportsType reports whether the handler serves id.
	SupportsType(id TypeID) bool

	// SupportsValue reports whether the handler can encode v.
	SupportsValue(v any) bool
}

// Factory builds a handler. The dispatcher passes itself so the handler can
// recurse into nested types.
type Factory func(d *Dispatcher) Handler

// Entry is a single registration.
type Entry struct {
	ID      TypeID         // Identifier used for decode dispatch
	Type    reflect.Type   // Go type used for encode dispatch; nil for decode-only entries
	Factory Factory        // Handler constructor
	Nested  []reflect.Type // Go types reachable from this type's fields

	err    error       // declaration error surfaced at registration
	source *funcSource // set by Func; distinguishes separately built entries
}

type funcSource struct {
	id TypeID
}

// Scope carries per-call state through a decode or encode tree.
type Scope struct {
	ctx    context.Context
	d      *Dispatcher
	typeID TypeID
	origin string
	path   string
	masker Masker // nil unless the call redacts secrets
}

// Context returns the context of the originating call.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Dispatcher returns the dispatcher serving the call.
func (s *Scope) Dispatcher() *Dispatcher {
	return s.d
}

// Origin returns the document origin references are relative to.
func (s *Scope) Origin() string {
	return s.origin
}

// Path returns the location of the current value inside the wire tree.
func (s *Scope) Path() string {
	return s.path
}

// TypeID returns the identifier of the handler currently running.
func (s *Scope) TypeID() TypeID {
	return s.typeID
}

// At returns a child scope for mapping key k.
func (s *Scope) At(k string) *Scope {
	child := *s
	child.path = keyPath(s.path, k)
	return &child
}

// Index returns a child scope for list index i.
func (s *Scope) Index(i int) *Scope {
	child := *s
	child.path = indexPath(s.path, i)
	return &child
}

// Decode recursively decodes raw as type id.
func (s *Scope) Decode(id TypeID, raw any) (any, error) {
	return s.d.decodeIn(s, id, raw)
}

// Encode recursively encodes v through the handler for its runtime type.
func (s *Scope) Encode(v any) (any, error) {
	return s.d.encodeIn(s, v)
}

// Malformed builds an ErrMalformedWire error located at the scope path.
func (s *Scope) Malformed(want string, got any) error {
	return newWireError(s.typeID, s.path, want, got)
}

// Tolerate returns nil when the dispatcher is tolerant, after logging the
// skipped value, and err otherwise.
func (s *Scope) Tolerate(err error) error {
	if !s.d.tolerant {
		return err
	}
	s.d.skipped(s, err)
	return nil
}

// Masker returns the masker applied to secret fields, or nil.
func (s *Scope) Masker() Masker {
	return s.masker
}

// funcHandler adapts a pair of functions to Handler.
type funcHandler struct {
	id     TypeID
	typ    reflect.Type
	decode func(s *Scope, raw any) (any, error)
	encode func(s *Scope, v any) (any, error)
}

// Func registers hand-written conversion functions for type T under id.
// The decode function receives raw after reference detection; the encode
// function receives a T value.
func Func[T any](id TypeID, decode func(s *Scope, raw any) (T, error), encode func(s *Scope, v T) (any, error)) Entry {
	typ := reflect.TypeFor[T]()
	return Entry{
		ID:     id,
		Type:   typ,
		source: &funcSource{id: id},
		Factory: func(_ *Dispatcher) Handler {
			return &funcHandler{
				id:  id,
				typ: typ,
				decode: func(s *Scope, raw any) (any, error) {
					return decode(s, raw)
				},
				encode: func(s *Scope, v any) (any, error) {
					switch t := v.(type) {
					case T:
						return encode(s, t)
					case *T:
						if t == nil {
							return nil, nil
						}
						return encode(s, *t)
					}
					return nil, newUnknownGoType(v)
				},
			}
		},
	}
}

func (h *funcHandler) TypeID() TypeID {
	return h.id
}

func (h *funcHandler) FromWire(s *Scope, raw any) (any, error) {
	ref, ok, err := DetectReference(raw, s.origin)
	if err != nil {
		return nil, err
	}
	if ok {
		return ref, nil
	}
	return h.decode(s, raw)
}

func (h *funcHandler) ToWire(s *Scope, v any) (any, error) {
	return h.encode(s, v)
}

func (h *funcHandler) SupportsType(id TypeID) bool {
	return id == h.id
}

func (h *funcHandler) SupportsValue(v any) bool {
	return matchesType(h.typ, v)
}

// matchesType reports whether v is a typ or a *typ.
func matchesType(typ reflect.Type, v any) bool {
	if typ == nil || v == nil {
		return false
	}
	rt := reflect.TypeOf(v)
	return rt == typ || (rt.Kind() == reflect.Pointer && rt.Elem() == typ)
}
