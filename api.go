// Package normalize provides schema-driven conversion between untyped wire
// values and typed model objects.
//
// A Registry maps stable type identifiers to handler factories. A Dispatcher
// built on a sealed Registry resolves identifiers to handlers, instantiating
// each handler at most once, and routes decode and encode calls through them.
// Handlers recurse back into the Dispatcher for nested objects, lists and maps.
//
// # Wire Values
//
// The interchange shape is a tree of:
//
//	nil | bool | int64 | float64 | string | []any | map[string]any
//
// Codecs (json, yaml, msgpack, bson) turn request and response bodies into
// such trees; Canonical normalizes whatever numeric and container types a
// codec produced.
//
// # Declaring Models
//
// Models are structs whose wire-mapped fields are Field[T] values tagged with
// their wire key:
//
//	type Point struct {
//	    normalize.Object
//	    X normalize.Field[int64] `wire:"x"`
//	    Y normalize.Field[int64] `wire:"y"`
//	}
//
//	reg := normalize.NewRegistry()
//	reg.MustRegister(normalize.Model[Point]("Point"))
//
//	d, _ := normalize.NewDispatcher(reg)
//	v, _ := d.Decode(ctx, "Point", map[string]any{"x": 3})
//	// v is *Point with X set to 3 and Y unset
//
// Field[T] is tri-state: unset, explicitly null, or set to a value. Only set
// fields (including explicit nulls) are emitted on encode, which keeps partial
// update payloads intact.
//
// # References
//
// A mapping carrying "$ref" or "$recursiveRef" decodes to a Reference without
// looking at its sibling keys. References are never resolved by this package.
// When a reference appears inside a typed slot, the model's embedded Object
// carries it so the reference survives a re-encode.
//
// # Tag Syntax
//
//	wire:"Key"          - map the field to wire key "Key"
//	wire:"Key,secret"   - string field rewritten by WithRedaction or WithMasker
//
// # Errors
//
// Failures wrap ErrUnknownType, ErrMalformedWire, ErrDuplicateRegistration,
// ErrIncompleteRegistry or the codec sentinels; use errors.Is to test them.
package normalize
