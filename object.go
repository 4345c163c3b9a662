package normalize

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zoobzio/sentinel"
)

// wireTag is the struct tag carrying a field's wire key and options.
const wireTag = "wire"

func init() {
	sentinel.Tag(wireTag)
}

// fieldPlan describes how one Field maps to the wire.
type fieldPlan struct {
	name   string       // Go field name for error messages
	key    string       // wire key
	index  []int        // reflect.Value.FieldByIndex access path
	elem   reflect.Type // T of Field[T]
	secret bool         // rewritten by the call's Masker when encoding
}

// objectHandler is the table-driven handler for a tagged model struct.
type objectHandler struct {
	id     TypeID
	typ    reflect.Type
	fields []fieldPlan
	d      *Dispatcher
}

var (
	anyType       = reflect.TypeFor[any]()
	referenceType = reflect.TypeFor[Reference]()
	referrerIface = reflect.TypeFor[referrer]()
)

// Model declares a table-driven handler for struct type T under id.
//
// Every field tagged `wire:"key"` must be a Field[T]. Supported element
// types are strings, booleans, integers, floats, the empty interface (kept
// as a raw wire subtree), slices and string-keyed maps of supported types,
// and registered types (by value or pointer) which are dispatched
// recursively. Declaration errors surface when the entry is registered.
func Model[T any](id TypeID) Entry {
	typ := reflect.TypeFor[T]()
	entry := Entry{ID: id, Type: typ}

	if typ.Kind() != reflect.Struct {
		entry.err = newRegistrationError(ErrInvalidEntry, id, fmt.Sprintf("%v is not a struct", typ))
		return entry
	}

	spec := sentinel.Scan[T]()
	if !hasWireFields(spec) {
		spec = scanModel(typ)
	}

	fields, nested, err := buildFieldPlans(typ, spec)
	if err != nil {
		entry.err = newRegistrationError(ErrInvalidEntry, id, err.Error())
		return entry
	}

	entry.Nested = nested
	entry.Factory = func(d *Dispatcher) Handler {
		return &objectHandler{id: id, typ: typ, fields: fields, d: d}
	}
	return entry
}

// buildFieldPlans creates field plans for a model from its scanned metadata.
func buildFieldPlans(typ reflect.Type, spec sentinel.Metadata) ([]fieldPlan, []reflect.Type, error) {
	var (
		plans  []fieldPlan
		nested []reflect.Type
		seen   = make(map[string]string)
	)

	for _, field := range spec.Fields {
		sf := typ.FieldByIndex(field.Index)
		tag, ok := field.Tags[wireTag]
		if !ok {
			tag, ok = sf.Tag.Lookup(wireTag)
		}
		if !ok || tag == "-" {
			continue
		}

		key, opts, _ := strings.Cut(tag, ",")
		if key == "" {
			key = field.Name
		}
		if prev, dup := seen[key]; dup {
			return nil, nil, fmt.Errorf("wire key %q used by %s and %s", key, prev, field.Name)
		}
		seen[key] = field.Name

		elem, ok := slotElem(sf.Type)
		if !ok {
			return nil, nil, fmt.Errorf("field %s: tagged fields must be normalize.Field, got %v", field.Name, sf.Type)
		}

		reach, err := reachableTypes(elem)
		if err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		nested = append(nested, reach...)

		plan := fieldPlan{
			name:  field.Name,
			key:   key,
			index: append([]int(nil), field.Index...),
			elem:  elem,
		}
		for _, opt := range strings.Split(opts, ",") {
			switch strings.TrimSpace(opt) {
			case "":
			case "secret":
				if elem.Kind() != reflect.String {
					return nil, nil, fmt.Errorf("field %s: secret fields must be strings, got %v", field.Name, elem)
				}
				plan.secret = true
			default:
				return nil, nil, fmt.Errorf("field %s: unknown wire option %q", field.Name, opt)
			}
		}
		plans = append(plans, plan)
	}

	return plans, nested, nil
}

// hasWireFields reports whether the scan surfaced any wire-tagged field.
func hasWireFields(spec sentinel.Metadata) bool {
	for _, field := range spec.Fields {
		if _, ok := field.Tags[wireTag]; ok {
			return true
		}
	}
	return false
}

// scanModel builds metadata for a model directly from reflection, keeping
// every exported field with its wire tag.
func scanModel(rt reflect.Type) sentinel.Metadata {
	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        make(map[string]string),
		}
		if val, ok := sf.Tag.Lookup(wireTag); ok {
			fm.Tags[wireTag] = val
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}

// reachableTypes validates an element type and returns the struct types it
// nests, which must be registered.
func reachableTypes(rt reflect.Type) ([]reflect.Type, error) {
	switch rt.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return nil, nil
	case reflect.Interface:
		if rt != anyType {
			return nil, fmt.Errorf("unsupported interface type %v", rt)
		}
		return nil, nil
	case reflect.Pointer, reflect.Slice:
		return reachableTypes(rt.Elem())
	case reflect.Map:
		if rt.Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map key must be a string kind, got %v", rt.Key())
		}
		return reachableTypes(rt.Elem())
	case reflect.Struct:
		if rt == referenceType {
			return nil, fmt.Errorf("use a model embedding normalize.Object instead of Reference")
		}
		return []reflect.Type{rt}, nil
	}
	return nil, fmt.Errorf("unsupported type %v", rt)
}

func (h *objectHandler) TypeID() TypeID {
	return h.id
}

func (h *objectHandler) SupportsType(id TypeID) bool {
	return id == h.id
}

func (h *objectHandler) SupportsValue(v any) bool {
	return matchesType(h.typ, v)
}

// FromWire builds a *T from raw.
func (h *objectHandler) FromWire(s *Scope, raw any) (any, error) {
	ref, ok, err := DetectReference(raw, s.origin)
	if err != nil {
		return nil, err
	}
	if ok {
		return ref, nil
	}

	obj := reflect.New(h.typ)
	m, ok := raw.(map[string]any)
	if !ok {
		return obj.Interface(), nil
	}

	rv := obj.Elem()
	for _, plan := range h.fields {
		rawField, found := m[plan.key]
		if !found {
			continue
		}

		sl := rv.FieldByIndex(plan.index).Addr().Interface().(slot)
		if rawField == nil {
			sl.slotMark(null)
			continue
		}

		fs := s.At(plan.key)
		val, err := h.decodeValue(fs, rawField, plan.elem)
		if err != nil {
			if err := fs.Tolerate(err); err != nil {
				return nil, err
			}
			continue
		}
		sl.slotValue().Set(val)
		sl.slotMark(present)
	}

	return obj.Interface(), nil
}

// decodeValue converts a wire value into a reflect.Value of type rt.
func (h *objectHandler) decodeValue(s *Scope, raw any, rt reflect.Type) (reflect.Value, error) {
	out := reflect.New(rt).Elem()

	if raw == nil {
		switch rt.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			return out, nil
		case reflect.Struct:
			// a null model element decodes to the default model
			if _, ok := h.d.registry.TypeOf(rt); ok {
				return h.decodeNested(s, nil, rt)
			}
		}
		return out, s.Malformed(rt.Kind().String(), raw)
	}

	switch rt.Kind() {
	case reflect.Interface:
		out.Set(reflect.ValueOf(raw))

	case reflect.String:
		str, ok := raw.(string)
		if !ok {
			return out, s.Malformed("string", raw)
		}
		out.SetString(str)

	case reflect.Bool:
		if b, ok := raw.(bool); ok {
			out.SetBool(b)
			break
		}
		// some sources encode booleans as 0/1
		i, ok := wireInt(raw)
		if !ok || (i != 0 && i != 1) {
			return out, s.Malformed("boolean", raw)
		}
		out.SetBool(i == 1)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := wireInt(raw)
		if !ok || out.OverflowInt(i) {
			return out, s.Malformed(rt.Kind().String(), raw)
		}
		out.SetInt(i)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := wireInt(raw)
		if !ok || i < 0 || out.OverflowUint(uint64(i)) {
			return out, s.Malformed(rt.Kind().String(), raw)
		}
		out.SetUint(uint64(i))

	case reflect.Float32, reflect.Float64:
		switch t := raw.(type) {
		case float64:
			out.SetFloat(t)
		case int64:
			out.SetFloat(float64(t))
		default:
			return out, s.Malformed("number", raw)
		}

	case reflect.Slice:
		list, ok := raw.([]any)
		if !ok {
			return out, s.Malformed("list", raw)
		}
		out.Set(reflect.MakeSlice(rt, len(list), len(list)))
		for i, elem := range list {
			v, err := h.decodeValue(s.Index(i), elem, rt.Elem())
			if err != nil {
				return out, err
			}
			out.Index(i).Set(v)
		}

	case reflect.Map:
		m, ok := raw.(map[string]any)
		if !ok {
			return out, s.Malformed("mapping", raw)
		}
		out.Set(reflect.MakeMapWithSize(rt, len(m)))
		for k, elem := range m {
			v, err := h.decodeValue(s.At(k), elem, rt.Elem())
			if err != nil {
				return out, err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(rt.Key()), v)
		}

	case reflect.Pointer:
		if rt.Elem().Kind() == reflect.Struct {
			return h.decodeNested(s, raw, rt)
		}
		v, err := h.decodeValue(s, raw, rt.Elem())
		if err != nil {
			return out, err
		}
		p := reflect.New(rt.Elem())
		p.Elem().Set(v)
		out.Set(p)

	case reflect.Struct:
		return h.decodeNested(s, raw, rt)

	default:
		return out, s.Malformed(rt.String(), raw)
	}

	return out, nil
}

// decodeNested dispatches raw to the handler registered for a struct type.
// rt is either the struct type or a pointer to it.
func (h *objectHandler) decodeNested(s *Scope, raw any, rt reflect.Type) (reflect.Value, error) {
	out := reflect.New(rt).Elem()
	structType := rt
	if rt.Kind() == reflect.Pointer {
		structType = rt.Elem()
	}

	id, ok := h.d.registry.TypeOf(structType)
	if !ok {
		return out, &TypeError{Err: ErrUnknownType, GoType: structType.String()}
	}

	v, err := h.d.decodeIn(s, id, raw)
	if err != nil {
		return out, err
	}

	if ref, ok := v.(Reference); ok {
		p := reflect.New(structType)
		r, ok := p.Interface().(referrer)
		if !ok {
			return out, s.Malformed(structType.String()+" embedding normalize.Object", ref.Wire())
		}
		r.SetReference(ref)
		v = p.Interface()
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Type() == rt:
		out.Set(rv)
	case rv.Type() == reflect.PointerTo(rt):
		out.Set(rv.Elem())
	case rt.Kind() == reflect.Pointer && rv.Type() == structType:
		p := reflect.New(structType)
		p.Elem().Set(rv)
		out.Set(p)
	default:
		return out, &TypeError{Err: ErrUnknownType, TypeID: id, GoType: rv.Type().String()}
	}
	return out, nil
}

// ToWire renders a T or *T, emitting initialized fields only.
func (h *objectHandler) ToWire(s *Scope, v any) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	if rv.Type() != h.typ {
		return nil, newUnknownGoType(v)
	}
	if !rv.CanAddr() {
		tmp := reflect.New(h.typ).Elem()
		tmp.Set(rv)
		rv = tmp
	}

	if rv.Addr().Type().Implements(referrerIface) {
		if ref, ok := rv.Addr().Interface().(referrer).Reference(); ok {
			return ref.Wire(), nil
		}
	}

	out := make(map[string]any, len(h.fields))
	masker := s.Masker()
	for _, plan := range h.fields {
		sl := rv.FieldByIndex(plan.index).Addr().Interface().(slot)
		switch sl.slotState() {
		case absent:
			continue
		case null:
			out[plan.key] = nil
			continue
		}

		if plan.secret && masker != nil {
			out[plan.key] = masker.Mask(sl.slotValue().String())
			continue
		}

		w, err := h.encodeValue(s.At(plan.key), sl.slotValue())
		if err != nil {
			return nil, err
		}
		out[plan.key] = w
	}
	return out, nil
}

// encodeValue converts a reflect.Value into a wire value.
func (h *objectHandler) encodeValue(s *Scope, rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return canonical(rv.Elem().Interface(), s.path)

	case reflect.String:
		return rv.String(), nil

	case reflect.Bool:
		return rv.Bool(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return canonical(rv.Uint(), s.path)

	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil

	case reflect.Slice:
		if rv.IsNil() {
			return nil, nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			w, err := h.encodeValue(s.Index(i), rv.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = w
		}
		return out, nil

	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().String()
			w, err := h.encodeValue(s.At(k), iter.Value())
			if err != nil {
				return nil, err
			}
			out[k] = w
		}
		return out, nil

	case reflect.Pointer:
		if rv.IsNil() {
			return nil, nil
		}
		if rv.Elem().Kind() == reflect.Struct {
			return h.d.encodeIn(s, rv.Interface())
		}
		return h.encodeValue(s, rv.Elem())

	case reflect.Struct:
		return h.d.encodeIn(s, rv.Interface())
	}

	return nil, s.Malformed("encodable value", rv.Interface())
}

// wireInt extracts an integer from a wire number, accepting integral floats.
func wireInt(raw any) (int64, bool) {
	switch t := raw.(type) {
	case int64:
		return t, true
	case float64:
		i := int64(t)
		if float64(i) != t {
			return 0, false
		}
		return i, true
	}
	return 0, false
}
