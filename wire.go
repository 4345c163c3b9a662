package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Map is a wire mapping.
type Map = map[string]any

// List is a wire list.
type List = []any

// Canonical converts a decoded tree into the wire value shape.
//
// Integer kinds become int64, float32 becomes float64, json.Number becomes
// int64 when integral and float64 otherwise, and named map or slice types
// become plain Map and List values. Anything else is ErrMalformedWire.
func Canonical(v any) (any, error) {
	return canonical(v, "")
}

func canonical(v any, path string) (any, error) {
	switch t := v.(type) {
	case nil, bool, string, int64, float64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case float32:
		return float64(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, newWireError("", path, "number", t.String())
		}
		return f, nil
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			c, err := canonical(elem, indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			c, err := canonical(elem, keyPath(path, k))
			if err != nil {
				return nil, err
			}
			out[k] = c
		}
		return out, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, newWireError("", path, "integer within int64", v)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return canonical(rv.Elem().Interface(), path)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			// binary payloads (msgpack bin, bson binary) surface as strings
			return string(rv.Bytes()), nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			c, err := canonical(rv.Index(i).Interface(), indexPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case reflect.Map:
		if rv.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key()
			if k.Kind() == reflect.Interface {
				k = k.Elem()
			}
			if k.Kind() != reflect.String {
				return nil, newWireError("", path, "string map key", k.Interface())
			}
			c, err := canonical(iter.Value().Interface(), keyPath(path, k.String()))
			if err != nil {
				return nil, err
			}
			out[k.String()] = c
		}
		return out, nil
	}

	return nil, newWireError("", path, "wire value", v)
}

// IsNull reports whether v is the wire null.
func IsNull(v any) bool {
	return v == nil
}

// AsMap returns v as a wire mapping.
func AsMap(v any) (Map, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// AsList returns v as a wire list.
func AsList(v any) (List, bool) {
	l, ok := v.([]any)
	return l, ok
}

// wireKind names the shape of a wire value for error messages.
func wireKind(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case int64:
		return "integer"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "list"
	case map[string]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func keyPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}

func indexPath(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}
