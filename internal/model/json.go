package model

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// NormalizeJSON round-trips v through encoding/json so that every nested value
// is one of the JSON value types (map[string]any, []any, float64, string,
// bool, nil). A value that cannot be serialized is reported as an error.
func NormalizeJSON(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("value is not JSON-serializable: %w", err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("value is not JSON-serializable: %w", err)
	}
	return out, nil
}

// NormalizeMap is NormalizeJSON for mappings; nil yields an empty map.
func NormalizeMap(m map[string]any) (map[string]any, error) {
	if m == nil {
		return map[string]any{}, nil
	}
	normalized, err := NormalizeJSON(m)
	if err != nil {
		return nil, err
	}
	out, ok := normalized.(map[string]any)
	if !ok {
		return map[string]any{}, nil
	}
	return out, nil
}

// AsMapping reports whether v is a mapping with string keys and returns it as
// map[string]any. Typed maps such as map[string]float64 are copied.
func AsMapping(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return typed, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// ToFloat converts a numeric value to float64.
func ToFloat(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

// ToObjective converts a plugin-reported objective into the envelope form.
// nil stays nil; finite numbers are accepted; anything else is rejected.
func ToObjective(v any) (*float64, error) {
	if v == nil {
		return nil, nil
	}
	f, ok := ToFloat(v)
	if !ok {
		return nil, fmt.Errorf("objective must be numeric or null, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("objective must be finite, got %v", f)
	}
	return &f, nil
}
