// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Kind identifies the variant held by a [Value]. Every recursive walk in
// this package switches exhaustively over Kind instead of inspecting
// runtime types, so unhandled variants fail loudly at the codec boundary
// rather than deep inside a merge.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindString
	KindNumber
	KindMap
	KindSequence
)

// String returns a human-readable name for the kind, used in error
// messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindMap:
		return "map"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a tagged union over the variants a configuration tree can
// hold: null, bool, string, number, nested map, or sequence. The zero
// Value is null.
type Value struct {
	kind    Kind
	boolVal bool
	strVal  string
	numVal  float64
	mapVal  Map
	seqVal  []Value
}

// Map is one level of a configuration tree: string keys to tagged
// values. Nesting is expressed through values of [KindMap].
type Map map[string]Value

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a boolean as a Value.
func Bool(b bool) Value { return Value{kind: KindBool, boolVal: b} }

// String wraps a string as a Value.
func String(s string) Value { return Value{kind: KindString, strVal: s} }

// Number wraps a number as a Value.
func Number(n float64) Value { return Value{kind: KindNumber, numVal: n} }

// MapValue wraps a nested map as a Value.
func MapValue(m Map) Value { return Value{kind: KindMap, mapVal: m} }

// Sequence wraps a slice of values as a Value.
func Sequence(vs ...Value) Value { return Value{kind: KindSequence, seqVal: vs} }

// Kind reports which variant the value holds.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Only meaningful for [KindBool].
func (v Value) Bool() bool { return v.boolVal }

// Str returns the string payload. Only meaningful for [KindString].
func (v Value) Str() string { return v.strVal }

// Num returns the numeric payload. Only meaningful for [KindNumber].
func (v Value) Num() float64 { return v.numVal }

// Map returns the nested map payload. Only meaningful for [KindMap].
func (v Value) Map() Map { return v.mapVal }

// Seq returns the sequence payload. Only meaningful for [KindSequence].
func (v Value) Seq() []Value { return v.seqVal }

// Clone returns a deep copy of the value. Cloned maps and sequences
// share no storage with the original.
func (v Value) Clone() Value {
	switch v.kind {
	case KindMap:
		return MapValue(v.mapVal.Clone())
	case KindSequence:
		seq := make([]Value, len(v.seqVal))
		for i, item := range v.seqVal {
			seq[i] = item.Clone()
		}
		return Value{kind: KindSequence, seqVal: seq}
	default:
		return v
	}
}

// Equal reports whether two values are deep-equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.boolVal == o.boolVal
	case KindString:
		return v.strVal == o.strVal
	case KindNumber:
		return v.numVal == o.numVal
	case KindMap:
		return v.mapVal.Equal(o.mapVal)
	case KindSequence:
		if len(v.seqVal) != len(o.seqVal) {
			return false
		}
		for i := range v.seqVal {
			if !v.seqVal[i].Equal(o.seqVal[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Clone returns a deep copy of the map.
func (m Map) Clone() Map {
	cloned := make(Map, len(m))
	for key, val := range m {
		cloned[key] = val.Clone()
	}
	return cloned
}

// Equal reports whether two maps are deep-equal.
func (m Map) Equal(o Map) bool {
	if len(m) != len(o) {
		return false
	}
	for key, val := range m {
		other, ok := o[key]
		if !ok || !val.Equal(other) {
			return false
		}
	}
	return true
}

// sortedKeys returns the map's keys in ascending order. All recursive
// walks iterate in this order so that which violation is reported first
// does not depend on map iteration order.
func sortedKeys(m Map) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes any JSON value into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// MarshalJSON encodes the value as the corresponding JSON value.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.boolVal)
	case KindString:
		return json.Marshal(v.strVal)
	case KindNumber:
		return json.Marshal(v.numVal)
	case KindMap:
		return json.Marshal(v.mapVal)
	case KindSequence:
		if v.seqVal == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.seqVal)
	default:
		return nil, fmt.Errorf("cannot marshal value of kind %s", v.kind)
	}
}

// FromAny converts a decoded JSON or YAML value (as produced by
// encoding/json or yaml.v3 when decoding into any) into a tagged Value.
// It is the single place where dynamic types enter the engine; anything
// it does not recognise, including non-string map keys, is rejected
// here so the recursive code never sees an untagged value.
func FromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case int:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("error converting number %q: %w", x.String(), err)
		}
		return Number(n), nil
	case map[string]any:
		m := make(Map, len(x))
		for key, item := range x {
			val, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			m[key] = val
		}
		return MapValue(m), nil
	case map[any]any:
		m := make(Map, len(x))
		for key, item := range x {
			name, ok := key.(string)
			if !ok {
				return Value{}, fmt.Errorf("configuration keys must be strings, found %v of type %T", key, key)
			}
			val, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			m[name] = val
		}
		return MapValue(m), nil
	case []any:
		seq := make([]Value, len(x))
		for i, item := range x {
			val, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			seq[i] = val
		}
		return Value{kind: KindSequence, seqVal: seq}, nil
	default:
		return Value{}, fmt.Errorf("unsupported configuration value %v of type %T", raw, raw)
	}
}

// MapFromAny converts a decoded top-level document into a Map, rejecting
// documents whose root is not a mapping.
func MapFromAny(raw any) (Map, error) {
	val, err := FromAny(raw)
	if err != nil {
		return nil, err
	}
	if val.Kind() != KindMap {
		return nil, fmt.Errorf("configuration root must be a map, found %s", val.Kind())
	}
	return val.Map(), nil
}
