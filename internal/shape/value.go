package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Value is a sealed interface representing a rendered placeholder value.
// Only ValueString, ValueInt, ValueFloat, ValueBool, ValueTime, ValueURL,
// ValueUUID, ValueArray, ValueSet, ValueMap, ValueObject, and ValueCase
// implement it.
type Value interface {
	value() // Sealed - only these types implement it
}

// ValueString is a rendered text value.
type ValueString string

func (ValueString) value() {}

// ValueInt is a rendered integer value. Always int64.
type ValueInt int64

func (ValueInt) value() {}

// ValueFloat is a rendered floating-point value.
type ValueFloat float64

func (ValueFloat) value() {}

// ValueBool is a rendered boolean value.
type ValueBool bool

func (ValueBool) value() {}

// ValueTime is a rendered timestamp.
type ValueTime time.Time

func (ValueTime) value() {}

// ValueURL is a rendered resource locator.
type ValueURL string

func (ValueURL) value() {}

// ValueUUID is a rendered universally-unique identifier.
type ValueUUID string

func (ValueUUID) value() {}

// ValueArray is a rendered ordered sequence.
type ValueArray []Value

func (ValueArray) value() {}

// ValueSet is a rendered unique-element collection. Construct with
// NewValueSet so elements are stored in canonical order.
type ValueSet []Value

func (ValueSet) value() {}

// MapEntry is one key/value pair of a ValueMap.
type MapEntry struct {
	Key   Value
	Value Value
}

// ValueMap is a rendered key-indexed collection. Construct with NewValueMap
// so entries are stored in canonical key order.
type ValueMap []MapEntry

func (ValueMap) value() {}

// ValueField is one named field of a ValueObject, in declaration order.
type ValueField struct {
	Name  string
	Value Value
}

// ValueObject is a rendered product-typed instance. Fields preserve
// descriptor order for display; canonical serialization re-sorts them.
type ValueObject struct {
	TypeName string
	Fields   []ValueField
}

func (ValueObject) value() {}

// ValueCase is a rendered sum-typed instance: the selected case.
type ValueCase struct {
	TypeName string
	Case     string
}

func (ValueCase) value() {}

// NewValueSet builds a ValueSet with elements de-duplicated and sorted by
// canonical bytes, so identical sets always render identically regardless
// of generation order.
func NewValueSet(elems []Value) ValueSet {
	sorted := make([]Value, 0, len(elems))
	seen := make(map[string]bool, len(elems))
	for _, e := range elems {
		key := sortKey(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]) < sortKey(sorted[j])
	})
	return ValueSet(sorted)
}

// NewValueMap builds a ValueMap with entries sorted by canonical key bytes.
// Later duplicate keys overwrite earlier ones.
func NewValueMap(entries []MapEntry) ValueMap {
	byKey := make(map[string]MapEntry, len(entries))
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		key := sortKey(e.Key)
		if _, ok := byKey[key]; !ok {
			keys = append(keys, key)
		}
		byKey[key] = e
	}
	sort.Strings(keys)
	sorted := make([]MapEntry, 0, len(keys))
	for _, k := range keys {
		sorted = append(sorted, byKey[k])
	}
	return ValueMap(sorted)
}

// sortKey returns the canonical bytes of v as a string for ordering.
func sortKey(v Value) string {
	b, err := MarshalCanonical(v)
	if err != nil {
		// Unreachable for the sealed set; fall back to the display form.
		b, _ = MarshalValue(v)
	}
	return string(b)
}

// MarshalValue serializes a value to display JSON: object fields in
// declaration order, map keys stringified, timestamps in RFC 3339.
// For content addressing use MarshalCanonical instead.
func MarshalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case ValueString:
		return json.Marshal(string(val))
	case ValueInt:
		return json.Marshal(int64(val))
	case ValueFloat:
		return json.Marshal(float64(val))
	case ValueBool:
		return json.Marshal(bool(val))
	case ValueTime:
		return json.Marshal(time.Time(val).Format(time.RFC3339Nano))
	case ValueURL:
		return json.Marshal(string(val))
	case ValueUUID:
		return json.Marshal(string(val))
	case ValueArray:
		return marshalValueList([]Value(val))
	case ValueSet:
		return marshalValueList([]Value(val))
	case ValueMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, entry := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := displayKey(entry.Key)
			if err != nil {
				return nil, err
			}
			kb, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := MarshalValue(entry.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case ValueObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range val.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(f.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := MarshalValue(f.Value)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case ValueCase:
		return json.Marshal(val.Case)
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

func marshalValueList(vals []Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		eb, err := MarshalValue(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		buf.Write(eb)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// displayKey renders a map key as a JSON object key string.
func displayKey(v Value) (string, error) {
	switch key := v.(type) {
	case ValueString:
		return string(key), nil
	case ValueInt:
		return fmt.Sprintf("%d", int64(key)), nil
	case ValueFloat:
		return formatCanonicalFloat(float64(key)), nil
	case ValueURL:
		return string(key), nil
	case ValueUUID:
		return string(key), nil
	case ValueTime:
		return time.Time(key).Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("unsupported map key type: %T", v)
	}
}
