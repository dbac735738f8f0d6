package shape

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for content-addressed identity.
// This is the ONLY serialization that should feed hashing.
//
// Key differences from MarshalValue:
//  1. Object fields sorted by UTF-16 code units (RFC 8785), not declaration
//     order
//  2. No HTML escaping (< > & are NOT escaped)
//  3. Strings are NFC normalized
//  4. Floats use the shortest round-trip decimal form
//  5. Timestamps are rendered in UTC
func MarshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case ValueString:
		return marshalCanonicalString(string(val))
	case ValueInt:
		return []byte(strconv.FormatInt(int64(val), 10)), nil
	case ValueFloat:
		return []byte(formatCanonicalFloat(float64(val))), nil
	case ValueBool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case ValueTime:
		return marshalCanonicalString(time.Time(val).UTC().Format(time.RFC3339Nano))
	case ValueURL:
		return marshalCanonicalString(string(val))
	case ValueUUID:
		return marshalCanonicalString(string(val))
	case ValueArray:
		return marshalCanonicalList([]Value(val))
	case ValueSet:
		return marshalCanonicalList([]Value(val))
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
			kb, err := marshalCanonicalString(key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := MarshalCanonical(entry.Value)
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case ValueObject:
		names := make([]string, 0, len(val.Fields))
		byName := make(map[string]Value, len(val.Fields))
		for _, f := range val.Fields {
			names = append(names, f.Name)
			byName[f.Name] = f.Value
		}
		slices.SortFunc(names, compareKeysUTF16)

		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, name := range names {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := marshalCanonicalString(name)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := MarshalCanonical(byName[name])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case ValueCase:
		return marshalCanonicalString(val.Case)
	default:
		return nil, fmt.Errorf("unknown Value type: %T", v)
	}
}

func marshalCanonicalList(vals []Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		eb, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		buf.Write(eb)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// marshalCanonicalString NFC-normalizes s and encodes it without HTML
// escaping.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	// Encoder appends a trailing newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// formatCanonicalFloat renders f in its shortest round-trip decimal form.
func formatCanonicalFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// compareKeysUTF16 compares strings by UTF-16 code units as required by
// RFC 8785. Go's native string comparison is UTF-8 byte order, which
// produces a DIFFERENT order once characters leave the BMP.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
