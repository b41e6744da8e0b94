package envelope

import (
	"encoding/json"
)

// RawRecord is one untyped backend record. Fields may be null or absent
// entirely; the accessors below are the defaulting rules every entity
// mapper is built from, and none of them panic on missing data.
//
// The four rules:
//
//   - String / Int64: pass-through for required fields. A missing value
//     yields the zero value; the mapper does not mask backend
//     data-quality issues on required fields.
//   - StringOr: human-readable labels. Null, absent, empty and
//     non-string values all collapse to the fallback.
//   - Count: numeric counts. Only null/absent become 0; a legitimate 0
//     is preserved as such.
//   - StringPtr: verbatim nullable. Null and absent stay nil, which is
//     distinct from an empty string.
type RawRecord map[string]any

// String returns the string value for key, or "" when missing or not a
// string.
func (r RawRecord) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// StringOr returns the string value for key, or fallback when the value
// is null, absent, empty or not a string.
func (r RawRecord) StringOr(key, fallback string) string {
	if s, ok := r[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// StringPtr returns a pointer to the string value for key, or nil when
// the value is null, absent or not a string.
func (r RawRecord) StringPtr(key string) *string {
	if s, ok := r[key].(string); ok {
		return &s
	}
	return nil
}

// Int64 returns the integer value for key, or 0 when missing.
// JSON numbers arrive as float64 from both codecs in use; json.Number
// and native integer types are handled for completeness.
func (r RawRecord) Int64(key string) int64 {
	switch n := r[key].(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	case json.Number:
		v, err := n.Int64()
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

// Count returns the count value for key with null/absent coalesced to
// 0. Identical in result to Int64; kept separate so mappers state which
// rule a field follows.
func (r RawRecord) Count(key string) int {
	return int(r.Int64(key))
}

// Float64 returns the numeric value for key, or 0 when missing.
func (r RawRecord) Float64(key string) float64 {
	switch n := r[key].(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case json.Number:
		v, err := n.Float64()
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

// Bool returns the boolean value for key, or false when missing.
func (r RawRecord) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Record returns the nested object value for key, or nil when the value
// is null, absent or not an object.
func (r RawRecord) Record(key string) RawRecord {
	if m, ok := r[key].(map[string]any); ok {
		return RawRecord(m)
	}
	return nil
}

// Records returns the nested array of objects for key, or nil.
func (r RawRecord) Records(key string) []RawRecord {
	if items, ok := r[key].([]any); ok {
		return records(items)
	}
	return nil
}
