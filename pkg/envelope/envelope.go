// Package envelope resolves the backend's inconsistent response wrapping
// into a single tagged shape. The backend interchangeably returns bare
// arrays, Spring-style page envelopes and {success, message, data}
// wrappers; everything past Unwrap operates on one known shape.
package envelope

// Kind identifies which payload shape a response body carried.
type Kind int

const (
	// KindArray is a bare JSON array of records.
	KindArray Kind = iota
	// KindPage is a page envelope: {content: [...], totalElements, ...}.
	KindPage
	// KindSingle is a single record object.
	KindSingle
)

// PageMeta carries the pagination metadata of a page envelope.
// Absent fields default to zero values.
type PageMeta struct {
	TotalElements int64
	TotalPages    int
	Size          int
	Number        int
	First         bool
	Last          bool
	Empty         bool
}

// Payload is the resolved form of a response body.
type Payload struct {
	Kind  Kind
	Items []RawRecord
	Item  RawRecord
	Page  PageMeta

	// Fallback is set when no known shape was recognized and the
	// payload degraded to the documented empty fallback.
	Fallback bool
}

// Unwrap locates the payload in an arbitrary decoded response body.
// Detection precedence, first match wins:
//
//  1. a bare array is returned as KindArray;
//  2. an object with a "data" field that is itself an object or array
//     is unwrapped one level and re-detected (the wrapper envelope);
//  3. an object with an array "content" field is a page envelope;
//  4. any other object is a single record.
//
// A nil or scalar body yields a KindSingle payload with a nil Item and
// Fallback set. Unwrap never returns an error; callers pick the
// fallback that fits their endpoint via List or Single.
func Unwrap(body any) Payload {
	return unwrap(body, 0)
}

func unwrap(body any, depth int) Payload {
	switch v := body.(type) {
	case []any:
		return Payload{Kind: KindArray, Items: records(v)}

	case map[string]any:
		// The wrapper envelope is unwrapped exactly one level; the
		// backend never nests wrappers.
		if inner, ok := v["data"]; ok && depth == 0 {
			switch inner.(type) {
			case map[string]any, []any:
				return unwrap(inner, depth+1)
			}
			return Payload{Kind: KindSingle, Item: RawRecord(v)}
		}

		if content, ok := v["content"].([]any); ok {
			return Payload{Kind: KindPage, Items: records(content), Page: pageMeta(v)}
		}

		return Payload{Kind: KindSingle, Item: RawRecord(v)}
	}

	return Payload{Kind: KindSingle, Item: nil, Fallback: true}
}

// List resolves a body for a list-returning endpoint. Unrecognized
// shapes (including single records, which a list endpoint never
// produces) degrade to an empty slice with fallback set.
func List(body any) ([]RawRecord, PageMeta, bool) {
	payload := Unwrap(body)
	switch payload.Kind {
	case KindArray:
		return payload.Items, PageMeta{}, false
	case KindPage:
		return payload.Items, payload.Page, false
	default:
		return []RawRecord{}, PageMeta{}, true
	}
}

// Single resolves a body for a single-record endpoint. A list shape
// degrades to its first record; an empty or unrecognized body yields a
// nil record with fallback set.
func Single(body any) (RawRecord, bool) {
	payload := Unwrap(body)
	switch payload.Kind {
	case KindArray, KindPage:
		if len(payload.Items) > 0 {
			return payload.Items[0], false
		}
		return nil, true
	default:
		return payload.Item, payload.Fallback
	}
}

// records coerces array elements to RawRecords, dropping non-objects.
func records(items []any) []RawRecord {
	out := make([]RawRecord, 0, len(items))
	for _, item := range items {
		if record, ok := item.(map[string]any); ok {
			out = append(out, RawRecord(record))
		}
	}
	return out
}

func pageMeta(v map[string]any) PageMeta {
	r := RawRecord(v)
	return PageMeta{
		TotalElements: r.Int64("totalElements"),
		TotalPages:    int(r.Int64("totalPages")),
		Size:          int(r.Int64("size")),
		Number:        int(r.Int64("number")),
		First:         r.Bool("first"),
		Last:          r.Bool("last"),
		Empty:         r.Bool("empty"),
	}
}
