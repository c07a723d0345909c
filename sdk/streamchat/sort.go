package streamchat

import "sort"

// Sort directions use the integer encoding the API expects.
const (
	SortAscending  = 1
	SortDescending = -1
)

// SortParam is one canonical field/direction pair.
type SortParam struct {
	Field     string `json:"field"`
	Direction int    `json:"direction"`
}

// Sort is an ordered sort specification. Build one with SortBy and ThenBy to
// keep field order explicit.
type Sort []SortParam

// SortBy starts a sort specification.
func SortBy(field string, direction int) Sort {
	return Sort{{Field: field, Direction: direction}}
}

// ThenBy appends a lower-priority sort field.
func (s Sort) ThenBy(field string, direction int) Sort {
	return append(s, SortParam{Field: field, Direction: direction})
}

// NormalizeSort canonicalizes a sort specification into an ordered list of
// field/direction pairs. Accepted shapes: nil, SortParam, Sort, []SortParam,
// a mapping of field to direction, or a list mixing canonical pairs and
// mappings. Directions are normalized to their integer encoding.
//
// Go maps do not preserve insertion order, so multi-key plain maps are
// expanded in lexicographic field order; use Sort or []SortParam when field
// priority matters.
func NormalizeSort(input any) []SortParam {
	out := []SortParam{}
	switch t := input.(type) {
	case nil:
	case SortParam:
		out = append(out, t)
	case *SortParam:
		if t != nil {
			out = append(out, *t)
		}
	case Sort:
		out = append(out, t...)
	case []SortParam:
		out = append(out, t...)
	case map[string]any:
		out = append(out, normalizeItem(t)...)
	case map[string]int:
		out = append(out, expandMapping(intMapping(t))...)
	case []map[string]any:
		for _, item := range t {
			out = append(out, normalizeItem(item)...)
		}
	case []any:
		for _, item := range t {
			switch it := item.(type) {
			case SortParam:
				out = append(out, it)
			case map[string]any:
				out = append(out, normalizeItem(it)...)
			case map[string]int:
				out = append(out, expandMapping(intMapping(it))...)
			}
		}
	}
	return out
}

// normalizeItem treats a mapping as canonical when it carries both the
// "field" and "direction" keys, and as field-to-direction pairs otherwise.
func normalizeItem(item map[string]any) []SortParam {
	field, hasField := item["field"].(string)
	direction, hasDirection := item["direction"]
	if hasField && hasDirection {
		return []SortParam{{Field: field, Direction: normalizeDirection(direction)}}
	}
	return expandMapping(item)
}

func expandMapping(m map[string]any) []SortParam {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]SortParam, 0, len(keys))
	for _, k := range keys {
		out = append(out, SortParam{Field: k, Direction: normalizeDirection(m[k])})
	}
	return out
}

func intMapping(m map[string]int) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// normalizeDirection coerces the direction encodings seen in decoded JSON
// (float64) and typed callers to the integer form.
func normalizeDirection(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case float32:
		return int(t)
	case float64:
		return int(t)
	default:
		return 0
	}
}
