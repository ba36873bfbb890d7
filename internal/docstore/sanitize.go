package docstore

// Sanitize returns a structural copy of v with every Unset value dropped,
// recursing through maps and slices. The second return is false when v
// itself is Unset, meaning the caller should omit it entirely. nil survives:
// it is an explicit value, not an absent one.
func Sanitize(v any) (any, bool) {
	switch t := v.(type) {
	case unsetMarker:
		return nil, false
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if sv, ok := Sanitize(val); ok {
				out[k] = sv
			}
		}
		return out, true
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			if sv, ok := Sanitize(val); ok {
				out = append(out, sv)
			}
		}
		return out, true
	default:
		return v, true
	}
}

// SanitizeFields sanitizes a whole document payload.
func SanitizeFields(fields Fields) Fields {
	out, _ := Sanitize(map[string]any(fields))
	return out.(map[string]any)
}

// ContainsUnset reports whether the Unset marker appears anywhere in v.
// Stores use it to reject dirty payloads instead of persisting garbage.
func ContainsUnset(v any) bool {
	switch t := v.(type) {
	case unsetMarker:
		return true
	case map[string]any:
		for _, val := range t {
			if ContainsUnset(val) {
				return true
			}
		}
	case []any:
		for _, val := range t {
			if ContainsUnset(val) {
				return true
			}
		}
	}
	return false
}
