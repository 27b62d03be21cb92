package domain

import "time"

// doc.go has the small accessors used when hydrating records from stored
// documents. Stored values are plain Go types (string, float64, time.Time,
// []any) so every read goes through a type switch.

func docString(doc Doc, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func docStringPtr(doc Doc, key string) *string {
	if v, ok := doc[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

func docTime(doc Doc, key string) (time.Time, bool) {
	switch v := doc[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func docFloat(doc Doc, key string) (float64, bool) {
	switch v := doc[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func docInt(doc Doc, key string, fallback int) int {
	switch v := doc[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return fallback
}

func docBool(doc Doc, key string) bool {
	v, _ := doc[key].(bool)
	return v
}

func docStrings(doc Doc, key string) []string {
	switch v := doc[key].(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
