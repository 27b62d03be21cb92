package domain

import (
	"fmt"
	"time"
)

// FieldChange records a single field edit on a domain record.
type FieldChange struct {
	Field     string    `json:"field"`
	Old       string    `json:"old"`
	New       string    `json:"new"`
	ChangedAt time.Time `json:"changed_at"`
}

// AuditTrail is the ordered history of field changes for a record.
type AuditTrail []FieldChange

// Record appends a change entry when old and new differ.
// Values are stringified so the trail stays storable as plain documents.
func (a AuditTrail) Record(field string, oldVal, newVal any, at time.Time) AuditTrail {
	oldStr := stringify(oldVal)
	newStr := stringify(newVal)
	if oldStr == newStr {
		return a
	}
	return append(a, FieldChange{Field: field, Old: oldStr, New: newStr, ChangedAt: at})
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
