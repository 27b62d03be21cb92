// Package domain holds the validated record types produced by the workbook
// import pipeline: events, participants, per-event participant snapshots,
// and country reference entries. Types here carry no parsing logic (raw
// spreadsheet values are normalized before construction) but they enforce
// the structural invariants that must hold before anything is persisted.
package domain

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator. Tag rules cover per-field shape;
// each model's Validate method layers cross-field invariants on top.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Doc is the document form used for persistence and preview payloads.
type Doc = map[string]any

// ValidationError wraps a failed struct validation with the record identity
// so batch reporting can name the offending row.
type ValidationError struct {
	Record string // record kind and business id, e.g. `participant "P0012"`
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Record, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// structErr runs tag validation and converts the verbose validator output
// into a single readable message listing the failing fields.
func structErr(record string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &ValidationError{Record: record, Err: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return &ValidationError{
		Record: record,
		Err:    fmt.Errorf("invalid fields: %s", strings.Join(fields, ", ")),
	}
}
