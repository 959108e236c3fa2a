package domain

import (
	"strings"
)

const (
	ErrTypeMissing    = "value_error.missing"
	ErrTypeNotString  = "type_error.str"
	ErrTypeMinLength  = "value_error.any_str.min_length"
	ErrTypeJSONDecode = "value_error.jsondecode"
)

// FieldError describes one rejected request field. An empty Field refers to
// the body as a whole.
type FieldError struct {
	Field   string
	Message string
	Type    string
}

type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			parts = append(parts, f.Message)
			continue
		}
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RequireString checks a decoded request field. A nil pointer means the field
// was absent or null.
func RequireString(field string, v *string) *FieldError {
	if v == nil {
		return &FieldError{Field: field, Message: "field required", Type: ErrTypeMissing}
	}
	return RequireNonEmpty(field, *v)
}

func RequireNonEmpty(field, v string) *FieldError {
	if v == "" {
		return &FieldError{Field: field, Message: "ensure this value has at least 1 characters", Type: ErrTypeMinLength}
	}
	return nil
}

// Collect returns nil when every check passed.
func Collect(checks ...*FieldError) error {
	var fields []FieldError
	for _, c := range checks {
		if c != nil {
			fields = append(fields, *c)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return NewValidationError(fields...)
}
