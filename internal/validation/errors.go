// Package validation checks admin form input before anything is sent to
// the API.
package validation

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors lists every rejected field of one form, in form order.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation: " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return ErrValidation }

// Fields maps each field to its first message.
func (e Errors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, ok := out[fe.Field]; !ok {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

func (e *Errors) add(field, msg string) {
	*e = append(*e, FieldError{Field: field, Message: msg})
}
