package domain

import (
	"fmt"
	"strings"
)

var ErrUserNotFound = fmt.Errorf("user not found")

// ExternalServiceError signals that an upstream dependency (the geocoding
// service) failed: network error, timeout, or malformed response.
type ExternalServiceError struct {
	Service string
	Message string
}

func (e *ExternalServiceError) Error() string {
	return e.Message
}

// FieldError describes a single invalid request field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates all field errors of a rejected request body.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Path+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
