package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEnvironment marks failures of the random source or the hashing
// primitive. They are internal errors, never caused by the request.
var ErrEnvironment = errors.New("generation environment failure")

// FieldError describes one request field outside its allowed range.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request is rejected before any work is done.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + " " + f.Message
	}
	return "invalid input data: " + strings.Join(msgs, "; ")
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// BatchError reports the cycle that aborted a batch. No passwords are
// returned alongside it.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch aborted at password %d: %v", e.Index+1, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
