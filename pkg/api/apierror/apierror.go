// Package apierror carries the error taxonomy of the sequence API through
// explicit return values so handlers can pick a status code by kind.
package apierror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a failure
type Kind string

const (
	KindBadRequest        Kind = "BAD_REQUEST"
	KindValidation        Kind = "VALIDATION"
	KindAuthorization     Kind = "AUTHORIZATION"
	KindGenerationFailure Kind = "GENERATION_FAILURE"
	KindUnknown           Kind = "UNKNOWN"
)

// FieldError is a single invalid field
type FieldError struct {
	Path    string
	Message string
}

// FieldErrors keeps declaration order. It marshals as a JSON object keyed by
// field path with keys in that same order.
type FieldErrors []FieldError

func (fe FieldErrors) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range fe {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Path)
		if err != nil {
			return nil, err
		}
		msg, err := json.Marshal(e.Message)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(msg)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form back, keeping key order
func (fe *FieldErrors) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.Errorf("field errors: expected object, got %v", tok)
	}
	out := FieldErrors{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		path, _ := tok.(string)
		var msg string
		if err := dec.Decode(&msg); err != nil {
			return errors.Wrapf(err, "field errors: %s", path)
		}
		out = append(out, FieldError{Path: path, Message: msg})
	}
	*fe = out
	return nil
}

// Paths returns the field paths in order
func (fe FieldErrors) Paths() []string {
	paths := make([]string, 0, len(fe))
	for _, e := range fe {
		paths = append(paths, e.Path)
	}
	return paths
}

// Get returns the message recorded for path
func (fe FieldErrors) Get(path string) (string, bool) {
	for _, e := range fe {
		if e.Path == path {
			return e.Message, true
		}
	}
	return "", false
}

// Error is a classified failure
type Error struct {
	Kind    Kind
	Message string
	Details FieldErrors
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an error of the given kind
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies err under kind
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: err}
}

func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

func Validation(message string, details FieldErrors) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func Unauthorized(message string) *Error {
	return New(KindAuthorization, message)
}

func GenerationFailure(err error, message string) *Error {
	return Wrap(err, KindGenerationFailure, message)
}

// From returns err as an *Error, classifying anything unknown as UNKNOWN
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Wrap(err, KindUnknown, "Unexpected error")
}

// IsKind reports whether err classifies as kind
func IsKind(err error, kind Kind) bool {
	if err == nil {
		return false
	}
	return From(err).Kind == kind
}

// StatusCode maps a kind onto an HTTP status
func StatusCode(kind Kind) int {
	switch kind {
	case KindBadRequest, KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindGenerationFailure, KindUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// CauseMessage is the message of the wrapped error, used as the best-effort
// diagnostic for generation failures
func (e *Error) CauseMessage() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Cause.Error()
}

// RootCause is the innermost error of a pkg/errors chain
func (e *Error) RootCause() error {
	if e.Cause == nil {
		return nil
	}
	return errors.Cause(e.Cause)
}
