package domain

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindNotFound         Kind = "not_found"
	KindTimeout          Kind = "timeout"
	KindNetworkFailure   Kind = "network_failure"
	KindBadResponse      Kind = "bad_response"
	KindValidationFailed Kind = "validation_failed"
	KindSubmissionFailed Kind = "submission_failed"
)

// Sentinels for errors.Is; any *Error of the same kind matches.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrTimeout          = &Error{Kind: KindTimeout}
	ErrNetworkFailure   = &Error{Kind: KindNetworkFailure}
	ErrBadResponse      = &Error{Kind: KindBadResponse}
	ErrValidationFailed = &Error{Kind: KindValidationFailed}
	ErrSubmissionFailed = &Error{Kind: KindSubmissionFailed}
)

// FieldError is one localized message attached to one payload field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type Error struct {
	Kind   Kind
	Msg    string
	Status int // upstream HTTP status, 0 when none
	Fields []FieldError
	Err    error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func E(kind Kind, msg string) *Error { return &Error{Kind: kind, Msg: msg} }

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// FieldMap flattens validation failures into field -> message.
func (e *Error) FieldMap() map[string]string {
	if len(e.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}
