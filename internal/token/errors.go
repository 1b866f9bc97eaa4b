package token

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Reason says why a token was rejected. It is safe to show to clients.
type Reason string

const (
	ReasonMalformed       Reason = "malformed"
	ReasonBadSignature    Reason = "bad_signature"
	ReasonExpired         Reason = "expired"
	ReasonWrongType       Reason = "wrong_type"
	ReasonSubjectNotFound Reason = "subject_not_found"
)

type RejectionError struct {
	Reason Reason
	Err    error
}

func (e *RejectionError) Error() string {
	if e.Err == nil {
		return "token rejected: " + string(e.Reason)
	}
	return "token rejected: " + string(e.Reason) + ": " + e.Err.Error()
}

func (e *RejectionError) Unwrap() error { return e.Err }

func reject(reason Reason, err error) *RejectionError {
	return &RejectionError{Reason: reason, Err: err}
}

// Reject builds a RejectionError for checks made outside this package.
func Reject(reason Reason, err error) error {
	return reject(reason, err)
}

// Classify maps a jwt parse error onto a rejection.
func Classify(err error) *RejectionError {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej
	}
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return reject(ReasonExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return reject(ReasonBadSignature, err)
	default:
		return reject(ReasonMalformed, err)
	}
}

// ReasonOf returns the rejection reason carried by err, or "" when err is not
// a rejection.
func ReasonOf(err error) Reason {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return ""
}
