package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service failure so callers can decide how to
// present it without string matching.
type ErrorKind string

const (
	// KindValidation means a client-side field check failed; the request
	// never reached the network.
	KindValidation ErrorKind = "validation"
	// KindAuth means the server rejected the credentials or token.
	KindAuth ErrorKind = "auth"
	// KindNotFound means the requested resource does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindNetwork means the transport failed before a response arrived.
	KindNetwork ErrorKind = "network"
	// KindServer means a non-2xx response with no more specific meaning.
	KindServer ErrorKind = "server"
)

// Error is the typed failure every service operation returns. Message is
// safe to show to a user; Err keeps the underlying cause for logs.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewAuthError(message string, err error) *Error {
	return &Error{Kind: KindAuth, Message: message, Err: err}
}

func NewNotFoundError(message string, err error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: err}
}

func NewNetworkError(message string, err error) *Error {
	return &Error{Kind: KindNetwork, Message: message, Err: err}
}

func NewServerError(message string, err error) *Error {
	return &Error{Kind: KindServer, Message: message, Err: err}
}

// KindOf returns the classification of err, or KindServer when err carries
// no *Error in its chain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindServer
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsAuth(err error) bool       { return KindOf(err) == KindAuth }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsNetwork(err error) bool    { return KindOf(err) == KindNetwork }
