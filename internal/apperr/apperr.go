package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP status mapping
type Kind int

const (
	KindValidation Kind = iota // missing/invalid input
	KindConversion             // document renderer failed
	KindRemoteStore            // asset store upload/delete failed
	KindNotFound               // record id absent
	KindAuth                   // bad/expired/missing token or insufficient role
	KindInternal
)

// Error carries a kind, a client-safe message and an optional cause
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// HTTPStatus maps the error kind to an HTTP status code
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConversion, KindRemoteStore:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Conversion(msg string, cause error) *Error {
	return &Error{Kind: KindConversion, Message: msg, Cause: cause}
}

func RemoteStore(msg string, cause error) *Error {
	return &Error{Kind: KindRemoteStore, Message: msg, Cause: cause}
}

func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

func Auth(msg string) *Error {
	return &Error{Kind: KindAuth, Message: msg}
}

func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Cause: cause}
}

// As extracts an *Error from err's chain, or nil
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	if e := As(err); e != nil {
		return e.Kind == kind
	}
	return false
}
