package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindHTTP         ErrorKind = "http"
	KindUnauthorized ErrorKind = "unauthorized"
	KindNetwork      ErrorKind = "network"
	KindAuth         ErrorKind = "auth"
	KindDecode       ErrorKind = "decode"
	KindEncode       ErrorKind = "encode"
)

// Error is the single failure type returned by the client.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("HTTP error! status: %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	if err == nil {
		return ""
	}
	return KindNetwork
}

func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
