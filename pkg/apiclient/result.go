package apiclient

import "errors"

// Result is the uniform shape screens render failures from: either OK with a
// value, or a kind plus a human readable message.
type Result[T any] struct {
	OK      bool
	Value   T
	Kind    ErrorKind
	Status  int
	Message string
}

func ResultOf[T any](value T, err error) Result[T] {
	if err == nil {
		return Result[T]{OK: true, Value: value}
	}
	r := Result[T]{Kind: KindOf(err), Status: StatusCode(err), Message: err.Error()}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		r.Message = apiErr.Message
	}
	return r
}
