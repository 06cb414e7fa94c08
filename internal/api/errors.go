package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNoCheckoutURL = errors.New("checkout session response has no url")
	ErrNoUser        = errors.New("auth response has no user")
	ErrMalformed     = errors.New("unexpected response body")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Op   string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}
