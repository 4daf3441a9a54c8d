package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMalformedInput means the envelope carried no usable data.page object.
	ErrMalformedInput = errors.New("malformed input")
	// ErrMalformedPayload means a module's embedded JSON payload did not parse.
	ErrMalformedPayload = errors.New("malformed module payload")
	// ErrUnknownGameFamily is returned for wiki identifiers other than genshin and hsr.
	ErrUnknownGameFamily = errors.New("unknown game family")
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// APIError is a well-formed HoYoLAB response with a non-zero retcode.
type APIError struct {
	Retcode int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hoyolab retcode %d: %s", e.Retcode, e.Message)
}
