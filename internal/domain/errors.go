package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidJSON      = errors.New("body is not valid JSON")
	ErrInvalidForm      = errors.New("body is not valid form encoding")
	ErrMissingSign      = errors.New(`missing "sign"`)
	ErrInvalidDate      = errors.New(`"date" must be YYYY-MM-DD`)
	ErrUpstreamLLM      = errors.New("upstream LLM failure")
	ErrInvalidModelJSON = errors.New("LLM returned invalid JSON")
)

// UpstreamError is a failed call to the generation provider. Body holds the
// provider's raw error payload when one was received.
type UpstreamError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("upstream call: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstreamLLM }

// Detail is the diagnostic text relayed to callers.
func (e *UpstreamError) Detail() string {
	if e.Body != "" {
		return e.Body
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// ModelOutputError means the provider answered but the text is not a usable
// horoscope. Raw is the text exactly as received.
type ModelOutputError struct {
	Raw string
	Err error
}

func (e *ModelOutputError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidModelJSON, e.Err)
}

func (e *ModelOutputError) Unwrap() error { return e.Err }

func (e *ModelOutputError) Is(target error) bool { return target == ErrInvalidModelJSON }
