package scryfall

import (
	"errors"
	"fmt"
)

// ErrMissingData is returned when a response decodes as JSON but carries no
// "data" field (or carries "data": null).
var ErrMissingData = errors.New("response has no data field")

// TransportError means the request never produced a response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("requesting %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError means the body (or its data payload) was not the JSON we expected.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decoding response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// APIError is the error object Scryfall sends with non-success responses.
type APIError struct {
	Object   string   `json:"object"`
	Code     string   `json:"code"`
	Status   int      `json:"status"`
	Details  string   `json:"details"`
	Warnings []string `json:"warnings,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Details)
}

// StatusError is returned for a non-2xx response that could not be used.
// A non-2xx response that still carries data is not an error.
type StatusError struct {
	URL        string
	StatusCode int
	API        *APIError
	Err        error
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("Scryfall API returned status %d for %s", e.StatusCode, e.URL)
	if e.API != nil {
		msg += ": " + e.API.Error()
	}
	return msg
}

func (e *StatusError) Unwrap() error { return e.Err }
