package rapidapi

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned when the RapidAPI key is not configured
	ErrMissingAPIKey = errors.New("rapidapi key is required")
	// ErrMissingDomain is returned when a scan is submitted without a domain
	ErrMissingDomain = errors.New("scan domain is required")
	// ErrMissingJobID is returned when a job identifier is required but empty
	ErrMissingJobID = errors.New("scan job ID is required")
	// ErrRequestFailed is returned when a scanner API request fails in transport
	ErrRequestFailed = errors.New("scanner API request failed")
	// ErrUnauthorized is returned when the scanner API rejects the RapidAPI key
	ErrUnauthorized = errors.New("scanner API rejected the API key")
	// ErrUnexpectedStatus is returned when the scanner API returns an unexpected HTTP status
	ErrUnexpectedStatus = errors.New("unexpected scanner API response status")
	// ErrDecodeResponse is returned when a scanner API response body cannot be decoded
	ErrDecodeResponse = errors.New("unable to decode scanner API response")
)

// StatusError carries the HTTP status and raw body of a non-success scanner API response
type StatusError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", ErrUnexpectedStatus, e.StatusCode, e.Body)
}

// Unwrap allows errors.Is(err, ErrUnexpectedStatus)
func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}
