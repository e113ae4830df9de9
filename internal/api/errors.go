package api

import "errors"

var (
	// ErrInvalidRequestBody is returned when the request body cannot be decoded
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrMultipleJSONObjects is returned when the request body contains more than one JSON object
	ErrMultipleJSONObjects = errors.New("request body must contain a single JSON object")
	// ErrJobsNotConfigured is returned when the router has no job manager
	ErrJobsNotConfigured = errors.New("scan jobs not configured")
	// ErrJobCreateFailed is returned when a valid scan request could not be queued
	ErrJobCreateFailed = errors.New("unable to queue scan")
)
