package render

import "errors"

var (
	// ErrUnknownFormat is returned when an output format is not supported
	ErrUnknownFormat = errors.New("unknown output format")
	// ErrWriteOutput is returned when rendered output cannot be written
	ErrWriteOutput = errors.New("unable to write scan output")
)
