package domain

import "errors"

// ErrMalformedDefinition is returned when a machine description lacks the header rows.
var ErrMalformedDefinition = errors.New("malformed machine definition")

// ErrInvalidDepth is returned when a trace is requested with a non-positive depth bound.
var ErrInvalidDepth = errors.New("max depth must be a positive integer")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrUnknownMachine is returned when a loader cannot resolve a machine reference.
var ErrUnknownMachine = errors.New("unknown machine")
