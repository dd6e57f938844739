package entity

import (
	"fmt"
	"strings"
)

// ValidationError reports bad user input. Nothing is persisted when it is
// returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ResolverError means the flight data provider could not supply schedule
// details. The message is user-facing.
type ResolverError struct {
	Message string
}

func (e *ResolverError) Error() string {
	return e.Message
}

// SchedulingError means the external scheduler rejected the check-in job.
type SchedulingError struct {
	Message string
}

func (e *SchedulingError) Error() string {
	return e.Message
}

// CancellationError means the external scheduler refused to cancel a job.
// The local soft-delete is kept regardless.
type CancellationError struct {
	JobID   string
	Message string
}

func (e *CancellationError) Error() string {
	return fmt.Sprintf("failed to cancel scheduled job %s: %s", e.JobID, e.Message)
}

// CallbackNotFoundError means a callback referenced a job id no flight
// record carries. This indicates a lost or duplicated job and is logged
// rather than retried.
type CallbackNotFoundError struct {
	JobID string
}

func (e *CallbackNotFoundError) Error() string {
	return fmt.Sprintf("no flight found with check-in job id %q", e.JobID)
}
