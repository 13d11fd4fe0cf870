// Package services provides the application services wiring the command
// core to its collaborators, plus standardized service-layer errors.
package services

import "errors"

// Validation errors indicate client mistakes (HTTP 400 responses).
var (
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrEmptyMeetingID = errors.New("meeting ID cannot be empty")
	ErrUnknownAction  = errors.New("unknown action")
)

// IsValidationError checks if an error is a validation error that should
// return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrEmptyMeetingID) ||
		errors.Is(err, ErrUnknownAction)
}
