// Package dispatch routes parsed commands to the CRM action executor and
// reports the result of each attempt as an Outcome value.
package dispatch

import "github.com/jarvishq/jarvis/pkg/commands"

// Status is the three-way result of dispatching a command.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// Outcome describes what happened to a single dispatched command. Skipped
// means the command was recognized but could not be executed as given
// (missing fields, unsupported action); Failed means the executor call was
// made and rejected.
type Outcome struct {
	Action  commands.ActionType `json:"action"`
	Status  Status              `json:"status"`
	Message string              `json:"message"`
}

// Succeeded builds a success outcome with a human-readable confirmation.
func Succeeded(action commands.ActionType, message string) Outcome {
	return Outcome{Action: action, Status: StatusSucceeded, Message: message}
}

// Failed builds a failure outcome preserving the executor's error text.
func Failed(action commands.ActionType, err error) Outcome {
	return Outcome{Action: action, Status: StatusFailed, Message: err.Error()}
}

// Skipped builds an outcome for a command that was not executed.
func Skipped(action commands.ActionType, reason string) Outcome {
	return Outcome{Action: action, Status: StatusSkipped, Message: reason}
}
