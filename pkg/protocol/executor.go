// Package protocol defines the interfaces and contracts for Jarvis's
// external collaborators.
package protocol

import "context"

// ActionExecutor performs the remote CRM mutations behind the automation
// commands. Implementations own transport concerns such as authentication,
// retries, and timeouts; callers issue at most one executor call per
// dispatched command and surface any returned error verbatim.
type ActionExecutor interface {
	// AddTag applies a tag to a contact.
	AddTag(ctx context.Context, contactID, tagID string) error

	// LaunchWorkflow starts an automation workflow for a contact.
	LaunchWorkflow(ctx context.Context, workflowID, contactID string) error

	// UpdateContact patches arbitrary fields on a contact record.
	UpdateContact(ctx context.Context, contactID string, fields map[string]any) error

	// MovePipelineStage moves an opportunity to a new pipeline stage.
	MovePipelineStage(ctx context.Context, opportunityID, stageID string) error

	// MarkNoShow flags an appointment as a no-show.
	MarkNoShow(ctx context.Context, appointmentID string) error

	// SendFollowUp sends a follow-up message to a contact. This is a
	// separate messaging channel from the CRM mutations above.
	SendFollowUp(ctx context.Context, contactID, message string) error
}
