// Package web provides HTTP request and response types for the assistant API.
package web

import (
	"github.com/jarvishq/jarvis/pkg/commands"
	"github.com/jarvishq/jarvis/pkg/services"
)

// ChatRequest represents the request body for a chat message.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ParseRequest represents the request body for parsing text into a command
// without dispatching it.
type ParseRequest struct {
	Text string `json:"text" validate:"required"`
}

// ParseResponse echoes the command extracted from the text, if any.
type ParseResponse struct {
	Matched bool                `json:"matched"`
	Action  commands.ActionType `json:"action,omitempty"`
	Command commands.Command    `json:"command,omitempty"`
}

// DispatchRequest represents the request body for dispatching a command
// directly, bypassing the natural language layer. Only the fields relevant
// to the named action need to be set.
type DispatchRequest struct {
	Action        string `json:"action"                   validate:"required"`
	ContactID     string `json:"contact_id,omitempty"`
	Message       string `json:"message,omitempty"`
	TagID         string `json:"tag_id,omitempty"`
	OpportunityID string `json:"opportunity_id,omitempty"`
	StageID       string `json:"stage_id,omitempty"`
	WorkflowID    string `json:"workflow_id,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
	CampaignName  string `json:"campaign_name,omitempty"`
}

// toCommand maps the request onto the command variant for its action.
func (r DispatchRequest) toCommand() (commands.Command, error) {
	switch commands.ActionType(r.Action) {
	case commands.ActionSendFollowUp:
		return commands.SendFollowUp{ContactID: r.ContactID, Message: r.Message}, nil
	case commands.ActionAddTag:
		return commands.AddTag{ContactID: r.ContactID, TagID: r.TagID}, nil
	case commands.ActionMovePipeline:
		return commands.MovePipeline{OpportunityID: r.OpportunityID, StageID: r.StageID}, nil
	case commands.ActionLaunchWorkflow:
		return commands.LaunchWorkflow{ContactID: r.ContactID, WorkflowID: r.WorkflowID}, nil
	case commands.ActionMarkNoShow:
		return commands.MarkNoShow{AppointmentID: r.AppointmentID}, nil
	case commands.ActionStartCampaign:
		return commands.StartCampaign{ContactID: r.ContactID, CampaignName: r.CampaignName}, nil
	default:
		return nil, services.ErrUnknownAction
	}
}

// UpdateContactRequest represents the request body for patching contact
// fields directly on the CRM.
type UpdateContactRequest struct {
	ContactID string         `json:"contact_id" validate:"required"`
	Fields    map[string]any `json:"fields"     validate:"required,min=1"`
}
