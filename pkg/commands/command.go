// Package commands defines the structured automation commands Jarvis can
// extract from free text and the grammar that parses them.
package commands

// ActionType identifies which automation action a command requests.
type ActionType string

const (
	ActionSendFollowUp   ActionType = "send-followup"
	ActionAddTag         ActionType = "add-tag"
	ActionMovePipeline   ActionType = "move-pipeline"
	ActionLaunchWorkflow ActionType = "launch-workflow"
	ActionMarkNoShow     ActionType = "mark-noshow"
	ActionStartCampaign  ActionType = "start-campaign"
)

// Command is the tagged union of automation commands. Each variant carries
// only the fields that action needs, so a command can never be half-built:
// either the grammar matched every capture or no Command is produced at all.
// Identifier fields are opaque strings; shape validation belongs to the CRM.
type Command interface {
	Action() ActionType
}

// SendFollowUp sends a message to a contact. Message holds the entire input
// sentence the command was parsed from, not an extracted sub-phrase. That is
// observable behavior callers depend on; do not narrow it here.
type SendFollowUp struct {
	ContactID string `json:"contact_id"`
	Message   string `json:"message"`
}

func (SendFollowUp) Action() ActionType { return ActionSendFollowUp }

// AddTag applies a tag to a contact.
type AddTag struct {
	ContactID string `json:"contact_id"`
	TagID     string `json:"tag_id"`
}

func (AddTag) Action() ActionType { return ActionAddTag }

// MovePipeline moves an opportunity to a new pipeline stage.
type MovePipeline struct {
	OpportunityID string `json:"opportunity_id"`
	StageID       string `json:"stage_id"`
}

func (MovePipeline) Action() ActionType { return ActionMovePipeline }

// LaunchWorkflow starts an automation workflow for a contact.
type LaunchWorkflow struct {
	ContactID  string `json:"contact_id"`
	WorkflowID string `json:"workflow_id"`
}

func (LaunchWorkflow) Action() ActionType { return ActionLaunchWorkflow }

// MarkNoShow flags an appointment as a no-show.
type MarkNoShow struct {
	AppointmentID string `json:"appointment_id"`
}

func (MarkNoShow) Action() ActionType { return ActionMarkNoShow }

// StartCampaign launches a named campaign for a contact. There is no grammar
// pattern for it; it is only built by direct callers such as the action form.
type StartCampaign struct {
	ContactID    string `json:"contact_id"`
	CampaignName string `json:"campaign_name"`
}

func (StartCampaign) Action() ActionType { return ActionStartCampaign }
