package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jarvishq/jarvis/pkg/commands"
	"github.com/jarvishq/jarvis/pkg/protocol"
)

// Dispatcher validates a command's fields and invokes exactly one executor
// operation for it. It is total: every structurally valid command yields an
// Outcome, never a panic or an error return. Business failures (missing
// fields, executor rejections, unknown actions) are all outcome values.
//
// The dispatcher performs no retries and no deduplication. Whether two
// dispatches of the same command are idempotent depends entirely on the CRM.
type Dispatcher struct {
	executor protocol.ActionExecutor
	logger   *slog.Logger
}

func NewDispatcher(executor protocol.ActionExecutor, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		executor: executor,
		logger:   logger,
	}
}

// Dispatch runs a single command against the action executor. Callers that
// built the command from a partial UI form may have left fields empty; that
// is surfaced as Skipped rather than Failed because no remote call happened.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd commands.Command) Outcome {
	if cmd == nil {
		return d.skipped(ctx, "", "no command to dispatch")
	}

	switch c := cmd.(type) {
	case commands.SendFollowUp:
		if c.ContactID == "" {
			return d.skipped(ctx, c.Action(), "missing contact id")
		}

		if c.Message == "" {
			return d.skipped(ctx, c.Action(), "missing message")
		}

		if err := d.executor.SendFollowUp(ctx, c.ContactID, c.Message); err != nil {
			return d.failed(ctx, c.Action(), err)
		}

		return d.succeeded(ctx, c.Action(), fmt.Sprintf("Follow-up sent to contact %s", c.ContactID))

	case commands.AddTag:
		if c.ContactID == "" {
			return d.skipped(ctx, c.Action(), "missing contact id")
		}

		if c.TagID == "" {
			return d.skipped(ctx, c.Action(), "missing tag id")
		}

		if err := d.executor.AddTag(ctx, c.ContactID, c.TagID); err != nil {
			return d.failed(ctx, c.Action(), err)
		}

		return d.succeeded(ctx, c.Action(), fmt.Sprintf("Tag %s added to contact %s", c.TagID, c.ContactID))

	case commands.MovePipeline:
		if c.OpportunityID == "" {
			return d.skipped(ctx, c.Action(), "missing opportunity id")
		}

		if c.StageID == "" {
			return d.skipped(ctx, c.Action(), "missing stage id")
		}

		if err := d.executor.MovePipelineStage(ctx, c.OpportunityID, c.StageID); err != nil {
			return d.failed(ctx, c.Action(), err)
		}

		return d.succeeded(ctx, c.Action(), fmt.Sprintf("Opportunity %s moved to stage %s", c.OpportunityID, c.StageID))

	case commands.LaunchWorkflow:
		if c.ContactID == "" {
			return d.skipped(ctx, c.Action(), "missing contact id")
		}

		if c.WorkflowID == "" {
			return d.skipped(ctx, c.Action(), "missing workflow id")
		}

		if err := d.executor.LaunchWorkflow(ctx, c.WorkflowID, c.ContactID); err != nil {
			return d.failed(ctx, c.Action(), err)
		}

		return d.succeeded(ctx, c.Action(), fmt.Sprintf("Workflow %s launched for contact %s", c.WorkflowID, c.ContactID))

	case commands.MarkNoShow:
		if c.AppointmentID == "" {
			return d.skipped(ctx, c.Action(), "missing appointment id")
		}

		if err := d.executor.MarkNoShow(ctx, c.AppointmentID); err != nil {
			return d.failed(ctx, c.Action(), err)
		}

		return d.succeeded(ctx, c.Action(), fmt.Sprintf("Appointment %s marked as no-show", c.AppointmentID))

	case commands.StartCampaign:
		if c.ContactID == "" {
			return d.skipped(ctx, c.Action(), "missing contact id")
		}

		if c.CampaignName == "" {
			return d.skipped(ctx, c.Action(), "missing campaign name")
		}

		// Campaigns run as workflows in the CRM; the campaign name is the
		// workflow identifier.
		if err := d.executor.LaunchWorkflow(ctx, c.CampaignName, c.ContactID); err != nil {
			return d.failed(ctx, c.Action(), err)
		}

		return d.succeeded(ctx, c.Action(), fmt.Sprintf("Campaign %s started for contact %s", c.CampaignName, c.ContactID))

	default:
		return d.skipped(ctx, cmd.Action(), "unsupported action")
	}
}

func (d *Dispatcher) succeeded(ctx context.Context, action commands.ActionType, message string) Outcome {
	d.logger.InfoContext(ctx, "Command dispatched", "action", action, "message", message)

	return Succeeded(action, message)
}

func (d *Dispatcher) failed(ctx context.Context, action commands.ActionType, err error) Outcome {
	d.logger.ErrorContext(ctx, "Command dispatch failed", "action", action, "error", err)

	return Failed(action, err)
}

func (d *Dispatcher) skipped(ctx context.Context, action commands.ActionType, reason string) Outcome {
	d.logger.WarnContext(ctx, "Command dispatch skipped", "action", action, "reason", reason)

	return Skipped(action, reason)
}
