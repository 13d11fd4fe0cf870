package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jarvishq/jarvis/pkg/automation"
	"github.com/jarvishq/jarvis/pkg/dispatch"
	"github.com/jarvishq/jarvis/pkg/eventbus"
	"github.com/jarvishq/jarvis/pkg/events"
	"github.com/jarvishq/jarvis/pkg/history"
	"github.com/jarvishq/jarvis/pkg/otelhelper"
	"github.com/jarvishq/jarvis/pkg/protocol"
)

// Automation runs the meeting trigger rules against recorded meetings and
// records every resulting dispatch.
type Automation struct {
	meetings protocol.MeetingIntelligence
	scanner  *automation.Scanner
	store    history.Store
	eventBus eventbus.EventPublisher
	logger   *slog.Logger
	tracer   trace.Tracer
}

func NewAutomation(
	meetings protocol.MeetingIntelligence,
	scanner *automation.Scanner,
	store history.Store,
	eventBus eventbus.EventPublisher,
	logger *slog.Logger,
	tracer trace.Tracer,
) *Automation {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("jarvis")
	}

	return &Automation{
		meetings: meetings,
		scanner:  scanner,
		store:    store,
		eventBus: eventBus,
		logger:   logger,
		tracer:   tracer,
	}
}

// ScanMeeting fetches one meeting, runs the trigger rules over its
// transcript, and records each outcome. The returned error covers fetch
// failures only; rule dispatch failures are outcome values.
func (a *Automation) ScanMeeting(ctx context.Context, meetingID string) ([]dispatch.Outcome, error) {
	if meetingID == "" {
		return nil, ErrEmptyMeetingID
	}

	ctx, span := otelhelper.StartSpan(ctx, a.tracer, "meeting.scan",
		attribute.String(otelhelper.MeetingIDKey, meetingID),
	)
	defer span.End()

	meeting, err := a.meetings.GetMeeting(ctx, meetingID)
	if err != nil {
		otelhelper.SetError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String(otelhelper.ContactIDKey, meeting.ContactID))

	outcomes := a.scanner.ScanMeeting(ctx, meeting)

	for _, outcome := range outcomes {
		if err := a.store.Append(ctx, history.NewEntry("automation", outcome)); err != nil {
			a.logger.ErrorContext(ctx, "Failed to record history entry",
				"meeting_id", meetingID, "error", err)
		}
	}

	event := events.NewMeetingScanned(meeting.ID, meeting.ContactID, outcomes)
	if err := a.eventBus.Publish(ctx, meeting.ID, event); err != nil {
		a.logger.ErrorContext(ctx, "Failed to publish scan event",
			"meeting_id", meetingID, "error", err)
	}

	return outcomes, nil
}

// ScanRecent scans every meeting that ended after the given time. A
// meeting that fails to scan is logged and skipped; the sweep continues.
func (a *Automation) ScanRecent(ctx context.Context, since time.Time) error {
	meetings, err := a.meetings.RecentMeetings(ctx, since)
	if err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "Scanning recent meetings",
		"count", len(meetings), "since", since)

	for _, meeting := range meetings {
		if _, err := a.ScanMeeting(ctx, meeting.ID); err != nil {
			a.logger.ErrorContext(ctx, "Failed to scan meeting",
				"meeting_id", meeting.ID, "error", err)
		}
	}

	return nil
}
