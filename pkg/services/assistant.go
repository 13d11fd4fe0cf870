package services

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jarvishq/jarvis/pkg/commands"
	"github.com/jarvishq/jarvis/pkg/dispatch"
	"github.com/jarvishq/jarvis/pkg/eventbus"
	"github.com/jarvishq/jarvis/pkg/events"
	"github.com/jarvishq/jarvis/pkg/history"
	"github.com/jarvishq/jarvis/pkg/otelhelper"
	"github.com/jarvishq/jarvis/pkg/protocol"
)

// Assistant handles the user-facing entry points: chat messages, voice
// transcripts, and direct action forms. Every dispatched command produces
// exactly one history entry and one event, whatever its outcome.
type Assistant struct {
	responder  protocol.Responder
	dispatcher *dispatch.Dispatcher
	store      history.Store
	eventBus   eventbus.EventPublisher
	logger     *slog.Logger
	tracer     trace.Tracer
}

func NewAssistant(
	responder protocol.Responder,
	dispatcher *dispatch.Dispatcher,
	store history.Store,
	eventBus eventbus.EventPublisher,
	logger *slog.Logger,
	tracer trace.Tracer,
) *Assistant {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("jarvis")
	}

	return &Assistant{
		responder:  responder,
		dispatcher: dispatcher,
		store:      store,
		eventBus:   eventBus,
		logger:     logger,
		tracer:     tracer,
	}
}

// ChatResult is the assistant's answer to one chat message. Outcome is nil
// when the reply contained no recognizable command.
type ChatResult struct {
	Reply   string            `json:"reply"`
	Outcome *dispatch.Outcome `json:"outcome,omitempty"`
}

// HandleChat sends the message to the responder, parses the reply through
// the command grammar, and dispatches any command it finds. Responder
// transport failures are the only errors returned; dispatch failures are
// outcome values inside the result.
func (a *Assistant) HandleChat(ctx context.Context, message string) (*ChatResult, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	reply, err := a.responder.Respond(ctx, message)
	if err != nil {
		return nil, err
	}

	cmd := commands.Parse(reply)
	if cmd == nil {
		return &ChatResult{Reply: reply}, nil
	}

	outcome := a.Execute(ctx, "chat", cmd)

	return &ChatResult{Reply: reply, Outcome: &outcome}, nil
}

// HandleTranscript parses an already-finalized voice transcript and
// dispatches the command it contains, if any.
func (a *Assistant) HandleTranscript(ctx context.Context, transcript string) *dispatch.Outcome {
	cmd := commands.Parse(transcript)
	if cmd == nil {
		return nil
	}

	outcome := a.Execute(ctx, "voice", cmd)

	return &outcome
}

// Execute dispatches one command on behalf of the named call site and
// records the outcome in the history and on the event bus.
func (a *Assistant) Execute(ctx context.Context, source string, cmd commands.Command) dispatch.Outcome {
	ctx, span := otelhelper.StartSpan(ctx, a.tracer, "command.dispatch",
		attribute.String(otelhelper.SourceKey, source),
	)
	defer span.End()

	outcome := a.dispatcher.Dispatch(ctx, cmd)

	span.SetAttributes(
		attribute.String(otelhelper.ActionKey, string(outcome.Action)),
		attribute.String(otelhelper.StatusKey, string(outcome.Status)),
	)

	if outcome.Status == dispatch.StatusFailed {
		otelhelper.SetError(span, errors.New(outcome.Message))
	}

	a.record(ctx, source, outcome)

	return outcome
}

func (a *Assistant) record(ctx context.Context, source string, outcome dispatch.Outcome) {
	if err := a.store.Append(ctx, history.NewEntry(source, outcome)); err != nil {
		a.logger.ErrorContext(ctx, "Failed to record history entry", "error", err)
	}

	event := events.NewCommandDispatched(source, outcome)
	if err := a.eventBus.Publish(ctx, source, event); err != nil {
		a.logger.ErrorContext(ctx, "Failed to publish dispatch event", "error", err)
	}
}

// History lists the most recent dispatch outcomes, newest first.
func (a *Assistant) History(ctx context.Context, limit int) ([]history.Entry, error) {
	return a.store.List(ctx, limit)
}

// HealthCheck reports on the history store backing the assistant.
func (a *Assistant) HealthCheck(ctx context.Context) (string, bool) {
	if a.store == nil {
		return "History store not initialized", false
	}

	if err := a.store.HealthCheck(ctx); err != nil {
		return "History store is unhealthy: " + err.Error(), false
	}

	return "History store is healthy", true
}
