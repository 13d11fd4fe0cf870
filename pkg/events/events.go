// Package events defines event types and structures for assistant activity
// notifications.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/jarvishq/jarvis/pkg/dispatch"
)

type EventType string

// Kafka topic carrying all Jarvis events.
const Topic = "jarvis.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// CommandDispatchedEvent fires once per dispatch outcome, whatever the
	// status.
	CommandDispatchedEvent EventType = "command.dispatched"

	// MeetingRecordedEvent announces that the meeting intelligence
	// provider finished processing a meeting.
	MeetingRecordedEvent EventType = "meeting.recorded"

	// MeetingScannedEvent reports the automation scan results for one
	// meeting.
	MeetingScannedEvent EventType = "meeting.scanned"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

func NewBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]any),
	}
}

// CommandDispatched records a single dispatch attempt and its outcome.
// Source names the call site: "chat", "voice", "direct", or "automation".
type CommandDispatched struct {
	BaseEvent

	Source  string           `json:"source"`
	Outcome dispatch.Outcome `json:"outcome"`
}

func (c CommandDispatched) GetType() EventType {
	return CommandDispatchedEvent
}

func NewCommandDispatched(source string, outcome dispatch.Outcome) CommandDispatched {
	return CommandDispatched{
		BaseEvent: NewBaseEvent(CommandDispatchedEvent),
		Source:    source,
		Outcome:   outcome,
	}
}

// MeetingRecorded is published by the intelligence provider webhook (or the
// poller) when a meeting becomes available for scanning.
type MeetingRecorded struct {
	BaseEvent

	MeetingID string `json:"meeting_id"`
	ContactID string `json:"contact_id,omitempty"`
}

func (m MeetingRecorded) GetType() EventType {
	return MeetingRecordedEvent
}

func NewMeetingRecorded(meetingID, contactID string) MeetingRecorded {
	return MeetingRecorded{
		BaseEvent: NewBaseEvent(MeetingRecordedEvent),
		MeetingID: meetingID,
		ContactID: contactID,
	}
}

// MeetingScanned summarizes one automation scan over a meeting.
type MeetingScanned struct {
	BaseEvent

	MeetingID string             `json:"meeting_id"`
	ContactID string             `json:"contact_id"`
	Outcomes  []dispatch.Outcome `json:"outcomes,omitempty"`
}

func (m MeetingScanned) GetType() EventType {
	return MeetingScannedEvent
}

func NewMeetingScanned(meetingID, contactID string, outcomes []dispatch.Outcome) MeetingScanned {
	return MeetingScanned{
		BaseEvent: NewBaseEvent(MeetingScannedEvent),
		MeetingID: meetingID,
		ContactID: contactID,
		Outcomes:  outcomes,
	}
}
