package protocol

import (
	"context"
	"time"

	"github.com/jarvishq/jarvis/pkg/models"
)

// MeetingIntelligence supplies processed meeting records (summary plus
// insight texts) from the recording provider. The automation scanner
// consumes these as its input text source.
type MeetingIntelligence interface {
	// GetMeeting fetches a single meeting record by its provider ID.
	GetMeeting(ctx context.Context, meetingID string) (*models.Meeting, error)

	// RecentMeetings lists meetings that ended after the given time,
	// newest first.
	RecentMeetings(ctx context.Context, since time.Time) ([]*models.Meeting, error)
}
