package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jarvishq/jarvis/pkg/models"
)

// MockResponder is a mock implementation of protocol.Responder.
type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Respond(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)

	return args.String(0), args.Error(1)
}

// MockMeetingIntelligence is a mock implementation of
// protocol.MeetingIntelligence.
type MockMeetingIntelligence struct {
	mock.Mock
}

func (m *MockMeetingIntelligence) GetMeeting(ctx context.Context, meetingID string) (*models.Meeting, error) {
	args := m.Called(ctx, meetingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingIntelligence) RecentMeetings(ctx context.Context, since time.Time) ([]*models.Meeting, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Meeting), args.Error(1)
}
