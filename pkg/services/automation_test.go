package services_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jarvishq/jarvis/pkg/automation"
	"github.com/jarvishq/jarvis/pkg/dispatch"
	"github.com/jarvishq/jarvis/pkg/history"
	"github.com/jarvishq/jarvis/pkg/mocks"
	"github.com/jarvishq/jarvis/pkg/models"
	"github.com/jarvishq/jarvis/pkg/services"
	"github.com/jarvishq/jarvis/pkg/testutil"
)

func newAutomation(t *testing.T) (*services.Automation, *mocks.MockMeetingIntelligence, *mocks.MockActionExecutor, *mocks.MockHistoryStore, *mocks.MockEventPublisher) {
	t.Helper()

	meetings := new(mocks.MockMeetingIntelligence)
	executor := new(mocks.MockActionExecutor)
	store := new(mocks.MockHistoryStore)
	publisher := new(mocks.MockEventPublisher)
	logger := slog.Default()

	scanner := automation.NewScanner(
		automation.DefaultRules(),
		dispatch.NewDispatcher(executor, logger),
		logger,
	)

	svc := services.NewAutomation(meetings, scanner, store, publisher, logger, nil)

	return svc, meetings, executor, store, publisher
}

func TestScanMeeting_FiresMatchingRules(t *testing.T) {
	svc, meetings, executor, store, publisher := newAutomation(t)

	meeting := testutil.CreateTestMeeting(
		testutil.WithContactID("John123"),
		testutil.WithSummary("They asked about pricing."),
		testutil.WithInsights("Very interested in a trial."),
	)

	meetings.On("GetMeeting", mock.Anything, meeting.ID).Return(meeting, nil)
	executor.On("AddTag", mock.Anything, "John123", "pricing-discussed").Return(nil)
	executor.On("LaunchWorkflow", mock.Anything, "hot-lead-nurture", "John123").Return(nil)
	store.On("Append", mock.Anything, mock.MatchedBy(func(entry history.Entry) bool {
		return entry.Source == "automation"
	})).Return(nil)
	publisher.On("Publish", mock.Anything, meeting.ID, mock.Anything).Return(nil)

	outcomes, err := svc.ScanMeeting(context.Background(), meeting.ID)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	for _, outcome := range outcomes {
		assert.Equal(t, dispatch.StatusSucceeded, outcome.Status)
	}

	meetings.AssertExpectations(t)
	executor.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Append", 2)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestScanMeeting_NoMatches(t *testing.T) {
	svc, meetings, executor, _, publisher := newAutomation(t)

	meeting := &models.Meeting{
		ID:        "meet2",
		ContactID: "Jane456",
		Summary:   "Caught up about the weather.",
	}

	meetings.On("GetMeeting", mock.Anything, "meet2").Return(meeting, nil)
	publisher.On("Publish", mock.Anything, "meet2", mock.Anything).Return(nil)

	outcomes, err := svc.ScanMeeting(context.Background(), "meet2")
	require.NoError(t, err)
	assert.Empty(t, outcomes)

	executor.AssertNotCalled(t, "AddTag", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanMeeting_EmptyID(t *testing.T) {
	svc, _, _, _, _ := newAutomation(t)

	outcomes, err := svc.ScanMeeting(context.Background(), "")
	require.ErrorIs(t, err, services.ErrEmptyMeetingID)
	assert.Nil(t, outcomes)
	assert.True(t, services.IsValidationError(err))
}

func TestScanMeeting_FetchFailure(t *testing.T) {
	svc, meetings, _, store, _ := newAutomation(t)

	meetings.On("GetMeeting", mock.Anything, "meet3").
		Return(nil, errors.New("conversation not found"))

	outcomes, err := svc.ScanMeeting(context.Background(), "meet3")
	require.Error(t, err)
	assert.Nil(t, outcomes)

	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestScanMeeting_MissingContactRecordedAsFailure(t *testing.T) {
	svc, meetings, executor, store, publisher := newAutomation(t)

	meeting := testutil.CreateTestMeeting(
		testutil.WithoutContact(),
		testutil.WithSummary("Long pricing discussion."),
	)

	meetings.On("GetMeeting", mock.Anything, "meet4").Return(meeting, nil)
	store.On("Append", mock.Anything, mock.MatchedBy(func(entry history.Entry) bool {
		return entry.Status == dispatch.StatusFailed
	})).Return(nil)
	publisher.On("Publish", mock.Anything, "meet4", mock.Anything).Return(nil)

	outcomes, err := svc.ScanMeeting(context.Background(), "meet4")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, dispatch.StatusFailed, outcomes[0].Status)

	executor.AssertNotCalled(t, "AddTag", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanRecent_ContinuesPastFailures(t *testing.T) {
	svc, meetings, executor, store, publisher := newAutomation(t)

	since := time.Now().Add(-time.Hour)
	recent := []*models.Meeting{
		{ID: "meet5", ContactID: "John123"},
		{ID: "meet6", ContactID: "Jane456"},
	}

	meetings.On("RecentMeetings", mock.Anything, since).Return(recent, nil)
	meetings.On("GetMeeting", mock.Anything, "meet5").
		Return(nil, errors.New("transient error"))
	meetings.On("GetMeeting", mock.Anything, "meet6").Return(&models.Meeting{
		ID:        "meet6",
		ContactID: "Jane456",
		Summary:   "They want a demo next week.",
	}, nil)
	executor.On("LaunchWorkflow", mock.Anything, "demo-booking", "Jane456").Return(nil)
	store.On("Append", mock.Anything, mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, "meet6", mock.Anything).Return(nil)

	err := svc.ScanRecent(context.Background(), since)
	require.NoError(t, err)

	executor.AssertExpectations(t)
}

func TestScanRecent_ListFailure(t *testing.T) {
	svc, meetings, _, _, _ := newAutomation(t)

	since := time.Now()
	meetings.On("RecentMeetings", mock.Anything, since).
		Return(nil, errors.New("auth expired"))

	err := svc.ScanRecent(context.Background(), since)
	require.Error(t, err)
}
