// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/jarvishq/jarvis/pkg/models"
)

// CreateTestMeeting creates a test Meeting with default values that can be
// overridden.
func CreateTestMeeting(overrides ...func(*models.Meeting)) *models.Meeting {
	started := time.Now().Add(-30 * time.Minute).UTC()

	meeting := &models.Meeting{
		ID:        uuid.New().String(),
		ContactID: "contact-" + uuid.New().String()[:8],
		Title:     "Discovery Call",
		Summary:   "Walked through the product and next steps.",
		StartedAt: started,
		EndedAt:   started.Add(25 * time.Minute),
	}

	for _, override := range overrides {
		override(meeting)
	}

	return meeting
}

// WithContactID sets the meeting's CRM contact.
func WithContactID(contactID string) func(*models.Meeting) {
	return func(m *models.Meeting) {
		m.ContactID = contactID
	}
}

// WithSummary sets the meeting summary.
func WithSummary(summary string) func(*models.Meeting) {
	return func(m *models.Meeting) {
		m.Summary = summary
	}
}

// WithInsights appends insights built from the given texts.
func WithInsights(texts ...string) func(*models.Meeting) {
	return func(m *models.Meeting) {
		for _, text := range texts {
			m.Insights = append(m.Insights, models.Insight{
				ID:   uuid.New().String(),
				Type: "action_item",
				Text: text,
			})
		}
	}
}

// WithoutContact clears the contact link, matching meetings the provider
// could not resolve to a CRM contact.
func WithoutContact() func(*models.Meeting) {
	return func(m *models.Meeting) {
		m.ContactID = ""
	}
}
