// Package models defines the core domain models for the Jarvis assistant.
package models

import (
	"strings"
	"time"
)

// Insight is a single conversation insight extracted from a recorded
// meeting, such as a question, an action item, or a follow-up request.
type Insight struct {
	ID   string `json:"id"`
	Type string `json:"type,omitempty"`
	Text string `json:"text" validate:"required"`
}

// Meeting is a processed meeting record supplied by the meeting
// intelligence provider. ContactID links the meeting to a CRM contact and
// may be empty when the provider could not resolve one.
type Meeting struct {
	ID        string    `json:"id"         validate:"required"`
	ContactID string    `json:"contact_id"`
	Title     string    `json:"title,omitempty"`
	Summary   string    `json:"summary"`
	Insights  []Insight `json:"insights,omitempty"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at,omitempty"`
}

// Transcript concatenates the meeting summary and every insight text into
// the single blob of text that automation keyword scanning runs over.
func (m *Meeting) Transcript() string {
	parts := make([]string, 0, len(m.Insights)+1)
	if m.Summary != "" {
		parts = append(parts, m.Summary)
	}

	for _, insight := range m.Insights {
		if insight.Text != "" {
			parts = append(parts, insight.Text)
		}
	}

	return strings.Join(parts, " ")
}
