package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jarvishq/jarvis/pkg/commands"
	"github.com/jarvishq/jarvis/pkg/dispatch"
)

func TestCommandDispatched_GetType(t *testing.T) {
	event := CommandDispatched{}
	assert.Equal(t, CommandDispatchedEvent, event.GetType())
}

func TestCommandDispatched_JSONSerialization(t *testing.T) {
	original := NewCommandDispatched("chat",
		dispatch.Succeeded(commands.ActionAddTag, "Tag hotlead added to contact John123"))

	jsonData, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"type":"command.dispatched"`)
	assert.Contains(t, string(jsonData), `"source":"chat"`)
	assert.Contains(t, string(jsonData), `"action":"add-tag"`)

	var deserialized CommandDispatched

	err = json.Unmarshal(jsonData, &deserialized)
	require.NoError(t, err)

	assert.Equal(t, original.ID, deserialized.ID)
	assert.Equal(t, original.Source, deserialized.Source)
	assert.Equal(t, original.Outcome, deserialized.Outcome)
}

func TestNewBaseEvent_PopulatesIdentity(t *testing.T) {
	event := NewBaseEvent(MeetingRecordedEvent)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, MeetingRecordedEvent, event.Type)
	assert.False(t, event.Timestamp.IsZero())
}

func TestMeetingScanned_JSONSerialization(t *testing.T) {
	original := NewMeetingScanned("meeting1", "contact1", []dispatch.Outcome{
		dispatch.Succeeded(commands.ActionLaunchWorkflow, "Workflow hot-lead-nurture launched for contact contact1"),
		dispatch.Failed(commands.ActionAddTag, assert.AnError),
	})

	jsonData, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), `"meeting_id":"meeting1"`)

	var deserialized MeetingScanned

	err = json.Unmarshal(jsonData, &deserialized)
	require.NoError(t, err)

	require.Len(t, deserialized.Outcomes, 2)
	assert.Equal(t, dispatch.StatusSucceeded, deserialized.Outcomes[0].Status)
	assert.Equal(t, dispatch.StatusFailed, deserialized.Outcomes[1].Status)
}
