package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AddTag(t *testing.T) {
	cmd := Parse("add the tag hotlead to contact John123")
	require.NotNil(t, cmd)

	addTag, ok := cmd.(AddTag)
	require.True(t, ok)
	assert.Equal(t, ActionAddTag, cmd.Action())
	assert.Equal(t, "hotlead", addTag.TagID)
	assert.Equal(t, "John123", addTag.ContactID)
}

func TestParse_AddTag_ApplyPhrasing(t *testing.T) {
	cmd := Parse("apply tag vip for contact Mary88")
	require.NotNil(t, cmd)

	addTag, ok := cmd.(AddTag)
	require.True(t, ok)
	assert.Equal(t, "vip", addTag.TagID)
	assert.Equal(t, "Mary88", addTag.ContactID)
}

func TestParse_SendFollowUp(t *testing.T) {
	text := "please send a follow-up to contact John123 about pricing"
	cmd := Parse(text)
	require.NotNil(t, cmd)

	followUp, ok := cmd.(SendFollowUp)
	require.True(t, ok)
	assert.Equal(t, ActionSendFollowUp, cmd.Action())
	assert.Equal(t, "John123", followUp.ContactID)
	// The whole sentence becomes the message payload. Existing behavior.
	assert.Equal(t, text, followUp.Message)
}

func TestParse_SendFollowUp_Variants(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		contact string
	}{
		{name: "sending", text: "sending a followup for Sarah9", contact: "Sarah9"},
		{name: "space_separated", text: "send follow up to contact Bob1", contact: "Bob1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := Parse(tc.text)
			require.NotNil(t, cmd)

			followUp, ok := cmd.(SendFollowUp)
			require.True(t, ok)
			assert.Equal(t, tc.contact, followUp.ContactID)
		})
	}
}

func TestParse_MovePipeline(t *testing.T) {
	cmd := Parse("move opportunity opp456 to stage negotiation")
	require.NotNil(t, cmd)

	move, ok := cmd.(MovePipeline)
	require.True(t, ok)
	assert.Equal(t, ActionMovePipeline, cmd.Action())
	assert.Equal(t, "opp456", move.OpportunityID)
	assert.Equal(t, "negotiation", move.StageID)
}

func TestParse_MovePipeline_IntoPipelineStage(t *testing.T) {
	cmd := Parse("move opp789 into pipeline stage closedwon")
	require.NotNil(t, cmd)

	move, ok := cmd.(MovePipeline)
	require.True(t, ok)
	assert.Equal(t, "opp789", move.OpportunityID)
	assert.Equal(t, "closedwon", move.StageID)
}

func TestParse_LaunchWorkflow(t *testing.T) {
	cmd := Parse("launch workflow welcome123 for contact John123")
	require.NotNil(t, cmd)

	launch, ok := cmd.(LaunchWorkflow)
	require.True(t, ok)
	assert.Equal(t, ActionLaunchWorkflow, cmd.Action())
	assert.Equal(t, "welcome123", launch.WorkflowID)
	assert.Equal(t, "John123", launch.ContactID)
}

func TestParse_LaunchWorkflow_CampaignPhrasing(t *testing.T) {
	cmd := Parse("launch campaign nurture55 for Amy3")
	require.NotNil(t, cmd)

	launch, ok := cmd.(LaunchWorkflow)
	require.True(t, ok)
	assert.Equal(t, "nurture55", launch.WorkflowID)
	assert.Equal(t, "Amy3", launch.ContactID)
}

func TestParse_MarkNoShow(t *testing.T) {
	cmd := Parse("mark appointment appt456 as no-show")
	require.NotNil(t, cmd)

	noShow, ok := cmd.(MarkNoShow)
	require.True(t, ok)
	assert.Equal(t, ActionMarkNoShow, cmd.Action())
	assert.Equal(t, "appt456", noShow.AppointmentID)
}

func TestParse_MarkNoShow_HyphenVariants(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{name: "hyphen", text: "mark appt1 as a no-show"},
		{name: "space", text: "mark appointment appt1 as no show"},
		{name: "joined", text: "mark appt1 as noshow"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := Parse(tc.text)
			require.NotNil(t, cmd)

			noShow, ok := cmd.(MarkNoShow)
			require.True(t, ok)
			assert.Equal(t, "appt1", noShow.AppointmentID)
		})
	}
}

func TestParse_NoMatch(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "small_talk", text: "hello there, how are you today?"},
		{name: "tag_without_verb", text: "Tag John123 as hotlead"},
		{name: "incomplete_move", text: "move opportunity opp456"},
		{name: "tag_with_punctuated_id", text: "add the tag hot-lead to contact John123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, Parse(tc.text))
		})
	}
}

func TestParse_PrecedenceFollowUpWins(t *testing.T) {
	text := "send a follow-up to contact John123 and add the tag vip to contact John123"
	cmd := Parse(text)
	require.NotNil(t, cmd)

	// Both the follow-up and add-tag patterns match this sentence; the
	// follow-up pattern is earlier in precedence order and must win.
	followUp, ok := cmd.(SendFollowUp)
	require.True(t, ok)
	assert.Equal(t, "John123", followUp.ContactID)
}

func TestParse_Idempotent(t *testing.T) {
	text := "add the tag hotlead to contact John123"

	first := Parse(text)
	second := Parse(text)

	assert.Equal(t, first, second)
}

func TestParse_CaseInsensitive(t *testing.T) {
	cmd := Parse("ADD THE TAG Hotlead TO CONTACT John123")
	require.NotNil(t, cmd)

	addTag, ok := cmd.(AddTag)
	require.True(t, ok)
	assert.Equal(t, "Hotlead", addTag.TagID)
	assert.Equal(t, "John123", addTag.ContactID)
}
