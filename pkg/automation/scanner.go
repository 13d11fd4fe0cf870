package automation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/jarvishq/jarvis/pkg/commands"
	"github.com/jarvishq/jarvis/pkg/dispatch"
	"github.com/jarvishq/jarvis/pkg/models"
)

// ErrNoContact is returned as a failed outcome when a meeting has no
// resolvable contact. Every triggered action needs a contact, so the scan
// fails fast for the whole meeting instead of matching keywords first.
var ErrNoContact = errors.New("no contact resolved for meeting")

// Scanner matches meeting text against a rule table and dispatches every
// matching rule's action. Unlike the command grammar this is not a
// precedence match: several rules may fire from one scan.
type Scanner struct {
	rules      []Rule
	dispatcher *dispatch.Dispatcher
	logger     *slog.Logger
}

func NewScanner(rules []Rule, dispatcher *dispatch.Dispatcher, logger *slog.Logger) *Scanner {
	return &Scanner{
		rules:      rules,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Scan searches the text for every rule keyword (case-insensitive
// substring) and dispatches one action per matching rule. Dispatches run
// concurrently with no ordering guarantee between them; a failure in one
// never aborts the others. The returned outcomes follow rule-table order.
func (s *Scanner) Scan(ctx context.Context, contactID, text string) []dispatch.Outcome {
	if contactID == "" {
		return []dispatch.Outcome{dispatch.Failed("", ErrNoContact)}
	}

	lowered := strings.ToLower(text)

	matched := make([]Rule, 0, len(s.rules))

	for _, rule := range s.rules {
		if strings.Contains(lowered, strings.ToLower(rule.Keyword)) {
			matched = append(matched, rule)
		}
	}

	if len(matched) == 0 {
		return nil
	}

	s.logger.InfoContext(ctx, "Meeting text matched automation rules",
		"contact_id", contactID, "matches", len(matched))

	outcomes := make([]dispatch.Outcome, len(matched))

	var wg sync.WaitGroup

	for i, rule := range matched {
		wg.Add(1)

		go func(i int, rule Rule) {
			defer wg.Done()

			outcomes[i] = s.fire(ctx, contactID, rule)
		}(i, rule)
	}

	wg.Wait()

	return outcomes
}

// ScanMeeting runs Scan over the meeting's summary and insight texts.
func (s *Scanner) ScanMeeting(ctx context.Context, meeting *models.Meeting) []dispatch.Outcome {
	return s.Scan(ctx, meeting.ContactID, meeting.Transcript())
}

func (s *Scanner) fire(ctx context.Context, contactID string, rule Rule) dispatch.Outcome {
	cmd := buildCommand(contactID, rule)
	if cmd == nil {
		return dispatch.Skipped(rule.Action, "unsupported automation action")
	}

	return s.dispatcher.Dispatch(ctx, cmd)
}

func buildCommand(contactID string, rule Rule) commands.Command {
	switch rule.Action {
	case commands.ActionAddTag:
		return commands.AddTag{ContactID: contactID, TagID: rule.TargetID}
	case commands.ActionLaunchWorkflow:
		return commands.LaunchWorkflow{ContactID: contactID, WorkflowID: rule.TargetID}
	case commands.ActionStartCampaign:
		return commands.StartCampaign{ContactID: contactID, CampaignName: rule.TargetID}
	case commands.ActionSendFollowUp:
		return commands.SendFollowUp{ContactID: contactID, Message: rule.TargetID}
	default:
		return nil
	}
}
