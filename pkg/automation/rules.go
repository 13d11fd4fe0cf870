// Package automation scans meeting-derived text against a keyword rule
// table and proactively dispatches the matching CRM actions.
package automation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jarvishq/jarvis/pkg/commands"
)

// Rule maps a keyword found in meeting text to one automation action.
// TargetID is action-dependent: the tag ID for add-tag, the workflow ID for
// launch-workflow and start-campaign, and the message body for send-followup.
type Rule struct {
	Keyword  string              `json:"keyword"   validate:"required"`
	Action   commands.ActionType `json:"action"    validate:"required"`
	TargetID string              `json:"target_id" validate:"required"`
}

// rulesSchema validates the structure of an external rules file before any
// rule is trusted to fire remote actions.
const rulesSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"keyword":   {"type": "string", "minLength": 1},
			"action": {
				"type": "string",
				"enum": ["send-followup", "add-tag", "launch-workflow", "start-campaign"]
			},
			"target_id": {"type": "string", "minLength": 1}
		},
		"required": ["keyword", "action", "target_id"],
		"additionalProperties": false
	}
}`

// DefaultRules is the built-in trigger table used when no rules file is
// configured. Order matters: scan outcomes are reported in table order.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "pricing", Action: commands.ActionAddTag, TargetID: "pricing-discussed"},
		{Keyword: "interested", Action: commands.ActionLaunchWorkflow, TargetID: "hot-lead-nurture"},
		{Keyword: "demo", Action: commands.ActionLaunchWorkflow, TargetID: "demo-booking"},
		{Keyword: "competitor", Action: commands.ActionAddTag, TargetID: "competitor-mentioned"},
	}
}

// LoadRules reads and validates a JSON rules file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(rulesSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to validate rules file: %w", err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}

		return nil, errors.New("invalid rules file: " + strings.Join(details, "; "))
	}

	var rules []Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	return rules, nil
}
