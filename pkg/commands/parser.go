package commands

import "regexp"

// pattern pairs a compiled expression with a builder that turns its capture
// groups into a Command. Builders are only called with a full match, so every
// required field is populated or the pattern did not match at all.
type pattern struct {
	re    *regexp.Regexp
	build func(text string, groups []string) Command
}

// patterns are tried in order and the first match wins, so more specific
// phrasing must come before more general phrasing. Identifiers are plain
// alphanumeric tokens; punctuation or spaces inside an ID are not matched.
var patterns = []pattern{
	{
		re: regexp.MustCompile(`(?i)send(?:ing)?\s+(?:a\s+)?follow[\s-]?up\s+(?:to|for)\s+(?:contact\s+)?([a-zA-Z0-9]+)`),
		build: func(text string, groups []string) Command {
			return SendFollowUp{ContactID: groups[1], Message: text}
		},
	},
	{
		re: regexp.MustCompile(`(?i)(?:add|apply)\s+(?:the\s+)?tag\s+([a-zA-Z0-9]+)\s+(?:to|for)\s+(?:contact\s+)?([a-zA-Z0-9]+)`),
		build: func(_ string, groups []string) Command {
			return AddTag{TagID: groups[1], ContactID: groups[2]}
		},
	},
	{
		re: regexp.MustCompile(`(?i)move\s+(?:opportunity\s+)?([a-zA-Z0-9]+)\s+(?:to|into)\s+(?:pipeline\s+)?stage\s+([a-zA-Z0-9]+)`),
		build: func(_ string, groups []string) Command {
			return MovePipeline{OpportunityID: groups[1], StageID: groups[2]}
		},
	},
	{
		re: regexp.MustCompile(`(?i)launch\s+(?:workflow|campaign)\s+([a-zA-Z0-9]+)\s+for\s+(?:contact\s+)?([a-zA-Z0-9]+)`),
		build: func(_ string, groups []string) Command {
			return LaunchWorkflow{WorkflowID: groups[1], ContactID: groups[2]}
		},
	},
	{
		re: regexp.MustCompile(`(?i)mark\s+(?:appointment\s+)?([a-zA-Z0-9]+)\s+as\s+(?:a\s+)?no[\s-]?show`),
		build: func(_ string, groups []string) Command {
			return MarkNoShow{AppointmentID: groups[1]}
		},
	},
}

// Parse extracts a structured command from free text. It is pure and
// deterministic: the same text always yields the same command. Matching is
// case-insensitive and short-circuits on the first pattern that matches.
// Parse returns nil when no pattern matches; absence of a command is an
// expected result, not an error.
func Parse(text string) Command {
	if text == "" {
		return nil
	}

	for _, p := range patterns {
		groups := p.re.FindStringSubmatch(text)
		if groups == nil {
			continue
		}

		return p.build(text, groups)
	}

	return nil
}
