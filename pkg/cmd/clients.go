package cmd

import (
	"log/slog"

	"github.com/jarvishq/jarvis/pkg/clients/gohighlevel"
	"github.com/jarvishq/jarvis/pkg/clients/openai"
	"github.com/jarvishq/jarvis/pkg/clients/symbl"
	"github.com/jarvishq/jarvis/pkg/protocol"
)

// ClientsConfig carries the credentials for Jarvis's external services.
// Empty base URLs select each provider's production endpoint.
type ClientsConfig struct {
	GHLAPIKey      string
	GHLBaseURL     string
	SymblAppID     string
	SymblAppSecret string
	SymblBaseURL   string
	OpenAIAPIKey   string
	OpenAIModel    string
}

// NewExecutor creates the GoHighLevel-backed action executor.
func NewExecutor(cfg ClientsConfig, logger *slog.Logger) protocol.ActionExecutor {
	return gohighlevel.NewClient(gohighlevel.Config{
		BaseURL: cfg.GHLBaseURL,
		APIKey:  cfg.GHLAPIKey,
	}, logger)
}

// NewResponder creates the OpenAI-backed chat responder.
func NewResponder(cfg ClientsConfig, logger *slog.Logger) protocol.Responder {
	return openai.NewClient(openai.Config{
		APIKey: cfg.OpenAIAPIKey,
		Model:  cfg.OpenAIModel,
	}, logger)
}

// NewMeetingIntelligence creates the Symbl-backed meeting intelligence client.
func NewMeetingIntelligence(cfg ClientsConfig, logger *slog.Logger) protocol.MeetingIntelligence {
	return symbl.NewClient(symbl.Config{
		BaseURL:   cfg.SymblBaseURL,
		AppID:     cfg.SymblAppID,
		AppSecret: cfg.SymblAppSecret,
	}, logger)
}
