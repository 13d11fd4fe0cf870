// Package main provides the Jarvis API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"

	"github.com/jarvishq/jarvis/pkg/automation"
	"github.com/jarvishq/jarvis/pkg/cmd"
	"github.com/jarvishq/jarvis/pkg/dispatch"
	"github.com/jarvishq/jarvis/pkg/eventbus"
	"github.com/jarvishq/jarvis/pkg/history"
	"github.com/jarvishq/jarvis/pkg/protocol"
	"github.com/jarvishq/jarvis/pkg/services"
	"github.com/jarvishq/jarvis/pkg/web"
)

type API struct {
	logger     *slog.Logger
	assistant  *services.Assistant
	automation *services.Automation
	executor   protocol.ActionExecutor
	validate   *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	clients cmd.ClientsConfig,
	store history.Store,
	eventBus eventbus.EventBus,
	tracer trace.Tracer,
	rulesFile string,
) (*API, error) {
	executor := cmd.NewExecutor(clients, logger)
	responder := cmd.NewResponder(clients, logger)
	meetings := cmd.NewMeetingIntelligence(clients, logger)

	rules := automation.DefaultRules()

	if rulesFile != "" {
		loaded, err := automation.LoadRules(rulesFile)
		if err != nil {
			return nil, err
		}

		rules = loaded
	}

	dispatcher := dispatch.NewDispatcher(executor, logger)
	scanner := automation.NewScanner(rules, dispatcher, logger)

	return &API{
		logger:     logger,
		assistant:  services.NewAssistant(responder, dispatcher, store, eventBus, logger, tracer),
		automation: services.NewAutomation(meetings, scanner, store, eventBus, logger, tracer),
		executor:   executor,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.assistant, a.automation, a.executor, a.validate)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Jarvis API")
	})

	app.Post("/chat/messages", handlers.Chat)

	commands := app.Group("/commands")
	commands.Post("/parse", handlers.ParseCommand)
	commands.Post("/dispatch", handlers.DispatchCommand)

	app.Post("/actions/update-contact", handlers.UpdateContact)
	app.Post("/meetings/:id/scan", handlers.ScanMeeting)
	app.Get("/history", handlers.GetHistory)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	return a.App().Listen(":" + strconv.Itoa(port))
}
