package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/jarvishq/jarvis/pkg/automation"
	"github.com/jarvishq/jarvis/pkg/cmd"
	"github.com/jarvishq/jarvis/pkg/dispatch"
	"github.com/jarvishq/jarvis/pkg/log"
	"github.com/jarvishq/jarvis/pkg/otelhelper"
	"github.com/jarvishq/jarvis/pkg/services"
)

func main() {
	command := &cli.Command{
		Name:                  "jarvis-automation",
		Usage:                 "Start the Jarvis meeting automation service",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "monitor-id",
				Aliases: []string{"id"},
				Usage:   "Custom monitor ID (auto-generated if not provided)",
				Value:   "",
				Sources: cli.EnvVars("MONITOR_ID"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "History store URL (redis://, postgres://, or empty for in-memory)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:     "event-bus",
				Usage:    "Event bus type (kafka, memory)",
				Required: true,
				Sources:  cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:     "ghl-api-key",
				Usage:    "GoHighLevel API key",
				Required: true,
				Sources:  cli.EnvVars("GHL_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "ghl-base-url",
				Usage:   "GoHighLevel API base URL",
				Sources: cli.EnvVars("GHL_BASE_URL"),
			},
			&cli.StringFlag{
				Name:     "symbl-app-id",
				Usage:    "Symbl.ai application ID",
				Required: true,
				Sources:  cli.EnvVars("SYMBL_APP_ID"),
			},
			&cli.StringFlag{
				Name:     "symbl-app-secret",
				Usage:    "Symbl.ai application secret",
				Required: true,
				Sources:  cli.EnvVars("SYMBL_APP_SECRET"),
			},
			&cli.StringFlag{
				Name:    "rules-file",
				Usage:   "Path to a JSON file with automation trigger rules",
				Sources: cli.EnvVars("RULES_FILE"),
			},
			&cli.StringFlag{
				Name:    "poll-schedule",
				Usage:   "Cron schedule for the recent-meeting sweep",
				Value:   "@every 5m",
				Sources: cli.EnvVars("POLL_SCHEDULE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			tracerProvider, err := otelhelper.InitTracer(ctx, "jarvis-automation")
			if err != nil {
				return fmt.Errorf("failed to initialize tracer: %w", err)
			}
			defer func() {
				if err := tracerProvider.Shutdown(ctx); err != nil {
					slog.Error("Failed to shutdown tracer provider", "error", err)
				}
			}()

			monitorID := command.String("monitor-id")
			if monitorID == "" {
				monitorID = fmt.Sprintf("monitor-%s", uuid.New().String()[:8])
			}

			logger := log.WithModule("jarvis-automation").With("monitor_id", monitorID)

			logger.Info("Initializing Jarvis Automation", "monitor_id", monitorID)

			eventBus := cmd.NewEventBus(command.String("event-bus"), "jarvis-automation", logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.Error("Failed to close event bus", "error", err)
				}
			}()

			store := cmd.NewHistoryStore(ctx, logger, command.String("database-url"))
			defer func() {
				if err := store.Close(ctx); err != nil {
					logger.Error("Failed to close history store", "error", err)
				}
			}()

			clients := cmd.ClientsConfig{
				GHLAPIKey:      command.String("ghl-api-key"),
				GHLBaseURL:     command.String("ghl-base-url"),
				SymblAppID:     command.String("symbl-app-id"),
				SymblAppSecret: command.String("symbl-app-secret"),
			}

			rules := automation.DefaultRules()

			if rulesFile := command.String("rules-file"); rulesFile != "" {
				rules, err = automation.LoadRules(rulesFile)
				if err != nil {
					return fmt.Errorf("failed to load automation rules: %w", err)
				}
			}

			executor := cmd.NewExecutor(clients, logger)
			meetings := cmd.NewMeetingIntelligence(clients, logger)
			dispatcher := dispatch.NewDispatcher(executor, logger)
			scanner := automation.NewScanner(rules, dispatcher, logger)

			automationService := services.NewAutomation(
				meetings,
				scanner,
				store,
				eventBus,
				logger,
				tracerProvider.Tracer("jarvis-automation"),
			)

			NewMeetingMonitor(
				monitorID,
				automationService,
				eventBus,
				logger,
				command.String("poll-schedule"),
			).Start(ctx)

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
