package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	cli "github.com/urfave/cli/v3"

	"github.com/jarvishq/jarvis/pkg/cmd"
	"github.com/jarvishq/jarvis/pkg/log"
	"github.com/jarvishq/jarvis/pkg/otelhelper"
)

const defaultPort = 9090

func main() {
	command := &cli.Command{
		Name:                  "jarvis-api",
		Usage:                 "Start the Jarvis assistant API server",
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "History store URL (redis://, postgres://, or empty for in-memory)",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus type (kafka, memory)",
				Value:   "memory",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
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
				Name:    "symbl-app-id",
				Usage:   "Symbl.ai application ID",
				Sources: cli.EnvVars("SYMBL_APP_ID"),
			},
			&cli.StringFlag{
				Name:    "symbl-app-secret",
				Usage:   "Symbl.ai application secret",
				Sources: cli.EnvVars("SYMBL_APP_SECRET"),
			},
			&cli.StringFlag{
				Name:    "openai-api-key",
				Usage:   "OpenAI API key for the chat responder",
				Sources: cli.EnvVars("OPENAI_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "openai-model",
				Usage:   "OpenAI model for the chat responder",
				Sources: cli.EnvVars("OPENAI_MODEL"),
			},
			&cli.StringFlag{
				Name:    "rules-file",
				Usage:   "Path to a JSON file with automation trigger rules",
				Sources: cli.EnvVars("RULES_FILE"),
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

			tracerProvider, err := otelhelper.InitTracer(ctx, "jarvis-api")
			if err != nil {
				return fmt.Errorf("failed to initialize tracer: %w", err)
			}
			defer func() {
				if err := tracerProvider.Shutdown(ctx); err != nil {
					slog.Error("Failed to shutdown tracer provider", "error", err)
				}
			}()

			logger := log.WithModule("api")

			logger.InfoContext(ctx, "Initializing Jarvis API")

			store := cmd.NewHistoryStore(ctx, logger, command.String("database-url"))
			defer func() {
				if err := store.Close(ctx); err != nil {
					logger.ErrorContext(ctx, "Failed to close history store", "error", err)
				}
			}()

			eventBus := cmd.NewEventBus(command.String("event-bus"), "jarvis-api", logger)
			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
				}
			}()

			clients := cmd.ClientsConfig{
				GHLAPIKey:      command.String("ghl-api-key"),
				GHLBaseURL:     command.String("ghl-base-url"),
				SymblAppID:     command.String("symbl-app-id"),
				SymblAppSecret: command.String("symbl-app-secret"),
				OpenAIAPIKey:   command.String("openai-api-key"),
				OpenAIModel:    command.String("openai-model"),
			}

			api, err := NewAPI(
				logger,
				clients,
				store,
				eventBus,
				tracerProvider.Tracer("jarvis-api"),
				command.String("rules-file"),
			)
			if err != nil {
				return err
			}

			if err := api.Start(command.Int("port")); err != nil {
				logger.ErrorContext(ctx, "Failed to start API server", "error", err)
			}

			return nil
		},
	}

	if err := command.Run(context.Background(), os.Args); err != nil {
		panic(err)
	}
}
