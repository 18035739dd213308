package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smaikl/GLG-bot/cmd"
	"github.com/smaikl/GLG-bot/internal/adapters/in/telegram"
	"github.com/smaikl/GLG-bot/internal/adapters/out/persistence"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := newLogger(configs)

	db, err := persistence.Open(configs.DBDriver, configs.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	if err = persistence.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate the database: %v", err)
	}

	api, err := telegram.NewAPI(configs.TelegramBotToken, configs.TelegramDebug)
	if err != nil {
		log.Fatalf("Failed to start the bot: %v", err)
	}
	if err = telegram.SetCommands(api); err != nil {
		logger.Warn("Failed to publish bot commands", "error", err)
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		log.Fatalf("Failed to build the application: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runErr := run(ctx, app, api, configs, logger)
	stop()

	if err = app.Close(); err != nil {
		logger.Error("Failed to release resources", "error", err)
	}
	if runErr != nil {
		logger.Error("Stopped with error", "error", runErr)
		os.Exit(1)
	}
	logger.Info("Stopped")
}

// run serves the bot, the HTTP endpoints and the scheduled jobs until ctx is
// cancelled or one of them fails.
func run(ctx context.Context, app *cmd.CompositionRoot, api telegram.API, configs cmd.Config, logger *slog.Logger) error {
	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	bot := app.CreateBot(api)
	server := app.CreateHTTPServer()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})
	g.Go(func() error {
		return startWebServer(server, configs.HTTPPort, logger)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func startWebServer(e *echo.Echo, port string, logger *slog.Logger) error {
	address := fmt.Sprintf("0.0.0.0:%s", port)
	logger.Info("HTTP server listening", "address", address)
	if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

func newLogger(configs cmd.Config) *slog.Logger {
	level, err := configs.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
