package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"santas-draw/api"
	"santas-draw/auth"
	"santas-draw/domain/event"
	"santas-draw/internal"
	"santas-draw/matching"
	"santas-draw/notify"
	"santas-draw/observability"
	"santas-draw/repositories"
	"santas-draw/runtime/workers"
	"santas-draw/services"
	"santas-draw/sink"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements (like database cleanup) are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for HTTP and background workers.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	// Defer will be executed before run() returned anything to main()
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Repositories & Services
	userRepository := repositories.NewUserRepository(db)
	drawRepository := repositories.NewDrawRepository(db, log)
	jobRepository := repositories.NewDrawJobRepository(db, log)

	tokens := auth.NewTokenManager(config.AuthTokenSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, tokens)

	events := make(chan event.DomainEvent, config.EventBufferSize)
	invites := services.NewInviteCodeGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	drawService := services.NewDrawService(drawRepository, jobRepository, invites,
		func() *matching.Generator { return matching.NewGenerator() }, events, log)

	var mailer notify.IMailer
	mailerConfig := notify.Config{
		BaseURL:      config.SendPulseBaseURL,
		ClientID:     config.SendPulseClientID,
		ClientSecret: config.SendPulseClientSecret,
		TemplateID:   config.SendPulseTemplateID,
		FromName:     config.SendPulseFromName,
		FromEmail:    config.SendPulseFromEmail,
	}
	if mailerConfig.Enabled() {
		mailer = notify.NewSendPulseMailer(mailerConfig, log)
	} else {
		log.Warn("SendPulse credentials missing, result emails disabled")
		mailer = notify.NewNoopMailer(log)
	}

	// 4. Monitoring, Workers & Sinks
	monitoring := observability.NewMonitoringManager(log)

	fanout := workers.NewEventFanout(log, events, config.SinkTimeout).Add(
		sink.NewLogSink(log),
		sink.NewNotificationSink(drawRepository, mailer, monitoring, events, log),
	)
	processor := workers.NewDrawProcessor(log, jobRepository, drawRepository, drawService,
		monitoring, events, config.JobPollInterval, config.JobBatchSize)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sup := workers.NewSupervisor(log)
	sup.Add(fanout, processor)
	go sup.Run(ctx)
	go monitoring.Listen(ctx)

	if config.DebugPort > 0 {
		internal.StartDebugServer(db, config.DebugPort, "/inspect", nil, func() map[string]any {
			stats := monitoring.GetLatest()
			return map[string]any{
				"DrawsCreated":  stats.DrawsCreated,
				"DrawsExecuted": stats.DrawsExecuted,
				"DrawsFailed":   stats.DrawsFailed,
				"EmailsSent":    stats.EmailsSent,
				"PendingJobs":   stats.PendingJobs,
			}
		})
		log.Info("Debug inspector started", "port", config.DebugPort)
	}

	// 6. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	apiServer := api.NewServer(authService, drawService, tokens, monitoring, log)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           apiServer.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown failed", "error", err)
	}
	sup.Stop()
	log.Info("Program stopped cleanly")

	return exitOK, nil
}
