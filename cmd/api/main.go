// Package main is the entry point for the Billfold API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/billfold/backend/config"
	"github.com/billfold/backend/internal/application/adapter"
	"github.com/billfold/backend/internal/infra/db"
	"github.com/billfold/backend/internal/infra/dependency"
	"github.com/billfold/backend/internal/integration/messaging"
	"github.com/billfold/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Billfold API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.CategoryModel{},
		&model.BillRuleModel{},
		&model.BillModel{},
		&model.TransactionModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Wire up change notifications. The in-process bus always runs; redis
	// fan-out is opt-in.
	notifier := buildNotifier(cfg)

	// Wire up the rest of the application
	injector := dependency.NewInjector(cfg, database.DB(), nil, notifier)

	// Reconcile state left over from downtime before serving traffic.
	if cfg.Sweep.RunOnStart {
		runStartupSweeps(injector)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// buildNotifier assembles the change notifier chain. A redis connection
// failure downgrades to in-process notifications only; notifications are
// an auxiliary surface and must not block startup.
func buildNotifier(cfg *config.Config) adapter.ChangeNotifier {
	bus := messaging.NewBus()
	if !cfg.Redis.Enabled {
		return bus
	}

	opt, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		slog.Warn("Invalid redis URL, change notifications stay in-process", "error", err)
		return bus
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, change notifications stay in-process", "error", err)
		return bus
	}

	slog.Info("Redis change notifications enabled", "channel", cfg.Redis.Channel)
	return messaging.MultiNotifier{bus, messaging.NewRedisNotifier(client, cfg.Redis.Channel)}
}

// runStartupSweeps reconciles bills after downtime: first flag everything
// past due, then make sure every active rule has its next instance.
func runStartupSweeps(injector *dependency.Injector) {
	ctx := context.Background()

	overdue, err := injector.CheckOverdueUseCase.Execute(ctx)
	if err != nil {
		slog.Error("Startup overdue sweep failed", "error", err)
	} else {
		slog.Info("Startup overdue sweep completed",
			"marked_overdue", overdue.MarkedOverdue,
			"generated", overdue.Generated,
		)
	}

	generated, err := injector.EnsureGeneratedUseCase.Execute(ctx)
	if err != nil {
		slog.Error("Startup generation sweep failed", "error", err)
	} else {
		slog.Info("Startup generation sweep completed", "generated", generated.Generated)
	}
}
