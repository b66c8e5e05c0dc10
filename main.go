package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shkim9348/FSND/auth"
	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/db"
	"github.com/shkim9348/FSND/logging"
	"github.com/shkim9348/FSND/middleware"
	"github.com/shkim9348/FSND/router"
)

func main() {
	var err error

	// A missing .env is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger, syncLogs := logging.New(cfg.LogMode)
	slog.SetDefault(logger)
	defer syncLogs()

	// Connect to the database
	gdb, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		slog.Error("database handle unavailable", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Create tables
	if err := db.Migrate(gdb, cfg.App); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "app", cfg.App, "type", cfg.DatabaseType)

	if cfg.SeedData {
		if err := db.Seed(gdb, cfg.App); err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Seed data ready")
	}

	// Token verification for permission-gated apps
	var verifier middleware.TokenVerifier
	if cfg.RequiresAuth() {
		v, err := auth.NewVerifier(cfg.Issuer(), cfg.APIAudience)
		if err != nil {
			slog.Error("token verifier setup failed", "error", err)
			os.Exit(1)
		}
		verifier = v
		slog.Info("Verifying tokens", "issuer", cfg.Issuer(), "audience", cfg.APIAudience)
	}

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(gdb, cfg, verifier),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal, then let in-flight requests finish
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "app", cfg.App)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
