package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spendsight/internal/amqp"
	"spendsight/internal/backend"
	"spendsight/internal/config"
	"spendsight/internal/forecast"
	apphttp "spendsight/internal/http"
	"spendsight/internal/ledger/google"
	applog "spendsight/internal/log"
	"spendsight/internal/report"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	analyzePath := flag.String("analyze", "", "path to a ledger file to analyze; prints JSON and exits")
	serverMode := flag.Bool("server", false, "run as HTTP server (default when -analyze is absent)")
	port := flag.String("port", "", "server port (overrides PORT)")
	flag.Parse()

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "spendsight",
	})
	applog.SetDefault(logger)

	if *analyzePath != "" {
		os.Exit(runAnalysis(cfg, *analyzePath))
	}

	if !*serverMode {
		logger.Info("No mode flag given, defaulting to server mode (use -analyze <file> for one-shot CLI)")
	}
	if err := runServer(cfg, logger); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// runAnalysis is the one-shot CLI mode: load, analyze, print the
// combined document to stdout.
func runAnalysis(cfg *config.Config, location string) int {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	out := json.NewEncoder(os.Stdout)

	if backend.DetectType(location) != backend.SheetsSource {
		if _, err := os.Stat(location); os.IsNotExist(err) {
			_ = out.Encode(map[string]any{
				"success": false,
				"error":   fmt.Sprintf("File not found: %s", location),
			})
			return 1
		}
	}

	factory := backend.NewFactory(nil).WithCredentials(sheetCredentials(cfg))
	source, err := factory.Open(ctx, location)
	if err != nil {
		_ = out.Encode(map[string]any{"success": false, "error": err.Error()})
		return 1
	}

	records, err := source.Load(ctx)
	if err != nil {
		_ = out.Encode(map[string]any{"success": false, "error": err.Error()})
		return 1
	}

	doc := report.Build(records, forecast.NewEngine(), cfg.DefaultForecastDays)
	_ = out.Encode(doc)
	return 0
}

func sheetCredentials(cfg *config.Config) google.Credentials {
	return google.Credentials{
		JSON: cfg.GoogleServiceAccountJSON,
		File: cfg.GoogleServiceAccountFile,
	}
}

func runServer(cfg *config.Config, logger *applog.Logger) error {
	var events *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return fmt.Errorf("initialize AMQP client: %w", err)
		}
		defer events.Close()
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		DefaultHorizon: cfg.DefaultForecastDays,
		CacheSize:      cfg.CacheSize,
		CacheTTL:       cfg.CacheTTL,
		Sources:        backend.NewFactory(logger.Logger).WithCredentials(sheetCredentials(cfg)),
		Engine:         forecast.NewEngine(),
		Events:         events,
		Logger:         logger,
	})

	srv.ReadTimeout = 30 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting spendsight server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
