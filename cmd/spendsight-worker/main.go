package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spendsight/internal/amqp"
	"spendsight/internal/config"
	applog "spendsight/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := applog.New(applog.Config{
		Level:     applog.ParseLevel(cfg.LogLevel),
		Component: "spendsight-worker",
	})
	applog.SetDefault(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting spendsight-worker", "queue", cfg.AMQPQueue)

	err = client.ConsumeAnalysisCompleted(ctx, func(msg *amqp.AnalysisCompletedMessage) error {
		logger.Info("Analysis completed",
			"source", msg.Source,
			"transactions", msg.Transactions,
			"total_spending", msg.TotalSpending,
			"anomalies", msg.Anomalies,
			"completed_at", msg.Timestamp)
		return nil
	})
	if err != nil && err != context.Canceled {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
