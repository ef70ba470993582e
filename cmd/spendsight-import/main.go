package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"spendsight/internal/ledger/csvfile"
	"spendsight/internal/ledger/sqlite"
	applog "spendsight/internal/log"
)

func main() {
	_ = godotenv.Load()

	csvPath := flag.String("csv", "", "path to the CSV ledger to import")
	dbPath := flag.String("db", "", "path to the destination SQLite ledger file")
	flag.Parse()

	logger := applog.New(applog.Config{Component: "spendsight-import"})
	applog.SetDefault(logger)

	if *csvPath == "" || *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: spendsight-import -csv <ledger.csv> -db <ledger.db>")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	records, err := csvfile.New(*csvPath).Load(ctx)
	if err != nil {
		logger.Error("CSV load failed", "path", *csvPath, "error", err)
		os.Exit(1)
	}

	imported, err := sqlite.Import(ctx, *dbPath, records)
	if err != nil {
		logger.Error("Import failed", "path", *dbPath, "error", err)
		os.Exit(1)
	}

	logger.Info("Import complete", "source", *csvPath, "destination", *dbPath, "transactions", imported)
}
