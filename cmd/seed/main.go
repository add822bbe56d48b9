// Command seed bulk-loads a CSV or XLSX feedback export into the
// sentiment_reports table, replacing whatever is there.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"hr-insights-go/internal/config"
	"hr-insights-go/internal/dataset"
	"hr-insights-go/internal/logger"
	"hr-insights-go/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	if len(os.Args) < 2 {
		log.Fatal("usage: seed <feedback.csv|feedback.xlsx>")
	}
	path := os.Args[1]

	header, rows, err := dataset.Read(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Fatal("failed to read input file")
	}
	log.WithField("path", path).WithField("rows", len(rows)).Info("input file read")

	cfg := config.FromEnv()
	db, err := store.Open(cfg.DBPath, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open backing store")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := db.Replace(ctx, header, rows); err != nil {
		log.WithError(err).Fatal("failed to load feedback table")
	}
	log.WithField("rows", len(rows)).Info("seed complete")
}
