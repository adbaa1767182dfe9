package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"arica_go/internal/adapters/observability"
	"arica_go/internal/adapters/source"
	"arica_go/internal/app"
	"arica_go/internal/shared"
	mysqlrepo "arica_go/internal/storage/mysql"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	// mysql is the target here, so CATALOG_SOURCE=mysql seeds from the bundled document
	location := ""
	switch cfg.CatalogSource {
	case shared.SourceFile:
		location = cfg.CatalogFile
	case shared.SourceHTTP:
		location = cfg.CatalogURL
	}
	src, err := source.Open(location, cfg.FetchRPS, cfg.FetchRetries)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize catalog source")
	}

	log.Info().
		Str("source", src.Name()).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("schema migration failed")
	}

	ing := app.NewIngestionService(src, repo, cfg.Workers)
	rep, err := ing.Ingest(ctx)
	if err != nil {
		log.Fatal().Err(err).
			Int("categories", rep.Categories).
			Msg("ingestion failed")
	}
	log.Info().
		Int("categories", rep.Categories).
		Int("attractions", rep.Attractions).
		Int("featured", rep.Featured).
		Int("warnings", rep.Warnings).
		Msg("ingestion completed")
}
