package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "arica_go/internal/adapters/http_server"
	"arica_go/internal/adapters/memcache"
	"arica_go/internal/adapters/observability"
	redisad "arica_go/internal/adapters/redis"
	"arica_go/internal/adapters/render"
	"arica_go/internal/adapters/source"
	"arica_go/internal/app"
	"arica_go/internal/domain"
	"arica_go/internal/shared"
	mysqlrepo "arica_go/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	src, closeSrc := openSource(cfg)
	defer closeSrc()

	cache, closeCache := openCache(ctx, cfg)
	defer closeCache()

	svc := app.NewCatalogService(src, cache, cfg.CacheTTL())
	// a failed first load serves the empty catalog until a refresh succeeds
	_ = svc.Load(ctx)

	go svc.Refresh(ctx, cfg.RefreshEvery)
	if f, ok := src.(*source.File); ok && cfg.CatalogWatch {
		go func() {
			if err := f.Watch(ctx, 200*time.Millisecond, func() { _ = svc.Load(ctx) }); err != nil {
				log.Error().Err(err).Msg("catalog watch stopped")
			}
		}()
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Svc:    svc,
		Labels: render.DefaultLabels().Merge(cfg.CategoryLabels),
		Title:  cfg.Title,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("source", src.Name()).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

func openSource(cfg shared.Config) (domain.CatalogSource, func()) {
	switch cfg.CatalogSource {
	case shared.SourceMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }
	case shared.SourceFile:
		return source.NewFile(cfg.CatalogFile), func() {}
	case shared.SourceHTTP:
		src, err := source.NewHTTP(cfg.CatalogURL, cfg.FetchRPS, cfg.FetchRetries)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize catalog client")
		}
		return src, func() {}
	default:
		src, _ := source.Open("", 0, 0)
		return src, func() {}
	}
}

// openCache prefers Redis when configured and reachable, else an in-process LRU.
func openCache(ctx context.Context, cfg shared.Config) (domain.Cache, func()) {
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := rc.Ping(pingCtx)
		if err == nil {
			log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
			return rc, func() { _ = rc.Close() }
		}
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, using in-process cache")
		_ = rc.Close()
	}
	lc, err := memcache.New(cfg.CacheLRUSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize in-process cache")
	}
	return lc, func() {}
}
