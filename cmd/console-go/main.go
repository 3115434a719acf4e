package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hawkmon/console-go/internal/config"
	"hawkmon/console-go/internal/db"
	"hawkmon/console-go/internal/entitysource"
	"hawkmon/console-go/internal/httpapi"
	"hawkmon/console-go/internal/layout"
	"hawkmon/console-go/internal/metrics"
	"hawkmon/console-go/internal/naming"
	"hawkmon/console-go/internal/statuspoll"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		bootLogger := httpapi.NewLogger("info")
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := httpapi.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *db.Pool
	if cfg.DatabaseURL != "" {
		p, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer p.Close()
		pool = p
	}

	m := metrics.New()

	var source entitysource.Source
	if pool != nil {
		source = entitysource.NewPGSource(pool.Queries())
	}

	engine := layout.NewGraphvizEngine(logger, layout.GraphvizOptions{
		Programs: cfg.Layout.Programs,
		TempDir:  cfg.Layout.TempDir,
		Timeout:  cfg.Layout.Timeout(),
	})

	if pool != nil && cfg.Poller.Enabled {
		poller := statuspoll.New(logger, pool.Queries(), statuspoll.Options{
			Interval:  cfg.Poller.Interval(),
			Workers:   cfg.Poller.Workers,
			Community: cfg.Poller.Community,
			Port:      cfg.Poller.Port,
			Timeout:   cfg.Poller.Timeout(),
			Retries:   cfg.Poller.Retries,
		}, m)
		go poller.Run(ctx)
	}

	if pool != nil && cfg.Naming.ResolverAddr != "" {
		resolver := naming.NewResolver(cfg.Naming.ResolverAddr, cfg.Naming.Timeout())
		labeler := naming.NewLabeler(logger, pool.Queries(), resolver, 0)
		go labeler.Run(ctx)
	}

	h := httpapi.NewHandler(logger, pool, m, source, engine)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("console-go listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	logger.Info().Msg("shutdown complete")
}
