// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/briangreenhill/govtrack/govtrack"
	"github.com/briangreenhill/govtrack/internal/config"
	"github.com/briangreenhill/govtrack/internal/http/routes"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}
	logger = logger.Level(cfg.Level())

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := govtrack.NewMetricsCollectorWithRegistry(reg)

	// GovTrack client
	client, err := cfg.NewClient(logger, govtrack.WithMetrics(metrics))
	if err != nil {
		logger.Fatal().Err(err).Msg("govtrack client error")
	}

	// Router / server
	s := routes.New(routes.ServerOptions{Client: client, Gatherer: reg})
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})
	h := hlog.NewHandler(logger)(access(s.Router))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h, ReadHeaderTimeout: 10 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("port", cfg.Port).Str("mode", client.Mode()).Msg("starting api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}

	if cfg.Cache.Record {
		client.EndRecording()
		if err := client.SaveCache(cfg.Cache.File); err != nil {
			logger.Error().Err(err).Msg("save recorded cache")
		}
	}
}
