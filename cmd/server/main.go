package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/teguhahmad/kost01/internal/cache"
	"github.com/teguhahmad/kost01/internal/httpapi"
	"github.com/teguhahmad/kost01/internal/monitoring"
	"github.com/teguhahmad/kost01/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	godotenv.Load()

	var (
		addr        = flag.String("addr", envOr("ADDR", ":8080"), "API listen address")
		metricsAddr = flag.String("metrics-addr", envOr("METRICS_ADDR", ":8081"), "Health and metrics listen address")
		redisAddr   = flag.String("redis-addr", envOr("REDIS_ADDR", ""), "Redis address for the report cache (empty disables caching)")
		cacheTTL    = flag.Duration("cache-ttl", time.Hour, "Report cache entry lifetime")
	)
	flag.Parse()

	monitoring.InitMetrics()

	st := store.New()
	reports := cache.New(*redisAddr, *cacheTTL)
	defer reports.Close()

	api := &http.Server{
		Addr:    *addr,
		Handler: httpapi.New(st, reports).Handler(),
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	metrics := &http.Server{Addr: *metricsAddr, Handler: metricsMux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", *addr).Msg("Starting property management API")
		if err := api.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", *metricsAddr).Msg("HTTP server for health checks and metrics started")
		if err := metrics.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		api.Shutdown(shutdownCtx)
		metrics.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
	log.Info().Msg("Server exiting")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
