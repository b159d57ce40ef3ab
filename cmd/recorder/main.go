// Command recorder persists scan events published by the API into Neo4j.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krushit/krushit/engine/scans"
	"github.com/krushit/krushit/pkg/config"
	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const queueGroup = "krushit-recorder"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("recorder exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if cfg.NATSURL == "" {
		return errors.New("NATS_URL is required")
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
	if err != nil {
		return fmt.Errorf("neo4j driver: %w", err)
	}
	defer driver.Close(context.Background())
	if err := driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("neo4j verify: %w", err)
	}
	store := scans.NewStore(driver)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	logger.Info("connected to Neo4j")

	nc, err := nats.Connect(cfg.NATSURL, nats.Name(queueGroup), nats.MaxReconnects(-1))
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Close()

	reg := prometheus.NewRegistry()
	saved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "krushit",
		Subsystem: "recorder",
		Name:      "scans_total",
		Help:      "Scan events processed by result.",
	}, []string{"result"})
	reg.MustRegister(saved)

	sub, err := scans.Subscribe(nc, queueGroup, saveHandler(store, saved), logger)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", scans.Subject, err)
	}
	logger.Info("recording scans", "subject", scans.Subject, "queue", queueGroup)

	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := sub.Drain(); err != nil {
		logger.Warn("drain subscription", "err", err)
	}
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

type saver interface {
	Save(ctx context.Context, scan scans.Scan) error
}

func saveHandler(store saver, counter *prometheus.CounterVec) func(context.Context, scans.Scan) error {
	return func(ctx context.Context, s scans.Scan) error {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := store.Save(ctx, s); err != nil {
			counter.WithLabelValues("error").Inc()
			return err
		}
		counter.WithLabelValues("saved").Inc()
		return nil
	}
}
