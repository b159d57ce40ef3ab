// Package main implements the Krushit API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krushit/krushit/engine/advisory"
	"github.com/krushit/krushit/engine/chat"
	"github.com/krushit/krushit/engine/classifier"
	"github.com/krushit/krushit/engine/diagnosis"
	"github.com/krushit/krushit/engine/scans"
	"github.com/krushit/krushit/pkg/config"
	"github.com/krushit/krushit/pkg/fn"
	"github.com/krushit/krushit/pkg/mid"
	"github.com/krushit/krushit/pkg/ollama"
	"github.com/krushit/krushit/pkg/resilience"
	"github.com/nats-io/nats.go"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// diagnosisService is the gRPC health service name tracking classifier
// availability.
const diagnosisService = "krushit.Diagnosis"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(diagnosisService, healthpb.HealthCheckResponse_SERVING)

	// --- Classifier ---
	breaker := resilience.NewBreaker(resilience.BreakerOpts{
		FailThreshold: 5,
		Timeout:       30 * time.Second,
		OnStateChange: breakerHealth(healthSrv, logger),
	})
	gwOpts := []classifier.Option{classifier.WithBreaker(breaker), classifier.WithLogger(logger)}
	if cfg.ClassifierRPS > 0 {
		gwOpts = append(gwOpts, classifier.WithRateLimit(rate.NewLimiter(rate.Limit(cfg.ClassifierRPS), 1)))
	}
	var clf classifier.Classifier = classifier.NewHTTPGateway(cfg.ClassifierURL, gwOpts...)
	if cfg.ClassifierRetries > 0 {
		retry := fn.DefaultRetry
		retry.MaxAttempts = cfg.ClassifierRetries + 1
		clf = classifier.Retrying(clf, retry)
	}

	catalog := advisory.Default()
	diagSvc := diagnosis.New(clf, catalog, diagnosis.Options{Timeout: cfg.ClassifierTimeout}, logger).
		WithMetrics(diagnosis.NewMetrics(reg))

	// --- Chat ---
	var responder chat.Responder
	if cfg.OllamaURL != "" {
		responder = chat.OllamaResponder{Client: ollama.NewChatClient(cfg.OllamaURL, cfg.ChatModel)}
	} else {
		logger.Info("no chat model configured, answering from keyword fallback")
	}
	chatSvc := chat.New(responder, chat.DefaultTimeout, logger)

	// --- Scan history ---
	var recorder *scans.Recorder
	if cfg.NATSURL != "" {
		nc, err := nats.Connect(cfg.NATSURL, nats.Name("krushit-api"), nats.MaxReconnects(-1))
		if err != nil {
			return fmt.Errorf("nats connect: %w", err)
		}
		defer nc.Drain()
		recorder = scans.NewRecorder(scans.NewNATSPublisher(nc), logger)
	} else {
		logger.Info("no NATS url configured, scans are not recorded")
	}

	var history scanLister
	if cfg.Neo4jURL != "" {
		driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURL, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPass, ""))
		if err != nil {
			return fmt.Errorf("neo4j driver: %w", err)
		}
		defer driver.Close(context.Background())
		history = scans.NewStore(driver)
	}

	// --- HTTP server ---
	handler := newHandler(deps{
		diagnosis: diagSvc,
		recorder:  recorder,
		chat:      chatSvc,
		catalog:   catalog,
		history:   history,
		breaker:   breaker,
		registry:  reg,
		logger:    logger,
	}, cfg)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.ClassifierTimeout*time.Duration(cfg.ClassifierRetries+1) + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	grpcSrv := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	lis, err := net.Listen("tcp", ":"+cfg.GRPCHealthPort)
	if err != nil {
		return fmt.Errorf("grpc health listen: %w", err)
	}

	// --- Graceful shutdown ---
	errCh := make(chan error, 2)
	go func() {
		logger.Info("api server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()
	go func() {
		logger.Info("grpc health server starting", "port", cfg.GRPCHealthPort)
		errCh <- grpcSrv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			grpcSrv.Stop()
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthSrv.Shutdown()
	grpcSrv.GracefulStop()

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}

// breakerHealth reports the diagnosis service NOT_SERVING while the classifier
// breaker is open.
func breakerHealth(hs *health.Server, logger *slog.Logger) func(from, to resilience.State) {
	return func(from, to resilience.State) {
		logger.Warn("classifier breaker state changed", "from", from.String(), "to", to.String())
		status := healthpb.HealthCheckResponse_SERVING
		if to == resilience.StateOpen {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus(diagnosisService, status)
	}
}

func newHandler(d deps, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()
	route := func(pattern, name string, h http.HandlerFunc) {
		mux.Handle(pattern, mid.Metrics(d.registry, name)(h))
	}
	route("GET /api/health", "health", handleHealth(d.breaker))
	route("POST /api/diagnose", "diagnose", handleDiagnose(d.diagnosis, d.recorder, d.logger))
	route("POST /api/chat", "chat", handleChat(d.chat, d.logger))
	route("GET /api/diseases", "diseases", handleListDiseases(d.catalog))
	route("GET /api/diseases/{id}", "disease", handleGetDisease(d.catalog, d.logger))
	route("GET /api/scans", "scans", handleListScans(d.history, d.logger))
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{}))

	return mid.Chain(mux,
		mid.Recover(d.logger),
		mid.RequestID(),
		mid.Logger(d.logger),
		mid.CORS(cfg.CORSOrigin),
		mid.RateLimit(cfg.RequestRPS, cfg.RequestBurst),
		mid.OTel("krushit-api"),
	)
}
