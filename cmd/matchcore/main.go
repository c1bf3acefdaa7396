// Command matchcore runs the matching engine as a long-lived process,
// serving Prometheus metrics until signaled to stop. The engine's
// library-facing API lives entirely in internal/matching; this entrypoint
// only wires configuration, logging, metrics, and a synthetic workload
// around it.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lattice-markets/matchcore/internal/config"
	"github.com/lattice-markets/matchcore/internal/matching"
	"github.com/lattice-markets/matchcore/internal/workload"
	"github.com/lattice-markets/matchcore/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, continuing with environment/defaults")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	registry := prometheus.NewRegistry()
	metrics := matching.NewEngineMetrics(registry)

	engine := matching.NewEngine(cfg.Engine, zapLogger, metrics)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		gen := workload.New(cfg.WorkloadSyms, 1, 1000, 100)
		workers := 10
		ordersPerWorker := cfg.WorkloadQty / workers
		if ordersPerWorker < 1 {
			ordersPerWorker = 1
		}
		zapLogger.Info("starting synthetic workload",
			zap.Int("symbols", cfg.WorkloadSyms),
			zap.Int("workers", workers),
			zap.Int("ordersPerWorker", ordersPerWorker),
		)
		workload.Run(engine, workers, ordersPerWorker, gen)
		zapLogger.Info("synthetic workload complete")
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}

	go func() {
		zapLogger.Info("metrics server listening", zap.String("addr", cfg.MetricsAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Error("metrics server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutdown signal received")
	_ = server.Shutdown(context.Background())
}
