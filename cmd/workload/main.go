// Command workload is a standalone randomized load generator for the
// matching engine core: it builds one Engine, fires N admissions from W
// concurrent goroutines, and reports throughput. It is an external
// collaborator to the core and not part of the library-facing API.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lattice-markets/matchcore/internal/matching"
	"github.com/lattice-markets/matchcore/internal/workload"
)

func main() {
	symbols := flag.Int("s", 100, "symbol universe size")
	orders := flag.Int("i", 1_000_000, "total orders to admit")
	workers := flag.Int("w", 10, "concurrent workers")
	flag.Parse()

	registry := prometheus.NewRegistry()
	metrics := matching.NewEngineMetrics(registry)
	engine := matching.NewEngine(matching.DefaultEngineConfig(), nil, metrics)

	gen := workload.New(*symbols, 1, 1000, 100)
	ordersPerWorker := *orders / *workers
	if ordersPerWorker < 1 {
		ordersPerWorker = 1
	}

	start := time.Now()
	workload.Run(engine, *workers, ordersPerWorker, gen)
	elapsed := time.Since(start)

	total := ordersPerWorker * *workers
	rps := float64(total) / elapsed.Seconds()
	fmt.Printf("admitted %d orders across %d symbols in %s (%.0f orders/sec)\n", total, *symbols, elapsed, rps)
}
