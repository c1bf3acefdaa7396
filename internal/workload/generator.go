// Package workload implements the randomized order generator used by
// cmd/workload. It is an external collaborator to the matching engine core:
// it produces a stream of (side, symbol, qty, price) admissions and knows
// nothing about OrderList internals.
package workload

import (
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/lattice-markets/matchcore/internal/matching"
)

// Request is one synthetic admission.
type Request struct {
	Side   matching.Side
	Symbol string
	Qty    int32
	Price  float64
}

// Generator produces randomized admissions across a fixed symbol universe,
// "STOCK0".."STOCK<n-1>".
type Generator struct {
	symbols  []string
	minPrice float64
	maxPrice float64
	maxQty   int32
}

// New builds a Generator over n symbols with prices drawn uniformly from
// [minPrice, maxPrice) and quantities from [1, maxQty].
func New(n int, minPrice, maxPrice float64, maxQty int32) *Generator {
	symbols := make([]string, n)
	for i := range symbols {
		symbols[i] = "STOCK" + strconv.Itoa(i)
	}
	return &Generator{symbols: symbols, minPrice: minPrice, maxPrice: maxPrice, maxQty: maxQty}
}

// Next draws one random request using the per-goroutine rand source r.
func (g *Generator) Next(r *rand.Rand) Request {
	symbol := g.symbols[r.IntN(len(g.symbols))]
	side := matching.Buy
	if r.IntN(2) == 1 {
		side = matching.Sell
	}
	qty := int32(r.IntN(int(g.maxQty))) + 1
	price := g.minPrice + r.Float64()*(g.maxPrice-g.minPrice)
	return Request{Side: side, Symbol: symbol, Qty: qty, Price: price}
}

// Run drives workers concurrent goroutines, each issuing ordersPerWorker
// admissions against engine, then returns once all have completed.
func Run(engine *matching.Engine, workers, ordersPerWorker int, gen *Generator) {
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(seed uint64) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(seed, seed^0x9E3779B9))
			for i := 0; i < ordersPerWorker; i++ {
				req := gen.Next(r)
				engine.AdmitOrder(req.Side, req.Symbol, req.Qty, req.Price)
			}
		}(uint64(w) + 1)
	}
	wg.Wait()
}
