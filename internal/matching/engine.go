// Package matching implements the concurrent, lock-free limit-order
// matching engine core: the Order record, the per-side price-sorted
// OrderList, the fixed-capacity OrderBook, and the MatchingEngine admission
// and crossing routines. Every mutation on the hot path is a plain atomic
// load/store or CAS; no mutex or condition variable guards admission or
// matching.
package matching

import (
	"time"

	"go.uber.org/zap"

	"github.com/lattice-markets/matchcore/pkg/logger"
)

// DefaultMatchIterations bounds the crossing sweep performed by matchSlot
// per invocation.
const DefaultMatchIterations = 100

// EngineConfig exposes the iteration-cap policy knobs as configuration
// rather than hardcoded constants: each bounds a distinct failure mode.
// See internal/config for the viper-backed loader that populates this from
// YAML/env.
type EngineConfig struct {
	PrimaryRetries  int
	ScanLimit       int
	FallbackRetries int
	MatchIterations int
}

// DefaultEngineConfig returns the engine's baseline retry/scan/iteration
// constants.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		PrimaryRetries:  DefaultPrimaryRetries,
		ScanLimit:       DefaultScanLimit,
		FallbackRetries: DefaultFallbackRetries,
		MatchIterations: DefaultMatchIterations,
	}
}

// Engine admits orders into a fixed-capacity OrderBook and runs the
// head-of-book crossing loop after every admission. It has no exported
// error surface: invalid input is rejected silently.
type Engine struct {
	book    *OrderBook
	cfg     EngineConfig
	logger  *zap.Logger
	metrics *EngineMetrics
}

// NewEngine constructs an Engine with the given policy configuration,
// logger, and metrics collectors. zapLogger and metrics may be nil, in
// which case the corresponding side effects are skipped (cmd/workload and
// the tests, which only care about book state, pass a nil logger).
func NewEngine(cfg EngineConfig, zapLogger *zap.Logger, metrics *EngineMetrics) *Engine {
	return &Engine{
		book:    NewOrderBook(cfg, zapLogger, metrics),
		cfg:     cfg,
		logger:  zapLogger,
		metrics: metrics,
	}
}

// Book exposes the underlying OrderBook for inspection. Intended for tests;
// not part of the public admit/match surface.
func (e *Engine) Book() *OrderBook { return e.book }

// AdmitOrder validates and inserts (side, symbol, qty, price), then runs
// the matching loop on that symbol's slot. Invalid input (qty <= 0 or
// price <= 0) is rejected silently: logged at Warn and counted, never
// surfaced through a return value.
func (e *Engine) AdmitOrder(side Side, symbol string, qty int32, price float64) {
	if e.metrics != nil {
		start := time.Now()
		defer func() {
			e.metrics.AdmitLatency.Observe(time.Since(start).Seconds())
		}()
	}

	if qty <= 0 || price <= 0 {
		if e.logger != nil {
			logger.WithSlot(e.logger, symbol, e.book.IndexOf(symbol)).Warn(
				"order admission rejected: invalid qty/price",
				zap.Stringer("side", side),
				zap.Int32("qty", qty),
				zap.Float64("price", price),
			)
		}
		if e.metrics != nil {
			e.metrics.OrdersRejected.Inc()
		}
		return
	}

	order := NewOrder(side, symbol, qty, price)
	index := e.book.IndexOf(symbol)
	buyList, sellList := e.book.Slot(index)

	if side == Buy {
		buyList.Insert(order)
	} else {
		sellList.Insert(order)
	}

	if e.metrics != nil {
		e.metrics.OrdersAdmitted.WithLabelValues(side.String()).Inc()
	}

	e.matchSlot(index)
}

// Match runs the matching loop once for symbol, resolving it to a slot
// first. Exposed for callers that want to force a sweep without a new
// admission.
func (e *Engine) Match(symbol string) {
	e.matchSlot(e.book.IndexOf(symbol))
}

// matchSlot runs the bounded crossing loop for one slot's (buy, sell)
// pair. Each iteration attempts at most one two-sided quantity decrement;
// iteration-cap exhaustion is silent, leaving any remaining crossing to be
// resolved by the next admission or Match call.
func (e *Engine) matchSlot(index int) {
	buyList, sellList := e.book.Slot(index)

	for i := 0; i < e.cfg.MatchIterations; i++ {
		b := buyList.Peek()
		s := sellList.Peek()

		if b == nil || s == nil {
			return
		}
		if b.Price() < s.Price() {
			return
		}

		bq := b.Qty()
		sq := s.Qty()

		if bq == 0 {
			buyList.RemoveHeadIf(b)
			continue
		}
		if sq == 0 {
			sellList.RemoveHeadIf(s)
			continue
		}

		m := bq
		if sq < m {
			m = sq
		}

		buyOK := b.TryDecrement(bq, bq-m)
		sellOK := s.TryDecrement(sq, sq-m)

		if !buyOK || !sellOK {
			// At least one side's CAS lost to a concurrent decrement; no
			// trade is recorded this iteration.
			yieldScheduler()
			continue
		}

		if e.metrics != nil {
			e.metrics.MatchesExecuted.Inc()
			e.metrics.QuantityMatched.Add(float64(m))
		}

		if bq-m == 0 {
			buyList.RemoveHeadIf(b)
		}
		if sq-m == 0 {
			sellList.RemoveHeadIf(s)
		}
	}

	if e.metrics != nil {
		e.metrics.MatchIterationCapHit.Inc()
	}
}
