package matching

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/lattice-markets/matchcore/pkg/logger"
)

// Policy knobs governing the bounded CAS loops below. These are wired from
// Config (see config.go) rather than hardcoded: each bounds a distinct
// failure mode and none of them are physics.
const (
	DefaultPrimaryRetries  = 10
	DefaultScanLimit       = 100
	DefaultFallbackRetries = 50
)

// OrderList is a price-sorted singly-linked list of resting Orders for one
// side of one symbol's book. Insertion and head-removal are lock-free,
// synchronized purely through CAS on head and on each Order's next pointer.
type OrderList struct {
	head unsafe.Pointer // *Order

	isBuySide bool
	slotIndex int

	primaryRetries  int
	scanLimit       int
	fallbackRetries int

	logger  *zap.Logger
	metrics *EngineMetrics
}

// NewOrderList constructs an empty list configured for one side of the
// book slot at slotIndex. slotIndex is carried only for log correlation
// (see pkg/logger.WithSlot); it plays no role in the insert/remove
// algorithms.
func NewOrderList(isBuySide bool, slotIndex, primaryRetries, scanLimit, fallbackRetries int, baseLogger *zap.Logger, metrics *EngineMetrics) *OrderList {
	return &OrderList{
		isBuySide:       isBuySide,
		slotIndex:       slotIndex,
		primaryRetries:  primaryRetries,
		scanLimit:       scanLimit,
		fallbackRetries: fallbackRetries,
		logger:          baseLogger,
		metrics:         metrics,
	}
}

// Peek returns the current head snapshot without mutating the list. May
// return nil.
func (l *OrderList) Peek() *Order {
	return (*Order)(atomic.LoadPointer(&l.head))
}

// IsEmpty reports whether the list currently has no head.
func (l *OrderList) IsEmpty() bool {
	return atomic.LoadPointer(&l.head) == nil
}

// Clear atomically resets head to nil. Restricted to test scaffolding; it
// is not part of the concurrent hot path contract.
func (l *OrderList) Clear() {
	atomic.StorePointer(&l.head, nil)
}

// Insert publishes newOrder into the list at a position respecting
// monotonicity relative to the predecessors visited during the primary and
// fallback phases: a bounded primary attempt, a bounded fallback attempt
// with widening scan and backoff, and a background handoff as a last
// resort. The three phases below mirror that escalation step for step.
func (l *OrderList) Insert(newOrder *Order) {
	if l.tryPrimaryInsert(newOrder) {
		return
	}
	if l.tryFallbackInsert(newOrder) {
		return
	}
	l.backgroundInsert(newOrder)
}

func (l *OrderList) tryPrimaryInsert(newOrder *Order) bool {
	for attempt := 0; attempt < l.primaryRetries; attempt++ {
		if l.attemptInsert(newOrder, l.scanLimit) {
			return true
		}
	}
	return false
}

func (l *OrderList) tryFallbackInsert(newOrder *Order) bool {
	if l.metrics != nil {
		l.metrics.FallbackEscalations.Inc()
	}
	for attempt := 0; attempt < l.fallbackRetries; attempt++ {
		runtime.Gosched()
		spinWait(attempt)
		scanCap := 10 + 5*attempt
		if l.attemptInsert(newOrder, scanCap) {
			return true
		}
	}
	return false
}

// yieldScheduler gives other goroutines a chance to make progress after a
// failed CAS. Used by the matcher's crossing loop; the list's own fallback
// phase calls runtime.Gosched directly for the same hint.
func yieldScheduler() {
	runtime.Gosched()
}

// spinWait issues up to 2^min(attempt,10) runtime.Gosched spin-pause hints,
// approximating an exponential backoff without a hardware PAUSE intrinsic.
func spinWait(attempt int) {
	shift := attempt
	if shift > 10 {
		shift = 10
	}
	spins := 1 << shift
	for i := 0; i < spins; i++ {
		runtime.Gosched()
	}
}

// backgroundInsert hands the order off to a goroutine that loops head-CAS
// only, sacrificing price order for guaranteed progress. This liveness-
// over-ordering tradeoff is a deliberate retention; see DESIGN.md.
func (l *OrderList) backgroundInsert(newOrder *Order) {
	if l.metrics != nil {
		l.metrics.BackgroundHandoffs.Inc()
	}
	if l.logger != nil {
		logger.WithSlot(l.logger, newOrder.Symbol(), l.slotIndex).Warn(
			"order insert escalated to background inserter",
			zap.Stringer("side", newOrder.Side()),
			zap.Float64("price", newOrder.Price()),
		)
	}
	go func() {
		for {
			h := (*Order)(atomic.LoadPointer(&l.head))
			newOrder.StoreNext(h)
			if atomic.CompareAndSwapPointer(&l.head, unsafe.Pointer(h), unsafe.Pointer(newOrder)) {
				return
			}
		}
	}()
}

// attemptInsert performs one pass of the primary algorithm: head-empty,
// new-head, or bounded traversal-and-splice. scanLimit caps how many
// predecessors are visited before giving up on this attempt.
func (l *OrderList) attemptInsert(newOrder *Order, scanLimit int) bool {
	h := (*Order)(atomic.LoadPointer(&l.head))

	if h == nil {
		newOrder.StoreNext(nil)
		return atomic.CompareAndSwapPointer(&l.head, nil, unsafe.Pointer(newOrder))
	}

	if newOrder.outranks(h, l.isBuySide) {
		newOrder.StoreNext(h)
		return atomic.CompareAndSwapPointer(&l.head, unsafe.Pointer(h), unsafe.Pointer(newOrder))
	}

	prev := h
	cur := prev.LoadNext()
	for i := 0; i < scanLimit && cur != nil; i++ {
		if newOrder.outranks(cur, l.isBuySide) {
			break
		}
		prev = cur
		cur = cur.LoadNext()
	}

	newOrder.StoreNext(cur)
	return prev.CasNext(cur, newOrder)
}

// RemoveHead unlinks and returns the current head, or nil if the list is
// empty. Unlike Insert, this loop has no retry cap: removal is always
// driven to completion.
func (l *OrderList) RemoveHead() *Order {
	for {
		h := (*Order)(atomic.LoadPointer(&l.head))
		if h == nil {
			return nil
		}
		next := h.LoadNext()
		if atomic.CompareAndSwapPointer(&l.head, unsafe.Pointer(h), unsafe.Pointer(next)) {
			h.StoreNext(nil)
			return h
		}
	}
}

// RemoveHeadIf unlinks the head only if it still equals expected. The
// matcher uses this to drain a fully-consumed resting order without
// clobbering a concurrent insert that raced ahead of it.
func (l *OrderList) RemoveHeadIf(expected *Order) bool {
	next := expected.LoadNext()
	return atomic.CompareAndSwapPointer(&l.head, unsafe.Pointer(expected), unsafe.Pointer(next))
}
