package matching

import "go.uber.org/zap"

// bookSlot holds the resting buy and sell lists for whatever symbol(s)
// currently hash to this slot.
type bookSlot struct {
	buy  *OrderList
	sell *OrderList
}

// OrderBook is a fixed-size, lock-free slot table: one buy/sell list pair
// per slot, addressed by a symbol's hashed index.
// All Capacity slots are allocated once at construction; slot lookup by
// symbol or by precomputed index is O(1) plain array indexing.
type OrderBook struct {
	slots [Capacity]bookSlot
}

// NewOrderBook allocates all Capacity slot pairs, configuring each side's
// OrderList with the given retry/scan policy and ambient logger/metrics.
func NewOrderBook(cfg EngineConfig, zapLogger *zap.Logger, metrics *EngineMetrics) *OrderBook {
	ob := &OrderBook{}
	for i := range ob.slots {
		ob.slots[i] = bookSlot{
			buy:  NewOrderList(true, i, cfg.PrimaryRetries, cfg.ScanLimit, cfg.FallbackRetries, zapLogger, metrics),
			sell: NewOrderList(false, i, cfg.PrimaryRetries, cfg.ScanLimit, cfg.FallbackRetries, zapLogger, metrics),
		}
	}
	return ob
}

// IndexOf resolves a symbol to its slot index via the external hash.
func (ob *OrderBook) IndexOf(symbol string) int {
	return slotFor(symbol)
}

// Slot returns the (buy, sell) list pair at a precomputed index, for hot
// paths that have already resolved the index once.
func (ob *OrderBook) Slot(index int) (*OrderList, *OrderList) {
	s := &ob.slots[index]
	return s.buy, s.sell
}

// SlotFor resolves symbol to its slot and returns the (buy, sell) pair.
func (ob *OrderBook) SlotFor(symbol string) (*OrderList, *OrderList) {
	return ob.Slot(ob.IndexOf(symbol))
}
