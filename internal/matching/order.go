package matching

import (
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
)

// Side identifies which book an Order rests on.
type Side uint8

const (
	Buy Side = iota
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "BUY"
	}
	return "SELL"
}

// globalSeq hands out the monotonically increasing sequence number used to
// break ties between equal-priced orders. It is the tie-breaker chosen to
// make "price-time priority" true under concurrency (see DESIGN.md).
var globalSeq uint64

// Order is the unit of admission into an OrderList. side, symbol and price
// are immutable after construction; qty and next are mutated exclusively
// through atomic CAS once the Order is published into a list.
//
// The mutable field group (qty, next, version) is padded on both sides so
// it lands on its own cache line, isolating it from neighboring Order
// allocations and avoiding false sharing under concurrent CAS traffic.
type Order struct {
	_pad0 [8]uint64

	id     uuid.UUID
	side   Side
	symbol string
	price  float64
	seq    uint64

	qty     int32
	next    unsafe.Pointer // *Order
	version uint64

	_pad1 [8]uint64
}

// NewOrder constructs a pre-publication Order: next=nil, qty=qty0,
// version=0. qty0 and price must already be validated positive by the
// caller; NewOrder does not re-check them.
func NewOrder(side Side, symbol string, qty0 int32, price float64) *Order {
	return &Order{
		id:     uuid.New(),
		side:   side,
		symbol: symbol,
		price:  price,
		seq:    atomic.AddUint64(&globalSeq, 1),
		qty:    qty0,
	}
}

// ID returns the order's opaque correlation identifier, used only for
// logging and metrics. It plays no role in matching or list ordering.
func (o *Order) ID() uuid.UUID { return o.id }

// Side returns the immutable order side.
func (o *Order) Side() Side { return o.side }

// Symbol returns the immutable order symbol.
func (o *Order) Symbol() string { return o.symbol }

// Price returns the immutable order price.
func (o *Order) Price() float64 { return o.price }

// Seq returns the monotonic admission sequence used to break price ties.
func (o *Order) Seq() uint64 { return o.seq }

// Qty atomically loads the residual quantity.
func (o *Order) Qty() int32 { return atomic.LoadInt32(&o.qty) }

// TryDecrement CAS's qty from expected to newQty. newQty must be <=
// expected; callers are responsible for enforcing that invariant.
func (o *Order) TryDecrement(expected, newQty int32) bool {
	return atomic.CompareAndSwapInt32(&o.qty, expected, newQty)
}

// LoadNext atomically loads the successor pointer, or nil.
func (o *Order) LoadNext() *Order {
	return (*Order)(atomic.LoadPointer(&o.next))
}

// StoreNext atomically stores the successor pointer. Used only while the
// Order is still private to the inserting goroutine (pre-publication).
func (o *Order) StoreNext(next *Order) {
	atomic.StorePointer(&o.next, unsafe.Pointer(next))
}

// CasNext atomically compare-and-swaps the successor pointer.
func (o *Order) CasNext(expected, next *Order) bool {
	return atomic.CompareAndSwapPointer(&o.next, unsafe.Pointer(expected), unsafe.Pointer(next))
}

// LoadVersion atomically loads the ABA-mitigation counter.
func (o *Order) LoadVersion() uint64 {
	return atomic.LoadUint64(&o.version)
}

// BumpVersion atomically increments the ABA-mitigation counter, returning
// the new value. Callers that re-observe an Order across a retry window
// use this to detect that the Order was reused underneath them.
func (o *Order) BumpVersion() uint64 {
	return atomic.AddUint64(&o.version, 1)
}

// outranks reports whether o should sort closer to head than other on the
// given side: strictly better price, or equal price with an earlier
// sequence number.
func (o *Order) outranks(other *Order, isBuySide bool) bool {
	if o.price == other.price {
		return o.seq < other.seq
	}
	if isBuySide {
		return o.price > other.price
	}
	return o.price < other.price
}
