package matching

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestList(isBuy bool) *OrderList {
	return NewOrderList(isBuy, 0, DefaultPrimaryRetries, DefaultScanLimit, DefaultFallbackRetries, nil, nil)
}

func collect(l *OrderList) []float64 {
	var prices []float64
	for cur := l.Peek(); cur != nil; cur = cur.LoadNext() {
		prices = append(prices, cur.Price())
	}
	return prices
}

func TestOrderListInsertEmpty(t *testing.T) {
	l := newTestList(true)
	o := NewOrder(Buy, "A", 1, 100)
	l.Insert(o)
	assert.Same(t, o, l.Peek())
}

func TestOrderListBuyOrdering(t *testing.T) {
	l := newTestList(true)
	for _, p := range []float64{150, 152, 151} {
		l.Insert(NewOrder(Buy, "A", 100, p))
	}
	assert.Equal(t, []float64{152, 151, 150}, collect(l))
}

func TestOrderListSellOrdering(t *testing.T) {
	l := newTestList(false)
	for _, p := range []float64{805, 801, 803} {
		l.Insert(NewOrder(Sell, "A", 100, p))
	}
	assert.Equal(t, []float64{801, 803, 805}, collect(l))
}

func TestOrderListEqualPriceBreaksOnSeq(t *testing.T) {
	l := newTestList(true)
	first := NewOrder(Buy, "A", 1, 100)
	l.Insert(first)
	second := NewOrder(Buy, "A", 1, 100)
	l.Insert(second)
	require.Same(t, first, l.Peek())
	require.Same(t, second, l.Peek().LoadNext())
}

func TestOrderListRemoveHead(t *testing.T) {
	l := newTestList(true)
	a := NewOrder(Buy, "A", 1, 100)
	b := NewOrder(Buy, "A", 1, 90)
	l.Insert(a)
	l.Insert(b)

	removed := l.RemoveHead()
	assert.Same(t, a, removed)
	assert.Nil(t, removed.LoadNext())
	assert.Same(t, b, l.Peek())

	removed = l.RemoveHead()
	assert.Same(t, b, removed)
	assert.True(t, l.IsEmpty())

	assert.Nil(t, l.RemoveHead())
}

func TestOrderListClear(t *testing.T) {
	l := newTestList(true)
	l.Insert(NewOrder(Buy, "A", 1, 100))
	require.False(t, l.IsEmpty())
	l.Clear()
	assert.True(t, l.IsEmpty())
}

// Single-threaded monotonicity under a larger randomized sequence,
// including repeated prices.
func TestOrderListMonotonicitySingleThreaded(t *testing.T) {
	l := newTestList(true)
	prices := []float64{10, 55, 3, 42, 42, 7, 99, 1, 60, 60, 60, 15}
	for _, p := range prices {
		l.Insert(NewOrder(Buy, "A", 1, p))
	}
	got := collect(l)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1], got[i], "buy list must be non-increasing")
	}
}

// Concurrent inserts must never leave the list unreachable from head, and
// every inserted order must eventually be observed (either via list
// traversal or via the background path's liveness guarantee).
func TestOrderListConcurrentInsertAllReachable(t *testing.T) {
	l := newTestList(true)
	const n = 500
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			l.Insert(NewOrder(Buy, "A", 1, float64(i%50)))
		}(i)
	}
	wg.Wait()
	// Give any order escalated to the background inserter a chance to
	// finish its unbounded head-CAS retry loop before we count.
	time.Sleep(50 * time.Millisecond)

	count := 0
	for cur := l.Peek(); cur != nil; cur = cur.LoadNext() {
		count++
	}
	assert.Equal(t, n, count)
}
