package matching

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook(t *testing.T) *OrderBook {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := NewEngineMetrics(reg)
	return NewOrderBook(DefaultEngineConfig(), nil, metrics)
}

func TestOrderBookSlotIsolation(t *testing.T) {
	ob := newTestBook(t)

	// Pick two symbols that are known not to collide for this test's
	// purposes by asserting the precondition explicitly; if the hash ever
	// collides them, the test documents rather than silently mis-asserts.
	symA, symB := "ORDER1", "ORDER2"
	require.NotEqual(t, ob.IndexOf(symA), ob.IndexOf(symB), "test symbols must land in distinct slots")

	buyA, _ := ob.SlotFor(symA)
	buyA.Insert(NewOrder(Buy, symA, 100, 150.0))

	buyB, sellB := ob.SlotFor(symB)
	assert.True(t, buyB.IsEmpty())
	assert.True(t, sellB.IsEmpty())
}

func TestOrderBookIndexStable(t *testing.T) {
	ob := newTestBook(t)
	idx1 := ob.IndexOf("ORDER5")
	idx2 := ob.IndexOf("ORDER5")
	assert.Equal(t, idx1, idx2)
	assert.GreaterOrEqual(t, idx1, 0)
	assert.Less(t, idx1, Capacity)
}
