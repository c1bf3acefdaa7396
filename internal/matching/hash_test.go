package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotForDeterministic(t *testing.T) {
	assert.Equal(t, slotFor("ABC"), slotFor("ABC"))
}

func TestSlotForInRange(t *testing.T) {
	for _, sym := range []string{"", "A", "STOCK0", "STOCK99", "ORDER1", "ORDER7"} {
		idx := slotFor(sym)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, Capacity)
	}
}
