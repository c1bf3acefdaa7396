package matching

import "hash/fnv"

// Capacity is the fixed number of slots in an OrderBook, sized at compile
// time rather than grown dynamically.
const Capacity = 1024

// slotFor computes the symbol-to-slot mapping: an FNV-1a hash of symbol,
// reduced modulo Capacity and forced non-negative. Distinct symbols that
// collide into the same slot share a book; that is an accepted tradeoff of
// a fixed-size table rather than an error condition.
func slotFor(symbol string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	sum := int32(h.Sum32())
	if sum < 0 {
		sum = -sum
	}
	return int(sum) % Capacity
}
