package v1

import "sort"

// Update represents a single market event: an order book change or a trade.
//
// Sequence is the ordering key, not Timestamp. Two updates with the same
// sequence number compare equal even when their timestamps differ, and a
// stable sort keeps their insertion order. Timestamp is expected to be
// non-decreasing alongside Sequence but is never consulted for ordering.
type Update struct {
	Timestamp uint32
	Sequence  uint16
	IsTrade   bool
	IsBid     bool
	Price     float32
	Size      float32
}

// Less reports whether u is ordered before other.
func (u Update) Less(other Update) bool {
	return u.Sequence < other.Sequence
}

// Sort sorts updates in place by sequence number, keeping insertion order
// for equal sequence numbers.
func Sort(updates []Update) {
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].Sequence < updates[j].Sequence
	})
}

// IsSorted reports whether updates are in non-decreasing sequence order.
func IsSorted(updates []Update) bool {
	return sort.SliceIsSorted(updates, func(i, j int) bool {
		return updates[i].Sequence < updates[j].Sequence
	})
}

// MaxTimestamp returns the largest timestamp among updates, 0 when empty.
func MaxTimestamp(updates []Update) uint32 {
	var max uint32
	for _, update := range updates {
		if update.Timestamp > max {
			max = update.Timestamp
		}
	}
	return max
}
