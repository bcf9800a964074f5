package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSort_OrdersBySequenceOnly(t *testing.T) {
	updates := []Update{
		{Timestamp: 300, Sequence: 20},
		{Timestamp: 100, Sequence: 10},
		{Timestamp: 200, Sequence: 15},
	}

	Sort(updates)

	assert.Equal(t, uint16(10), updates[0].Sequence)
	assert.Equal(t, uint16(15), updates[1].Sequence)
	assert.Equal(t, uint16(20), updates[2].Sequence)
}

func TestSort_KeepsInsertionOrderForEqualSequence(t *testing.T) {
	// Equal sequence numbers compare equal regardless of timestamp, so the
	// stable sort must not reorder them.
	updates := []Update{
		{Timestamp: 500, Sequence: 7, Price: 1},
		{Timestamp: 100, Sequence: 7, Price: 2},
		{Timestamp: 300, Sequence: 7, Price: 3},
	}

	Sort(updates)

	assert.Equal(t, float32(1), updates[0].Price)
	assert.Equal(t, float32(2), updates[1].Price)
	assert.Equal(t, float32(3), updates[2].Price)
}

func TestIsSorted(t *testing.T) {
	testCases := []struct {
		name    string
		updates []Update
		want    bool
	}{
		{
			name:    "empty",
			updates: nil,
			want:    true,
		},
		{
			name: "sorted with ties",
			updates: []Update{
				{Sequence: 1}, {Sequence: 1}, {Sequence: 2},
			},
			want: true,
		},
		{
			name: "unsorted",
			updates: []Update{
				{Sequence: 5}, {Sequence: 3},
			},
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsSorted(tc.updates))
		})
	}
}

func TestMaxTimestamp(t *testing.T) {
	assert.Equal(t, uint32(0), MaxTimestamp(nil))

	updates := []Update{
		{Timestamp: 100, Sequence: 1},
		{Timestamp: 1000000, Sequence: 2},
		{Timestamp: 101, Sequence: 3},
	}
	assert.Equal(t, uint32(1000000), MaxTimestamp(updates))
}
