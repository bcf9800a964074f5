package v1

import (
	"time"
)

// RawUpdateEvent represents a raw order book update event from the
// matching service.
type RawUpdateEvent struct {
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	Symbol    string    `json:"symbol"`
	Sequence  int32     `json:"sequence"`
	IsTrade   bool      `json:"is_trade"`
	IsBid     bool      `json:"is_bid"`
	Price     float64   `json:"price"`
	Size      float64   `json:"size"`
}
