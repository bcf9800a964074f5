package orderbook

import (
	"time"

	consumerv1 "github.com/waytrylee/tectonicdb/internal/domain/orderbook-consumer/v1"
	v1 "github.com/waytrylee/tectonicdb/internal/domain/update/v1"
)

// OrderBookUpdate represents a raw order book update row as stored in QuestDB.
type OrderBookUpdate struct {
	Timestamp time.Time
	Symbol    string
	Sequence  int32
	IsTrade   bool
	IsBid     bool
	Price     float64
	Size      float64
}

// FromUpdateEvent fills the row from a consumed raw update event.
func (u *OrderBookUpdate) FromUpdateEvent(event *consumerv1.RawUpdateEvent) {
	u.Timestamp = event.Timestamp
	u.Symbol = event.Symbol
	u.Sequence = event.Sequence
	u.IsTrade = event.IsTrade
	u.IsBid = event.IsBid
	u.Price = event.Price
	u.Size = event.Size
}

// ToUpdate maps a raw database row to the codec's update representation.
// Timestamps are narrowed to seconds granularity.
func (u *OrderBookUpdate) ToUpdate() v1.Update {
	return v1.Update{
		Timestamp: uint32(u.Timestamp.Unix()),
		Sequence:  uint16(u.Sequence),
		IsTrade:   u.IsTrade,
		IsBid:     u.IsBid,
		Price:     float32(u.Price),
		Size:      float32(u.Size),
	}
}
