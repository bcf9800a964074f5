package orderbook

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// OrderBookRepository represents the repository interface for raw order book updates.
type OrderBookRepository interface {
	Store(ctx context.Context, update *OrderBookUpdate) error
	StoreBatch(ctx context.Context, updates []*OrderBookUpdate) error
	GetBySymbol(ctx context.Context, symbol string, limit int) ([]*OrderBookUpdate, error)
	GetLatestSequence(ctx context.Context, symbol string) (int64, error)
}
