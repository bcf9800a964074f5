package v1

import (
	"context"
)

//go:generate mockgen -source=consumer.go -destination=mock/consumer_mock.go -package=mock

// OrderBookConsumer consumes raw order book update events.
type OrderBookConsumer interface {
	Start(ctx context.Context)
	Stop() error
	Subscribe(ctx context.Context)
}
