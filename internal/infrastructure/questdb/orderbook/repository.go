package orderbook

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/waytrylee/tectonicdb/pkg/questdb"
)

// Repository represents the repository for raw order book updates.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new order book update repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single raw order book update.
func (r *Repository) Store(ctx context.Context, update *OrderBookUpdate) error {
	query := `INSERT INTO orderbook_updates (timestamp, symbol, sequence, is_trade, is_bid, price, size)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	err := r.client.Exec(ctx, query,
		update.Timestamp, update.Symbol, update.Sequence, update.IsTrade, update.IsBid, update.Price, update.Size)

	if err != nil {
		return fmt.Errorf("failed to store order book update: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of raw order book updates.
func (r *Repository) StoreBatch(ctx context.Context, updates []*OrderBookUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	// Use CopyFrom for better performance with large batches
	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"orderbook_updates"},
		[]string{"timestamp", "symbol", "sequence", "is_trade", "is_bid", "price", "size"},
		pgx.CopyFromSlice(len(updates), func(i int) ([]any, error) {
			update := updates[i]
			return []any{
				update.Timestamp,
				update.Symbol,
				update.Sequence,
				update.IsTrade,
				update.IsBid,
				update.Price,
				update.Size,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy order book updates: %w", err)
	}

	return nil
}

// GetBySymbol retrieves raw order book updates for a symbol in sequence order.
func (r *Repository) GetBySymbol(ctx context.Context, symbol string, limit int) ([]*OrderBookUpdate, error) {
	query := `SELECT timestamp, symbol, sequence, is_trade, is_bid, price, size
			  FROM orderbook_updates
			  WHERE symbol = $1
			  ORDER BY sequence ASC`
	args := []interface{}{symbol}

	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.client.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order book updates: %w", err)
	}
	defer rows.Close()

	var updates []*OrderBookUpdate
	for rows.Next() {
		update := &OrderBookUpdate{}
		err := rows.Scan(&update.Timestamp, &update.Symbol, &update.Sequence, &update.IsTrade, &update.IsBid, &update.Price, &update.Size)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order book update: %w", err)
		}
		updates = append(updates, update)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return updates, nil
}

// GetLatestSequence retrieves the highest stored sequence number for a symbol.
// Returns -1 when no updates exist for the symbol.
func (r *Repository) GetLatestSequence(ctx context.Context, symbol string) (int64, error) {
	query := `SELECT COALESCE(MAX(sequence), -1) FROM orderbook_updates WHERE symbol = $1`

	var sequence int64
	err := r.client.QueryRow(ctx, query, symbol).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest sequence: %w", err)
	}

	return sequence, nil
}
