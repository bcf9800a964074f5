package orderbook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	mock "github.com/waytrylee/tectonicdb/pkg/questdb/mock"
)

func TestOrderBookRepository_Store(t *testing.T) {
	query := `INSERT INTO orderbook_updates (timestamp, symbol, sequence, is_trade, is_bid, price, size)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	testCases := []struct {
		name     string
		mockFn   func(update *OrderBookUpdate, mock *mock.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
		update   *OrderBookUpdate
	}{
		{
			name: "success",
			mockFn: func(update *OrderBookUpdate, mock *mock.MockQuestDBClient) {
				mock.EXPECT().Exec(gomock.Any(), query, update.Timestamp, update.Symbol, update.Sequence, update.IsTrade, update.IsBid, update.Price, update.Size).Return(nil)
			},
			update: &OrderBookUpdate{
				Timestamp: time.Now(),
				Symbol:    "NEO_BTC",
				Sequence:  113,
				IsBid:     true,
				Price:     5100.01,
				Size:      1.14,
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			mockFn: func(update *OrderBookUpdate, mock *mock.MockQuestDBClient) {
				mock.EXPECT().Exec(gomock.Any(), query, update.Timestamp, update.Symbol, update.Sequence, update.IsTrade, update.IsBid, update.Price, update.Size).Return(errors.New("error"))
			},
			update: &OrderBookUpdate{
				Timestamp: time.Now(),
				Symbol:    "NEO_BTC",
				Sequence:  113,
				Price:     5100.01,
				Size:      1.14,
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(tc.update, mock)

			repo := NewRepository(mock)
			err := repo.Store(context.Background(), tc.update)
			tc.assertFn(t, err)
		})
	}
}

func TestOrderBookRepository_StoreBatch(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(updates []*OrderBookUpdate, mock *mock.MockQuestDBClient)
		assertFn func(t *testing.T, err error)
		updates  []*OrderBookUpdate
	}{
		{
			name: "success",
			mockFn: func(updates []*OrderBookUpdate, mock *mock.MockQuestDBClient) {
				mock.EXPECT().CopyFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
			},
			updates: []*OrderBookUpdate{
				{
					Timestamp: time.Now(),
					Symbol:    "NEO_BTC",
					Sequence:  113,
					Price:     5100.01,
					Size:      1.14,
				},
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "error",
			mockFn: func(updates []*OrderBookUpdate, mock *mock.MockQuestDBClient) {
				mock.EXPECT().CopyFrom(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("error"))
			},
			updates: []*OrderBookUpdate{
				{
					Timestamp: time.Now(),
					Symbol:    "NEO_BTC",
					Sequence:  113,
					Price:     5100.01,
					Size:      1.14,
				},
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
			},
		},
		{
			name:    "empty batch is a noop",
			mockFn:  func(updates []*OrderBookUpdate, mock *mock.MockQuestDBClient) {},
			updates: nil,
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mock := mock.NewMockQuestDBClient(ctrl)
			tc.mockFn(tc.updates, mock)

			repo := NewRepository(mock)
			err := repo.StoreBatch(context.Background(), tc.updates)
			tc.assertFn(t, err)
		})
	}
}

func TestOrderBookRepository_GetBySymbol(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name     string
		mockFn   func(client *mock.MockQuestDBClient, rows *mock.MockRowsInterface)
		assertFn func(t *testing.T, updates []*OrderBookUpdate, err error)
	}{
		{
			name: "success",
			mockFn: func(client *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				client.EXPECT().Query(gomock.Any(), gomock.Any(), "NEO_BTC", 100).Return(rows, nil)
				rows.EXPECT().Next().Return(true)
				rows.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(dest ...any) error {
						*dest[0].(*time.Time) = now
						*dest[1].(*string) = "NEO_BTC"
						*dest[2].(*int32) = 113
						*dest[3].(*bool) = false
						*dest[4].(*bool) = true
						*dest[5].(*float64) = 5100.01
						*dest[6].(*float64) = 1.14
						return nil
					})
				rows.EXPECT().Next().Return(false)
				rows.EXPECT().Err().Return(nil)
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, updates []*OrderBookUpdate, err error) {
				assert.NoError(t, err)
				assert.Len(t, updates, 1)
				assert.Equal(t, int32(113), updates[0].Sequence)
				assert.Equal(t, "NEO_BTC", updates[0].Symbol)
			},
		},
		{
			name: "query error",
			mockFn: func(client *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				client.EXPECT().Query(gomock.Any(), gomock.Any(), "NEO_BTC", 100).Return(nil, errors.New("error"))
			},
			assertFn: func(t *testing.T, updates []*OrderBookUpdate, err error) {
				assert.Error(t, err)
				assert.Nil(t, updates)
			},
		},
		{
			name: "scan error",
			mockFn: func(client *mock.MockQuestDBClient, rows *mock.MockRowsInterface) {
				client.EXPECT().Query(gomock.Any(), gomock.Any(), "NEO_BTC", 100).Return(rows, nil)
				rows.EXPECT().Next().Return(true)
				rows.EXPECT().Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("error"))
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, updates []*OrderBookUpdate, err error) {
				assert.Error(t, err)
				assert.Nil(t, updates)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock.NewMockQuestDBClient(ctrl)
			rows := mock.NewMockRowsInterface(ctrl)
			tc.mockFn(client, rows)

			repo := NewRepository(client)
			updates, err := repo.GetBySymbol(context.Background(), "NEO_BTC", 100)
			tc.assertFn(t, updates, err)
		})
	}
}

func TestOrderBookUpdate_ToUpdate(t *testing.T) {
	row := &OrderBookUpdate{
		Timestamp: time.Unix(1000000, 0),
		Symbol:    "NEO_BTC",
		Sequence:  123,
		IsTrade:   true,
		IsBid:     false,
		Price:     5100.01,
		Size:      1.123465,
	}

	update := row.ToUpdate()

	assert.Equal(t, uint32(1000000), update.Timestamp)
	assert.Equal(t, uint16(123), update.Sequence)
	assert.True(t, update.IsTrade)
	assert.False(t, update.IsBid)
	assert.Equal(t, float32(5100.01), update.Price)
	assert.Equal(t, float32(1.123465), update.Size)
}
