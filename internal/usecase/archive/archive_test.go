package archive

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/waytrylee/tectonicdb/internal/domain/update/v1"
	"github.com/waytrylee/tectonicdb/internal/infrastructure/dtf"
	"github.com/waytrylee/tectonicdb/internal/infrastructure/questdb/orderbook"
	mock_orderbook "github.com/waytrylee/tectonicdb/internal/infrastructure/questdb/orderbook/mock"
	pkgerrors "github.com/waytrylee/tectonicdb/pkg/errors"
	mock_logger "github.com/waytrylee/tectonicdb/pkg/logger/mock"
)

func sampleRows() []*orderbook.OrderBookUpdate {
	return []*orderbook.OrderBookUpdate{
		{
			Timestamp: time.Unix(100, 0),
			Symbol:    "NEO_BTC",
			Sequence:  113,
			IsBid:     true,
			Price:     5100.01,
			Size:      1.14,
		},
		{
			Timestamp: time.Unix(101, 0),
			Symbol:    "NEO_BTC",
			Sequence:  113,
			IsBid:     false,
			Price:     5100.02,
			Size:      2.2,
		},
		{
			Timestamp: time.Unix(1000000, 0),
			Symbol:    "NEO_BTC",
			Sequence:  123,
			IsTrade:   true,
			IsBid:     true,
			Price:     5200.01,
			Size:      4.44,
		},
	}
}

func newTestUsecase(t *testing.T, dir string) (*Usecase, *mock_orderbook.MockOrderBookRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mock_orderbook.NewMockOrderBookRepository(ctrl)
	log := mock_logger.NewMockInterface(ctrl)
	log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()

	return NewUsecase(repo, log, dir), repo
}

func TestUsecase_Archive(t *testing.T) {
	dir := t.TempDir()
	usecase, repo := newTestUsecase(t, dir)

	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(sampleRows(), nil)

	path, count, err := usecase.Archive(context.Background(), "NEO_BTC", 0)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "NEO_BTC.dtf"), path)
	assert.Equal(t, 3, count)

	updates, err := dtf.Decode(path)
	require.NoError(t, err)
	require.Len(t, updates, 3)

	// Rows with equal sequence keep their fetch order, the later
	// sequence sorts last.
	assert.Equal(t, uint32(100), updates[0].Timestamp)
	assert.Equal(t, uint32(101), updates[1].Timestamp)
	assert.Equal(t, uint16(123), updates[2].Sequence)
}

func TestUsecase_Archive_NoRows(t *testing.T) {
	usecase, repo := newTestUsecase(t, t.TempDir())

	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(nil, nil)

	_, _, err := usecase.Archive(context.Background(), "NEO_BTC", 0)
	assert.True(t, pkgerrors.ErrorCodeEquals(err, string(pkgerrors.DTFNoRecords)))
}

func TestUsecase_Archive_RepositoryError(t *testing.T) {
	usecase, repo := newTestUsecase(t, t.TempDir())

	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(nil, errors.New("connection refused"))

	_, _, err := usecase.Archive(context.Background(), "NEO_BTC", 0)
	assert.Error(t, err)
}

func TestUsecase_Extend(t *testing.T) {
	dir := t.TempDir()
	usecase, repo := newTestUsecase(t, dir)

	rows := sampleRows()
	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(rows, nil)
	_, _, err := usecase.Archive(context.Background(), "NEO_BTC", 0)
	require.NoError(t, err)

	// Second fetch returns the old rows plus two newer ones. Only the
	// newer rows must land in the archive.
	newer := append(rows,
		&orderbook.OrderBookUpdate{
			Timestamp: time.Unix(1000100, 0),
			Symbol:    "NEO_BTC",
			Sequence:  124,
			IsBid:     true,
			Price:     5201.0,
			Size:      0.5,
		},
		&orderbook.OrderBookUpdate{
			Timestamp: time.Unix(1000200, 0),
			Symbol:    "NEO_BTC",
			Sequence:  125,
			IsBid:     false,
			Price:     5202.0,
			Size:      0.25,
		},
	)
	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(newer, nil)

	count, err := usecase.Extend(context.Background(), "NEO_BTC", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	updates, err := dtf.Decode(usecase.FilePath("NEO_BTC"))
	require.NoError(t, err)
	assert.Len(t, updates, 5)
	assert.Equal(t, uint16(125), updates[4].Sequence)
}

func TestUsecase_Extend_NothingNew(t *testing.T) {
	dir := t.TempDir()
	usecase, repo := newTestUsecase(t, dir)

	rows := sampleRows()
	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(rows, nil).Times(2)

	_, _, err := usecase.Archive(context.Background(), "NEO_BTC", 0)
	require.NoError(t, err)

	count, err := usecase.Extend(context.Background(), "NEO_BTC", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestUsecase_Extend_MissingArchive(t *testing.T) {
	usecase, _ := newTestUsecase(t, t.TempDir())

	_, err := usecase.Extend(context.Background(), "NEO_BTC", 0)
	assert.Error(t, err)
}

func TestUsecase_Restore(t *testing.T) {
	dir := t.TempDir()
	usecase, repo := newTestUsecase(t, dir)

	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(sampleRows(), nil)
	_, _, err := usecase.Archive(context.Background(), "NEO_BTC", 0)
	require.NoError(t, err)

	updates, err := usecase.Restore(context.Background(), "NEO_BTC")
	require.NoError(t, err)
	assert.Len(t, updates, 3)
	assert.True(t, v1.IsSorted(updates))
}

func TestUsecase_Inspect(t *testing.T) {
	dir := t.TempDir()
	usecase, repo := newTestUsecase(t, dir)

	repo.EXPECT().GetBySymbol(gomock.Any(), "NEO_BTC", 0).Return(sampleRows(), nil)
	_, _, err := usecase.Archive(context.Background(), "NEO_BTC", 0)
	require.NoError(t, err)

	info, err := usecase.Inspect(context.Background(), "NEO_BTC")
	require.NoError(t, err)
	assert.Equal(t, "NEO_BTC", strings.TrimRight(info.Header.Symbol, " "))
	assert.Equal(t, uint64(3), info.Header.RecordCount)
	assert.Equal(t, uint32(1000000), info.Header.MaxTimestamp)
	assert.Equal(t, uint16(113), info.First.Sequence)
}
