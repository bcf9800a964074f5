package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	v1 "github.com/waytrylee/tectonicdb/internal/domain/update/v1"
	"github.com/waytrylee/tectonicdb/internal/infrastructure/dtf"
	"github.com/waytrylee/tectonicdb/internal/infrastructure/questdb/orderbook"
	"github.com/waytrylee/tectonicdb/pkg/errors"
	"github.com/waytrylee/tectonicdb/pkg/logger"
)

// Usecase archives raw order book updates from QuestDB into dtf files
// and reads them back.
type Usecase struct {
	orderBookRepository orderbook.OrderBookRepository
	logger              logger.Interface
	dir                 string
}

// NewUsecase creates a new archive usecase. Files are written under dir.
func NewUsecase(orderBookRepository orderbook.OrderBookRepository, logger logger.Interface, dir string) *Usecase {
	return &Usecase{
		orderBookRepository: orderBookRepository,
		logger:              logger,
		dir:                 dir,
	}
}

// FilePath returns the archive file path for a symbol.
func (u *Usecase) FilePath(symbol string) string {
	return filepath.Join(u.dir, symbol+".dtf")
}

// Archive fetches up to limit updates for a symbol from the store and
// writes them to a new archive file, replacing any existing one. It
// returns the path of the written file and the number of archived updates.
func (u *Usecase) Archive(ctx context.Context, symbol string, limit int) (string, int, error) {
	rows, err := u.orderBookRepository.GetBySymbol(ctx, symbol, limit)
	if err != nil {
		return "", 0, errors.TracerFromError(err)
	}
	if len(rows) == 0 {
		return "", 0, errors.NewErrorDetails("no updates to archive", string(errors.DTFNoRecords), symbol)
	}

	updates := make([]v1.Update, 0, len(rows))
	for _, row := range rows {
		updates = append(updates, row.ToUpdate())
	}
	v1.Sort(updates)

	path := u.FilePath(symbol)
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create archive dir: %w", err)
	}
	if err := dtf.Encode(path, symbol, updates); err != nil {
		return "", 0, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "archived updates",
		logger.Field{Key: "symbol", Value: symbol},
		logger.Field{Key: "path", Value: path},
		logger.Field{Key: "count", Value: len(updates)},
	)

	return path, len(updates), nil
}

// Extend fetches updates for a symbol that are newer than the archive's
// current tail and appends them. It returns the number of appended updates.
func (u *Usecase) Extend(ctx context.Context, symbol string, limit int) (int, error) {
	header, err := dtf.ReadHeader(u.FilePath(symbol))
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	rows, err := u.orderBookRepository.GetBySymbol(ctx, symbol, limit)
	if err != nil {
		return 0, errors.TracerFromError(err)
	}

	updates := make([]v1.Update, 0, len(rows))
	for _, row := range rows {
		update := row.ToUpdate()
		if update.Timestamp <= header.MaxTimestamp {
			continue
		}
		updates = append(updates, update)
	}
	if len(updates) == 0 {
		return 0, nil
	}

	if err := dtf.Append(u.FilePath(symbol), updates); err != nil {
		return 0, errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "extended archive",
		logger.Field{Key: "symbol", Value: symbol},
		logger.Field{Key: "count", Value: len(updates)},
	)

	return len(updates), nil
}

// Restore decodes the archive file for a symbol back into updates.
func (u *Usecase) Restore(ctx context.Context, symbol string) ([]v1.Update, error) {
	updates, err := dtf.Decode(u.FilePath(symbol))
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return updates, nil
}

// Info describes an archive file without decoding its full contents.
type Info struct {
	Header dtf.Header
	First  v1.Update
}

// Inspect reads the header and the first stored update of a symbol's archive.
func (u *Usecase) Inspect(ctx context.Context, symbol string) (*Info, error) {
	path := u.FilePath(symbol)

	header, err := dtf.ReadHeader(path)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	first, err := dtf.ReadFirst(path)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	return &Info{Header: header, First: first}, nil
}
