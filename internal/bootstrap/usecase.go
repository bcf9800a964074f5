package bootstrap

import (
	archiveUc "github.com/waytrylee/tectonicdb/internal/usecase/archive"
)

// Usecase holds the usecases of the archiver.
type Usecase struct {
	ArchiveUsecase *archiveUc.Usecase
}

// registerUsecase registers the usecase.
func (b *Bootstrap) registerUsecase() {
	b.Usecase.ArchiveUsecase = archiveUc.NewUsecase(b.Repository.OrderBookRepository, b.Logger, b.Config.Archive.Dir)
}
