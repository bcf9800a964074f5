package bootstrap

import (
	orderBookInfra "github.com/waytrylee/tectonicdb/internal/infrastructure/questdb/orderbook"
)

// Repository holds the repositories of the archiver.
type Repository struct {
	OrderBookRepository orderBookInfra.OrderBookRepository
}

// registerRepository registers the repository.
func (b *Bootstrap) registerRepository() {
	b.Repository.OrderBookRepository = orderBookInfra.NewRepository(b.QuestDB)
}
