package bootstrap

import (
	"github.com/waytrylee/tectonicdb/pkg/config"
	"github.com/waytrylee/tectonicdb/pkg/logger"
	"github.com/waytrylee/tectonicdb/pkg/questdb"
)

// Bootstrap wires the repositories and usecases of the archiver.
type Bootstrap struct {
	Usecase    Usecase
	Logger     logger.Interface
	Repository Repository

	QuestDB questdb.QuestDBClient
	Config  *config.Config
}

// BoostrapConfig is the config for the bootstrap.
type BoostrapConfig struct {
	QuestDB questdb.QuestDBClient
	Logger  logger.Interface
	Config  *config.Config
}

// Init initializes the bootstrap.
func (b *Bootstrap) Init(config BoostrapConfig) Bootstrap {
	b.QuestDB = config.QuestDB
	b.Logger = config.Logger
	b.Config = config.Config

	b.registerRepository()
	b.registerUsecase()

	return *b
}
