package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/waytrylee/tectonicdb/pkg/questdb"
)

// Config represents the application configuration.
type Config struct {
	App            AppConfig            `envPrefix:"APP_"`
	QuestDB        questdb.Config       `envPrefix:"QUESTDB_"`
	OrderBookKafka OrderBookKafkaConfig `envPrefix:"ORDERBOOK_KAFKA_"`
	Archive        ArchiveConfig        `envPrefix:"ARCHIVE_"`
}

// AppConfig represents the application configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"tectonicdb"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// OrderBookKafkaConfig represents the Kafka configuration for the raw
// order book update topic.
type OrderBookKafkaConfig struct {
	Brokers         []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic           string   `env:"TOPIC" envDefault:"orderbook-updates"`
	ConsumerGroup   string   `env:"CONSUMER_GROUP" envDefault:"tectonicdb"`
	ConsumerTimeout int      `env:"CONSUMER_TIMEOUT" envDefault:"5"`
	MaxRetries      int      `env:"MAX_RETRIES" envDefault:"3"`
}

// ArchiveConfig represents the DTF archive configuration.
type ArchiveConfig struct {
	// Dir is the directory DTF files are written to.
	Dir string `env:"DIR" envDefault:"./data"`
	// Symbol is the market symbol archived by the archiver process.
	Symbol string `env:"SYMBOL" envDefault:"NEO_BTC"`
	// BatchSize caps how many raw updates are pulled from the database per archive run.
	BatchSize int `env:"BATCH_SIZE" envDefault:"100000"`
}

// Load loads the configuration from the environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
