package consumer

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	v1 "github.com/waytrylee/tectonicdb/internal/domain/orderbook-consumer/v1"
	"github.com/waytrylee/tectonicdb/internal/infrastructure/questdb/orderbook"
	"github.com/waytrylee/tectonicdb/pkg/config"
	"github.com/waytrylee/tectonicdb/pkg/logger"
)

// OrderBookConsumer is the consumer for the raw order book update topic.
type OrderBookConsumer struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface

	orderBookRepository orderbook.OrderBookRepository
	msgChan             chan kafka.Message
}

// NewOrderBookConsumer creates a new OrderBookConsumer.
func NewOrderBookConsumer(config config.OrderBookKafkaConfig, logger logger.Interface, orderBookRepository orderbook.OrderBookRepository) *OrderBookConsumer {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     config.Brokers,
		Topic:       config.Topic,
		GroupID:     config.ConsumerGroup,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return &OrderBookConsumer{
		kafkaReader:         kafkaReader,
		logger:              logger,
		orderBookRepository: orderBookRepository,
		msgChan:             make(chan kafka.Message),
	}
}

// Start starts the OrderBookConsumer.
func (c *OrderBookConsumer) Start(ctx context.Context) {
	c.logger.InfoContext(ctx, "starting order book consumer", logger.Field{
		Key:   "action",
		Value: "orderbook_consumer_start",
	})

	for {
		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "context done", logger.Field{
				Key:   "action",
				Value: "orderbook_consumer_stop",
			})
			return
		default:
			msg, err := c.kafkaReader.ReadMessage(ctx)
			if err != nil {
				c.logger.ErrorContext(ctx, err, logger.Field{
					Key:   "action",
					Value: "read_message",
				})
				continue
			}

			c.msgChan <- msg
		}
	}
}

// Stop stops the OrderBookConsumer.
func (c *OrderBookConsumer) Stop() error {
	c.logger.InfoContext(context.Background(), "stopping order book consumer", logger.Field{
		Key:   "action",
		Value: "orderbook_consumer_stop",
	})
	return c.kafkaReader.Close()
}

// Subscribe subscribes to the OrderBookConsumer.
func (c *OrderBookConsumer) Subscribe(ctx context.Context) {
	c.logger.InfoContext(ctx, "subscribing to order book consumer", logger.Field{
		Key:   "action",
		Value: "orderbook_consumer_subscribe",
	})

	for msg := range c.msgChan {
		var event v1.RawUpdateEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "unmarshal_update",
			})
		}

		if err := c.handleUpdate(ctx, &event); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "handle_update",
			})
		}

		if err := c.kafkaReader.CommitMessages(ctx, msg); err != nil {
			c.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "commit_message",
			})
		}
	}
}

func (c *OrderBookConsumer) handleUpdate(ctx context.Context, event *v1.RawUpdateEvent) error {
	update := &orderbook.OrderBookUpdate{}
	update.FromUpdateEvent(event)

	if err := c.orderBookRepository.Store(ctx, update); err != nil {
		c.logger.ErrorContext(ctx, err, logger.Field{
			Key:   "action",
			Value: "store_update",
		})
		return err
	}

	return nil
}
