package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

// Handler processes one message body. A returned error rejects the message without requeue.
type Handler func(ctx context.Context, body []byte) error

type Consumer struct {
	url     string
	queue   string
	handler Handler
}

func NewConsumer(url, queue string, handler Handler) *Consumer {
	return &Consumer{url: url, queue: queue, handler: handler}
}

// Run consumes until ctx is cancelled, redialling with exponential backoff
func (c *Consumer) Run(ctx context.Context) {
	log := logger.GetLogger().With(zap.String("queue", c.queue))

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Warn("Consumer failed to dial broker",
				zap.Duration("retry_in", backoff),
				zap.Error(err),
			)
			if !sleep(ctx, backoff) {
				return
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		log.Warn("Consume loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		logger.GetLogger().Warn("Consumer QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handler(ctx, d.Body); err != nil {
				logger.GetLogger().Error("Queue message rejected",
					zap.String("queue", c.queue),
					zap.Error(err),
				)
				// no requeue, a poison message would loop forever
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
