package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/subscription-tracker/internal/lib/sl"
)

const maxInFlight = 10

// ErrReject помечает сообщение, которое нельзя обработать повторно.
// Такое сообщение отклоняется без возврата в очередь.
var ErrReject = errors.New("message rejected")

// ConsumerMessage запускает потребителя очереди queueName. Обработчик вызывается
// конкурентно, не больше maxInFlight сообщений одновременно. Сообщение подтверждается
// при успехе и возвращается в очередь при ошибке обработчика, кроме ошибок ErrReject.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(slog.String("op", op), slog.String("queue", queueName))
	go consume(ctx, log, delivery, maxInFlight, handler)
	return nil
}

// consume обрабатывает сообщения до закрытия deliveries или отмены ctx.
// Сообщение, полученное после отмены ctx, но не взятое в работу, возвращается в очередь.
func consume(ctx context.Context, log *slog.Logger, deliveries <-chan amqp.Delivery, limit int, handler func([]byte) error) {
	sem := make(chan struct{}, limit)
	for {
		select {
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				if nackErr := d.Nack(false, true); nackErr != nil {
					log.Error("failed to nack message", sl.Err(nackErr))
				}
				return
			}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handle(log, d, handler)
			}(d)
		case <-ctx.Done():
			return
		}
	}
}

func handle(log *slog.Logger, d amqp.Delivery, handler func([]byte) error) {
	err := handler(d.Body)
	if errors.Is(err, ErrReject) {
		log.Warn("handler rejected message", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if err != nil {
		log.Error("handler failed, requeue message", sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
