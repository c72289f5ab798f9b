package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"spacebook/config"
	"spacebook/infras/otel"
	"spacebook/shared/constant"
	"spacebook/shared/event"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	exchangeKind   = "topic"
	bookingBinding = "booking.*"
	prefetch       = 16
)

// Client publishes events to a topic exchange using the event type as the
// routing key, and consumes them from a durable queue bound to booking.*.
type Client interface {
	event.Publisher
	event.Consumer
}

type rabbitClientImpl struct {
	otel     otel.Otel
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	queue    string
	mu       sync.Mutex
}

func New(config *config.Config, ot otel.Otel) (Client, error) {
	rabbitCfg := config.Events.RabbitMQ

	conn, err := amqp.Dial(rabbitCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()

		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(rabbitCfg.Exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()

		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Info().Str("exchange", rabbitCfg.Exchange).Msg("RabbitMQ client initialized")

	return &rabbitClientImpl{
		otel:     ot,
		conn:     conn,
		ch:       ch,
		exchange: rabbitCfg.Exchange,
		queue:    rabbitCfg.Queue,
	}, nil
}

func (r *rabbitClientImpl) Publish(ctx context.Context, events ...event.Event) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRabbitScopeName, constant.OtelRabbitScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, evt := range events {
		body, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}

		err = r.ch.PublishWithContext(ctx, r.exchange, evt.Type, false, false, amqp.Publishing{
			ContentType:  constant.ContentTypeJSON,
			DeliveryMode: amqp.Persistent,
			MessageId:    evt.ID,
			Timestamp:    evt.OccurredAt,
			Type:         evt.Type,
			Body:         body,
		})
		if err != nil {
			log.Error().Err(err).Str("exchange", r.exchange).Str("type", evt.Type).Msg("Failed to publish to RabbitMQ.")

			return fmt.Errorf("failed to publish to rabbitmq: %w", err)
		}
	}

	return nil
}

func (r *rabbitClientImpl) Consume(ctx context.Context, handler event.Handler) error {
	q, err := r.ch.QueueDeclare(r.queue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := r.ch.QueueBind(q.Name, bookingBinding, r.exchange, false, nil); err != nil {
		return fmt.Errorf("bind %s: %w", bookingBinding, err)
	}

	if err := r.ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	deliveries, err := r.ch.ConsumeWithContext(ctx, q.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			r.handleDelivery(ctx, handler, d)
		}
	}
}

func (r *rabbitClientImpl) handleDelivery(ctx context.Context, handler event.Handler, d amqp.Delivery) {
	var evt event.Event

	if err := json.Unmarshal(d.Body, &evt); err != nil {
		log.Error().Err(err).Str("routing_key", d.RoutingKey).Msg("Dropping undecodable delivery.")

		_ = d.Nack(false, false)

		return
	}

	if err := handler(ctx, evt); err != nil {
		log.Error().Err(err).Str("type", evt.Type).Bool("redelivered", d.Redelivered).Msg("Event handler failed.")

		// requeue once, then drop
		_ = d.Nack(false, !d.Redelivered)

		return
	}

	_ = d.Ack(false)
}

func (r *rabbitClientImpl) Close() error {
	if r.ch != nil {
		_ = r.ch.Close()
	}

	if r.conn != nil {
		if err := r.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}

	return nil
}
