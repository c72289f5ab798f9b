package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"spacebook/config"
	"spacebook/infras/otel"
	"spacebook/shared/constant"
	"spacebook/shared/event"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	headerEventType = "event-type"
	handlerAttempts = 3
	retryBackoff    = 500 * time.Millisecond
)

// Client publishes and consumes booking events on a single topic.
type Client interface {
	event.Publisher
	event.Consumer
}

type kafkaClientImpl struct {
	config *config.Config
	otel   otel.Otel
	dialer *kafkaGo.Dialer
	writer *kafkaGo.Writer
	topic  string
}

func New(config *config.Config, ot otel.Otel) Client {
	var mechanism sasl.Mechanism

	if config.Events.Kafka.SASL.Username != "" {
		mechanism = plain.Mechanism{
			Username: config.Events.Kafka.SASL.Username,
			Password: config.Events.Kafka.SASL.Password,
		}
	}

	dialer := &kafkaGo.Dialer{
		DualStack:     true,
		SASLMechanism: mechanism,
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.Events.Kafka.Brokers...),
		Topic:                  config.Events.Topic,
		Balancer:               &kafkaGo.Hash{},
		Transport:              &kafkaGo.Transport{SASL: mechanism},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkaGo.RequireAll,
	}

	log.Info().Strs("brokers", config.Events.Kafka.Brokers).Str("topic", config.Events.Topic).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		config: config,
		otel:   ot,
		dialer: dialer,
		writer: writer,
		topic:  config.Events.Topic,
	}
}

func toKafkaMessage(evt event.Event) (kafkaGo.Message, error) {
	value, err := json.Marshal(evt)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:   []byte(evt.Key),
		Value: value,
		Headers: []kafkaGo.Header{
			{Key: headerEventType, Value: []byte(evt.Type)},
		},
	}, nil
}

func decodeKafkaMessage(msg kafkaGo.Message) (event.Event, error) {
	var evt event.Event

	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return evt, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	return evt, nil
}

// Publish writes events synchronously so failures reach the caller.
func (k *kafkaClientImpl) Publish(ctx context.Context, events ...event.Event) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	msgs := make([]kafkaGo.Message, 0, len(events))

	for _, evt := range events {
		msg, err := toKafkaMessage(evt)
		if err != nil {
			log.Error().Err(err).Str("type", evt.Type).Msg("Failed to convert event to Kafka message.")

			return err
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer.WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", k.topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", k.topic).Int("count", len(msgs)).Msg("Sent messages successfully.")

	return nil
}

func (k *kafkaClientImpl) reader() *kafkaGo.Reader {
	return kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Events.Kafka.Brokers,
		Topic:       k.topic,
		GroupID:     k.config.Events.Kafka.ConsumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})
}

// Consume blocks until ctx is cancelled. A message is committed once the
// handler succeeds or has failed handlerAttempts times.
func (k *kafkaClientImpl) Consume(ctx context.Context, handler event.Handler) error {
	if k.topic == "" {
		return errors.New("kafka topic is not configured")
	}

	reader := k.reader()
	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Kafka reader.")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Msg("Consumer context done.")

				return nil
			}

			log.Error().Err(err).Str("topic", k.topic).Msg("Failed to read message from Kafka.")

			continue
		}

		log.Info().Str("topic", k.topic).Str("key", string(msg.Key)).Msg("Received message from Kafka.")

		evt, err := decodeKafkaMessage(msg)
		if err != nil {
			log.Error().Err(err).Int64("offset", msg.Offset).Msg("Skipping undecodable message.")
		} else {
			k.handle(ctx, handler, evt)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Int64("offset", msg.Offset).Msg("Failed to commit Kafka message.")
		}
	}
}

func (k *kafkaClientImpl) handle(ctx context.Context, handler event.Handler, evt event.Event) {
	for attempt := 1; attempt <= handlerAttempts; attempt++ {
		err := handler(ctx, evt)
		if err == nil {
			return
		}

		log.Error().Err(err).Str("type", evt.Type).Int("attempt", attempt).Msg("Event handler failed.")

		select {
		case <-ctx.Done():
			return
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}
