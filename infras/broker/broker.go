package broker

import (
	"fmt"
	"strings"

	"spacebook/config"
	"spacebook/infras/kafka"
	"spacebook/infras/otel"
	"spacebook/infras/rabbitmq"
	"spacebook/shared/constant"
	"spacebook/shared/event"

	"github.com/rs/zerolog/log"
)

// Client is the driver selected by EVENTS_DRIVER.
type Client interface {
	event.Publisher
	event.Consumer
}

// New picks the event driver. An empty or "none" driver disables publishing;
// booking writes never depend on the broker being reachable.
func New(cfg *config.Config, ot otel.Otel) (Client, error) {
	switch strings.ToLower(cfg.Events.Driver) {
	case constant.EventsDriverKafka:
		return kafka.New(cfg, ot), nil
	case constant.EventsDriverRabbitMQ:
		client, err := rabbitmq.New(cfg, ot)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}

		return client, nil
	case constant.Empty, constant.EventsDriverNone:
		log.Warn().Msg("No events driver configured, booking events are discarded")

		return noopClient{Publisher: event.NewNoopPublisher()}, nil
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Events.Driver)
	}
}

// NewPublisher is New narrowed to the publishing side, falling back to the
// no-op driver when the broker cannot be reached at startup.
func NewPublisher(cfg *config.Config, ot otel.Otel) event.Publisher {
	client, err := New(cfg, ot)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize events driver, booking events are discarded")

		return event.NewNoopPublisher()
	}

	return client
}
