package broker

import (
	"context"
	"errors"

	"spacebook/shared/event"
)

var errNoDriver = errors.New("no events driver configured")

type noopClient struct {
	event.Publisher
}

func (noopClient) Consume(_ context.Context, _ event.Handler) error {
	return errNoDriver
}
