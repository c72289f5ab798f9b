package worker_test

import (
	"context"
	"errors"
	"testing"

	"spacebook/config"
	otelMocks "spacebook/infras/otel/mocks"
	bookingModel "spacebook/internal/domains/booking/model"
	"spacebook/internal/domains/notification/service"
	userMocks "spacebook/internal/domains/user/mocks"
	userModel "spacebook/internal/domains/user/model"
	"spacebook/shared/event"
	eventMocks "spacebook/shared/event/mocks"
	"spacebook/transport/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWorker_Run(t *testing.T) {
	ctrl := gomock.NewController(t)

	consumer := eventMocks.NewMockConsumer(ctrl)
	users := userMocks.NewMockUser(ctrl)

	evt, err := event.New(bookingModel.EventCreated, "space-1", bookingModel.CreatedPayload{BookingID: "b-1", UserID: "u-1"})
	require.NoError(t, err)

	users.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(userModel.User{Email: "user@example.com"}, nil)
	consumer.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, handler event.Handler) error {
			return handler(ctx, evt)
		})
	consumer.EXPECT().Close().Return(nil)

	w := worker.New(&config.Config{}, consumer, service.New(users, otelMocks.NewOtel()), nil, otelMocks.NewOtel())

	assert.NoError(t, w.Run())
}

func TestWorker_RunReportsConsumerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)

	consumer := eventMocks.NewMockConsumer(ctrl)
	consumer.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(errors.New("declare queue: channel closed"))
	consumer.EXPECT().Close().Return(nil)

	w := worker.New(&config.Config{}, consumer, service.New(userMocks.NewMockUser(ctrl), otelMocks.NewOtel()), nil, otelMocks.NewOtel())

	assert.Error(t, w.Run())
}
