package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"spacebook/shared/event"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settlement struct {
	acked   bool
	nacked  bool
	requeue bool
}

type recordingAcknowledger struct {
	got settlement
}

func (a *recordingAcknowledger) Ack(uint64, bool) error {
	a.got.acked = true

	return nil
}

func (a *recordingAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	a.got.nacked = true
	a.got.requeue = requeue

	return nil
}

func (a *recordingAcknowledger) Reject(_ uint64, requeue bool) error {
	return a.Nack(0, false, requeue)
}

func TestHandleDelivery(t *testing.T) {
	evt, err := event.New("booking.created", "space-1", map[string]string{"booking_id": "b-1"})
	require.NoError(t, err)

	body, err := json.Marshal(evt)
	require.NoError(t, err)

	failing := func(context.Context, event.Event) error { return errors.New("handler failed") }
	succeeding := func(context.Context, event.Event) error { return nil }

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		handler     event.Handler
		want        settlement
		wantHandled bool
	}{
		{
			name:        "handled event is acked",
			body:        body,
			handler:     succeeding,
			want:        settlement{acked: true},
			wantHandled: true,
		},
		{
			name:    "undecodable body is dropped",
			body:    []byte("{not json"),
			handler: succeeding,
			want:    settlement{nacked: true},
		},
		{
			name:        "first failure is requeued",
			body:        body,
			handler:     failing,
			want:        settlement{nacked: true, requeue: true},
			wantHandled: true,
		},
		{
			name:        "redelivered failure is dropped",
			body:        body,
			redelivered: true,
			handler:     failing,
			want:        settlement{nacked: true},
			wantHandled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack := &recordingAcknowledger{}
			handled := false

			handler := func(ctx context.Context, got event.Event) error {
				handled = true

				assert.Equal(t, evt.ID, got.ID)

				return tt.handler(ctx, got)
			}

			d := amqp.Delivery{
				Acknowledger: ack,
				DeliveryTag:  1,
				RoutingKey:   "booking.created",
				Redelivered:  tt.redelivered,
				Body:         tt.body,
			}

			(&rabbitClientImpl{}).handleDelivery(context.Background(), handler, d)

			assert.Equal(t, tt.want, ack.got)
			assert.Equal(t, tt.wantHandled, handled)
		})
	}
}
