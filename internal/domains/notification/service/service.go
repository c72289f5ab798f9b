package service

import (
	"context"
	"fmt"

	"spacebook/infras/otel"
	bookingModel "spacebook/internal/domains/booking/model"
	userModel "spacebook/internal/domains/user/model"
	userRepo "spacebook/internal/domains/user/repository"
	"spacebook/shared"
	"spacebook/shared/constant"
	"spacebook/shared/event"

	"github.com/rs/zerolog/log"
)

// Notification turns booking events into user notices. Delivery is a
// structured log line; there is no mail or push transport.
type Notification interface {
	Handle(ctx context.Context, evt event.Event) error
}

type serviceImpl struct {
	userRepo userRepo.User
	otel     otel.Otel
}

func New(userRepo userRepo.User, otel otel.Otel) Notification {
	return &serviceImpl{
		userRepo: userRepo,
		otel:     otel,
	}
}

func (s *serviceImpl) Handle(ctx context.Context, evt event.Event) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Handle")
	defer scope.End()
	defer func() {
		scope.TraceIfError(err)
	}()

	scope.SetAttribute("event.type", evt.Type)

	switch evt.Type {
	case bookingModel.EventCreated:
		return s.bookingCreated(ctx, evt)
	case bookingModel.EventStatusChanged:
		return s.statusChanged(ctx, evt)
	default:
		log.Debug().Str("type", evt.Type).Str("id", evt.ID).Msg("Ignoring event")

		return nil
	}
}

func (s *serviceImpl) bookingCreated(ctx context.Context, evt event.Event) error {
	payload := bookingModel.CreatedPayload{}

	if err := evt.Decode(&payload); err != nil {
		// undecodable payloads are acked and dropped
		log.Error().Err(err).Str("id", evt.ID).Msg("Dropping malformed booking event")

		return nil
	}

	email, err := s.recipient(ctx, payload.UserID)
	if err != nil {
		return err
	}

	log.Info().
		Str("to", email).
		Str("booking_id", payload.BookingID).
		Str("space_id", payload.SpaceID).
		Str("start_date", payload.StartDate).
		Str("end_date", payload.EndDate).
		Str("status", payload.Status).
		Msg("Booking received")

	return nil
}

func (s *serviceImpl) statusChanged(ctx context.Context, evt event.Event) error {
	payload := bookingModel.StatusChangedPayload{}

	if err := evt.Decode(&payload); err != nil {
		log.Error().Err(err).Str("id", evt.ID).Msg("Dropping malformed booking event")

		return nil
	}

	email := constant.Empty

	if payload.Owner != constant.Empty {
		var err error

		if email, err = s.recipient(ctx, payload.Owner); err != nil {
			return err
		}
	}

	log.Info().
		Str("to", email).
		Str("booking_id", payload.BookingID).
		Str("from", payload.From).
		Str("to_status", payload.To).
		Str("changed_by", payload.ChangedBy).
		Msg("Booking status changed")

	return nil
}

// recipient resolves the email of a user. Unknown users resolve to an empty
// address so a deleted account does not block the queue.
func (s *serviceImpl) recipient(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName), userModel.FieldEmail)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to look up notification recipient")

		return constant.Empty, fmt.Errorf("failed to look up notification recipient: %w", err)
	}

	return user.Email, nil
}
