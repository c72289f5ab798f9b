package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"spacebook/config"
	"spacebook/infras/otel"
	"spacebook/internal/domains/booking/model"
	"spacebook/internal/domains/booking/model/dto"
	"spacebook/internal/domains/booking/repository"
	paymentDto "spacebook/internal/domains/payment/model/dto"
	paymentService "spacebook/internal/domains/payment/service"
	spaceModel "spacebook/internal/domains/space/model"
	spaceRepo "spacebook/internal/domains/space/repository"
	"spacebook/shared"
	"spacebook/shared/cache"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	"spacebook/shared/event"
	"spacebook/shared/failure"
	"spacebook/shared/identity"
	"spacebook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	msgSpaceNotFound   = "space not found"
	msgBookingNotFound = "booking not found"
	msgStatusChanged   = "booking status changed, reload and try again"
)

type Booking interface {
	Create(ctx context.Context, userID string, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Checkout(ctx context.Context, userID string, req dto.CheckoutRequest) (dto.CheckoutResponse, error)
	IsRangeAvailable(ctx context.Context, spaceID string, start, end time.Time) (bool, error)
	Availability(ctx context.Context, spaceID string, query dto.RangeQuery) (dto.AvailabilityResponse, error)
	BookedDays(ctx context.Context, spaceID string, query dto.HorizonQuery) (dto.BookedDaysResponse, error)
	Quote(ctx context.Context, spaceID string, query dto.RangeQuery) (paymentDto.QuoteResponse, error)
	GetMine(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetUserBookingsResponse, error)
	Cancel(ctx context.Context, caller identity.Identity, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, actor, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	spaceRepo spaceRepo.Space
	payment   paymentService.Payment
	publisher event.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(
	repo repository.Booking,
	spaceRepo spaceRepo.Space,
	payment paymentService.Payment,
	publisher event.Publisher,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:      repo,
		spaceRepo: spaceRepo,
		payment:   payment,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, userID string, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	r, err := req.Range()
	if err != nil {
		return res, err
	}

	booking, err := s.create(ctx, userID, req, r, model.StatusPending)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Checkout charges the simulated payment, then writes a confirmed booking.
// The charge is voided when the booking cannot be written.
func (s *serviceImpl) Checkout(ctx context.Context, userID string, req dto.CheckoutRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	r, err := req.Range()
	if err != nil {
		return res, err
	}

	space, err := s.findSpace(ctx, req.SpaceID)
	if err != nil {
		return res, err
	}

	// fail fast so a conflicting request is not charged and voided
	active, err := s.repo.GetActiveInRange(ctx, req.SpaceID, &r)
	if err != nil {
		log.Error().Err(err).Msg("failed to load active bookings")

		return res, fmt.Errorf("failed to load active bookings: %w", err)
	}

	if !model.IsRangeAvailable(active, r) {
		return res, failure.ErrRangeUnavailable
	}

	res.Quote = s.payment.Quote(space.PricePerHour, r.Days())

	res.Receipt, err = s.payment.Charge(ctx, req.Payment, res.Quote.TotalAmount)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	booking, err := s.create(ctx, userID, req.CreateBookingRequest, r, model.StatusConfirmed)
	if err != nil {
		s.payment.Void(ctx, res.Receipt)

		return dto.CheckoutResponse{}, err
	}

	res.Booking.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) create(ctx context.Context, userID string, req dto.CreateBookingRequest, r model.DateRange, status string) (model.Booking, error) {
	if uuid.Validate(req.SpaceID) != nil {
		return model.Booking{}, failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	}

	booking := req.ToModel(userID, status, r)

	err := s.repo.InsertIfAvailable(ctx, booking)

	switch {
	case errors.Is(err, repository.ErrOverlap):
		log.Info().Str("space_id", req.SpaceID).Str("range", r.String()).Msg("booking range unavailable")

		return booking, failure.ErrRangeUnavailable
	case errors.Is(err, repository.ErrSpaceNotFound):
		return booking, failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Msg("failed to create booking")

		return booking, fmt.Errorf("failed to create booking: %w", err)
	}

	s.afterWrite(ctx, booking, model.EventCreated, model.CreatedPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		SpaceID:   booking.SpaceID,
		StartDate: booking.StartDate.Format(constant.DayFormat),
		EndDate:   booking.EndDate.Format(constant.DayFormat),
		Status:    booking.Status,
	})

	return booking, nil
}

// afterWrite drops the caches derived from the booking's space and owner
// before the caller returns, so no later read serves the old days. The event
// is published off the request path.
func (s *serviceImpl) afterWrite(ctx context.Context, booking model.Booking, eventType string, payload any) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheBookedDays, booking.SpaceID)); err != nil {
		log.Error().Err(err).Msg("failed to delete booked days cache")
	}

	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(model.CacheMine, booking.UserID))

	go func() {
		c := context.WithoutCancel(ctx)

		evt, err := event.New(eventType, booking.SpaceID, payload)
		if err != nil {
			log.Error().Err(err).Msg("failed to build booking event")

			return
		}

		if err := s.publisher.Publish(c, evt); err != nil {
			log.Error().Err(err).Str("type", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) findSpace(ctx context.Context, spaceID string) (spaceModel.Space, error) {
	if uuid.Validate(spaceID) != nil {
		return spaceModel.Space{}, failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	}

	space, err := s.spaceRepo.Get(ctx, shared.FilterByID(spaceID, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get space")

		return space, fmt.Errorf("failed to get space: %w", err)
	}

	if space.ID == constant.Empty {
		return space, failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	}

	return space, nil
}

func (s *serviceImpl) ensureSpace(ctx context.Context, spaceID string) error {
	if uuid.Validate(spaceID) != nil {
		return failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	}

	exist, err := s.spaceRepo.Exist(ctx, shared.FilterByID(spaceID, spaceModel.FieldID, spaceModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if space exists")

		return fmt.Errorf("failed to check if space exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgSpaceNotFound) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) IsRangeAvailable(ctx context.Context, spaceID string, start, end time.Time) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRangeAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	r, err := model.NewDateRange(start, end)
	if err != nil {
		return false, failure.BadRequest(err) // nolint:wrapcheck
	}

	if err = s.ensureSpace(ctx, spaceID); err != nil {
		return false, err
	}

	active, err := s.repo.GetActiveInRange(ctx, spaceID, &r)
	if err != nil {
		log.Error().Err(err).Msg("failed to load active bookings")

		return false, fmt.Errorf("failed to load active bookings: %w", err)
	}

	return model.IsRangeAvailable(active, r), nil
}

func (s *serviceImpl) Availability(ctx context.Context, spaceID string, query dto.RangeQuery) (res dto.AvailabilityResponse, err error) {
	r, err := query.Range()
	if err != nil {
		return res, err
	}

	available, err := s.IsRangeAvailable(ctx, spaceID, r.Start, r.End)
	if err != nil {
		return res, err
	}

	return dto.AvailabilityResponse{
		SpaceID:   spaceID,
		StartDate: r.Start.Format(constant.DayFormat),
		EndDate:   r.End.Format(constant.DayFormat),
		Available: available,
	}, nil
}

// BookedDays caches every booked day of the space and clips to the horizon on the way out.
func (s *serviceImpl) BookedDays(ctx context.Context, spaceID string, query dto.HorizonQuery) (res dto.BookedDaysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BookedDays")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	horizon, err := query.Horizon()
	if err != nil {
		return res, err
	}

	var days []time.Time

	cacheKey := shared.BuildCacheKey(model.CacheBookedDays, spaceID)

	if err = s.cache.Get(ctx, cacheKey, &days); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booked days")
	} else {
		if err = s.ensureSpace(ctx, spaceID); err != nil {
			return res, err
		}

		active, err := s.repo.GetActiveInRange(ctx, spaceID, nil)
		if err != nil {
			log.Error().Err(err).Msg("failed to load active bookings")

			return res, fmt.Errorf("failed to load active bookings: %w", err)
		}

		days = model.BookedDays(active, nil)

		// in-line: an async refill could land after a newer write's Delete
		if err := s.cache.Save(ctx, cacheKey, days, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booked days to cache")
		}
	}

	if horizon != nil {
		clipped := make([]time.Time, 0, len(days))

		for _, day := range days {
			if horizon.Contains(day) {
				clipped = append(clipped, day)
			}
		}

		days = clipped
	}

	res.FromDays(spaceID, days)

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, spaceID string, query dto.RangeQuery) (res paymentDto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	r, err := query.Range()
	if err != nil {
		return res, err
	}

	space, err := s.findSpace(ctx, spaceID)
	if err != nil {
		return res, err
	}

	return s.payment.Quote(space.PricePerHour, r.Days()), nil
}

func (s *serviceImpl) GetMine(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetUserBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSortBy(model.TableName, model.SortableFields...)

	filter := shared.FilterByID(userID, model.FieldUserID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(model.CacheMine, userID), params, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user bookings")

		return res, nil
	}

	total, err := s.repo.CountWithSpace(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count user bookings")

		return res, fmt.Errorf("failed to count user bookings: %w", err)
	}

	models, err := s.repo.GetAllWithSpace(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) findBooking(ctx context.Context, id string) (model.Booking, error) {
	if uuid.Validate(id) != nil {
		return model.Booking{}, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	return booking, nil
}

// Cancel is allowed to the owner of the booking and to admins.
func (s *serviceImpl) Cancel(ctx context.Context, caller identity.Identity, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.UserID != caller.UserID && !caller.IsAdmin() {
		return res, failure.Forbidden("you can only cancel your own bookings") // nolint:wrapcheck
	}

	if booking.Status == model.StatusCancelled {
		res.FromModel(booking)

		return res, nil
	}

	if booking, err = s.transition(ctx, booking, model.StatusCancelled, caller.UserID); err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, actor, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.findBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != req.Status {
		if !model.CanTransition(booking.Status, req.Status) {
			return res, failure.BadRequestFromString(fmt.Sprintf("cannot change status from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
		}

		if booking, err = s.transition(ctx, booking, req.Status, actor); err != nil {
			return res, err
		}
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, to, actor string) (model.Booking, error) {
	from := booking.Status
	now := timezone.Now()

	// guarded on the current status so a concurrent change is not overwritten
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: booking.ID, Table: model.TableName},
			gDto.Filter{ArgName: "current_status", Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: from, Table: model.TableName},
		},
	}

	fields := map[string]any{
		model.FieldStatus:        to,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: actor,
	}

	affected, err := s.repo.UpdateCount(ctx, fields, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return booking, fmt.Errorf("failed to update booking status: %w", err)
	}

	if affected == 0 {
		log.Warn().Str("booking_id", booking.ID).Str("expected", from).Str("to", to).Msg("booking status changed concurrently")

		return booking, failure.Conflict(msgStatusChanged) // nolint:wrapcheck
	}

	booking.Status = to
	booking.ModifiedAt = now
	booking.ModifiedBy = actor

	s.afterWrite(ctx, booking, model.EventStatusChanged, model.StatusChangedPayload{
		BookingID: booking.ID,
		Owner:     booking.UserID,
		SpaceID:   booking.SpaceID,
		From:      from,
		To:        to,
		ChangedBy: actor,
	})

	return booking, nil
}
