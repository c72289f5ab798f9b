package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"spacebook/config"
	otelMocks "spacebook/infras/otel/mocks"
	bookingMocks "spacebook/internal/domains/booking/mocks"
	"spacebook/internal/domains/booking/model"
	"spacebook/internal/domains/booking/model/dto"
	"spacebook/internal/domains/booking/repository"
	"spacebook/internal/domains/booking/service"
	paymentMocks "spacebook/internal/domains/payment/mocks"
	paymentDto "spacebook/internal/domains/payment/model/dto"
	spaceMocks "spacebook/internal/domains/space/mocks"
	spaceModel "spacebook/internal/domains/space/model"
	cacheMocks "spacebook/shared/cache/mocks"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	"spacebook/shared/event"
	eventMocks "spacebook/shared/event/mocks"
	"spacebook/shared/failure"
	"spacebook/shared/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	spaceRepo *spaceMocks.MockSpace
	payment   *paymentMocks.MockPayment
	publisher *eventMocks.MockPublisher
	cache     *cacheMocks.MockRedisCache
	otel      *otelMocks.Otel
	svc       service.Booking
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		spaceRepo: spaceMocks.NewMockSpace(ctrl),
		payment:   paymentMocks.NewMockPayment(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		otel:      &otelMocks.Otel{},
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.spaceRepo, f.payment, f.publisher, cfg, f.cache, f.otel)

	return f
}

// expectAfterWrite allows the asynchronous cache invalidation and event publishing.
func (f *fixture) expectAfterWrite() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func day(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestBookingService_Create(t *testing.T) {
	spaceID := uuid.NewString()

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f *fixture)
		wantCode  int
		wantErr   error
	}{
		{
			name: "successful creation is pending",
			req:  dto.CreateBookingRequest{SpaceID: spaceID, StartDate: "2024-06-13", EndDate: "2024-06-15"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					InsertIfAvailable(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, model.StatusPending, booking.Status)
						assert.Equal(t, "user-1", booking.UserID)
						assert.Equal(t, day("2024-06-13"), booking.StartDate)
						assert.Equal(t, day("2024-06-15"), booking.EndDate)

						return nil
					})
				f.expectAfterWrite()
			},
		},
		{
			name: "overlapping range",
			req:  dto.CreateBookingRequest{SpaceID: spaceID, StartDate: "2024-06-12", EndDate: "2024-06-14"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					InsertIfAvailable(gomock.Any(), gomock.Any()).
					Return(repository.ErrOverlap)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  failure.ErrRangeUnavailable,
		},
		{
			name: "unknown space",
			req:  dto.CreateBookingRequest{SpaceID: spaceID, StartDate: "2024-06-12", EndDate: "2024-06-14"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					InsertIfAvailable(gomock.Any(), gomock.Any()).
					Return(repository.ErrSpaceNotFound)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:      "start after end",
			req:       dto.CreateBookingRequest{SpaceID: spaceID, StartDate: "2024-06-14", EndDate: "2024-06-12"},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed space id",
			req:       dto.CreateBookingRequest{SpaceID: "not-a-uuid", StartDate: "2024-06-12", EndDate: "2024-06-14"},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name: "database error",
			req:  dto.CreateBookingRequest{SpaceID: spaceID, StartDate: "2024-06-12", EndDate: "2024-06-14"},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					InsertIfAvailable(gomock.Any(), gomock.Any()).
					Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), "user-1", tt.req)

			time.Sleep(10 * time.Millisecond)

			scope := f.otel.Scope(constant.OtelServiceScopeName + ".Create")
			require.NotNil(t, scope)
			assert.True(t, scope.Ended)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, []error{err}, scope.Errors)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				return
			}

			require.NoError(t, err)
			assert.Empty(t, scope.Errors)
			assert.Equal(t, model.StatusPending, res.Status)
			assert.Equal(t, 3, res.Days)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestBookingService_IsRangeAvailable(t *testing.T) {
	spaceID := uuid.NewString()
	existing := []model.Booking{
		{ID: "b1", SpaceID: spaceID, StartDate: day("2024-06-10"), EndDate: day("2024-06-12"), Status: model.StatusConfirmed},
	}

	tests := []struct {
		name      string
		start     string
		end       string
		available bool
	}{
		{name: "shares the last booked day", start: "2024-06-12", end: "2024-06-14", available: false},
		{name: "starts the day after", start: "2024-06-13", end: "2024-06-15", available: true},
		{name: "equal", start: "2024-06-10", end: "2024-06-12", available: false},
		{name: "contained", start: "2024-06-11", end: "2024-06-11", available: false},
		{name: "containing", start: "2024-06-01", end: "2024-06-30", available: false},
		{name: "overlapping start", start: "2024-06-05", end: "2024-06-10", available: false},
		{name: "strictly before", start: "2024-06-01", end: "2024-06-09", available: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.spaceRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			f.repo.EXPECT().GetActiveInRange(gomock.Any(), spaceID, gomock.Any()).Return(existing, nil)

			available, err := f.svc.IsRangeAvailable(context.Background(), spaceID, day(tt.start), day(tt.end))

			require.NoError(t, err)
			assert.Equal(t, tt.available, available)
		})
	}
}

func TestBookingService_IsRangeAvailable_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.IsRangeAvailable(context.Background(), uuid.NewString(), day("2024-06-12"), day("2024-06-10"))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	f.spaceRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err = f.svc.IsRangeAvailable(context.Background(), uuid.NewString(), day("2024-06-10"), day("2024-06-12"))
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

// memoryRepo serialises InsertIfAvailable the way the row lock does in Postgres.
type memoryRepo struct {
	repository.Booking

	mu       sync.Mutex
	bookings []model.Booking
}

func (m *memoryRepo) InsertIfAvailable(_ context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// widen the window between check and write
	time.Sleep(time.Millisecond)

	if !model.IsRangeAvailable(m.bookings, booking.Range()) {
		return repository.ErrOverlap
	}

	m.bookings = append(m.bookings, booking)

	return nil
}

func TestBookingService_Create_Concurrent(t *testing.T) {
	ctrl := gomock.NewController(t)

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	repo := &memoryRepo{}
	svc := service.New(repo, spaceMocks.NewMockSpace(ctrl), paymentMocks.NewMockPayment(ctrl), event.NewNoopPublisher(), &config.Config{}, cache, otelMocks.NewOtel())

	spaceID := uuid.NewString()
	req := dto.CreateBookingRequest{SpaceID: spaceID, StartDate: "2024-07-01", EndDate: "2024-07-02"}

	const attempts = 8

	var (
		wg          sync.WaitGroup
		mu          sync.Mutex
		succeeded   int
		unavailable int
	)

	for i := range attempts {
		wg.Add(1)

		go func(user int) {
			defer wg.Done()

			_, err := svc.Create(context.Background(), uuid.NewString(), req)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, failure.ErrRangeUnavailable):
				unavailable++
			default:
				t.Errorf("attempt %d: unexpected error %v", user, err)
			}
		}(i)
	}

	wg.Wait()
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, unavailable)
	assert.Len(t, repo.bookings, 1)
}

func TestBookingService_Checkout(t *testing.T) {
	spaceID := uuid.NewString()
	space := spaceModel.Space{ID: spaceID, PricePerHour: 10}
	quote := paymentDto.QuoteResponse{Days: 2, TotalHours: 48, PricePerHour: 10, TotalAmount: 480}
	receipt := paymentDto.Receipt{TransactionID: "tx-1", Method: paymentDto.MethodPaypal, Amount: 480}

	req := dto.CheckoutRequest{
		CreateBookingRequest: dto.CreateBookingRequest{SpaceID: spaceID, StartDate: "2024-07-01", EndDate: "2024-07-02"},
		Payment:              paymentDto.ChargeRequest{Method: paymentDto.MethodPaypal, PaypalEmail: "jane@example.com"},
	}

	t.Run("charges and confirms", func(t *testing.T) {
		f := newFixture(t)

		f.spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(space, nil)
		f.repo.EXPECT().GetActiveInRange(gomock.Any(), spaceID, gomock.Any()).Return(nil, nil)
		f.payment.EXPECT().Quote(10.0, 2).Return(quote)
		f.payment.EXPECT().Charge(gomock.Any(), req.Payment, 480.0).Return(receipt, nil)
		f.repo.EXPECT().
			InsertIfAvailable(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, model.StatusConfirmed, booking.Status)

				return nil
			})
		f.expectAfterWrite()

		res, err := f.svc.Checkout(context.Background(), "user-1", req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Booking.Status)
		assert.Equal(t, "tx-1", res.Receipt.TransactionID)
		assert.InDelta(t, 480.0, res.Quote.TotalAmount, 0.001)
	})

	t.Run("conflict is rejected before charging", func(t *testing.T) {
		f := newFixture(t)

		f.spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(space, nil)
		f.repo.EXPECT().GetActiveInRange(gomock.Any(), spaceID, gomock.Any()).Return([]model.Booking{
			{StartDate: day("2024-07-02"), EndDate: day("2024-07-04"), Status: model.StatusPending},
		}, nil)

		_, err := f.svc.Checkout(context.Background(), "user-1", req)

		assert.ErrorIs(t, err, failure.ErrRangeUnavailable)
	})

	t.Run("declined payment writes nothing", func(t *testing.T) {
		f := newFixture(t)

		f.spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(space, nil)
		f.repo.EXPECT().GetActiveInRange(gomock.Any(), spaceID, gomock.Any()).Return(nil, nil)
		f.payment.EXPECT().Quote(10.0, 2).Return(quote)
		f.payment.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any()).Return(paymentDto.Receipt{}, failure.PaymentRequired("payment declined"))

		_, err := f.svc.Checkout(context.Background(), "user-1", req)

		require.Error(t, err)
		assert.Equal(t, http.StatusPaymentRequired, failure.GetCode(err))
	})

	t.Run("lost race voids the charge", func(t *testing.T) {
		f := newFixture(t)

		f.spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(space, nil)
		f.repo.EXPECT().GetActiveInRange(gomock.Any(), spaceID, gomock.Any()).Return(nil, nil)
		f.payment.EXPECT().Quote(10.0, 2).Return(quote)
		f.payment.EXPECT().Charge(gomock.Any(), gomock.Any(), gomock.Any()).Return(receipt, nil)
		f.repo.EXPECT().InsertIfAvailable(gomock.Any(), gomock.Any()).Return(repository.ErrOverlap)
		f.payment.EXPECT().Void(gomock.Any(), receipt)

		res, err := f.svc.Checkout(context.Background(), "user-1", req)

		assert.ErrorIs(t, err, failure.ErrRangeUnavailable)
		assert.Empty(t, res.Receipt.TransactionID)
	})

	t.Run("unknown space", func(t *testing.T) {
		f := newFixture(t)

		f.spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{}, nil)

		_, err := f.svc.Checkout(context.Background(), "user-1", req)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_BookedDays(t *testing.T) {
	spaceID := uuid.NewString()
	active := []model.Booking{
		{StartDate: day("2024-06-10"), EndDate: day("2024-06-12"), Status: model.StatusPending},
		{StartDate: day("2024-06-20"), EndDate: day("2024-06-20"), Status: model.StatusConfirmed},
	}

	t.Run("cache miss expands active bookings", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.spaceRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetActiveInRange(gomock.Any(), spaceID, nil).Return(active, nil)
		// refilled before returning
		f.cache.EXPECT().Save(gomock.Any(), model.CacheBookedDays+":"+spaceID, gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.BookedDays(context.Background(), spaceID, dto.HorizonQuery{})

		require.NoError(t, err)
		assert.Equal(t, []string{"2024-06-10", "2024-06-11", "2024-06-12", "2024-06-20"}, res.Days)
	})

	t.Run("horizon clips the days", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.spaceRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetActiveInRange(gomock.Any(), spaceID, nil).Return(active, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := f.svc.BookedDays(context.Background(), spaceID, dto.HorizonQuery{From: "2024-06-11", To: "2024-06-15"})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, []string{"2024-06-11", "2024-06-12"}, res.Days)
	})

	t.Run("unknown space", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.spaceRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.BookedDays(context.Background(), spaceID, dto.HorizonQuery{})

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetMine(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().CountWithSpace(gomock.Any(), gomock.Any()).Return(1, nil)
	f.repo.EXPECT().
		GetAllWithSpace(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithSpace, error) {
			assert.Equal(t, "bookings.created_at", params.SortBy)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(bookings.user_id = :user_id)", where)
			assert.Equal(t, "user-1", args["user_id"])

			return []model.BookingWithSpace{{
				Booking:   model.Booking{ID: "b1", UserID: "user-1", StartDate: day("2024-06-10"), EndDate: day("2024-06-11"), Status: model.StatusPending},
				SpaceName: "Downtown Hub",
			}}, nil
		})
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.GetMine(context.Background(), "user-1", gDto.QueryParams{Page: 1, Limit: 10})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "Downtown Hub", res.Bookings[0].Space.Name)
	assert.Equal(t, "2024-06-10", res.Bookings[0].StartDate)
	assert.Equal(t, 1, res.TotalData)
}

func TestBookingService_Cancel(t *testing.T) {
	id := uuid.NewString()
	booking := model.Booking{ID: id, UserID: "owner", SpaceID: uuid.NewString(), StartDate: day("2024-06-10"), EndDate: day("2024-06-11"), Status: model.StatusPending}

	tests := []struct {
		name      string
		caller    identity.Identity
		current   model.Booking
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name:    "owner cancels",
			caller:  identity.Identity{UserID: "owner", Role: "user"},
			current: booking,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.expectAfterWrite()
			},
		},
		{
			name:    "admin cancels",
			caller:  identity.Identity{UserID: "admin", Role: "admin"},
			current: booking,
			setupMock: func(f *fixture) {
				f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.expectAfterWrite()
			},
		},
		{
			name:      "someone else",
			caller:    identity.Identity{UserID: "intruder", Role: "user"},
			current:   booking,
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusForbidden,
		},
		{
			name:      "missing booking",
			caller:    identity.Identity{UserID: "owner", Role: "user"},
			current:   model.Booking{},
			setupMock: func(_ *fixture) {},
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.current, nil)
			tt.setupMock(f)

			res, err := f.svc.Cancel(context.Background(), tt.caller, id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, model.StatusCancelled, res.Status)
			assert.Equal(t, tt.caller.UserID, res.ModifiedBy)
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	id := uuid.NewString()

	t.Run("pending to confirmed", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id, Status: model.StatusPending}, nil)
		f.repo.EXPECT().
			UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StatusConfirmed, fields[model.FieldStatus])

				_, args := filter.GetWhereClause()
				assert.Equal(t, model.StatusPending, args["current_status"])

				return 1, nil
			})
		f.expectAfterWrite()

		res, err := f.svc.UpdateStatus(context.Background(), "admin", id, dto.UpdateStatusRequest{Status: model.StatusConfirmed})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
	})

	t.Run("status changed concurrently", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id, Status: model.StatusPending}, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.UpdateStatus(context.Background(), "admin", id, dto.UpdateStatusRequest{Status: model.StatusConfirmed})

		time.Sleep(10 * time.Millisecond)

		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Equal(t, "booking status changed, reload and try again", err.Error())
	})

	t.Run("update error", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id, Status: model.StatusPending}, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset"))

		_, err := f.svc.UpdateStatus(context.Background(), "admin", id, dto.UpdateStatusRequest{Status: model.StatusConfirmed})

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("caches dropped before returning", func(t *testing.T) {
		f := newFixture(t)

		spaceID := uuid.NewString()

		var daysDropped, mineCleared bool

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id, SpaceID: spaceID, UserID: "owner", Status: model.StatusPending}, nil)
		f.repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.cache.EXPECT().Delete(gomock.Any(), model.CacheBookedDays+":"+spaceID).
			DoAndReturn(func(context.Context, string) error {
				daysDropped = true

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), model.CacheMine+":owner*").
			DoAndReturn(func(context.Context, string) error {
				mineCleared = true

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		_, err := f.svc.UpdateStatus(context.Background(), "admin", id, dto.UpdateStatusRequest{Status: model.StatusConfirmed})

		require.NoError(t, err)
		assert.True(t, daysDropped)
		assert.True(t, mineCleared)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("cancelled cannot be revived", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id, Status: model.StatusCancelled}, nil)

		_, err := f.svc.UpdateStatus(context.Background(), "admin", id, dto.UpdateStatusRequest{Status: model.StatusConfirmed})

		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Equal(t, "cannot change status from cancelled to confirmed", err.Error())
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{ID: id, Status: model.StatusConfirmed}, nil)

		res, err := f.svc.UpdateStatus(context.Background(), "admin", id, dto.UpdateStatusRequest{Status: model.StatusConfirmed})

		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, res.Status)
	})
}

func TestBookingService_Quote(t *testing.T) {
	f := newFixture(t)
	spaceID := uuid.NewString()

	f.spaceRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(spaceModel.Space{ID: spaceID, PricePerHour: 5}, nil)
	f.payment.EXPECT().Quote(5.0, 3).Return(paymentDto.QuoteResponse{Days: 3, TotalHours: 72, PricePerHour: 5, TotalAmount: 360})

	res, err := f.svc.Quote(context.Background(), spaceID, dto.RangeQuery{StartDate: "2024-06-10", EndDate: "2024-06-12"})

	require.NoError(t, err)
	assert.Equal(t, 72, res.TotalHours)
}
