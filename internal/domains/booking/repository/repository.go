package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"spacebook/infras/otel"
	"spacebook/infras/postgres"
	"spacebook/internal/domains/booking/model"
	spaceModel "spacebook/internal/domains/space/model"
	"spacebook/shared"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	gRepo "spacebook/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

var (
	ErrOverlap       = errors.New("booking overlaps an active booking")
	ErrSpaceNotFound = errors.New("space not found")
)

type Booking interface {
	// InsertIfAvailable writes booking only if no active booking of the same
	// space shares a day with it. Returns ErrOverlap or ErrSpaceNotFound.
	InsertIfAvailable(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetActiveInRange(ctx context.Context, spaceID string, window *model.DateRange) ([]model.Booking, error)
	GetAllWithSpace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithSpace, error)
	CountWithSpace(ctx context.Context, filter gDto.FilterGroup) (int, error)
	// UpdateCount reports the rows matched, so a status guard that lost a race shows up as 0.
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	withSpace gRepo.Repository[model.BookingWithSpace]
	spaces    gRepo.Repository[spaceModel.Space]
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		withSpace:  gRepo.NewRepository[model.BookingWithSpace](model.EntityName, model.TableName, model.FieldID, db, otel),
		spaces:     gRepo.NewRepository[spaceModel.Space](spaceModel.EntityName, spaceModel.TableName, spaceModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// ActiveOverlapFilter matches active bookings of spaceID sharing a day with r.
func ActiveOverlapFilter(spaceID string, r model.DateRange) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldSpaceID, Operator: gDto.FilterOperatorEq, Value: spaceID, Table: model.TableName},
			gDto.Filter{
				ArgName:  "range_end",
				Field:    model.FieldStartDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    r.End.Format(constant.DayFormat),
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "range_start",
				Field:    model.FieldEndDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    r.Start.Format(constant.DayFormat),
				Table:    model.TableName,
			},
			activeFilter(),
		},
	}
}

func activeFilter() gDto.Filter {
	return gDto.Filter{Field: model.FieldStatus, Operator: gDto.FilterOperatorIn, Value: model.ActiveStatuses, Table: model.TableName}
}

func (r *repositoryImpl) InsertIfAvailable(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertIfAvailable")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"space_id": booking.SpaceID,
		"range":    booking.Range().String(),
	})

	err = r.db.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		// concurrent inserts for one space queue on this row lock
		space, err := r.spaces.GetForUpdateTx(ctx, tx, shared.FilterByID(booking.SpaceID, spaceModel.FieldID, spaceModel.TableName), spaceModel.FieldID)
		if err != nil {
			return err
		}

		if space.ID == constant.Empty {
			return ErrSpaceNotFound
		}

		taken, err := r.ExistTx(ctx, tx, ActiveOverlapFilter(booking.SpaceID, booking.Range()))
		if err != nil {
			return err
		}

		if taken {
			return ErrOverlap
		}

		return r.InsertTx(ctx, tx, booking)
	})

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeExclusionViolation {
		log.Warn().Str("space_id", booking.SpaceID).Msg("booking rejected by exclusion constraint")

		return ErrOverlap
	}

	return err //nolint:wrapcheck
}

func (r *repositoryImpl) GetActiveInRange(ctx context.Context, spaceID string, window *model.DateRange) (bookings []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetActiveInRange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldSpaceID, Operator: gDto.FilterOperatorEq, Value: spaceID, Table: model.TableName},
			activeFilter(),
		},
	}

	if window != nil {
		filter = ActiveOverlapFilter(spaceID, *window)
	}

	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldStartDate,
		SortDir: gDto.SortDirAsc,
	}

	bookings, err = r.GetAll(ctx, params, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	return bookings, nil
}

func (r *repositoryImpl) GetAllWithSpace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithSpace, error) {
	return r.withSpace.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) CountWithSpace(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.withSpace.Count(ctx, filter) //nolint:wrapcheck
}
