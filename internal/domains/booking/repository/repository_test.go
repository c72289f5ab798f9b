package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	otelMocks "spacebook/infras/otel/mocks"
	"spacebook/infras/postgres"
	"spacebook/internal/domains/booking/model"
	"spacebook/internal/domains/booking/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveOverlapFilter(t *testing.T) {
	r, err := model.NewDateRange(
		time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	filter := repository.ActiveOverlapFilter("space-1", r)
	where, args := filter.GetWhereClause()

	assert.Equal(t,
		"(bookings.space_id = :space_id AND bookings.start_date <= :range_end AND bookings.end_date >= :range_start AND bookings.status IN (:status_0, :status_1))",
		where,
	)
	assert.Equal(t, map[string]any{
		"space_id":    "space-1",
		"range_end":   "2024-06-14",
		"range_start": "2024-06-12",
		"status_0":    model.StatusPending,
		"status_1":    model.StatusConfirmed,
	}, args)
}

func TestInsertIfAvailable(t *testing.T) {
	var (
		lockSpace = regexp.QuoteMeta("SELECT spaces.id FROM spaces WHERE (spaces.id = $1) FOR UPDATE")
		overlap   = regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM bookings WHERE (bookings.space_id = $1")
		insert    = regexp.QuoteMeta("INSERT INTO bookings (id, user_id, space_id, start_date, end_date, status")
	)

	booking := model.Booking{
		ID:        "b-1",
		UserID:    "u-1",
		SpaceID:   "s-1",
		StartDate: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC),
		Status:    model.StatusPending,
	}

	spaceRow := func() *sqlmock.Rows { return sqlmock.NewRows([]string{"id"}).AddRow("s-1") }
	existsRow := func(taken bool) *sqlmock.Rows { return sqlmock.NewRows([]string{"exists"}).AddRow(taken) }

	tests := []struct {
		name    string
		expect  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "free range is inserted",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectPrepare(lockSpace).ExpectQuery().WithArgs("s-1").WillReturnRows(spaceRow())
				mock.ExpectPrepare(overlap).ExpectQuery().
					WithArgs("s-1", "2024-06-14", "2024-06-12", model.StatusPending, model.StatusConfirmed).
					WillReturnRows(existsRow(false))
				mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "missing space",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectPrepare(lockSpace).ExpectQuery().WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectRollback()
			},
			wantErr: repository.ErrSpaceNotFound,
		},
		{
			name: "overlapping active booking",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectPrepare(lockSpace).ExpectQuery().WillReturnRows(spaceRow())
				mock.ExpectPrepare(overlap).ExpectQuery().WillReturnRows(existsRow(true))
				mock.ExpectRollback()
			},
			wantErr: repository.ErrOverlap,
		},
		{
			name: "exclusion constraint",
			expect: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectPrepare(lockSpace).ExpectQuery().WillReturnRows(spaceRow())
				mock.ExpectPrepare(overlap).ExpectQuery().WillReturnRows(existsRow(false))
				mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: "23P01"})
				mock.ExpectRollback()
			},
			wantErr: repository.ErrOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			t.Cleanup(func() { db.Close() })

			conn := sqlx.NewDb(db, "postgres")
			repo := repository.New(&postgres.Connection{Read: conn, Write: conn}, &otelMocks.Otel{})

			tt.expect(mock)

			err = repo.InsertIfAvailable(context.Background(), booking)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
