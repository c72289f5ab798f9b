package model_test

import (
	"testing"
	"time"

	"spacebook/internal/domains/booking/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return t
}

func dateRange(t *testing.T, start, end string) model.DateRange {
	t.Helper()

	r, err := model.NewDateRange(day(start), day(end))
	require.NoError(t, err)

	return r
}

func TestNewDateRange(t *testing.T) {
	_, err := model.NewDateRange(day("2024-06-12"), day("2024-06-10"))
	assert.ErrorIs(t, err, model.ErrInvalidRange)

	r, err := model.NewDateRange(day("2024-06-10"), day("2024-06-10"))
	require.NoError(t, err)
	assert.Equal(t, 1, r.Days())

	jakarta := time.FixedZone("WIB", 7*60*60)
	r, err = model.NewDateRange(
		time.Date(2024, 6, 10, 23, 30, 0, 0, jakarta),
		time.Date(2024, 6, 11, 1, 0, 0, 0, jakarta),
	)
	require.NoError(t, err)
	assert.Equal(t, day("2024-06-10"), r.Start)
	assert.Equal(t, day("2024-06-11"), r.End)
}

func TestDateRange_Overlaps(t *testing.T) {
	existing := dateRange(t, "2024-06-10", "2024-06-12")

	tests := []struct {
		name     string
		start    string
		end      string
		overlaps bool
	}{
		{name: "equal", start: "2024-06-10", end: "2024-06-12", overlaps: true},
		{name: "contained", start: "2024-06-11", end: "2024-06-11", overlaps: true},
		{name: "overlapping start", start: "2024-06-08", end: "2024-06-10", overlaps: true},
		{name: "overlapping end", start: "2024-06-12", end: "2024-06-14", overlaps: true},
		{name: "containing", start: "2024-06-01", end: "2024-06-30", overlaps: true},
		{name: "strictly before", start: "2024-06-01", end: "2024-06-09", overlaps: false},
		{name: "strictly after", start: "2024-06-13", end: "2024-06-15", overlaps: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := dateRange(t, tt.start, tt.end)

			assert.Equal(t, tt.overlaps, existing.Overlaps(candidate))
			assert.Equal(t, tt.overlaps, candidate.Overlaps(existing))
		})
	}
}

func TestIsRangeAvailable(t *testing.T) {
	bookings := []model.Booking{
		{ID: "b1", StartDate: day("2024-06-10"), EndDate: day("2024-06-12"), Status: model.StatusPending},
		{ID: "b2", StartDate: day("2024-06-20"), EndDate: day("2024-06-22"), Status: model.StatusCancelled},
	}

	assert.False(t, model.IsRangeAvailable(bookings, dateRange(t, "2024-06-12", "2024-06-14")))
	assert.True(t, model.IsRangeAvailable(bookings, dateRange(t, "2024-06-13", "2024-06-15")))
	assert.True(t, model.IsRangeAvailable(bookings, dateRange(t, "2024-06-20", "2024-06-21")), "cancelled bookings free their days")
	assert.True(t, model.IsRangeAvailable(nil, dateRange(t, "2024-06-10", "2024-06-12")))
}

func TestDateRange_ExpandDays(t *testing.T) {
	r := dateRange(t, "2024-02-28", "2024-03-01")

	assert.Equal(t, []time.Time{day("2024-02-28"), day("2024-02-29"), day("2024-03-01")}, r.ExpandDays())
	assert.Equal(t, 3, r.Days())
	assert.True(t, r.Contains(day("2024-02-29")))
	assert.False(t, r.Contains(day("2024-03-02")))
	assert.Equal(t, "2024-02-28..2024-03-01", r.String())
}

func TestDateRange_Clip(t *testing.T) {
	r := dateRange(t, "2024-06-10", "2024-06-20")

	clipped, ok := r.Clip(dateRange(t, "2024-06-15", "2024-06-30"))
	require.True(t, ok)
	assert.Equal(t, dateRange(t, "2024-06-15", "2024-06-20"), clipped)

	_, ok = r.Clip(dateRange(t, "2024-07-01", "2024-07-02"))
	assert.False(t, ok)
}

func TestBookedDays(t *testing.T) {
	bookings := []model.Booking{
		{StartDate: day("2024-06-12"), EndDate: day("2024-06-13"), Status: model.StatusConfirmed},
		{StartDate: day("2024-06-10"), EndDate: day("2024-06-12"), Status: model.StatusPending},
		{StartDate: day("2024-06-01"), EndDate: day("2024-06-30"), Status: model.StatusCancelled},
	}

	assert.Equal(t, []time.Time{
		day("2024-06-10"), day("2024-06-11"), day("2024-06-12"), day("2024-06-13"),
	}, model.BookedDays(bookings, nil))

	horizon := dateRange(t, "2024-06-11", "2024-06-12")
	assert.Equal(t, []time.Time{day("2024-06-11"), day("2024-06-12")}, model.BookedDays(bookings, &horizon))

	assert.Empty(t, model.BookedDays(nil, nil))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, model.CanTransition(model.StatusPending, model.StatusConfirmed))
	assert.True(t, model.CanTransition(model.StatusPending, model.StatusCancelled))
	assert.True(t, model.CanTransition(model.StatusConfirmed, model.StatusCancelled))
	assert.False(t, model.CanTransition(model.StatusConfirmed, model.StatusPending))
	assert.False(t, model.CanTransition(model.StatusCancelled, model.StatusConfirmed))
}
