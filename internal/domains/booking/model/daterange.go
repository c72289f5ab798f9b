package model

import (
	"errors"
	"slices"
	"time"

	"spacebook/shared/constant"
)

var ErrInvalidRange = errors.New("start_date must not be after end_date")

// DateRange is an inclusive range of calendar days. Both ends are midnight UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// truncate keeps the calendar date of t as written, whatever its location.
func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: truncate(start), End: truncate(end)}
	if r.Start.After(r.End) {
		return DateRange{}, ErrInvalidRange
	}

	return r, nil
}

// Overlaps is the general test for inclusive ranges: they share a day iff
// each one starts no later than the other ends.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

func (r DateRange) Contains(day time.Time) bool {
	day = truncate(day)

	return !day.Before(r.Start) && !day.After(r.End)
}

// Days is the number of calendar days covered, both ends included.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/constant.HoursPerDay) + 1
}

// ExpandDays lists every day of the range in order.
func (r DateRange) ExpandDays() []time.Time {
	days := make([]time.Time, 0, r.Days())
	for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}

	return days
}

// Clip narrows r to window. ok is false when they share no day.
func (r DateRange) Clip(window DateRange) (DateRange, bool) {
	if !r.Overlaps(window) {
		return DateRange{}, false
	}

	clipped := r
	if window.Start.After(clipped.Start) {
		clipped.Start = window.Start
	}

	if window.End.Before(clipped.End) {
		clipped.End = window.End
	}

	return clipped, true
}

func (r DateRange) String() string {
	return r.Start.Format(constant.DayFormat) + ".." + r.End.Format(constant.DayFormat)
}

// IsRangeAvailable reports whether candidate shares no day with any active booking.
func IsRangeAvailable(bookings []Booking, candidate DateRange) bool {
	for _, booking := range bookings {
		if IsActive(booking.Status) && booking.Range().Overlaps(candidate) {
			return false
		}
	}

	return true
}

// BookedDays expands the active bookings day by day, sorted and without
// repeats. A non-nil horizon limits the result to the days inside it.
func BookedDays(bookings []Booking, horizon *DateRange) []time.Time {
	var days []time.Time

	for _, booking := range bookings {
		if !IsActive(booking.Status) {
			continue
		}

		r := booking.Range()
		if horizon != nil {
			var ok bool
			if r, ok = r.Clip(*horizon); !ok {
				continue
			}
		}

		days = append(days, r.ExpandDays()...)
	}

	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	return slices.CompactFunc(days, func(a, b time.Time) bool { return a.Equal(b) })
}
