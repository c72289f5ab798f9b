// Package calendar models date selection on a space's booking calendar.
//
// A Selection moves between three states as days are clicked:
//
//	NoSelection --click--> OneEndpoint --click--> RangeSelected
//	                            ^                      |
//	                            +--------click---------+
//
// Booked days are never selectable, and a second click that would span a
// booked day is ignored while the first endpoint is kept.
//
// The server never drives a Selection. The package is a library for Go
// clients that render the calendar from GET /v1/spaces/{id}/bookings and
// submit the chosen range to POST /v1/bookings. It shares the range rules in
// the booking model, so a range it accepts passes the server's checks.
package calendar

import (
	"time"

	"spacebook/internal/domains/booking/model"
)

type State int

const (
	NoSelection State = iota
	OneEndpoint
	RangeSelected
)

func (s State) String() string {
	switch s {
	case NoSelection:
		return "no-selection"
	case OneEndpoint:
		return "one-endpoint-selected"
	case RangeSelected:
		return "range-selected"
	default:
		return "unknown"
	}
}

type Selection struct {
	booked   map[time.Time]struct{}
	state    State
	anchor   time.Time
	selected model.DateRange
}

func NewSelection(bookedDays []time.Time) *Selection {
	booked := make(map[time.Time]struct{}, len(bookedDays))
	for _, day := range bookedDays {
		booked[normalize(day)] = struct{}{}
	}

	return &Selection{booked: booked}
}

func normalize(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *Selection) IsBooked(day time.Time) bool {
	_, ok := s.booked[normalize(day)]

	return ok
}

// Click applies one day click and reports whether the state changed.
func (s *Selection) Click(day time.Time) bool {
	day = normalize(day)

	if s.IsBooked(day) {
		return false
	}

	switch s.state {
	case OneEndpoint:
		r, err := model.NewDateRange(s.anchor, day)
		if err != nil {
			r, _ = model.NewDateRange(day, s.anchor)
		}

		if s.spansBooked(r) {
			return false
		}

		s.state = RangeSelected
		s.selected = r
	default:
		s.state = OneEndpoint
		s.anchor = day
		s.selected = model.DateRange{}
	}

	return true
}

func (s *Selection) spansBooked(r model.DateRange) bool {
	for booked := range s.booked {
		if r.Contains(booked) {
			return true
		}
	}

	return false
}

func (s *Selection) State() State {
	return s.state
}

// Anchor is the first endpoint while in OneEndpoint.
func (s *Selection) Anchor() (time.Time, bool) {
	return s.anchor, s.state == OneEndpoint
}

func (s *Selection) Range() (model.DateRange, bool) {
	return s.selected, s.state == RangeSelected
}

func (s *Selection) Reset() {
	s.state = NoSelection
	s.anchor = time.Time{}
	s.selected = model.DateRange{}
}
