package timezone

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"spacebook/config"

	"github.com/rs/zerolog/log"
)

var ErrInvalidDay = errors.New("invalid date, expected YYYY-MM-DD")

var (
	resolve sync.Once
	current atomic.Pointer[time.Location]
)

// Location is the application timezone, read from APP_TIMEZONE on first use.
func Location() *time.Location {
	resolve.Do(func() {
		current.CompareAndSwap(nil, load(config.Get().App.Timezone))
	})

	return current.Load()
}

// Use replaces the application timezone.
func Use(loc *time.Location) {
	resolve.Do(func() {})
	current.Store(loc)
}

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Unknown timezone, using UTC")

		return time.UTC
	}

	log.Debug().Str("timezone", name).Msg("Application timezone loaded")

	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}

// Day returns the calendar day t falls on in the application timezone,
// as midnight UTC. Postgres date columns scan into the same shape.
func Day(t time.Time) time.Time {
	y, m, d := t.In(Location()).Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return Day(Now())
}

// ParseDay accepts YYYY-MM-DD or an RFC3339 timestamp, which is truncated to
// its calendar day in the application timezone.
func ParseDay(value string) (time.Time, error) {
	if day, err := time.Parse(time.DateOnly, value); err == nil {
		return day, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, ErrInvalidDay
	}

	return Day(t), nil
}
