package model

import (
	"slices"
	"time"

	"spacebook/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldSpaceID   = "space_id"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldStatus    = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

const (
	EventCreated       = "booking.created"
	EventStatusChanged = "booking.status_changed"
)

// CacheBookedDays is keyed by space id. Anything that changes the bookings of
// a space deletes it.
const CacheBookedDays = "booking:days"

// CacheMine prefixes the cached booking lists of one owner, keyed by user id.
const CacheMine = "booking:mine"

// ActiveStatuses hold their days. Cancelled bookings free them.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

// SortableFields may be passed as sort_by when listing bookings.
var SortableFields = []string{FieldStartDate, FieldEndDate, FieldStatus}

var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	return slices.Contains(transitions[from], to)
}

func IsActive(status string) bool {
	return slices.Contains(ActiveStatuses, status)
}

type Booking struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	SpaceID   string    `db:"space_id"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	model.Metadata
}

func (b Booking) Range() DateRange {
	return DateRange{Start: truncate(b.StartDate), End: truncate(b.EndDate)}
}

// BookingWithSpace carries the display fields of the booked space.
type BookingWithSpace struct {
	Booking
	SpaceName         string         `column:"name"           db:"space_name"           table:"spaces"`
	SpaceType         string         `column:"type"           db:"space_type"           table:"spaces"`
	SpaceLocation     string         `column:"location"       db:"space_location"       table:"spaces"`
	SpaceImages       pq.StringArray `column:"images"         db:"space_images"         table:"spaces"`
	SpacePricePerHour float64        `column:"price_per_hour" db:"space_price_per_hour" table:"spaces"`
}

func (BookingWithSpace) GetJoinQuery() string {
	return "JOIN spaces ON spaces.id = bookings.space_id"
}

// CreatedPayload is published with EventCreated.
type CreatedPayload struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	SpaceID   string `json:"space_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// StatusChangedPayload is published with EventStatusChanged.
type StatusChangedPayload struct {
	BookingID string `json:"booking_id"`
	Owner     string `json:"owner"`
	SpaceID   string `json:"space_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedBy string `json:"changed_by"`
}
