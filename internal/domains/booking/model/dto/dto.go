package dto

import (
	"time"

	"spacebook/internal/domains/booking/model"
	paymentDto "spacebook/internal/domains/payment/model/dto"
	"spacebook/shared"
	"spacebook/shared/constant"
	gDto "spacebook/shared/dto"
	"spacebook/shared/failure"
	gModel "spacebook/shared/model"
	"spacebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SpaceID   string `json:"space_id"   validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required,day"`
	EndDate   string `json:"end_date"   validate:"required,day"`
}

// Range parses both dates. Timestamps are cut to their calendar day.
func (c *CreateBookingRequest) Range() (model.DateRange, error) {
	return ParseRange(c.StartDate, c.EndDate)
}

func (c *CreateBookingRequest) ToModel(userID, status string, r model.DateRange) model.Booking {
	return model.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		SpaceID:   c.SpaceID,
		StartDate: r.Start,
		EndDate:   r.End,
		Status:    status,
		Metadata:  gModel.NewMetadata(userID, timezone.Now()),
	}
}

// CheckoutRequest books and pays in one step.
type CheckoutRequest struct {
	CreateBookingRequest
	Payment paymentDto.ChargeRequest `json:"payment" validate:"required"`
}

type CheckoutResponse struct {
	Booking BookingResponse          `json:"booking"`
	Quote   paymentDto.QuoteResponse `json:"quote"`
	Receipt paymentDto.Receipt       `json:"receipt"`
}

// ParseRange turns a pair of request dates into a DateRange, reporting
// malformed or reversed input as a 400.
func ParseRange(start, end string) (model.DateRange, error) {
	startDay, err := timezone.ParseDay(start)
	if err != nil {
		return model.DateRange{}, failure.BadRequestFromString("start_date must be a valid date (YYYY-MM-DD)") // nolint:wrapcheck
	}

	endDay, err := timezone.ParseDay(end)
	if err != nil {
		return model.DateRange{}, failure.BadRequestFromString("end_date must be a valid date (YYYY-MM-DD)") // nolint:wrapcheck
	}

	r, err := model.NewDateRange(startDay, endDay)
	if err != nil {
		return r, failure.BadRequest(err) // nolint:wrapcheck
	}

	return r, nil
}

// RangeQuery is the start_date/end_date pair of availability and quote lookups.
type RangeQuery struct {
	StartDate string `json:"start_date" validate:"required,day"`
	EndDate   string `json:"end_date"   validate:"required,day"`
}

func (q *RangeQuery) Range() (model.DateRange, error) {
	return ParseRange(q.StartDate, q.EndDate)
}

// HorizonQuery optionally limits booked days to [from, to].
type HorizonQuery struct {
	From string `json:"from" validate:"omitempty,day"`
	To   string `json:"to"   validate:"omitempty,day"`
}

// Horizon is nil when neither bound was given. A single bound is widened by
// one year in the missing direction.
func (q *HorizonQuery) Horizon() (*model.DateRange, error) {
	if q.From == constant.Empty && q.To == constant.Empty {
		return nil, nil
	}

	from, to := q.From, q.To
	if from == constant.Empty {
		end, err := timezone.ParseDay(to)
		if err != nil {
			return nil, failure.BadRequestFromString("to must be a valid date (YYYY-MM-DD)") // nolint:wrapcheck
		}

		from = end.AddDate(-1, 0, 0).Format(constant.DayFormat)
	}

	if to == constant.Empty {
		start, err := timezone.ParseDay(from)
		if err != nil {
			return nil, failure.BadRequestFromString("from must be a valid date (YYYY-MM-DD)") // nolint:wrapcheck
		}

		to = start.AddDate(1, 0, 0).Format(constant.DayFormat)
	}

	r, err := ParseRange(from, to)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	SpaceID   string `json:"space_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int    `json:"days"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.SpaceID = model.SpaceID
	r.StartDate = model.StartDate.Format(constant.DayFormat)
	r.EndDate = model.EndDate.Format(constant.DayFormat)
	r.Days = model.Range().Days()
	r.Status = model.Status
	r.Metadata = gDto.NewMetadata(model.Metadata)
}

type SpaceSummary struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Location     string   `json:"location"`
	Images       []string `json:"images"`
	PricePerHour float64  `json:"price_per_hour"`
}

// UserBookingResponse is a booking together with its space display fields.
type UserBookingResponse struct {
	BookingResponse
	Space SpaceSummary `json:"space"`
}

func (r *UserBookingResponse) FromModel(model model.BookingWithSpace) {
	r.BookingResponse.FromModel(model.Booking)
	r.Space = SpaceSummary{
		Name:         model.SpaceName,
		Type:         model.SpaceType,
		Location:     model.SpaceLocation,
		Images:       append([]string{}, model.SpaceImages...),
		PricePerHour: model.SpacePricePerHour,
	}
}

type GetUserBookingsResponse struct {
	Bookings  []UserBookingResponse `json:"bookings"`
	TotalPage int                   `json:"total_page"`
	TotalData int                   `json:"total_data"`
}

func (r *GetUserBookingsResponse) FromModels(models []model.BookingWithSpace, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]UserBookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type BookedDaysResponse struct {
	SpaceID string   `json:"space_id"`
	Days    []string `json:"days"`
}

func (r *BookedDaysResponse) FromDays(spaceID string, days []time.Time) {
	r.SpaceID = spaceID
	r.Days = make([]string, len(days))

	for i, day := range days {
		r.Days[i] = day.Format(constant.DayFormat)
	}
}

type AvailabilityResponse struct {
	SpaceID   string `json:"space_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}
