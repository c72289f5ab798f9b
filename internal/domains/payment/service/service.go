package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"math"
	"time"
	"unicode"

	"spacebook/infras/otel"
	"spacebook/internal/domains/payment/model/dto"
	"spacebook/shared/constant"
	"spacebook/shared/failure"
	"spacebook/shared/id"
	"spacebook/shared/timezone"
	"spacebook/shared/validator"

	"github.com/rs/zerolog/log"
)

// DeclinedCard always fails the simulated charge.
const DeclinedCard = "4000000000000002"

const (
	minCardDigits = 12
	maxCardDigits = 19
	expiryLayout  = "01/06"
)

// Payment simulates a payment provider. Nothing leaves the process.
type Payment interface {
	Quote(pricePerHour float64, days int) dto.QuoteResponse
	Charge(ctx context.Context, req dto.ChargeRequest, amount float64) (dto.Receipt, error)
	Void(ctx context.Context, receipt dto.Receipt)
}

type serviceImpl struct {
	otel otel.Otel
	now  func() time.Time
}

func New(otel otel.Otel) Payment {
	return &serviceImpl{
		otel: otel,
		now:  timezone.Now,
	}
}

// Quote prices whole days at 24 billable hours each.
func (s *serviceImpl) Quote(pricePerHour float64, days int) dto.QuoteResponse {
	hours := days * constant.HoursPerDay

	return dto.QuoteResponse{
		Days:         days,
		TotalHours:   hours,
		PricePerHour: pricePerHour,
		TotalAmount:  math.Round(float64(hours)*pricePerHour*100) / 100,
	}
}

func (s *serviceImpl) Charge(ctx context.Context, req dto.ChargeRequest, amount float64) (res dto.Receipt, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".payment.Charge")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	if req.Method == dto.MethodCard {
		if err = s.checkCard(req); err != nil {
			return res, err
		}

		if req.Digits() == DeclinedCard {
			log.Warn().Str("last4", req.Last4()).Msg("payment declined")

			return res, failure.PaymentRequired("payment declined") // nolint:wrapcheck
		}

		res.Last4 = req.Last4()
	}

	res.TransactionID = id.NewString()
	res.Method = req.Method
	res.Amount = amount
	res.PaidAt = timezone.Format(s.now(), constant.DateFormat)

	scope.SetAttributes(map[string]any{
		"transaction_id": res.TransactionID,
		"method":         res.Method,
	})

	log.Info().Str("transaction_id", res.TransactionID).Str("method", res.Method).Float64("amount", amount).Msg("payment captured")

	return res, nil
}

// Void is the compensating action when the booking behind a charge could not be written.
func (s *serviceImpl) Void(ctx context.Context, receipt dto.Receipt) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".payment.Void")
	defer scope.End()

	scope.SetAttribute("transaction_id", receipt.TransactionID)

	log.Warn().Str("transaction_id", receipt.TransactionID).Float64("amount", receipt.Amount).Msg("payment voided")
}

func (s *serviceImpl) checkCard(req dto.ChargeRequest) error {
	digits := req.Digits()
	if len(digits) < minCardDigits || len(digits) > maxCardDigits || !allDigits(digits) || !Luhn(digits) {
		return failure.BadRequestFromString("card_number is invalid") // nolint:wrapcheck
	}

	expiry, err := time.Parse(expiryLayout, req.Expiry)
	if err != nil {
		return failure.BadRequestFromString("expiry must be in MM/YY format") // nolint:wrapcheck
	}

	// a card is valid through the last day of its expiry month
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !today.Before(expiry.AddDate(0, 1, 0)) {
		return failure.BadRequestFromString("card has expired") // nolint:wrapcheck
	}

	if len(req.CVV) < 3 || len(req.CVV) > 4 || !allDigits(req.CVV) {
		return failure.BadRequestFromString("cvv must be 3 or 4 digits") // nolint:wrapcheck
	}

	return nil
}

func allDigits(value string) bool {
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return value != constant.Empty
}

// Luhn runs the mod 10 checksum over a string of digits.
func Luhn(digits string) bool {
	sum := 0
	double := false

	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}

		sum += d
		double = !double
	}

	return sum%10 == 0
}
