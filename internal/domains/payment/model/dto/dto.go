package dto

import (
	"strings"
)

const (
	MethodCard   = "card"
	MethodPaypal = "paypal"
)

type ChargeRequest struct {
	Method      string `json:"method"       validate:"required,oneof=card paypal"`
	CardHolder  string `json:"card_holder"  validate:"required_if=Method card,omitempty,max=100"`
	CardNumber  string `json:"card_number"  validate:"required_if=Method card"`
	Expiry      string `json:"expiry"       validate:"required_if=Method card"`
	CVV         string `json:"cvv"          validate:"required_if=Method card"`
	PaypalEmail string `json:"paypal_email" validate:"required_if=Method paypal,omitempty,email"`
}

// Digits is the card number without the spaces and dashes people type.
func (c *ChargeRequest) Digits() string {
	return strings.NewReplacer(" ", "", "-", "").Replace(c.CardNumber)
}

// Last4 is safe to log and return.
func (c *ChargeRequest) Last4() string {
	digits := c.Digits()
	if len(digits) < 4 {
		return digits
	}

	return digits[len(digits)-4:]
}

type QuoteResponse struct {
	Days         int     `json:"days"`
	TotalHours   int     `json:"total_hours"`
	PricePerHour float64 `json:"price_per_hour"`
	TotalAmount  float64 `json:"total_amount"`
}

type Receipt struct {
	TransactionID string  `json:"transaction_id"`
	Method        string  `json:"method"`
	Last4         string  `json:"last4,omitempty"`
	Amount        float64 `json:"amount"`
	PaidAt        string  `json:"paid_at"`
}
