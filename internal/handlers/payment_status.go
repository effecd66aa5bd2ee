package handlers

import "math"

const (
	paymentStatusUnpaid  = "belum_bayar"
	paymentStatusPartial = "dp"
	paymentStatusPaid    = "sudah_bayar"
)

// clampAmount coerces a monetary input to a non-negative integer. Negative or
// fractional amounts are corrected, never rejected.
func clampAmount(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	rounded := int(math.Round(value))
	if rounded < 0 {
		return 0
	}
	return rounded
}

// derivePaymentStatus computes the payment state from the order total and the
// recorded payments. It is the only place paymentStatus comes from; the field
// is never settable through the API.
func derivePaymentStatus(totalAmount, downPaymentAmount, additionalPayment int) string {
	total := totalAmount
	if total < 0 {
		total = 0
	}

	paid := 0
	if downPaymentAmount > 0 {
		paid += downPaymentAmount
	}
	if additionalPayment > 0 {
		paid += additionalPayment
	}

	switch {
	case total <= 0:
		// a zero-cost order is trivially settled
		return paymentStatusPaid
	case paid <= 0:
		return paymentStatusUnpaid
	case paid >= total:
		return paymentStatusPaid
	default:
		return paymentStatusPartial
	}
}
