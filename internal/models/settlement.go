package models

import "github.com/shopspring/decimal"

// Settlement is one proposed payment: PayerID pays ReceiverID.
//
// When a settlement has been re-denominated out of the working currency,
// OriginalAmount, OriginalCurrency and ExchangeRate record the conversion so
// that Amount == OriginalAmount * ExchangeRate.
type Settlement struct {
	// PayerID is the net debtor sending money.
	PayerID string `json:"payer_id"`

	// ReceiverID is the net creditor receiving money.
	ReceiverID string `json:"receiver_id"`

	// Amount is the payment amount in Currency.
	Amount decimal.Decimal `json:"amount"`

	// Currency is the ISO-4217 code of Amount.
	Currency string `json:"currency"`

	// OriginalAmount is the amount before re-denomination (nil if not converted).
	OriginalAmount *decimal.Decimal `json:"original_amount,omitempty"`

	// OriginalCurrency is the working currency the plan was computed in.
	OriginalCurrency string `json:"original_currency,omitempty"`

	// ExchangeRate converts OriginalCurrency to Currency.
	ExchangeRate *decimal.Decimal `json:"exchange_rate,omitempty"`
}

// Converted reports whether the settlement was re-denominated.
func (s Settlement) Converted() bool { return s.OriginalAmount != nil }

// WorkingAmount returns the amount in the currency the plan was computed in.
func (s Settlement) WorkingAmount() decimal.Decimal {
	if s.OriginalAmount != nil {
		return *s.OriginalAmount
	}
	return s.Amount
}
