package models

import "github.com/shopspring/decimal"

// Balance is one user's net position. Positive = net creditor (is owed money),
// negative = net debtor.
type Balance struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// BalanceSheet holds one Balance per graph user, in graph order, including
// users whose balance is zero.
type BalanceSheet struct {
	Currency string    `json:"currency"`
	Entries  []Balance `json:"entries"`
}

// Sum returns the sum of all balances.
func (b BalanceSheet) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range b.Entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// Of returns the balance of userID, zero if absent.
func (b BalanceSheet) Of(userID string) decimal.Decimal {
	for _, e := range b.Entries {
		if e.UserID == userID {
			return e.Amount
		}
	}
	return decimal.Zero
}

// Map returns the balances keyed by user.
func (b BalanceSheet) Map() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(b.Entries))
	for _, e := range b.Entries {
		m[e.UserID] = e.Amount
	}
	return m
}

// Apply returns the sheet after paying out settlements: the payer's balance
// rises by the amount and the receiver's falls by it. Settlements must be in
// the sheet currency.
func (b BalanceSheet) Apply(settlements []Settlement) BalanceSheet {
	out := BalanceSheet{Currency: b.Currency, Entries: make([]Balance, len(b.Entries))}
	pos := make(map[string]int, len(b.Entries))
	for i, e := range b.Entries {
		out.Entries[i] = e
		pos[e.UserID] = i
	}
	for _, s := range settlements {
		if i, ok := pos[s.PayerID]; ok {
			out.Entries[i].Amount = out.Entries[i].Amount.Add(s.Amount)
		}
		if i, ok := pos[s.ReceiverID]; ok {
			out.Entries[i].Amount = out.Entries[i].Amount.Sub(s.Amount)
		}
	}
	return out
}

// Settled reports whether every balance is within Tolerance of zero.
func (b BalanceSheet) Settled() bool {
	for _, e := range b.Entries {
		if !IsNegligible(e.Amount) {
			return false
		}
	}
	return true
}
