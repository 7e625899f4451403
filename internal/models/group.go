package models

import "github.com/shopspring/decimal"

// Group is a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// DefaultCurrency is used when a debt or expense omits its currency.
	DefaultCurrency string

	// Members is the list of user IDs in this group, in join order.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// IsMember reports whether userID belongs to the group.
func (g *Group) IsMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// DebtRecord is a persisted debt inside a group.
type DebtRecord struct {
	// ID is the unique identifier for the debt (UUID format).
	ID string

	// GroupID is the group this debt belongs to.
	GroupID string

	// From is the user who owes.
	From string

	// To is the user who is owed.
	To string

	// Amount is the positive amount owed.
	Amount decimal.Decimal

	// Currency is the ISO-4217 code of Amount.
	Currency string

	// Description is an optional note ("Dinner at Luigi's").
	Description string

	// CreatedAt is the Unix timestamp in nanoseconds; it also orders debts.
	CreatedAt int64
}

// Debt returns the engine view of the record.
func (r *DebtRecord) Debt() Debt {
	return Debt{From: r.From, To: r.To, Amount: r.Amount, Currency: r.Currency}
}
