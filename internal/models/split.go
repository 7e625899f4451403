package models

import "github.com/shopspring/decimal"

// Expense is a bill paid by one member and shared by participants.
// It is turned into participant -> payer debts by the expense splitter.
type Expense struct {
	// Title is the human-readable name for the expense.
	Title string

	// PayerID is the member who paid the full Total.
	PayerID string

	// Currency is the ISO-4217 code the expense was paid in.
	Currency string

	// Total is the final amount including tax, tips, and fees.
	Total decimal.Decimal

	// Subtotal is the pre-tax amount (sum of all items before tax).
	// Zero means the expense has no itemization and Total is split evenly.
	Subtotal decimal.Decimal

	// Items are the individual line items. Each item is split equally among
	// its participants.
	Items []Item

	// Participants is the list of members sharing the expense. The payer
	// may or may not be a participant.
	Participants []string
}

// Item represents a single line item on an expense.
type Item struct {
	// Description is the name of the item (e.g., "Pizza", "Beer").
	Description string

	// Amount is the pre-tax price of this item.
	Amount decimal.Decimal

	// Participants are the members splitting this item.
	Participants []string
}

// PersonSplit represents one participant's share of an expense.
type PersonSplit struct {
	Participant string

	// Subtotal is the sum of this person's item shares (pre-tax).
	Subtotal decimal.Decimal

	// Tax is this person's proportional share of taxes/fees:
	// subtotal × (total_tax / expense_subtotal).
	Tax decimal.Decimal

	// Total is the amount this person owes for the expense (subtotal + tax).
	Total decimal.Decimal
}
