package models

import (
	"github.com/shopspring/decimal"
)

// Debt means From owes To the given Amount in Currency.
type Debt struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// Validate checks the per-debt invariants. index is only used for the error.
func (d Debt) Validate(index int) error {
	if d.From == "" || d.To == "" {
		return &InvalidDebtError{Index: index, From: d.From, To: d.To, Reason: "missing user"}
	}
	if d.From == d.To {
		return &InvalidDebtError{Index: index, From: d.From, To: d.To, Reason: "self-debt"}
	}
	if !d.Amount.IsPositive() {
		return &InvalidDebtError{Index: index, From: d.From, To: d.To, Reason: "amount must be positive, got " + d.Amount.String()}
	}
	if _, ok := NormalizeCurrency(d.Currency); !ok {
		return &InvalidDebtError{Index: index, From: d.From, To: d.To, Reason: "invalid currency " + d.Currency}
	}
	return nil
}

// DebtGraph is the immutable engine input: a set of users and the debts among them.
// Users keep first-seen order, which fixes iteration order for every algorithm.
type DebtGraph struct {
	users []string
	index map[string]struct{}
	debts []Debt
}

// NewDebtGraph validates debts against users and returns the graph.
// Users listed more than once are kept once. Every debt endpoint must be a user.
func NewDebtGraph(users []string, debts []Debt) (*DebtGraph, error) {
	g := &DebtGraph{
		users: make([]string, 0, len(users)),
		index: make(map[string]struct{}, len(users)),
		debts: make([]Debt, 0, len(debts)),
	}
	for _, u := range users {
		if u == "" {
			continue
		}
		if _, ok := g.index[u]; ok {
			continue
		}
		g.index[u] = struct{}{}
		g.users = append(g.users, u)
	}

	for i, d := range debts {
		if err := d.Validate(i); err != nil {
			return nil, err
		}
		if !g.HasUser(d.From) {
			return nil, &InvalidDebtError{Index: i, From: d.From, To: d.To, Reason: "unknown user " + d.From}
		}
		if !g.HasUser(d.To) {
			return nil, &InvalidDebtError{Index: i, From: d.From, To: d.To, Reason: "unknown user " + d.To}
		}
		d.Currency, _ = NormalizeCurrency(d.Currency)
		g.debts = append(g.debts, d)
	}
	return g, nil
}

// GraphFromDebts builds a graph whose users are exactly the debt endpoints.
func GraphFromDebts(debts []Debt) (*DebtGraph, error) {
	users := make([]string, 0, len(debts)*2)
	for _, d := range debts {
		users = append(users, d.From, d.To)
	}
	return NewDebtGraph(users, debts)
}

// Users returns a copy of the users in graph order.
func (g *DebtGraph) Users() []string {
	out := make([]string, len(g.users))
	copy(out, g.users)
	return out
}

// Debts returns a copy of the debts in input order.
func (g *DebtGraph) Debts() []Debt {
	out := make([]Debt, len(g.debts))
	copy(out, g.debts)
	return out
}

// HasUser reports whether u is a member of the graph.
func (g *DebtGraph) HasUser(u string) bool {
	_, ok := g.index[u]
	return ok
}

// Len returns the number of debts.
func (g *DebtGraph) Len() int { return len(g.debts) }

// Currencies returns the distinct debt currencies in first-seen order.
func (g *DebtGraph) Currencies() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range g.debts {
		if _, ok := seen[d.Currency]; ok {
			continue
		}
		seen[d.Currency] = struct{}{}
		out = append(out, d.Currency)
	}
	return out
}

// WithDebts returns a graph with the same users and a new debt sequence.
func (g *DebtGraph) WithDebts(debts []Debt) (*DebtGraph, error) {
	return NewDebtGraph(g.users, debts)
}
