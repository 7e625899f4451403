package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// CalculateSplit computes how much each person owes including proportional tax.
// Based on the algorithm: person_total = person_subtotal × (1 + (total_tax / bill_subtotal))
//
// Without items the total is split equally among all participants.
func CalculateSplit(items []models.Item, billTotal, billSubtotal decimal.Decimal, participants []string) (map[string]*models.PersonSplit, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("must have at least one participant")
	}

	tax := billTotal.Sub(billSubtotal)
	splits := make(map[string]*models.PersonSplit, len(participants))
	for _, p := range participants {
		splits[p] = &models.PersonSplit{Participant: p}
	}

	if len(items) == 0 {
		n := decimal.NewFromInt(int64(len(participants)))
		for _, split := range splits {
			split.Subtotal = billSubtotal.Div(n)
			split.Tax = tax.Div(n)
			split.Total = billTotal.Div(n)
		}
		return splits, nil
	}

	if billSubtotal.IsZero() {
		return nil, fmt.Errorf("subtotal cannot be zero")
	}

	// Each item is shared equally by the participants assigned to it
	for _, item := range items {
		if len(item.Participants) == 0 {
			continue
		}
		perPerson := item.Amount.Div(decimal.NewFromInt(int64(len(item.Participants))))
		for _, person := range item.Participants {
			if split, exists := splits[person]; exists {
				split.Subtotal = split.Subtotal.Add(perPerson)
			}
		}
	}

	ratio := tax.Div(billSubtotal)
	for _, split := range splits {
		split.Tax = split.Subtotal.Mul(ratio)
		split.Total = split.Subtotal.Add(split.Tax)
	}
	return splits, nil
}

// SplitExpense turns an expense into debts from each participant to the payer,
// in participant order. The payer's own share produces no debt; shares are
// rounded to cents and shares that round to zero are dropped.
func SplitExpense(e models.Expense) ([]models.Debt, error) {
	if e.PayerID == "" {
		return nil, fmt.Errorf("expense payer is required")
	}
	if !e.Total.IsPositive() {
		return nil, fmt.Errorf("expense total must be positive, got %s", e.Total.String())
	}
	currency, ok := models.NormalizeCurrency(e.Currency)
	if !ok {
		return nil, fmt.Errorf("invalid expense currency %q", e.Currency)
	}

	participants := uniqueUsers(e.Participants)
	subtotal := e.Subtotal
	if len(e.Items) == 0 && subtotal.IsZero() {
		subtotal = e.Total
	}
	splits, err := CalculateSplit(e.Items, e.Total, subtotal, participants)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate split: %w", err)
	}

	var debts []models.Debt
	for _, p := range participants {
		if p == e.PayerID {
			continue
		}
		share := splits[p].Total.Round(2)
		if !share.IsPositive() {
			continue
		}
		debts = append(debts, models.Debt{From: p, To: e.PayerID, Amount: share, Currency: currency})
	}
	return debts, nil
}

func uniqueUsers(users []string) []string {
	seen := make(map[string]bool, len(users))
	out := make([]string, 0, len(users))
	for _, u := range users {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}
