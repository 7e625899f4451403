package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

// amountPlaces is how many decimals amounts are rendered with.
const amountPlaces = 2

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountPlaces)
}

// parseAmount parses a decimal string that must be positive.
func parseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q is not a decimal", field, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%s must be positive, got %s", field, s)
	}
	return d, nil
}

// parseCurrency normalizes an optional currency code.
func parseCurrency(field, code string) (string, error) {
	if code == "" {
		return "", nil
	}
	c, ok := models.NormalizeCurrency(code)
	if !ok {
		return "", fmt.Errorf("%s %q is not a 3-letter currency code", field, code)
	}
	return c, nil
}

func toAPIGroup(g *models.Group) *api.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return &api.Group{
		Id:              g.ID,
		Name:            g.Name,
		DefaultCurrency: g.DefaultCurrency,
		Members:         members,
		CreatedAt:       g.CreatedAt,
	}
}

func toAPIDebtRecord(r *models.DebtRecord) api.Debt {
	return api.Debt{
		Id:          r.ID,
		From:        r.From,
		To:          r.To,
		Amount:      formatAmount(r.Amount),
		Currency:    r.Currency,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

func toAPIDebts(debts []models.Debt) []api.Debt {
	out := make([]api.Debt, len(debts))
	for i, d := range debts {
		out[i] = api.Debt{From: d.From, To: d.To, Amount: formatAmount(d.Amount), Currency: d.Currency}
	}
	return out
}

func toAPISettlements(settlements []models.Settlement) []api.Settlement {
	out := make([]api.Settlement, len(settlements))
	for i, s := range settlements {
		out[i] = api.Settlement{
			PayerId:    s.PayerID,
			ReceiverId: s.ReceiverID,
			Amount:     formatAmount(s.Amount),
			Currency:   s.Currency,
		}
		if s.Converted() {
			out[i].OriginalAmount = formatAmount(*s.OriginalAmount)
			out[i].OriginalCurrency = s.OriginalCurrency
			if s.ExchangeRate != nil {
				out[i].ExchangeRate = s.ExchangeRate.String()
			}
		}
	}
	return out
}

func toAPIBalances(sheet models.BalanceSheet) []api.Balance {
	out := make([]api.Balance, len(sheet.Entries))
	for i, e := range sheet.Entries {
		out[i] = api.Balance{UserId: e.UserID, Amount: formatAmount(e.Amount)}
	}
	return out
}

func toAPIResult(r *calculator.AlgorithmResult) api.AlgorithmResult {
	return api.AlgorithmResult{
		Algorithm:             string(r.Algorithm),
		Settlements:           toAPISettlements(r.Settlements),
		TransactionCount:      r.Metrics.TransactionCount,
		TotalAmount:           formatAmount(r.Metrics.TotalAmount),
		FriendshipUtilization: r.Metrics.FriendshipUtilization.StringFixed(4),
	}
}

func toAPIPreference(p *models.Preference) *api.Preference {
	return &api.Preference{
		UserId:    p.UserID,
		Algorithm: p.Algorithm,
		Currency:  p.Currency,
		UpdatedAt: p.UpdatedAt,
	}
}
