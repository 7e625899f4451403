package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debt(from, to, amount, currency string) models.Debt {
	return models.Debt{From: from, To: to, Amount: dec(amount), Currency: currency}
}

func usd(from, to, amount string) models.Debt {
	return debt(from, to, amount, "USD")
}

func mustGraph(t *testing.T, debts ...models.Debt) *models.DebtGraph {
	t.Helper()
	g, err := models.GraphFromDebts(debts)
	require.NoError(t, err)
	return g
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func requireNear(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, models.IsNegligible(dec(want).Sub(got)), "want ~%s, got %s", want, got.String())
}

type edge struct {
	from, to string
	amount   string
}

func edges(settlements []models.Settlement) []edge {
	out := make([]edge, len(settlements))
	for i, s := range settlements {
		out[i] = edge{from: s.PayerID, to: s.ReceiverID, amount: s.Amount.StringFixed(2)}
	}
	return out
}

func debtEdges(debts []models.Debt) []edge {
	out := make([]edge, len(debts))
	for i, d := range debts {
		out[i] = edge{from: d.From, to: d.To, amount: d.Amount.StringFixed(2)}
	}
	return out
}

func totalDebt(debts []models.Debt) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range debts {
		sum = sum.Add(d.Amount)
	}
	return sum
}
