package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// CalculateNetBalances reduces a debt graph to one net balance per user.
//
// Algorithm:
// - Every user starts at zero (users without debts stay at zero)
// - For each debt: the debtor's balance falls by the amount, the creditor's rises
//
// Debts must share one currency; normalize a multi-currency graph first.
// The sheet currency is taken from the first debt.
func CalculateNetBalances(g *models.DebtGraph) models.BalanceSheet {
	users := g.Users()
	pos := make(map[string]int, len(users))
	sheet := models.BalanceSheet{Entries: make([]models.Balance, len(users))}
	for i, u := range users {
		pos[u] = i
		sheet.Entries[i] = models.Balance{UserID: u, Amount: decimal.Zero}
	}

	for _, d := range g.Debts() {
		if sheet.Currency == "" {
			sheet.Currency = d.Currency
		}
		from, to := pos[d.From], pos[d.To]
		sheet.Entries[from].Amount = sheet.Entries[from].Amount.Sub(d.Amount)
		sheet.Entries[to].Amount = sheet.Entries[to].Amount.Add(d.Amount)
	}
	return sheet
}

// CheckBalanced rejects a sheet whose balances do not sum to zero within tolerance.
func CheckBalanced(sheet models.BalanceSheet) error {
	sum := sheet.Sum()
	if !models.IsNegligible(sum) {
		return &models.UnbalancedGraphError{Sum: sum, Currency: sheet.Currency}
	}
	return nil
}

// party is a creditor or debtor with the absolute amount still to settle.
type party struct {
	user   string
	amount decimal.Decimal
}

// partition splits a sheet into creditors (owed money) and debtors (owe money),
// both holding positive amounts, in sheet order. Only users at exactly zero are
// left out: sub-cent balances still have to be paid, since several of them can
// add up to more than the tolerance on the other side.
func partition(sheet models.BalanceSheet) (creditors, debtors []party) {
	for _, e := range sheet.Entries {
		if e.Amount.IsZero() {
			continue
		}
		if e.Amount.IsPositive() {
			creditors = append(creditors, party{user: e.UserID, amount: e.Amount})
		} else {
			debtors = append(debtors, party{user: e.UserID, amount: e.Amount.Neg()})
		}
	}
	return creditors, debtors
}
