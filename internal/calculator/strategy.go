package calculator

import (
	"sort"

	"github.com/mmynk/settleup/internal/models"
)

// Algorithm names a settlement strategy.
type Algorithm string

const (
	MinCashFlow      Algorithm = "minCashFlow"
	Greedy           Algorithm = "greedy"
	FriendPreference Algorithm = "friendPreference"
)

// Algorithms lists the supported strategies in comparison order.
var Algorithms = []Algorithm{Greedy, MinCashFlow, FriendPreference}

// ParseAlgorithm validates an algorithm name.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(name); a {
	case MinCashFlow, Greedy, FriendPreference:
		return a, nil
	}
	return "", &models.UnknownAlgorithmError{Name: name}
}

// Strategy matches net debtors to net creditors.
//
// Settle receives a balanced sheet and returns settlements in the sheet
// currency. It must not retain or mutate its inputs.
type Strategy interface {
	Name() Algorithm
	Settle(sheet models.BalanceSheet, friendships models.FriendshipStrengths) []models.Settlement
}

// StrategyFor returns the strategy implementing the named algorithm.
func StrategyFor(name string) (Strategy, error) {
	a, err := ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}
	switch a {
	case FriendPreference:
		return friendPreferenceStrategy{}, nil
	default:
		return largestFirstStrategy{name: a}, nil
	}
}

// largestFirstStrategy backs both greedy and minCashFlow. Despite its name,
// minCashFlow is the same sorted largest-to-largest heuristic, not a
// minimum-transaction solver.
type largestFirstStrategy struct {
	name Algorithm
}

func (s largestFirstStrategy) Name() Algorithm { return s.name }

// Settle walks creditors and debtors, both sorted by amount descending, with
// one cursor each; every step settles the smaller side in full. When the sheet
// sums to a sub-cent residual instead of zero, that residual stays unpaid.
func (s largestFirstStrategy) Settle(sheet models.BalanceSheet, _ models.FriendshipStrengths) []models.Settlement {
	creditors, debtors := partition(sheet)
	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	var settlements []models.Settlement
	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		amount := debtors[j].amount
		if creditors[i].amount.LessThan(amount) {
			amount = creditors[i].amount
		}

		settlements = append(settlements, models.Settlement{
			PayerID:    debtors[j].user,
			ReceiverID: creditors[i].user,
			Amount:     amount,
			Currency:   sheet.Currency,
		})

		creditors[i].amount = creditors[i].amount.Sub(amount)
		debtors[j].amount = debtors[j].amount.Sub(amount)

		if creditors[i].amount.IsZero() {
			i++
		}
		if debtors[j].amount.IsZero() {
			j++
		}
	}
	return settlements
}

// friendPreferenceStrategy keeps payments between people who know each other.
type friendPreferenceStrategy struct{}

func (friendPreferenceStrategy) Name() Algorithm { return FriendPreference }

// Settle processes debtors by amount descending. Each debtor pays creditors in
// order of friendship strength with that debtor, strongest first, until the
// debt is exhausted. Equal strengths fall back to creditor amount order, so an
// empty friendship table degrades to a deterministic largest-first order.
func (friendPreferenceStrategy) Settle(sheet models.BalanceSheet, friendships models.FriendshipStrengths) []models.Settlement {
	creditors, debtors := partition(sheet)
	sortByAmountDesc(creditors)
	sortByAmountDesc(debtors)

	var settlements []models.Settlement
	for _, debtor := range debtors {
		candidates := make([]*party, 0, len(creditors))
		for k := range creditors {
			if creditors[k].amount.IsPositive() {
				candidates = append(candidates, &creditors[k])
			}
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			sa := friendships.Strength(debtor.user, candidates[a].user)
			sb := friendships.Strength(debtor.user, candidates[b].user)
			return sa.GreaterThan(sb)
		})

		for _, creditor := range candidates {
			if debtor.amount.IsZero() {
				break
			}
			amount := debtor.amount
			if creditor.amount.LessThan(amount) {
				amount = creditor.amount
			}
			settlements = append(settlements, models.Settlement{
				PayerID:    debtor.user,
				ReceiverID: creditor.user,
				Amount:     amount,
				Currency:   sheet.Currency,
			})
			debtor.amount = debtor.amount.Sub(amount)
			creditor.amount = creditor.amount.Sub(amount)
		}
	}
	return settlements
}

// sortByAmountDesc sorts parties by amount, largest first. Ties keep sheet order.
func sortByAmountDesc(parties []party) {
	sort.SliceStable(parties, func(a, b int) bool {
		return parties[a].amount.GreaterThan(parties[b].amount)
	})
}
