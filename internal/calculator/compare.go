package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// Metrics scores one strategy's plan.
type Metrics struct {
	TransactionCount int
	// TotalAmount is the sum of settlement amounts in the working currency.
	TotalAmount decimal.Decimal
	// FriendshipUtilization is the mean friendship strength between payer and
	// receiver over all settlements; zero for an empty plan.
	FriendshipUtilization decimal.Decimal
}

// AlgorithmResult is one strategy's plan and its score.
type AlgorithmResult struct {
	Algorithm   Algorithm
	Settlements []models.Settlement
	Metrics     Metrics
}

// Comparison holds every strategy's result over the same normalized graph.
type Comparison struct {
	WorkingCurrency string
	Results         map[Algorithm]*AlgorithmResult
	// Recommended has the fewest transactions, then the lowest total moved,
	// then the highest friendship utilization; remaining ties go to the
	// earlier entry in Algorithms.
	Recommended Algorithm
}

// CompareAlgorithms runs every strategy over the same normalized graph.
// Settlements stay in the working currency so totals are comparable.
func CompareAlgorithms(g *models.DebtGraph, rates models.ExchangeRateTable, friendships models.FriendshipStrengths, opts ...Option) (*Comparison, error) {
	o := buildOptions(opts)
	if err := friendships.Validate(); err != nil {
		return nil, err
	}
	norm, err := Normalize(g, rates, o.workingCurrency)
	if err != nil {
		return nil, err
	}
	sheet, err := balancedSheet(norm)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		WorkingCurrency: norm.WorkingCurrency,
		Results:         make(map[Algorithm]*AlgorithmResult, len(Algorithms)),
	}
	var best *AlgorithmResult
	for _, name := range Algorithms {
		strategy, err := StrategyFor(string(name))
		if err != nil {
			return nil, err
		}
		settlements := strategy.Settle(sheet, friendships)
		if err := Verify(name, sheet, settlements); err != nil {
			return nil, err
		}
		result := &AlgorithmResult{
			Algorithm:   name,
			Settlements: settlements,
			Metrics:     Score(settlements, friendships),
		}
		cmp.Results[name] = result
		if best == nil || better(result.Metrics, best.Metrics) {
			best = result
		}
	}
	cmp.Recommended = best.Algorithm
	return cmp, nil
}

// Score computes the comparison metrics of a plan.
func Score(settlements []models.Settlement, friendships models.FriendshipStrengths) Metrics {
	m := Metrics{
		TransactionCount:      len(settlements),
		TotalAmount:           decimal.Zero,
		FriendshipUtilization: decimal.Zero,
	}
	if len(settlements) == 0 {
		return m
	}
	strength := decimal.Zero
	for _, s := range settlements {
		m.TotalAmount = m.TotalAmount.Add(s.WorkingAmount())
		strength = strength.Add(friendships.Strength(s.PayerID, s.ReceiverID))
	}
	m.FriendshipUtilization = strength.Div(decimal.NewFromInt(int64(len(settlements))))
	return m
}

func better(a, b Metrics) bool {
	if a.TransactionCount != b.TransactionCount {
		return a.TransactionCount < b.TransactionCount
	}
	if !a.TotalAmount.Equal(b.TotalAmount) {
		return a.TotalAmount.LessThan(b.TotalAmount)
	}
	return a.FriendshipUtilization.GreaterThan(b.FriendshipUtilization)
}
