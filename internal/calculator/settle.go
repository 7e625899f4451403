package calculator

import (
	"fmt"

	"github.com/mmynk/settleup/internal/models"
)

// options tune CalculateSettlements and CompareAlgorithms.
type options struct {
	workingCurrency   string
	preferredCurrency string
	redenominate      bool
}

// Option configures a settlement calculation.
type Option func(*options)

// WithWorkingCurrency fixes the currency balances are computed in. By default
// the most frequent debt currency is used.
func WithWorkingCurrency(code string) Option {
	return func(o *options) { o.workingCurrency = code }
}

// WithPreferredCurrency sets the payout currency used for settlements whose
// payer and receiver have no currency history.
func WithPreferredCurrency(code string) Option {
	return func(o *options) { o.preferredCurrency = code }
}

// WithoutRedenomination keeps every settlement in the working currency.
func WithoutRedenomination() Option {
	return func(o *options) { o.redenominate = false }
}

func buildOptions(opts []Option) options {
	o := options{redenominate: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Plan is a verified settlement plan.
type Plan struct {
	Algorithm       Algorithm
	WorkingCurrency string
	// Balances are the net balances the plan settles, in WorkingCurrency.
	Balances    models.BalanceSheet
	Settlements []models.Settlement
}

// CalculateSettlements computes a plan with the named algorithm and returns its
// settlements. See Calculate for the full plan.
func CalculateSettlements(g *models.DebtGraph, rates models.ExchangeRateTable, algorithm string, friendships models.FriendshipStrengths, opts ...Option) ([]models.Settlement, error) {
	plan, err := Calculate(g, rates, algorithm, friendships, opts...)
	if err != nil {
		return nil, err
	}
	return plan.Settlements, nil
}

// Calculate runs the full pipeline:
// - resolve the strategy and validate friendships
// - normalize debts into the working currency
// - compute net balances and reject an unbalanced graph
// - run the strategy and verify the plan settles every balance
// - re-denominate settlements when the graph used several currencies or a
// preferred currency was requested
//
// Either a verified plan or an error is returned, never a partial plan.
func Calculate(g *models.DebtGraph, rates models.ExchangeRateTable, algorithm string, friendships models.FriendshipStrengths, opts ...Option) (*Plan, error) {
	o := buildOptions(opts)
	strategy, err := StrategyFor(algorithm)
	if err != nil {
		return nil, err
	}
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

	settlements := strategy.Settle(sheet, friendships)
	if err := Verify(strategy.Name(), sheet, settlements); err != nil {
		return nil, err
	}

	if o.redenominate && (norm.MultiCurrency || o.preferredCurrency != "") {
		prov := norm.Provenance
		if !norm.MultiCurrency {
			// One currency everywhere: history says nothing beyond the
			// working currency, so an explicit preference wins.
			prov = nil
		}
		settlements, err = Redenominate(settlements, prov, rates, o.preferredCurrency)
		if err != nil {
			return nil, err
		}
	}

	return &Plan{
		Algorithm:       strategy.Name(),
		WorkingCurrency: norm.WorkingCurrency,
		Balances:        sheet,
		Settlements:     settlements,
	}, nil
}

// NetBalances normalizes the graph and returns its balanced net balance sheet.
func NetBalances(g *models.DebtGraph, rates models.ExchangeRateTable, opts ...Option) (models.BalanceSheet, error) {
	o := buildOptions(opts)
	norm, err := Normalize(g, rates, o.workingCurrency)
	if err != nil {
		return models.BalanceSheet{}, err
	}
	return balancedSheet(norm)
}

func balancedSheet(norm *Normalized) (models.BalanceSheet, error) {
	sheet := CalculateNetBalances(norm.Graph)
	sheet.Currency = norm.WorkingCurrency
	if err := CheckBalanced(sheet); err != nil {
		return models.BalanceSheet{}, err
	}
	return sheet, nil
}

// Verify checks a plan against the balances it settles: every amount is
// positive and in the sheet currency, payer and receiver differ, there are at
// most n-1 settlements for n users, and applying the plan leaves every balance
// within tolerance of zero.
func Verify(algorithm Algorithm, sheet models.BalanceSheet, settlements []models.Settlement) error {
	name := string(algorithm)
	if n := len(sheet.Entries); len(settlements) > 0 && len(settlements) > n-1 {
		return &models.ConservationError{Algorithm: name, Reason: fmt.Sprintf("%d settlements for %d users", len(settlements), n)}
	}
	for _, s := range settlements {
		if !s.Amount.IsPositive() {
			return &models.ConservationError{Algorithm: name, UserID: s.PayerID, Reason: "non-positive settlement " + s.Amount.String()}
		}
		if s.PayerID == s.ReceiverID {
			return &models.ConservationError{Algorithm: name, UserID: s.PayerID, Reason: "self-payment"}
		}
		if s.Currency != sheet.Currency {
			return &models.ConservationError{Algorithm: name, UserID: s.PayerID, Reason: "settlement in " + s.Currency + ", want " + sheet.Currency}
		}
	}
	for _, e := range sheet.Apply(settlements).Entries {
		if !models.IsNegligible(e.Amount) {
			return &models.ConservationError{Algorithm: name, UserID: e.UserID, Residual: e.Amount, Reason: "balance not settled"}
		}
	}
	return nil
}
