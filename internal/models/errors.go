package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinels matched by the typed errors below via errors.Is.
var (
	ErrInvalidDebt         = errors.New("invalid debt")
	ErrUnbalancedGraph     = errors.New("unbalanced debt graph")
	ErrMissingExchangeRate = errors.New("missing exchange rate")
	ErrUnknownAlgorithm    = errors.New("unknown algorithm")
	ErrInvalidFriendship   = errors.New("invalid friendship strength")
	ErrInvalidExchangeRate = errors.New("invalid exchange rate")
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrConservation        = errors.New("settlement plan does not conserve balances")
)

// InvalidDebtError reports a debt that violates the graph invariants.
// Index is the position in the input sequence, or -1 when not applicable.
type InvalidDebtError struct {
	Index  int
	From   string
	To     string
	Reason string
}

func (e *InvalidDebtError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid debt %s -> %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid debt #%d %s -> %s: %s", e.Index, e.From, e.To, e.Reason)
}

func (e *InvalidDebtError) Is(target error) bool { return target == ErrInvalidDebt }

// UnbalancedGraphError reports net balances that do not sum to zero.
type UnbalancedGraphError struct {
	Sum      decimal.Decimal
	Currency string
}

func (e *UnbalancedGraphError) Error() string {
	return fmt.Sprintf("net balances sum to %s %s, want 0", e.Sum.String(), e.Currency)
}

func (e *UnbalancedGraphError) Is(target error) bool { return target == ErrUnbalancedGraph }

// MissingExchangeRateError reports a currency pair the rate table cannot convert.
type MissingExchangeRateError struct {
	From string
	To   string
}

func (e *MissingExchangeRateError) Error() string {
	return fmt.Sprintf("no exchange rate path from %s to %s", e.From, e.To)
}

func (e *MissingExchangeRateError) Is(target error) bool { return target == ErrMissingExchangeRate }

// UnknownAlgorithmError reports an algorithm name outside the supported set.
type UnknownAlgorithmError struct {
	Name string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown algorithm %q (want minCashFlow, greedy or friendPreference)", e.Name)
}

func (e *UnknownAlgorithmError) Is(target error) bool { return target == ErrUnknownAlgorithm }

// InvalidFriendshipError reports a strength outside [0, 1] or a malformed pair.
type InvalidFriendshipError struct {
	Key    string
	Reason string
}

func (e *InvalidFriendshipError) Error() string {
	return fmt.Sprintf("invalid friendship %q: %s", e.Key, e.Reason)
}

func (e *InvalidFriendshipError) Is(target error) bool { return target == ErrInvalidFriendship }

// InvalidExchangeRateError reports a malformed rate table key or a
// non-positive rate.
type InvalidExchangeRateError struct {
	Key    string
	Reason string
}

func (e *InvalidExchangeRateError) Error() string {
	return fmt.Sprintf("invalid exchange rate %q: %s", e.Key, e.Reason)
}

func (e *InvalidExchangeRateError) Is(target error) bool { return target == ErrInvalidExchangeRate }

// InvalidCurrencyError reports a currency code that is not three letters.
type InvalidCurrencyError struct {
	Code string
	// Role names what the currency was for, e.g. "working".
	Role string
}

func (e *InvalidCurrencyError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("invalid currency %q", e.Code)
	}
	return fmt.Sprintf("invalid %s currency %q", e.Role, e.Code)
}

func (e *InvalidCurrencyError) Is(target error) bool { return target == ErrInvalidCurrency }

// ConservationError is raised when a computed plan fails verification. It
// indicates a bug in a strategy, not bad input.
type ConservationError struct {
	Algorithm string
	UserID    string
	Residual  decimal.Decimal
	Reason    string
}

func (e *ConservationError) Error() string {
	if e.UserID == "" {
		return fmt.Sprintf("%s plan rejected: %s", e.Algorithm, e.Reason)
	}
	return fmt.Sprintf("%s plan leaves %s with residual %s: %s", e.Algorithm, e.UserID, e.Residual.String(), e.Reason)
}

func (e *ConservationError) Is(target error) bool { return target == ErrConservation }

// IsInputError reports whether err is a structural input error a caller can fix.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDebt) ||
		errors.Is(err, ErrUnbalancedGraph) ||
		errors.Is(err, ErrMissingExchangeRate) ||
		errors.Is(err, ErrUnknownAlgorithm) ||
		errors.Is(err, ErrInvalidFriendship) ||
		errors.Is(err, ErrInvalidExchangeRate) ||
		errors.Is(err, ErrInvalidCurrency)
}
