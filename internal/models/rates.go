package models

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ExchangeRateTable maps "BASE_QUOTE" to a rate such that
// amount_in_quote = amount_in_base * rate.
type ExchangeRateTable map[string]decimal.Decimal

// RateKey returns the table key for base -> quote.
func RateKey(base, quote string) string {
	return base + "_" + quote
}

// ParseRateKey splits a "BASE_QUOTE" key into normalized codes.
func ParseRateKey(key string) (base, quote string, err error) {
	parts := strings.Split(key, "_")
	if len(parts) != 2 {
		return "", "", &InvalidExchangeRateError{Key: key, Reason: "want BASE_QUOTE"}
	}
	base, okBase := NormalizeCurrency(parts[0])
	quote, okQuote := NormalizeCurrency(parts[1])
	if !okBase || !okQuote {
		return "", "", &InvalidExchangeRateError{Key: key, Reason: "invalid currency code"}
	}
	if base == quote {
		return "", "", &InvalidExchangeRateError{Key: key, Reason: "base equals quote"}
	}
	return base, quote, nil
}

// Validate checks every key and rate and returns a table with normalized keys.
func (t ExchangeRateTable) Validate() (ExchangeRateTable, error) {
	out := make(ExchangeRateTable, len(t))
	for key, rate := range t {
		base, quote, err := ParseRateKey(key)
		if err != nil {
			return nil, err
		}
		if !rate.IsPositive() {
			return nil, &InvalidExchangeRateError{Key: key, Reason: "rate must be positive, got " + rate.String()}
		}
		out[RateKey(base, quote)] = rate
	}
	return out, nil
}

// Direct returns the rate stored for base -> quote.
func (t ExchangeRateTable) Direct(base, quote string) (decimal.Decimal, bool) {
	r, ok := t[RateKey(base, quote)]
	return r, ok
}

// Keys returns the table keys sorted, for stable iteration.
func (t ExchangeRateTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
