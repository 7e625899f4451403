package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// DefaultWorkingCurrency is used for graphs without debts when no working
// currency is requested.
const DefaultWorkingCurrency = "USD"

var one = decimal.NewFromInt(1)

// Provenance remembers which currencies debts were originally denominated in,
// per ordered user pair and per user, so a settlement can later be paid in the
// currency that pair actually transacts in.
type Provenance struct {
	pairs map[string]map[string]int
	users map[string]map[string]int
	// rank orders currencies by first appearance; it breaks frequency ties.
	rank map[string]int
}

func newProvenance() *Provenance {
	return &Provenance{
		pairs: make(map[string]map[string]int),
		users: make(map[string]map[string]int),
		rank:  make(map[string]int),
	}
}

func (p *Provenance) record(from, to, currency string) {
	if _, ok := p.rank[currency]; !ok {
		p.rank[currency] = len(p.rank)
	}
	bump(p.pairs, from+"\x00"+to, currency)
	bump(p.users, from, currency)
	bump(p.users, to, currency)
}

func bump(m map[string]map[string]int, key, currency string) {
	counts, ok := m[key]
	if !ok {
		counts = make(map[string]int)
		m[key] = counts
	}
	counts[currency]++
}

// PairCounts returns how many debts from -> to were recorded per currency.
func (p *Provenance) PairCounts(from, to string) map[string]int {
	out := make(map[string]int)
	for c, n := range p.pairs[from+"\x00"+to] {
		out[c] = n
	}
	return out
}

// PairCurrency returns the most frequent currency between a and b, counting
// debts in both directions.
func (p *Provenance) PairCurrency(a, b string) (string, bool) {
	merged := make(map[string]int)
	for c, n := range p.pairs[a+"\x00"+b] {
		merged[c] += n
	}
	for c, n := range p.pairs[b+"\x00"+a] {
		merged[c] += n
	}
	return p.mostFrequent(merged)
}

// UserCurrency returns the currency a user's debts were most often in.
func (p *Provenance) UserCurrency(u string) (string, bool) {
	return p.mostFrequent(p.users[u])
}

func (p *Provenance) mostFrequent(counts map[string]int) (string, bool) {
	best, bestN := "", 0
	for c, n := range counts {
		if n > bestN || (n == bestN && p.rank[c] < p.rank[best]) {
			best, bestN = c, n
		}
	}
	return best, bestN > 0
}

// Normalized is a single-currency graph plus the provenance of its debts.
type Normalized struct {
	Graph           *models.DebtGraph
	WorkingCurrency string
	Provenance      *Provenance
	// MultiCurrency is true when the source graph used more than one currency
	// or a currency other than the working one.
	MultiCurrency bool
}

// DominantCurrency returns the most frequent debt currency, first seen winning
// ties, or DefaultWorkingCurrency for an empty graph.
func DominantCurrency(g *models.DebtGraph) string {
	counts := make(map[string]int)
	best, bestN := DefaultWorkingCurrency, 0
	for _, d := range g.Debts() {
		counts[d.Currency]++
	}
	for _, c := range g.Currencies() {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best
}

// Normalize converts every debt into the working currency. An empty working
// currency selects DominantCurrency. A debt whose currency cannot be reached
// through the rate table fails with MissingExchangeRateError.
func Normalize(g *models.DebtGraph, rates models.ExchangeRateTable, working string) (*Normalized, error) {
	rates, err := rates.Validate()
	if err != nil {
		return nil, fmt.Errorf("failed to validate exchange rates: %w", err)
	}
	if working == "" {
		working = DominantCurrency(g)
	}
	working, ok := models.NormalizeCurrency(working)
	if !ok {
		return nil, &models.InvalidCurrencyError{Code: working, Role: "working"}
	}

	prov := newProvenance()
	src := g.Debts()
	debts := make([]models.Debt, len(src))
	multi := false
	for i, d := range src {
		prov.record(d.From, d.To, d.Currency)
		if d.Currency != working {
			multi = true
			converted, _, err := Convert(rates, d.Amount, d.Currency, working)
			if err != nil {
				return nil, err
			}
			d.Amount = converted
			d.Currency = working
		}
		debts[i] = d
	}

	out, err := g.WithDebts(debts)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild normalized graph: %w", err)
	}
	return &Normalized{Graph: out, WorkingCurrency: working, Provenance: prov, MultiCurrency: multi}, nil
}

// Convert converts amount from one currency to another and returns the
// converted amount with the effective rate used.
func Convert(rates models.ExchangeRateTable, amount decimal.Decimal, from, to string) (decimal.Decimal, decimal.Decimal, error) {
	rate, err := ResolveRate(rates, from, to)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return amount.Mul(rate), rate, nil
}

// ResolveRate finds the multiplicative rate from -> to using, in order: the
// direct pair, the inverse pair (1/rate), or one intermediate currency whose
// two legs are each direct or inverse.
func ResolveRate(rates models.ExchangeRateTable, from, to string) (decimal.Decimal, error) {
	if from == to {
		return one, nil
	}
	if r, ok := legRate(rates, from, to); ok {
		return r, nil
	}
	for _, via := range intermediates(rates, from, to) {
		first, ok := legRate(rates, from, via)
		if !ok {
			continue
		}
		second, ok := legRate(rates, via, to)
		if !ok {
			continue
		}
		return first.Mul(second), nil
	}
	return decimal.Zero, &models.MissingExchangeRateError{From: from, To: to}
}

func legRate(rates models.ExchangeRateTable, from, to string) (decimal.Decimal, bool) {
	if r, ok := rates.Direct(from, to); ok {
		return r, true
	}
	if r, ok := rates.Direct(to, from); ok {
		return one.Div(r), true
	}
	return decimal.Zero, false
}

// intermediates lists the currencies in the table other than from and to, in
// sorted key order.
func intermediates(rates models.ExchangeRateTable, from, to string) []string {
	seen := map[string]bool{from: true, to: true}
	var out []string
	for _, key := range rates.Keys() {
		base, quote, err := models.ParseRateKey(key)
		if err != nil {
			continue
		}
		for _, c := range []string{base, quote} {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

// Redenominate moves each settlement into the currency most natural for it:
// the currency its payer and receiver transacted in, else the payer's usual
// currency, else preferred, else it stays in the working currency. Converted
// settlements keep OriginalAmount, OriginalCurrency and ExchangeRate.
func Redenominate(settlements []models.Settlement, prov *Provenance, rates models.ExchangeRateTable, preferred string) ([]models.Settlement, error) {
	rates, err := rates.Validate()
	if err != nil {
		return nil, fmt.Errorf("failed to validate exchange rates: %w", err)
	}
	out := make([]models.Settlement, len(settlements))
	for i, s := range settlements {
		target := targetCurrency(s, prov, preferred)
		out[i], err = convertSettlement(s, rates, target)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RedenominateTo converts every settlement into currency.
func RedenominateTo(settlements []models.Settlement, rates models.ExchangeRateTable, currency string) ([]models.Settlement, error) {
	return Redenominate(settlements, nil, rates, currency)
}

func targetCurrency(s models.Settlement, prov *Provenance, preferred string) string {
	if prov != nil {
		if c, ok := prov.PairCurrency(s.PayerID, s.ReceiverID); ok {
			return c
		}
		if c, ok := prov.UserCurrency(s.PayerID); ok {
			return c
		}
	}
	if c, ok := models.NormalizeCurrency(preferred); ok {
		return c
	}
	return s.Currency
}

func convertSettlement(s models.Settlement, rates models.ExchangeRateTable, target string) (models.Settlement, error) {
	if s.Converted() {
		// Always convert from the working amount so repeated calls do not compound.
		s = models.Settlement{PayerID: s.PayerID, ReceiverID: s.ReceiverID, Amount: *s.OriginalAmount, Currency: s.OriginalCurrency}
	}
	if target == s.Currency {
		return s, nil
	}
	converted, rate, err := Convert(rates, s.Amount, s.Currency, target)
	if err != nil {
		return models.Settlement{}, err
	}
	original := s.Amount
	return models.Settlement{
		PayerID:          s.PayerID,
		ReceiverID:       s.ReceiverID,
		Amount:           converted,
		Currency:         target,
		OriginalAmount:   &original,
		OriginalCurrency: s.Currency,
		ExchangeRate:     &rate,
	}, nil
}
