package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// PutExchangeRate upserts the rate for base -> quote.
func (s *Store) PutExchangeRate(ctx context.Context, base, quote string, rate decimal.Decimal) error {
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO exchange_rates (base, quote, rate, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (base, quote) DO UPDATE SET rate = excluded.rate, updated_at = excluded.updated_at`),
		base, quote, rate.String(), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to put exchange rate: %w", err)
	}
	return nil
}

// ListExchangeRates returns every stored rate keyed "BASE_QUOTE".
func (s *Store) ListExchangeRates(ctx context.Context) (models.ExchangeRateTable, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT base, quote, rate FROM exchange_rates")
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	rates := models.ExchangeRateTable{}
	for rows.Next() {
		var base, quote string
		var rate decimal.Decimal
		if err := rows.Scan(&base, &quote, &rate); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		rates[models.RateKey(base, quote)] = rate
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchange rates: %w", err)
	}
	return rates, nil
}
