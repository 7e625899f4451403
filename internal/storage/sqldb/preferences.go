package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// SetPreference creates or replaces a user's preference.
func (s *Store) SetPreference(ctx context.Context, pref *models.Preference) error {
	pref.UpdatedAt = time.Now().Unix()
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO preferences (user_id, algorithm, currency, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET algorithm = excluded.algorithm, currency = excluded.currency, updated_at = excluded.updated_at`),
		pref.UserID, pref.Algorithm, pref.Currency, pref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}

// GetPreference retrieves a user's preference.
func (s *Store) GetPreference(ctx context.Context, userID string) (*models.Preference, error) {
	pref := &models.Preference{}
	err := s.db.QueryRowContext(ctx,
		s.rebind("SELECT user_id, algorithm, currency, updated_at FROM preferences WHERE user_id = ?"),
		userID,
	).Scan(&pref.UserID, &pref.Algorithm, &pref.Currency, &pref.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("preference for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preference: %w", err)
	}
	return pref, nil
}
