package sqldb

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// SetFriendship upserts the strength of an unordered pair within a group.
func (s *Store) SetFriendship(ctx context.Context, groupID, a, b string, strength decimal.Decimal) error {
	if b < a {
		a, b = b, a
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind(`INSERT INTO friendships (group_id, user_a, user_b, strength) VALUES (?, ?, ?, ?)
		 ON CONFLICT (group_id, user_a, user_b) DO UPDATE SET strength = excluded.strength`),
		groupID, a, b, strength.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to set friendship: %w", err)
	}
	return nil
}

// ListFriendships returns the strengths recorded for a group.
func (s *Store) ListFriendships(ctx context.Context, groupID string) (models.FriendshipStrengths, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind("SELECT user_a, user_b, strength FROM friendships WHERE group_id = ?"),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}
	defer rows.Close()

	friendships := models.FriendshipStrengths{}
	for rows.Next() {
		var a, b string
		var strength decimal.Decimal
		if err := rows.Scan(&a, &b, &strength); err != nil {
			return nil, fmt.Errorf("failed to scan friendship: %w", err)
		}
		friendships.Set(a, b, strength)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate friendships: %w", err)
	}
	return friendships, nil
}
