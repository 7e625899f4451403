package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// AddDebt persists a new debt to the database. The group must exist.
func (s *Store) AddDebt(ctx context.Context, debt *models.DebtRecord) error {
	if debt.ID == "" {
		debt.ID = uuid.New().String()
	}
	if debt.CreatedAt == 0 {
		debt.CreatedAt = time.Now().UnixNano()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// seq keeps insertion order even when timestamps collide
	var seq int64
	err = tx.QueryRowContext(ctx,
		s.rebind("SELECT COALESCE(MAX(seq), 0) + 1 FROM debts WHERE group_id = ?"),
		debt.GroupID,
	).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to get debt sequence: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		s.rebind(`INSERT INTO debts (id, group_id, seq, from_user, to_user, amount, currency, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		debt.ID, debt.GroupID, seq, debt.From, debt.To, debt.Amount.String(), debt.Currency, debt.Description, debt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListDebts retrieves all debts of a group in insertion order.
func (s *Store) ListDebts(ctx context.Context, groupID string) ([]*models.DebtRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		s.rebind(`SELECT id, group_id, from_user, to_user, amount, currency, description, created_at
		 FROM debts WHERE group_id = ? ORDER BY seq`),
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	var debts []*models.DebtRecord
	for rows.Next() {
		debt := &models.DebtRecord{}
		if err := rows.Scan(&debt.ID, &debt.GroupID, &debt.From, &debt.To,
			&debt.Amount, &debt.Currency, &debt.Description, &debt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, debt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debts: %w", err)
	}
	return debts, nil
}

// DeleteDebt removes a debt by ID.
func (s *Store) DeleteDebt(ctx context.Context, groupID, debtID string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM debts WHERE id = ? AND group_id = ?"), debtID, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted debt: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("debt %s: %w", debtID, storage.ErrNotFound)
	}
	return nil
}
