// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is wrapped by every lookup of a row that does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence the settlement services need: groups and
// their debts, exchange rates, friendships and user preferences.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the service layer.
type Store interface {
	// CreateGroup persists a new group. ID and CreatedAt are filled in when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members in join order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns every group, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// DeleteGroup removes a group with its members, debts and friendships.
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMembers adds members to a group, ignoring existing ones.
	AddGroupMembers(ctx context.Context, groupID string, members []string) error

	// AddDebt records a debt. ID and CreatedAt are filled in when empty.
	AddDebt(ctx context.Context, debt *models.DebtRecord) error

	// ListDebts returns a group's debts in insertion order.
	ListDebts(ctx context.Context, groupID string) ([]*models.DebtRecord, error)

	// DeleteDebt removes one debt of a group.
	DeleteDebt(ctx context.Context, groupID, debtID string) error

	// PutExchangeRate stores the rate for base -> quote, replacing any previous one.
	PutExchangeRate(ctx context.Context, base, quote string, rate decimal.Decimal) error

	// ListExchangeRates returns the whole rate table.
	ListExchangeRates(ctx context.Context) (models.ExchangeRateTable, error)

	// SetFriendship stores the strength between two members of a group.
	SetFriendship(ctx context.Context, groupID, a, b string, strength decimal.Decimal) error

	// ListFriendships returns a group's friendship strengths under canonical keys.
	ListFriendships(ctx context.Context, groupID string) (models.FriendshipStrengths, error)

	// SetPreference creates or replaces a user's preference.
	SetPreference(ctx context.Context, pref *models.Preference) error

	// GetPreference retrieves a user's preference.
	GetPreference(ctx context.Context, userID string) (*models.Preference, error)

	// Close releases any resources held by the store.
	Close() error
}
