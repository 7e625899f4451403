package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// inputs is everything the engine needs for one group.
type inputs struct {
	group       *models.Group
	debts       []*models.DebtRecord
	rates       models.ExchangeRateTable
	friendships models.FriendshipStrengths
}

// need selects the optional inputs to load; the group and its debts are
// always loaded.
type need struct {
	rates       bool
	friendships bool
}

// loadInputs reads the inputs concurrently. The first error cancels the rest.
func loadInputs(ctx context.Context, store storage.Store, groupID string, n need) (*inputs, error) {
	in := &inputs{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		group, err := store.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		in.group = group
		return nil
	})
	g.Go(func() error {
		debts, err := store.ListDebts(ctx, groupID)
		if err != nil {
			return err
		}
		in.debts = debts
		return nil
	})
	if n.rates {
		g.Go(func() error {
			rates, err := store.ListExchangeRates(ctx)
			if err != nil {
				return err
			}
			in.rates = rates
			return nil
		})
	}
	if n.friendships {
		g.Go(func() error {
			friendships, err := store.ListFriendships(ctx, groupID)
			if err != nil {
				return err
			}
			in.friendships = friendships
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return in, nil
}

// loadPreference returns the caller's stored preference, or nil for anonymous
// callers and users without one.
func loadPreference(ctx context.Context, store storage.Store, userID string) (*models.Preference, error) {
	if userID == "" {
		return nil, nil
	}
	pref, err := store.GetPreference(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return pref, nil
}

// graph builds the engine graph: group members in join order, debts in
// insertion order.
func (in *inputs) graph() (*models.DebtGraph, error) {
	debts := make([]models.Debt, len(in.debts))
	for i, r := range in.debts {
		debts[i] = r.Debt()
	}
	g, err := models.NewDebtGraph(in.group.Members, debts)
	if err != nil {
		return nil, fmt.Errorf("failed to build debt graph for group %s: %w", in.group.ID, err)
	}
	return g, nil
}
