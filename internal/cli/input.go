package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mmynk/settleup/internal/models"
)

// Input is the JSON document the engine commands read.
type Input struct {
	// Users are listed first in every output; debt endpoints must be among them
	// unless the list is empty.
	Users         []string                   `json:"users"`
	Debts         []models.Debt              `json:"debts"`
	ExchangeRates models.ExchangeRateTable   `json:"exchange_rates"`
	Friendships   models.FriendshipStrengths `json:"friendships"`
}

// Graph builds the debt graph. Without a users list the users are taken from
// the debts in order of appearance.
func (in *Input) Graph() (*models.DebtGraph, error) {
	if len(in.Users) == 0 {
		return models.GraphFromDebts(in.Debts)
	}
	return models.NewDebtGraph(in.Users, in.Debts)
}

// ReadInput decodes an input document. Unknown fields are rejected.
func ReadInput(r io.Reader) (*Input, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	in := &Input{}
	if err := dec.Decode(in); err != nil {
		return nil, fmt.Errorf("failed to decode input: %w", err)
	}
	return in, nil
}

func loadInput(path string, stdin io.Reader) (*Input, error) {
	if path == "-" {
		return ReadInput(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()
	return ReadInput(f)
}
