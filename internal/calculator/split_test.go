package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

func near(got decimal.Decimal, want string) bool {
	return models.IsNegligible(got.Sub(decimal.RequireFromString(want)))
}

func TestCalculateSplit(t *testing.T) {
	tests := []struct {
		name         string
		items        []models.Item
		billTotal    string
		billSubtotal string
		participants []string
		wantErr      bool
		validateFunc func(t *testing.T, splits map[string]*models.PersonSplit)
	}{
		{
			name: "simple two-person split with tax",
			items: []models.Item{
				{Description: "Pizza", Amount: dec("20"), Participants: []string{"Alice", "Bob"}},
				{Description: "Salad", Amount: dec("10"), Participants: []string{"Alice"}},
			},
			billTotal:    "33",
			billSubtotal: "30",
			participants: []string{"Alice", "Bob"},
			validateFunc: func(t *testing.T, splits map[string]*models.PersonSplit) {
				// Alice: subtotal = 10 + 10 = 20, tax = 20 * (3/30) = 2, total = 22
				// Bob: subtotal = 10, tax = 10 * (3/30) = 1, total = 11
				alice := splits["Alice"]
				if !near(alice.Subtotal, "20") {
					t.Errorf("Alice subtotal = %v, want 20", alice.Subtotal)
				}
				if !near(alice.Tax, "2") {
					t.Errorf("Alice tax = %v, want 2", alice.Tax)
				}
				if !near(alice.Total, "22") {
					t.Errorf("Alice total = %v, want 22", alice.Total)
				}

				bob := splits["Bob"]
				if !near(bob.Subtotal, "10") {
					t.Errorf("Bob subtotal = %v, want 10", bob.Subtotal)
				}
				if !near(bob.Total, "11") {
					t.Errorf("Bob total = %v, want 11", bob.Total)
				}
			},
		},
		{
			name:         "zero subtotal should error",
			items:        []models.Item{{Description: "Item", Amount: dec("10"), Participants: []string{"Alice"}}},
			billTotal:    "10",
			billSubtotal: "0",
			participants: []string{"Alice"},
			wantErr:      true,
		},
		{
			name:         "no participants should error",
			items:        []models.Item{{Description: "Item", Amount: dec("10"), Participants: []string{"Alice"}}},
			billTotal:    "10",
			billSubtotal: "10",
			participants: []string{},
			wantErr:      true,
		},
		{
			name:         "item for unknown participant is ignored",
			items:        []models.Item{{Description: "Wine", Amount: dec("10"), Participants: []string{"Mallory"}}},
			billTotal:    "10",
			billSubtotal: "10",
			participants: []string{"Alice"},
			validateFunc: func(t *testing.T, splits map[string]*models.PersonSplit) {
				if len(splits) != 1 || !splits["Alice"].Total.IsZero() {
					t.Errorf("splits = %v, want Alice at zero only", splits)
				}
			},
		},
		{
			name:         "no items - split equally among participants",
			billTotal:    "33",
			billSubtotal: "30",
			participants: []string{"Alice", "Bob"},
			validateFunc: func(t *testing.T, splits map[string]*models.PersonSplit) {
				// Total bill = 33, split between 2 people = 16.50 each
				// Subtotal = 30, split between 2 = 15 each
				// Tax = 3, split between 2 = 1.50 each
				for _, person := range []string{"Alice", "Bob"} {
					split := splits[person]
					if !near(split.Subtotal, "15") {
						t.Errorf("%s subtotal = %v, want 15", person, split.Subtotal)
					}
					if !near(split.Tax, "1.5") {
						t.Errorf("%s tax = %v, want 1.5", person, split.Tax)
					}
					if !near(split.Total, "16.5") {
						t.Errorf("%s total = %v, want 16.5", person, split.Total)
					}
				}
			},
		},
		{
			name:         "no items - three people split",
			billTotal:    "90",
			billSubtotal: "75",
			participants: []string{"Alice", "Bob", "Charlie"},
			validateFunc: func(t *testing.T, splits map[string]*models.PersonSplit) {
				for _, person := range []string{"Alice", "Bob", "Charlie"} {
					split := splits[person]
					if !near(split.Subtotal, "25") {
						t.Errorf("%s subtotal = %v, want 25", person, split.Subtotal)
					}
					if !near(split.Tax, "5") {
						t.Errorf("%s tax = %v, want 5", person, split.Tax)
					}
					if !near(split.Total, "30") {
						t.Errorf("%s total = %v, want 30", person, split.Total)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := CalculateSplit(tt.items, dec(tt.billTotal), dec(tt.billSubtotal), tt.participants)
			if (err != nil) != tt.wantErr {
				t.Errorf("CalculateSplit() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestSplitExpense(t *testing.T) {
	tests := []struct {
		name    string
		expense models.Expense
		want    []edge
		wantErr bool
	}{
		{
			name: "itemized with tax",
			expense: models.Expense{
				Title:    "Dinner",
				PayerID:  "Alice",
				Currency: "usd",
				Total:    dec("33"),
				Subtotal: dec("30"),
				Items: []models.Item{
					{Description: "Pizza", Amount: dec("20"), Participants: []string{"Alice", "Bob"}},
					{Description: "Salad", Amount: dec("10"), Participants: []string{"Alice"}},
				},
				Participants: []string{"Alice", "Bob"},
			},
			want: []edge{{"Bob", "Alice", "11.00"}},
		},
		{
			name: "equal split rounds to cents",
			expense: models.Expense{
				PayerID:      "Alice",
				Currency:     "EUR",
				Total:        dec("100"),
				Participants: []string{"Alice", "Bob", "Charlie"},
			},
			want: []edge{{"Bob", "Alice", "33.33"}, {"Charlie", "Alice", "33.33"}},
		},
		{
			name: "duplicate participants counted once",
			expense: models.Expense{
				PayerID:      "Bob",
				Currency:     "USD",
				Total:        dec("20"),
				Participants: []string{"Alice", "Bob", "Alice", ""},
			},
			want: []edge{{"Alice", "Bob", "10.00"}},
		},
		{
			name:    "missing payer",
			expense: models.Expense{Currency: "USD", Total: dec("10"), Participants: []string{"Alice"}},
			wantErr: true,
		},
		{
			name:    "zero total",
			expense: models.Expense{PayerID: "Alice", Currency: "USD", Total: dec("0"), Participants: []string{"Bob"}},
			wantErr: true,
		},
		{
			name:    "bad currency",
			expense: models.Expense{PayerID: "Alice", Currency: "dollars", Total: dec("10"), Participants: []string{"Bob"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debts, err := SplitExpense(tt.expense)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SplitExpense() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := debtEdges(debts)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitExpense() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("debt %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
			for _, d := range debts {
				if d.Currency != "USD" && d.Currency != "EUR" {
					t.Errorf("debt currency = %q, want normalized code", d.Currency)
				}
			}
		})
	}
}
