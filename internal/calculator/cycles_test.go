package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

func TestSimplifyCircularDebts(t *testing.T) {
	tests := []struct {
		name  string
		debts []models.Debt
		want  []edge
	}{
		{
			name:  "equal three-cycle cancels completely",
			debts: []models.Debt{usd("A", "B", "50"), usd("B", "C", "50"), usd("C", "A", "50")},
			want:  []edge{},
		},
		{
			name:  "partial three-cycle keeps the remainder",
			debts: []models.Debt{usd("A", "B", "100"), usd("B", "C", "80"), usd("C", "A", "60")},
			want:  []edge{{"A", "B", "40.00"}, {"B", "C", "20.00"}},
		},
		{
			name:  "two-cycle nets the smaller side",
			debts: []models.Debt{usd("A", "B", "30"), usd("B", "A", "20")},
			want:  []edge{{"A", "B", "10.00"}},
		},
		{
			name:  "acyclic graph is unchanged",
			debts: []models.Debt{usd("user1", "user3", "100"), usd("user2", "user3", "50"), usd("user2", "user4", "30")},
			want:  []edge{{"user1", "user3", "100.00"}, {"user2", "user3", "50.00"}, {"user2", "user4", "30.00"}},
		},
		{
			name: "two overlapping cycles",
			debts: []models.Debt{
				usd("A", "B", "10"), usd("B", "A", "10"),
				usd("B", "C", "5"), usd("C", "B", "7"),
			},
			want: []edge{{"C", "B", "2.00"}},
		},
		{
			name:  "cycles never mix currencies",
			debts: []models.Debt{debt("A", "B", "50", "EUR"), debt("B", "A", "50", "USD")},
			want:  []edge{{"A", "B", "50.00"}, {"B", "A", "50.00"}},
		},
		{
			name:  "residue within tolerance is dropped",
			debts: []models.Debt{usd("A", "B", "50.005"), usd("B", "A", "50")},
			want:  []edge{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.debts...)
			out, err := SimplifyCircularDebts(g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, debtEdges(out.Debts()))
			assert.Equal(t, g.Users(), out.Users())
		})
	}
}

func TestSimplifyCircularDebtsIdempotent(t *testing.T) {
	g := mustGraph(t,
		usd("A", "B", "100"), usd("B", "C", "80"), usd("C", "A", "60"),
		usd("C", "D", "25"), usd("D", "B", "10"), usd("A", "D", "5"),
	)
	once, err := SimplifyCircularDebts(g)
	require.NoError(t, err)
	twice, err := SimplifyCircularDebts(once)
	require.NoError(t, err)

	assert.Equal(t, debtEdges(once.Debts()), debtEdges(twice.Debts()))
	assert.True(t, totalDebt(once.Debts()).LessThan(totalDebt(g.Debts())))
}

func TestSimplifyCircularDebtsPreservesBalances(t *testing.T) {
	g := mustGraph(t,
		usd("A", "B", "12.34"), usd("B", "C", "56.78"), usd("C", "A", "9.10"),
		usd("D", "A", "40"), usd("B", "D", "15"), usd("C", "D", "3.33"),
	)
	out, err := SimplifyCircularDebts(g)
	require.NoError(t, err)

	before := CalculateNetBalances(g)
	after := CalculateNetBalances(out)
	for _, e := range before.Entries {
		requireDecimal(t, e.Amount.String(), after.Of(e.UserID))
	}
}

func TestSimplifyCircularDebtsDoesNotMutateInput(t *testing.T) {
	g := mustGraph(t, usd("A", "B", "50"), usd("B", "C", "50"), usd("C", "A", "50"))
	_, err := SimplifyCircularDebts(g)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	requireDecimal(t, "50", g.Debts()[0].Amount)
}
