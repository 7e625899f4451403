package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/models"
)

const tripInput = `{
  "users": ["alice", "bob", "carol"],
  "debts": [
    {"from": "alice", "to": "carol", "amount": "100", "currency": "USD"},
    {"from": "bob", "to": "carol", "amount": 50, "currency": "usd"}
  ]
}`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run executes the command line against a fresh command tree.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPlanText(t *testing.T) {
	out, err := run(t, "", "plan", "-f", writeInput(t, tripInput))
	require.NoError(t, err)

	want := "minCashFlow plan in USD: 2 payments\n" +
		"  alice pays carol 100.00 USD\n" +
		"  bob pays carol 50.00 USD\n"
	assert.Equal(t, want, out)
}

func TestPlanJSONFromStdin(t *testing.T) {
	out, err := run(t, tripInput, "plan", "-f", "-", "--algorithm", "greedy", "--json")
	require.NoError(t, err)

	var got planOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "greedy", string(got.Algorithm))
	assert.Equal(t, "USD", got.WorkingCurrency)
	require.Len(t, got.Settlements, 2)
	assert.Equal(t, "alice", got.Settlements[0].PayerID)
	assert.True(t, got.Settlements[0].Amount.Equal(decimal.NewFromInt(100)), "got %s", got.Settlements[0].Amount)
}

func TestPlanErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  error
	}{
		{name: "unknown algorithm", input: tripInput, args: []string{"--algorithm", "magic"}, want: models.ErrUnknownAlgorithm},
		{
			name:  "unknown user",
			input: `{"users": ["alice"], "debts": [{"from": "alice", "to": "bob", "amount": "5", "currency": "USD"}]}`,
			want:  models.ErrInvalidDebt,
		},
		{
			name:  "missing rate",
			input: `{"debts": [{"from": "a", "to": "b", "amount": "5", "currency": "USD"}, {"from": "b", "to": "a", "amount": "1", "currency": "JPY"}]}`,
			want:  models.ErrMissingExchangeRate,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"plan", "-f", writeInput(t, tt.input)}, tt.args...)
			_, err := run(t, "", args...)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPlanRequiresFile(t *testing.T) {
	_, err := run(t, "", "plan")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	input := `{
  "debts": [
    {"from": "A", "to": "B", "amount": "50", "currency": "USD"},
    {"from": "C", "to": "D", "amount": "50", "currency": "USD"}
  ],
  "friendships": {"A_D": "0.9", "B_C": "0.8"}
}`
	out, err := run(t, "", "compare", "-f", writeInput(t, input))
	require.NoError(t, err)
	assert.Contains(t, out, "* friendPreference")
	assert.Contains(t, out, "  A pays D 50.00 USD")
	assert.True(t, strings.HasSuffix(out, "recommended: friendPreference\n"), out)

	out, err = run(t, "", "compare", "-f", writeInput(t, input), "--json")
	require.NoError(t, err)
	var got compareOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "friendPreference", string(got.Recommended))
	require.Len(t, got.Results, 3)
	assert.Equal(t, "greedy", string(got.Results[0].Algorithm))
}

func TestSimplify(t *testing.T) {
	input := `{"debts": [
    {"from": "A", "to": "B", "amount": "30", "currency": "USD"},
    {"from": "B", "to": "C", "amount": "20", "currency": "USD"},
    {"from": "C", "to": "A", "amount": "10", "currency": "USD"}
  ]}`
	out, err := run(t, "", "simplify", "-f", writeInput(t, input))
	require.NoError(t, err)

	want := "3 debts -> 2 debts\n" +
		"  A owes B 20.00 USD\n" +
		"  B owes C 10.00 USD\n"
	assert.Equal(t, want, out)
}

func TestBalances(t *testing.T) {
	out, err := run(t, "", "balances", "-f", writeInput(t, tripInput))
	require.NoError(t, err)

	want := "alice -100.00 USD\n" +
		"bob -50.00 USD\n" +
		"carol 150.00 USD\n"
	assert.Equal(t, want, out)
}

func TestReadInputRejectsUnknownFields(t *testing.T) {
	_, err := ReadInput(strings.NewReader(`{"debt": []}`))
	require.Error(t, err)
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := run(t, "", "token", "--user", "alice", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager("cli-secret", time.Hour).Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)

	_, err = run(t, "", "token")
	require.Error(t, err)
}
