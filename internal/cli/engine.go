package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
)

type planOutput struct {
	Algorithm       calculator.Algorithm `json:"algorithm"`
	WorkingCurrency string               `json:"working_currency"`
	Settlements     []models.Settlement  `json:"settlements"`
}

type resultOutput struct {
	Algorithm             calculator.Algorithm `json:"algorithm"`
	TransactionCount      int                  `json:"transaction_count"`
	TotalAmount           decimal.Decimal      `json:"total_amount"`
	FriendshipUtilization decimal.Decimal      `json:"friendship_utilization"`
	Settlements           []models.Settlement  `json:"settlements"`
}

type compareOutput struct {
	WorkingCurrency string               `json:"working_currency"`
	Recommended     calculator.Algorithm `json:"recommended"`
	Results         []resultOutput       `json:"results"`
}

func newPlanCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a settlement plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts)
		},
	}
	inputFlags(cmd, opts)
	cmd.Flags().StringVar(&opts.algorithm, "algorithm", string(calculator.MinCashFlow), "minCashFlow, greedy or friendPreference")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "Preferred payout currency")
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every algorithm and recommend one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, opts)
		},
	}
	inputFlags(cmd, opts)
	return cmd
}

func newSimplifyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simplify",
		Short: "Cancel circular debts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSimplify(cmd, opts)
		},
	}
	inputFlags(cmd, opts)
	return cmd
}

func newBalancesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show net balances in the working currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBalances(cmd, opts)
		},
	}
	inputFlags(cmd, opts)
	return cmd
}

func (o *options) engineOptions() []calculator.Option {
	var out []calculator.Option
	if o.working != "" {
		out = append(out, calculator.WithWorkingCurrency(o.working))
	}
	if o.currency != "" {
		out = append(out, calculator.WithPreferredCurrency(o.currency))
	}
	return out
}

func readGraph(cmd *cobra.Command, opts *options) (*Input, *models.DebtGraph, error) {
	in, err := loadInput(opts.inputPath, cmd.InOrStdin())
	if err != nil {
		return nil, nil, err
	}
	g, err := in.Graph()
	if err != nil {
		return nil, nil, err
	}
	return in, g, nil
}

func runPlan(cmd *cobra.Command, opts *options) error {
	in, g, err := readGraph(cmd, opts)
	if err != nil {
		return err
	}
	plan, err := calculator.Calculate(g, in.ExchangeRates, opts.algorithm, in.Friendships, opts.engineOptions()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(out, planOutput{
			Algorithm:       plan.Algorithm,
			WorkingCurrency: plan.WorkingCurrency,
			Settlements:     plan.Settlements,
		})
	}
	fmt.Fprintf(out, "%s plan in %s: %d payments\n", plan.Algorithm, plan.WorkingCurrency, len(plan.Settlements))
	writeSettlements(out, plan.Settlements)
	return nil
}

func runCompare(cmd *cobra.Command, opts *options) error {
	in, g, err := readGraph(cmd, opts)
	if err != nil {
		return err
	}
	cmp, err := calculator.CompareAlgorithms(g, in.ExchangeRates, in.Friendships, opts.engineOptions()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		res := compareOutput{WorkingCurrency: cmp.WorkingCurrency, Recommended: cmp.Recommended}
		for _, a := range calculator.Algorithms {
			r := cmp.Results[a]
			res.Results = append(res.Results, resultOutput{
				Algorithm:             a,
				TransactionCount:      r.Metrics.TransactionCount,
				TotalAmount:           r.Metrics.TotalAmount,
				FriendshipUtilization: r.Metrics.FriendshipUtilization,
				Settlements:           r.Settlements,
			})
		}
		return writeJSON(out, res)
	}
	for _, a := range calculator.Algorithms {
		r := cmp.Results[a]
		marker := " "
		if a == cmp.Recommended {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-16s payments=%d total=%s %s friendship=%s\n",
			marker, a, r.Metrics.TransactionCount, money(r.Metrics.TotalAmount), cmp.WorkingCurrency,
			r.Metrics.FriendshipUtilization.StringFixed(2))
		writeSettlements(out, r.Settlements)
	}
	fmt.Fprintf(out, "recommended: %s\n", cmp.Recommended)
	return nil
}

func runSimplify(cmd *cobra.Command, opts *options) error {
	_, g, err := readGraph(cmd, opts)
	if err != nil {
		return err
	}
	simplified, err := calculator.SimplifyCircularDebts(g)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(out, simplified.Debts())
	}
	fmt.Fprintf(out, "%d debts -> %d debts\n", g.Len(), simplified.Len())
	for _, d := range simplified.Debts() {
		fmt.Fprintf(out, "  %s owes %s %s %s\n", d.From, d.To, money(d.Amount), d.Currency)
	}
	return nil
}

func runBalances(cmd *cobra.Command, opts *options) error {
	in, g, err := readGraph(cmd, opts)
	if err != nil {
		return err
	}
	sheet, err := calculator.NetBalances(g, in.ExchangeRates, opts.engineOptions()...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		return writeJSON(out, sheet)
	}
	for _, e := range sheet.Entries {
		fmt.Fprintf(out, "%s %s %s\n", e.UserID, money(e.Amount), sheet.Currency)
	}
	return nil
}

func writeSettlements(out io.Writer, settlements []models.Settlement) {
	for _, s := range settlements {
		fmt.Fprintf(out, "  %s pays %s %s %s", s.PayerID, s.ReceiverID, money(s.Amount), s.Currency)
		if s.Converted() {
			fmt.Fprintf(out, " (%s %s)", money(*s.OriginalAmount), s.OriginalCurrency)
		}
		fmt.Fprintln(out)
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
