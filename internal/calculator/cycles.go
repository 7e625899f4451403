package calculator

import "github.com/mmynk/settleup/internal/models"

// SimplifyCircularDebts cancels circular debt chains (A owes B owes C owes A).
//
// Algorithm, per currency:
// - Depth-first search over "owes" edges finds a directed cycle
// - The smallest amount on the cycle is subtracted from every cycle edge
// - Edges left within tolerance of zero are removed
// - Repeat until no cycle remains
//
// Each round removes at least one edge, so the loop terminates. Net balances
// are unchanged. An acyclic graph comes back with the same debts in the same
// order; surviving debts always keep their original order.
func SimplifyCircularDebts(g *models.DebtGraph) (*models.DebtGraph, error) {
	debts := g.Debts()
	alive := make([]bool, len(debts))
	for i := range alive {
		alive[i] = true
	}

	for _, currency := range g.Currencies() {
		for {
			cycle := findCycle(g.Users(), debts, alive, currency)
			if cycle == nil {
				break
			}
			cancelCycle(debts, alive, cycle)
		}
	}

	out := make([]models.Debt, 0, len(debts))
	for i, d := range debts {
		if alive[i] {
			out = append(out, d)
		}
	}
	return g.WithDebts(out)
}

// cancelCycle subtracts the cycle's minimum edge from each of its edges.
func cancelCycle(debts []models.Debt, alive []bool, cycle []int) {
	smallest := debts[cycle[0]].Amount
	for _, ei := range cycle[1:] {
		if debts[ei].Amount.LessThan(smallest) {
			smallest = debts[ei].Amount
		}
	}
	for _, ei := range cycle {
		debts[ei].Amount = debts[ei].Amount.Sub(smallest)
		if models.IsNegligible(debts[ei].Amount) {
			alive[ei] = false
		}
	}
}

// findCycle returns the edge indices of one directed cycle among live edges of
// the given currency, or nil if there is none. Users are visited in graph order
// and edges in debt order, so the result is deterministic.
func findCycle(users []string, debts []models.Debt, alive []bool, currency string) []int {
	adj := make(map[string][]int, len(users))
	for i, d := range debts {
		if alive[i] && d.Currency == currency {
			adj[d.From] = append(adj[d.From], i)
		}
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(users))
	// depth[u] is the length of path when u was entered; path[depth[u]] is
	// the edge leaving u along the current DFS path.
	depth := make(map[string]int, len(users))
	var path []int

	var visit func(u string) []int
	visit = func(u string) []int {
		color[u] = gray
		depth[u] = len(path)
		for _, ei := range adj[u] {
			v := debts[ei].To
			switch color[v] {
			case gray:
				cycle := make([]int, 0, len(path)-depth[v]+1)
				cycle = append(cycle, path[depth[v]:]...)
				return append(cycle, ei)
			case white:
				path = append(path, ei)
				if c := visit(v); c != nil {
					return c
				}
				path = path[:len(path)-1]
			}
		}
		color[u] = black
		return nil
	}

	for _, u := range users {
		if color[u] != white {
			continue
		}
		if c := visit(u); c != nil {
			return c
		}
	}
	return nil
}
