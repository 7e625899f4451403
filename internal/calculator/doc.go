// Package calculator is the debt-settlement engine.
//
// Every function is pure: inputs are never mutated, no state is kept between
// calls and nothing blocks, so concurrent use with separate inputs is safe.
//
// Data flow:
//
//	DebtGraph -> SimplifyCircularDebts (optional)
//	          -> Normalize (single working currency + provenance)
//	          -> CalculateNetBalances -> CheckBalanced
//	          -> Strategy.Settle -> Verify
//	          -> Redenominate (optional)
package calculator
