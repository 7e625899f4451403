// Package models defines the plain data types shared by the settlement engine,
// the storage layer and the services.
//
// # Engine inputs
//
//   - DebtGraph: users plus an ordered sequence of Debt edges ("from owes to")
//   - ExchangeRateTable: "BASE_QUOTE" keyed multiplicative rates
//   - FriendshipStrengths: unordered user pair -> affinity in [0, 1]
//
// # Engine outputs
//
//   - BalanceSheet: one signed net balance per user (positive = is owed money)
//   - Settlement: one proposed payment from a payer to a receiver
//
// # Records
//
// Group, DebtRecord, Expense and Preference are what the services persist and
// turn into engine inputs. They never reach the engine directly.
//
// All amounts are decimal.Decimal. Tolerance is only used for zero comparisons.
package models
