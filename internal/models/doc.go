// Package models defines the core domain models for booth settlements.
//
// # Inputs
//
// The settlement engine reads three kinds of records supplied by the caller:
//   - SaleLine: one line of the principal's inventory sold at the booth (native currency)
//   - AssociateEntry: an ad-hoc amount attributed to an associate (secondary currency)
//   - Contract: the ordered clauses (or legacy terms) governing the split
//
// # Records
//
// The service persists a few records around the engine:
//   - Associate: the partner a settlement is made with
//   - Settlement: a saved, confirmed settlement and its materialized lines
//   - Payout: money handed to an associate against their balance
//   - Operator: an authenticated user of the service
//   - Preferences: an operator's last used associate and contract
//
// # Design Principles
//
//  1. Money is always decimal.Decimal, never float64.
//  2. Relationships use ID strings instead of pointers.
//  3. Derived values (rows, breakdowns) live in the calculator package and are never stored as-is.
package models
