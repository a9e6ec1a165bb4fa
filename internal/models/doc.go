// Package models defines the core domain models for motoledger.
//
// # Models
//
//   - Motorbike: a tracked purchase with its cost history and resale state
//   - Part: a cost line item attributed to one of the two buyers
//   - User: a registered account, used only to gate access
//
// Derived values (parts totals, profit, shares) are never stored on these
// types; the calculator package recomputes them from a snapshot on demand.
//
// # Design Principles
//
// 1. **Exact money**: amounts are decimal.Decimal, never float64
// 2. **Plain values**: relationships use ID strings, parts are owned by value
// 3. **Latest schema**: older schema variants are a strict subset of these fields
package models
