// Package statements turns broker account statements into one account history
// and derives positions and money-flow totals from it.
//
// The core functionalities include:
//   - Line-Item Model: cash flows, equity trades and currency exchanges, signed
//     from the account point of view and validated on construction.
//   - Merge: overlapping daily statements are combined into a single Snapshot
//     where every trade appears once (see Reconciler).
//   - Aggregation: cash flow totals per venue and currency, own money inflows,
//     currency exchange positions with their average strike, and equity
//     positions with the amounts paid (see CashflowTotals, FxTotals and
//     EquityTotals).
//   - Valuation: open positions valued with live quotes supplied by an
//     Instrument (see Value).
//   - Data Persistence: snapshots encoded as JSONL, record lists as CSV.
//
// Statements are parsed by the broker package, quotes come from the moex
// package. This package serves as the foundational logic for the `stm`
// command-line tool.
package statements
