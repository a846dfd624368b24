// Package cgt computes UK Capital Gains Tax outcomes for a sequence of
// stock and share transactions, applying HMRC's share identification rules.
//
// The core functionalities include:
//   - Share Identification: matching each disposal against acquisitions
//     using the same-day rule, the 30-day bed-and-breakfast rule, and the
//     Section 104 holding, in that order of priority.
//   - Section 104 Pooling: maintaining a running weighted-average-cost pool
//     per security, with proportional cost removal on partial disposals.
//   - Disposal Costing: computing allowable cost, net proceeds and gain or
//     loss in sterling, converting each leg at the exchange rate recorded on
//     its own transaction and including directly attributable commissions.
//   - Tax Year Aggregation: bucketing disposals into UK tax years
//     (6 April to 5 April), netting gains against losses, applying
//     brought-forward losses and the annual exempt amount.
//
// The package performs no I/O of its own beyond the import and export
// helpers: transactions are produced by an upstream parser, and reports are
// rendered by the caller. It serves as the foundational logic for the
// `cgtcalc` command-line tool.
package cgt
