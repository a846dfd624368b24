package cgt

import "fmt"

// InvalidTransactionError reports a malformed or contradictory transaction.
// The whole run fails fast on the first one: silently skipping a transaction
// would corrupt the pool cost basis of every later disposal.
type InvalidTransactionError struct {
	What     TransactionType
	Security Security
	Date     Date
	Reason   string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid %s transaction on %s for %s: %s", e.What, e.Date, e.Security.Key(), e.Reason)
}

// PoolUnderflowError reports a disposal requesting more units from a
// security's Section 104 holding than the pool holds. It indicates a missing
// acquisition or out-of-order upstream data, and is not recoverable locally.
type PoolUnderflowError struct {
	Security  Security
	Date      Date     // date of the disposal drawing from the pool
	Requested Quantity // units requested from the pool
	Held      Quantity // units actually held in the pool
}

func (e *PoolUnderflowError) Error() string {
	return fmt.Sprintf("section 104 pool underflow for %s on %s: requested %s units, pool holds %s (short by %s)",
		e.Security.Key(), e.Date, e.Requested, e.Held, e.Requested.Sub(e.Held))
}

// ConversionError reports a transaction whose currency lacks a usable
// exchange rate to sterling. It is a hard failure, never silently defaulted
// to a rate of 1.
type ConversionError struct {
	Security Security
	Date     Date
	Currency string
}

func (e *ConversionError) Error() string {
	cur := e.Currency
	if cur == "" {
		cur = "unknown currency"
	}
	return fmt.Sprintf("no usable exchange rate to %s for %s on %s (%s)", Sterling, cur, e.Date, e.Security.Key())
}
