package cgt

import (
	"github.com/shopspring/decimal"
)

// TransactionType is a typed string identifying transaction variants.
type TransactionType string

// Transaction types produced by the upstream parser.
const (
	TypeBuy      TransactionType = "buy"
	TypeSell     TransactionType = "sell"
	TypeDividend TransactionType = "dividend"
	TypeFee      TransactionType = "fee"
)

// Transaction is the common interface of the closed set of transaction
// variants (Buy, Sell, Dividend, Fee). The matcher operates on the Buy/Sell
// subset only; the other variants pass through untouched.
//
// Transactions are produced by the upstream parser collaborator and are
// read-only to this package.
type Transaction interface {
	What() TransactionType // What returns the transaction variant.
	When() Date            // When returns the date on which the transaction occurred.
	Security() Security    // Security returns the security the transaction refers to.
	Validate() error
}

// tradeTx is the component shared by Buy and Sell.
type tradeTx struct {
	Sec        Security
	Day        Date
	Quantity   Quantity        // number of units, always positive
	Price      Money           // price per unit, in the transaction currency
	Commission Money           // commission and fees, in the transaction currency
	Rate       decimal.Decimal // exchange rate from the transaction currency to sterling on Day
}

// When returns the date of the transaction.
func (t tradeTx) When() Date { return t.Day }

// Security returns the security the transaction refers to.
func (t tradeTx) Security() Security { return t.Sec }

// gross returns the transaction amount in the transaction currency,
// excluding commission.
func (t tradeTx) gross() Money { return t.Price.Mul(t.Quantity) }

// sterling converts an amount in the transaction currency to sterling at the
// rate recorded on this transaction.
func (t tradeTx) sterling(m Money) Money { return m.Convert(t.Rate) }

// validate checks the invariants common to both trade variants. Violations
// are reported as InvalidTransactionError, except a missing exchange rate
// which is a ConversionError.
func (t tradeTx) validate(what TransactionType) error {
	if t.Day.IsZero() {
		return &InvalidTransactionError{What: what, Security: t.Sec, Date: t.Day, Reason: "missing date"}
	}
	if t.Quantity.IsZero() || t.Quantity.IsNegative() {
		return &InvalidTransactionError{What: what, Security: t.Sec, Date: t.Day, Reason: "quantity must be positive, got " + t.Quantity.String()}
	}
	if t.Price.IsNegative() {
		return &InvalidTransactionError{What: what, Security: t.Sec, Date: t.Day, Reason: "price must not be negative, got " + t.Price.String()}
	}
	if t.Commission.IsNegative() {
		return &InvalidTransactionError{What: what, Security: t.Sec, Date: t.Day, Reason: "commission must not be negative, got " + t.Commission.String()}
	}
	if t.Commission.Currency() != "" && t.Price.Currency() != "" && t.Commission.Currency() != t.Price.Currency() {
		return &InvalidTransactionError{What: what, Security: t.Sec, Date: t.Day, Reason: "commission currency differs from price currency"}
	}
	if !t.Rate.IsPositive() {
		return &ConversionError{Security: t.Sec, Date: t.Day, Currency: t.Price.Currency()}
	}
	return nil
}

// Buy represents an acquisition of a quantity of a security.
type Buy struct {
	tradeTx
}

// NewBuy creates a new Buy transaction. Rate is the exchange rate from the
// price currency to sterling on the transaction date (1 for sterling).
func NewBuy(day Date, sec Security, quantity Quantity, price, commission Money, rate decimal.Decimal) Buy {
	return Buy{tradeTx{Sec: sec, Day: day, Quantity: quantity, Price: price, Commission: commission, Rate: rate}}
}

func (t Buy) What() TransactionType { return TypeBuy }

// Validate checks the Buy transaction's fields.
func (t Buy) Validate() error { return t.tradeTx.validate(TypeBuy) }

// Sell represents a disposal of a quantity of a security.
type Sell struct {
	tradeTx
}

// NewSell creates a new Sell transaction. The quantity is positive, the
// variant itself marks it as a disposal.
func NewSell(day Date, sec Security, quantity Quantity, price, commission Money, rate decimal.Decimal) Sell {
	return Sell{tradeTx{Sec: sec, Day: day, Quantity: quantity, Price: price, Commission: commission, Rate: rate}}
}

func (t Sell) What() TransactionType { return TypeSell }

// Validate checks the Sell transaction's fields.
func (t Sell) Validate() error { return t.tradeTx.validate(TypeSell) }

// Dividend represents a dividend payment. It takes no part in share
// identification, it is carried so that a parser can hand over its full
// transaction list without pre-filtering.
type Dividend struct {
	Sec    Security
	Day    Date
	Amount Money
	Rate   decimal.Decimal
}

func (t Dividend) What() TransactionType { return TypeDividend }
func (t Dividend) When() Date            { return t.Day }
func (t Dividend) Security() Security    { return t.Sec }

// Validate checks the Dividend transaction's fields.
func (t Dividend) Validate() error {
	if t.Amount.IsNegative() {
		return &InvalidTransactionError{What: TypeDividend, Security: t.Sec, Date: t.Day, Reason: "amount must not be negative"}
	}
	if !t.Rate.IsPositive() {
		return &ConversionError{Security: t.Sec, Date: t.Day, Currency: t.Amount.Currency()}
	}
	return nil
}

// Fee represents a standalone account fee. Like Dividend it is ignored by
// the matcher.
type Fee struct {
	Sec    Security
	Day    Date
	Amount Money
	Rate   decimal.Decimal
}

func (t Fee) What() TransactionType { return TypeFee }
func (t Fee) When() Date            { return t.Day }
func (t Fee) Security() Security    { return t.Sec }

// Validate checks the Fee transaction's fields.
func (t Fee) Validate() error {
	if t.Amount.IsNegative() {
		return &InvalidTransactionError{What: TypeFee, Security: t.Sec, Date: t.Day, Reason: "amount must not be negative"}
	}
	if !t.Rate.IsPositive() {
		return &ConversionError{Security: t.Sec, Date: t.Day, Currency: t.Amount.Currency()}
	}
	return nil
}
