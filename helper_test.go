package cgt

import "github.com/shopspring/decimal"

var (
	apple, _    = NewSecurity(ISIN, "US0378331005", "Apple Inc.", Stock, "NASDAQ")
	alphabet, _ = NewSecurity(ISIN, "US38259P5089", "Alphabet Inc.", Stock, "NASDAQ")
	vodafone, _ = NewSecurity(Ticker, "VOD", "Vodafone Group", Stock, "LSE")
)

// one is the exchange rate of sterling trades.
var one = decimal.NewFromInt(1)

func rate(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// USD is a helper for tests to create dollar money from const.
func USD(v float64) Money { return M(v, "USD") }

// buy is a helper for sterling acquisitions without commission.
func buy(day string, sec Security, quantity, price float64) Buy {
	return NewBuy(MustDate(day), sec, Q(quantity), GBP(price), GBP(0), one)
}

// sell is a helper for sterling disposals without commission.
func sell(day string, sec Security, quantity, price float64) Sell {
	return NewSell(MustDate(day), sec, Q(quantity), GBP(price), GBP(0), one)
}
