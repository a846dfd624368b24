package cgt

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the import/export formats.
// Input stays a human readable CSV easy to produce from any broker export;
// output is JSON for downstream tooling.

// csvHeader is the required first line of the transaction import format.
var csvHeader = []string{"date", "type", "id", "kind", "name", "class", "exchange", "quantity", "price", "commission", "currency", "rate"}

// ImportTransactions imports transactions from 'r' in the import format.
//
// The format is a CSV file with a mandatory header line naming the columns
// date, type, id, kind, name, class, exchange, quantity, price, commission,
// currency, rate. Dates use YYYY-MM-DD. Type is one of buy, sell, dividend,
// fee. For dividend and fee rows the quantity and commission columns are
// ignored and price carries the amount. Rate is the exchange rate from the
// row's currency to sterling on the row's date; sterling rows use 1.
//
// Rows are returned in file order; matching sorts per security itself.
// Structural problems (missing column, unparsable number) fail here;
// semantic problems (negative price, zero quantity) are left for
// Transaction.Validate so the calculation reports them uniformly.
func ImportTransactions(r io.Reader) ([]Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction import header: %w", err)
	}
	col := make(map[string]int)
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range csvHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("transaction import format is missing column %q", name)
		}
	}

	var txs []Transaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read transaction import line %d: %w", line, err)
		}
		field := func(name string) string { return strings.TrimSpace(record[col[name]]) }

		day, err := ParseDate(field("date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid date %q: %w", line, field("date"), err)
		}
		kind, err := ParseIDKind(field("kind"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		class, err := ParseAssetClass(field("class"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sec, err := NewSecurity(kind, field("id"), field("name"), class, field("exchange"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cur := strings.ToUpper(field("currency"))
		if cur == "" {
			cur = Sterling
		}
		rate, err := decimal.NewFromString(field("rate"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rate %q: %w", line, field("rate"), err)
		}
		price, err := decimal.NewFromString(field("price"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q: %w", line, field("price"), err)
		}

		switch what := TransactionType(strings.ToLower(field("type"))); what {
		case TypeBuy, TypeSell:
			quantity, err := decimal.NewFromString(field("quantity"))
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid quantity %q: %w", line, field("quantity"), err)
			}
			commission := decimal.Zero
			if f := field("commission"); f != "" {
				commission, err = decimal.NewFromString(f)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid commission %q: %w", line, f, err)
				}
			}
			if what == TypeBuy {
				txs = append(txs, NewBuy(day, sec, Q(quantity), M(price, cur), M(commission, cur), rate))
			} else {
				txs = append(txs, NewSell(day, sec, Q(quantity), M(price, cur), M(commission, cur), rate))
			}
		case TypeDividend:
			txs = append(txs, Dividend{Sec: sec, Day: day, Amount: M(price, cur), Rate: rate})
		case TypeFee:
			txs = append(txs, Fee{Sec: sec, Day: day, Amount: M(price, cur), Rate: rate})
		default:
			return nil, fmt.Errorf("line %d: unknown transaction type %q", line, field("type"))
		}
	}
	return txs, nil
}

// EncodeReport exports the report to 'w' as an indented JSON document, with
// object keys in a stable order.
func EncodeReport(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return nil
}
