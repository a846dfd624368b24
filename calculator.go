package cgt

import (
	"sort"
	"sync"
)

// Calculator runs the full pipeline: validation, per-security share
// identification, disposal costing, and tax year aggregation. The zero value
// uses DefaultExemptAmounts and no brought-forward loss.
type Calculator struct {
	// Exempt is the annual exempt amount table. Nil selects
	// DefaultExemptAmounts.
	Exempt ExemptAmounts
	// BroughtForwardLoss is the loss carried in from tax years before the
	// earliest one present in the data. Zero when there is none.
	BroughtForwardLoss Money
}

// Report is the complete outcome of one calculation run: every disposal in
// date order with its rule portions, and one summary per tax year.
type Report struct {
	Disposals []Disposal
	Years     []TaxYearSummary
}

// MarshalJSON implements the json.Marshaler interface for Report.
func (r Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("disposals", r.Disposals)
	w.Append("taxYears", r.Years)
	return w.MarshalJSON()
}

// Calculate consumes the full transaction list, in any order, and computes
// every disposal and tax year summary.
//
// All transactions are validated up front and the run fails fast on the
// first invalid one. Securities are independent (disjoint lots and pools),
// so matching runs concurrently, one goroutine per security, joined before
// the tax year aggregation. Matching itself stays a sequential fold within
// each security; the order of history matters there.
func (c *Calculator) Calculate(txs []Transaction) (*Report, error) {
	for _, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, err
		}
	}

	bySec := make(map[string][]Transaction)
	var keys []string
	for _, tx := range txs {
		k := tx.Security().Key()
		if _, seen := bySec[k]; !seen {
			keys = append(keys, k)
		}
		bySec[k] = append(bySec[k], tx)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		disposals []Disposal
		firstErr  error
	)
	for _, k := range keys {
		list := bySec[k]
		sort.SliceStable(list, func(i, j int) bool { return list[i].When().Before(list[j].When()) })
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := newMatcher(list[0].Security())
			out, err := m.match(list)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			disposals = append(disposals, out...)
		}()
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	sort.SliceStable(disposals, func(i, j int) bool {
		if disposals[i].Date != disposals[j].Date {
			return disposals[i].Date.Before(disposals[j].Date)
		}
		return disposals[i].Security.Key() < disposals[j].Security.Key()
	})

	exempt := c.Exempt
	if exempt == nil {
		exempt = DefaultExemptAmounts()
	}
	return &Report{
		Disposals: disposals,
		Years:     SummarizeTaxYears(disposals, exempt, GBP(0).Add(c.BroughtForwardLoss)),
	}, nil
}
