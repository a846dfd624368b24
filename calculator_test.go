package cgt

import (
	"errors"
	"testing"
)

func calculate(t *testing.T, c *Calculator, txs ...Transaction) *Report {
	t.Helper()
	report, err := c.Calculate(txs)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	return report
}

func TestCalculatePoolScenario(t *testing.T) {
	report := calculate(t, &Calculator{},
		buy("2024-01-10", apple, 100, 10),
		sell("2024-06-01", apple, 100, 15),
	)
	if len(report.Disposals) != 1 {
		t.Fatalf("got %d disposals", len(report.Disposals))
	}
	d := report.Disposals[0]
	if d.RuleLabel() != "pool" {
		t.Errorf("rule = %q, want pool", d.RuleLabel())
	}
	if !d.AllowableCost.Equal(GBP(1000)) || !d.Proceeds.Equal(GBP(1500)) || !d.Gain.Equal(GBP(500)) {
		t.Errorf("cost/proceeds/gain = %s/%s/%s", d.AllowableCost, d.Proceeds, d.Gain)
	}
}

func TestCalculateTwoYearsSummary(t *testing.T) {
	exempt := ExemptAmounts{TaxYear(2024): GBP(3000)}
	report := calculate(t, &Calculator{Exempt: exempt},
		buy("2023-05-01", apple, 100, 10),
		sell("2024-05-01", apple, 100, 60), // gain £5000
		buy("2023-06-01", alphabet, 100, 10),
		sell("2025-01-01", alphabet, 100, 30), // gain £2000, same tax year
	)
	if len(report.Years) != 1 {
		t.Fatalf("got %d years", len(report.Years))
	}
	y := report.Years[0]
	if y.Year.Label() != "2024-2025" {
		t.Errorf("year = %s", y.Year)
	}
	if !y.NetGain.Equal(GBP(7000)) {
		t.Errorf("net = %s, want £7000", y.NetGain)
	}
	if !y.TaxableGain.Equal(GBP(4000)) {
		t.Errorf("taxable = %s, want £4000", y.TaxableGain)
	}
}

func TestCalculateSecuritiesAreIndependent(t *testing.T) {
	// Pools never mix: selling Vodafone cannot draw from the Apple pool.
	_, err := (&Calculator{}).Calculate([]Transaction{
		buy("2024-01-10", apple, 100, 10),
		sell("2024-06-01", vodafone, 10, 15),
	})
	var underflow *PoolUnderflowError
	if !errors.As(err, &underflow) {
		t.Fatalf("err = %v, want a PoolUnderflowError", err)
	}
	if underflow.Security.Key() != vodafone.Key() {
		t.Errorf("underflow names %s", underflow.Security.Key())
	}
}

func TestCalculateSortsDisposals(t *testing.T) {
	report := calculate(t, &Calculator{},
		buy("2024-01-10", vodafone, 100, 1),
		buy("2024-01-10", apple, 100, 10),
		sell("2024-09-01", apple, 50, 15),
		sell("2024-06-01", vodafone, 50, 2),
	)
	if len(report.Disposals) != 2 {
		t.Fatalf("got %d disposals", len(report.Disposals))
	}
	if report.Disposals[0].Security.Key() != vodafone.Key() {
		t.Errorf("disposals are not in date order: first is %s", report.Disposals[0].Security.Key())
	}
}

func TestCalculateValidatesFirst(t *testing.T) {
	// An invalid transaction fails the whole run before any matching.
	_, err := (&Calculator{}).Calculate([]Transaction{
		buy("2024-01-10", apple, 100, 10),
		NewSell(MustDate("2024-06-01"), apple, Q(0), GBP(15), GBP(0), one),
	})
	var invalid *InvalidTransactionError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want an InvalidTransactionError", err)
	}
}

func TestCalculateRejectsMissingRate(t *testing.T) {
	_, err := (&Calculator{}).Calculate([]Transaction{
		NewBuy(MustDate("2024-01-10"), apple, Q(100), USD(10), USD(0), rate(0)),
	})
	var conv *ConversionError
	if !errors.As(err, &conv) {
		t.Fatalf("err = %v, want a ConversionError", err)
	}
}

func TestCalculateTransactionOrderIrrelevant(t *testing.T) {
	// The same transactions shuffled produce the same report.
	txs := []Transaction{
		buy("2024-01-10", apple, 100, 10),
		sell("2024-06-01", apple, 40, 15),
		buy("2024-03-01", apple, 50, 12),
		sell("2024-08-01", apple, 60, 16),
	}
	shuffled := []Transaction{txs[3], txs[1], txs[2], txs[0]}

	a := calculate(t, &Calculator{}, txs...)
	b := calculate(t, &Calculator{}, shuffled...)

	if len(a.Disposals) != len(b.Disposals) {
		t.Fatalf("disposal counts differ: %d vs %d", len(a.Disposals), len(b.Disposals))
	}
	for i := range a.Disposals {
		if !a.Disposals[i].Gain.Equal(b.Disposals[i].Gain) {
			t.Errorf("disposal %d gains differ: %s vs %s", i, a.Disposals[i].Gain, b.Disposals[i].Gain)
		}
	}
}

func TestCalculateBroughtForwardLoss(t *testing.T) {
	exempt := ExemptAmounts{TaxYear(2024): GBP(3000)}
	report := calculate(t, &Calculator{Exempt: exempt, BroughtForwardLoss: GBP(2000)},
		buy("2023-05-01", apple, 100, 10),
		sell("2024-05-01", apple, 100, 60),
	)
	y := report.Years[0]
	if !y.LossOffset.Equal(GBP(2000)) {
		t.Errorf("loss offset = %s", y.LossOffset)
	}
	// 5000 - 2000 loss - 3000 exemption
	if !y.TaxableGain.IsZero() {
		t.Errorf("taxable = %s, want zero", y.TaxableGain)
	}
}
