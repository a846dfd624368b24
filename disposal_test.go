package cgt

import "testing"

func TestDisposalZeroGainRoundTrip(t *testing.T) {
	disposals := run(t,
		buy("2024-01-10", apple, 100, 10),
		sell("2024-06-01", apple, 100, 10),
	)
	d := disposals[0]
	if !d.Gain.IsZero() {
		t.Errorf("proceeds == allowable cost must yield a zero gain, got %s", d.Gain)
	}
}

func TestDisposalCurrencyGain(t *testing.T) {
	// Flat dollar price, the gain arises purely from currency movement: the
	// acquisition converts at its own date's rate, the disposal at its own.
	disposals := run(t,
		NewBuy(MustDate("2024-01-10"), apple, Q(100), USD(10), USD(0), rate(0.5)),
		NewSell(MustDate("2024-06-01"), apple, Q(100), USD(10), USD(0), rate(0.8)),
	)
	d := disposals[0]
	if !d.AllowableCost.Equal(GBP(500)) {
		t.Errorf("cost = %s, want £500", d.AllowableCost)
	}
	if !d.Proceeds.Equal(GBP(800)) {
		t.Errorf("proceeds = %s, want £800", d.Proceeds)
	}
	if !d.Gain.Equal(GBP(300)) {
		t.Errorf("gain = %s, want £300", d.Gain)
	}
	if d.Proceeds.Currency() != Sterling || d.Gain.Currency() != Sterling {
		t.Error("disposal amounts must be sterling")
	}
}

func TestDisposalCommissions(t *testing.T) {
	// Half the acquisition commission follows the 50 units sold; the full
	// disposal commission is allowable.
	disposals := run(t,
		NewBuy(MustDate("2024-01-10"), apple, Q(100), GBP(10), GBP(10), one),
		NewSell(MustDate("2024-06-01"), apple, Q(50), GBP(12), GBP(5), one),
	)
	d := disposals[0]
	if !d.Proceeds.Equal(GBP(600)) {
		t.Errorf("proceeds = %s, want £600 gross of commission", d.Proceeds)
	}
	if !d.AllowableCost.Equal(GBP(510)) {
		t.Errorf("cost = %s, want £510 (£500 + £5 acquisition share + £5 disposal)", d.AllowableCost)
	}
	if !d.Gain.Equal(GBP(90)) {
		t.Errorf("gain = %s, want £90", d.Gain)
	}
}

func TestDisposalRoundsToPence(t *testing.T) {
	// A third of the pool at a cost that does not divide evenly: the record
	// is rounded to the penny, only once.
	disposals := run(t,
		buy("2024-01-10", apple, 3, 33.3333),
		sell("2024-06-01", apple, 1, 40),
	)
	d := disposals[0]
	if !d.AllowableCost.Equal(GBP(33.33)) {
		t.Errorf("cost = %s, want £33.33", d.AllowableCost)
	}
	if !d.Gain.Equal(GBP(6.67)) {
		t.Errorf("gain = %s, want £6.67", d.Gain)
	}
}

func TestDisposalTaxYearUsesDisposalDate(t *testing.T) {
	// A late March sale matched against an April acquisition stays in the
	// tax year of the sale date.
	disposals := run(t,
		sell("2024-03-25", apple, 10, 20),
		buy("2024-04-10", apple, 10, 18),
	)
	d := disposals[0]
	if d.RuleLabel() != "bed-breakfast" {
		t.Fatalf("rule = %q", d.RuleLabel())
	}
	if d.TaxYear() != TaxYear(2023) {
		t.Errorf("tax year = %s, want 2023-2024", d.TaxYear())
	}
}
