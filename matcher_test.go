package cgt

import (
	"errors"
	"testing"
)

// run is a helper running one matching pass over the given transactions,
// already in date order.
func run(t *testing.T, txs ...Transaction) []Disposal {
	t.Helper()
	disposals, err := newMatcher(txs[0].Security()).match(txs)
	if err != nil {
		t.Fatalf("match() error = %v", err)
	}
	return disposals
}

// portionQuantity sums the matched quantity of a disposal under one rule.
func portionQuantity(d Disposal, rule MatchRule) Quantity {
	total := Q(0)
	for _, p := range d.Portions {
		if p.Rule == rule {
			total = total.Add(p.Quantity)
		}
	}
	return total
}

func TestMatchSameDay(t *testing.T) {
	disposals := run(t,
		buy("2024-01-10", apple, 100, 10),
		sell("2024-01-10", apple, 100, 15),
	)
	if len(disposals) != 1 {
		t.Fatalf("got %d disposals", len(disposals))
	}
	d := disposals[0]
	if d.RuleLabel() != "same-day" {
		t.Errorf("rule = %q, want same-day", d.RuleLabel())
	}
	if !d.Gain.Equal(GBP(500)) {
		t.Errorf("gain = %s, want £500", d.Gain)
	}
}

func TestMatchSameDayRegardlessOfOrder(t *testing.T) {
	// The sell precedes the buy in the input, the same-day rule still wins
	// over the pool.
	earlier := buy("2024-01-02", apple, 100, 8)
	disposals := run(t,
		earlier,
		sell("2024-01-10", apple, 100, 15),
		buy("2024-01-10", apple, 100, 10),
	)
	d := disposals[0]
	if d.RuleLabel() != "same-day" {
		t.Errorf("rule = %q, want same-day", d.RuleLabel())
	}
	if !d.AllowableCost.Equal(GBP(1000)) {
		t.Errorf("cost = %s, want the same-day lot's £1000", d.AllowableCost)
	}
}

func TestMatchBedAndBreakfast(t *testing.T) {
	// No acquisition before the sale: the matching acquisition is 19 days
	// after it.
	disposals := run(t,
		sell("2024-03-01", apple, 50, 20),
		buy("2024-03-20", apple, 50, 18),
	)
	d := disposals[0]
	if d.RuleLabel() != "bed-breakfast" {
		t.Errorf("rule = %q, want bed-breakfast", d.RuleLabel())
	}
	if !d.AllowableCost.Equal(GBP(900)) {
		t.Errorf("cost = %s, want £900", d.AllowableCost)
	}
	if !d.Gain.Equal(GBP(100)) {
		t.Errorf("gain = %s, want £100", d.Gain)
	}
}

func TestMatchBedAndBreakfastWindow(t *testing.T) {
	// Day 30 after the disposal is inside the window, day 31 is not.
	inside := run(t,
		buy("2024-01-01", apple, 50, 10),
		sell("2024-03-01", apple, 50, 20),
		buy("2024-03-31", apple, 50, 18),
	)
	if inside[0].RuleLabel() != "bed-breakfast" {
		t.Errorf("day 30: rule = %q, want bed-breakfast", inside[0].RuleLabel())
	}

	outside := run(t,
		buy("2024-01-01", apple, 50, 10),
		sell("2024-03-01", apple, 50, 20),
		buy("2024-04-01", apple, 50, 18),
	)
	if outside[0].RuleLabel() != "pool" {
		t.Errorf("day 31: rule = %q, want pool", outside[0].RuleLabel())
	}
}

func TestMatchBedAndBreakfastEarliestFirst(t *testing.T) {
	disposals := run(t,
		sell("2024-03-01", apple, 50, 20),
		buy("2024-03-10", apple, 30, 18),
		buy("2024-03-20", apple, 30, 12),
	)
	d := disposals[0]
	// 30 from the 10 March lot at £18, then 20 from the 20 March lot at £12.
	want := GBP(30*18 + 20*12)
	if !d.AllowableCost.Equal(want) {
		t.Errorf("cost = %s, want %s", d.AllowableCost, want)
	}
	if len(d.Portions) != 2 {
		t.Fatalf("got %d portions", len(d.Portions))
	}
	if d.Portions[0].Acquired != MustDate("2024-03-10") {
		t.Errorf("first portion acquired %s, want the earliest lot", d.Portions[0].Acquired)
	}
}

func TestMatchSameDayBeatsEarlierWindow(t *testing.T) {
	// The 10 March acquisition is inside the 1 March disposal's window, but
	// it is same-day for the 10 March disposal, which takes it. The 1 March
	// disposal falls back to the pool.
	disposals := run(t,
		buy("2024-01-01", apple, 100, 10),
		sell("2024-03-01", apple, 50, 20),
		buy("2024-03-10", apple, 50, 18),
		sell("2024-03-10", apple, 50, 21),
	)
	if len(disposals) != 2 {
		t.Fatalf("got %d disposals", len(disposals))
	}
	first, second := disposals[0], disposals[1]
	if first.RuleLabel() != "pool" {
		t.Errorf("1 March rule = %q, want pool", first.RuleLabel())
	}
	if second.RuleLabel() != "same-day" {
		t.Errorf("10 March rule = %q, want same-day", second.RuleLabel())
	}
}

func TestMatchSplitAcrossRules(t *testing.T) {
	// 20 same-day, 30 bed-and-breakfast, 50 pool.
	disposals := run(t,
		buy("2024-01-01", apple, 100, 10),
		buy("2024-03-01", apple, 20, 19),
		sell("2024-03-01", apple, 100, 20),
		buy("2024-03-15", apple, 30, 18),
	)
	d := disposals[0]
	if d.RuleLabel() != "same-day+bed-breakfast+pool" {
		t.Errorf("rule = %q", d.RuleLabel())
	}
	if !portionQuantity(d, SameDay).Equal(Q(20)) {
		t.Errorf("same-day quantity = %s", portionQuantity(d, SameDay))
	}
	if !portionQuantity(d, BedAndBreakfast).Equal(Q(30)) {
		t.Errorf("bed-breakfast quantity = %s", portionQuantity(d, BedAndBreakfast))
	}
	if !portionQuantity(d, Section104).Equal(Q(50)) {
		t.Errorf("pool quantity = %s", portionQuantity(d, Section104))
	}
	// Portions cover the disposal exactly.
	total := portionQuantity(d, SameDay).Add(portionQuantity(d, BedAndBreakfast)).Add(portionQuantity(d, Section104))
	if !total.Equal(d.Quantity) {
		t.Errorf("portions cover %s of %s", total, d.Quantity)
	}
	want := GBP(20*19 + 30*18 + 50*10)
	if !d.AllowableCost.Equal(want) {
		t.Errorf("cost = %s, want %s", d.AllowableCost, want)
	}
}

func TestMatchPoolAverage(t *testing.T) {
	disposals := run(t,
		buy("2024-01-01", apple, 100, 10),
		buy("2024-02-01", apple, 100, 20),
		sell("2024-06-01", apple, 50, 30),
	)
	d := disposals[0]
	// pool of 200 costing £3000, 50 removed at the £15 average
	if !d.AllowableCost.Equal(GBP(750)) {
		t.Errorf("cost = %s, want £750", d.AllowableCost)
	}
}

func TestMatchPoolUnderflowPropagates(t *testing.T) {
	_, err := newMatcher(apple).match([]Transaction{
		buy("2024-01-01", apple, 10, 10),
		sell("2024-02-01", apple, 40, 10),
	})
	var underflow *PoolUnderflowError
	if !errors.As(err, &underflow) {
		t.Fatalf("err = %v, want a PoolUnderflowError", err)
	}
	if !underflow.Requested.Equal(Q(40)) || !underflow.Held.Equal(Q(10)) {
		t.Errorf("underflow = requested %s held %s", underflow.Requested, underflow.Held)
	}
}

func TestMatchIgnoresNonTrades(t *testing.T) {
	disposals := run(t,
		buy("2024-01-01", apple, 100, 10),
		Dividend{Sec: apple, Day: MustDate("2024-02-01"), Amount: GBP(12), Rate: one},
		Fee{Sec: apple, Day: MustDate("2024-03-01"), Amount: GBP(2), Rate: one},
		sell("2024-06-01", apple, 100, 15),
	)
	if len(disposals) != 1 {
		t.Fatalf("got %d disposals", len(disposals))
	}
	if !disposals[0].Gain.Equal(GBP(500)) {
		t.Errorf("gain = %s", disposals[0].Gain)
	}
}
