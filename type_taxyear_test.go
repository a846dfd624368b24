package cgt

import (
	"testing"
	"time"
)

func TestTaxYearOfBoundary(t *testing.T) {
	// 5 April is the last day of a tax year, 6 April the first of the next.
	cases := []struct {
		date Date
		want TaxYear
	}{
		{NewDate(2024, time.April, 5), TaxYear(2023)},
		{NewDate(2024, time.April, 6), TaxYear(2024)},
		{NewDate(2024, time.April, 7), TaxYear(2024)},
		{NewDate(2024, time.January, 1), TaxYear(2023)},
		{NewDate(2024, time.December, 31), TaxYear(2024)},
		{NewDate(2025, time.April, 5), TaxYear(2024)},
	}
	for _, c := range cases {
		if got := TaxYearOf(c.date); got != c.want {
			t.Errorf("TaxYearOf(%s) = %s, want %s", c.date, got, c.want)
		}
	}
}

func TestTaxYearRange(t *testing.T) {
	y := TaxYear(2024)
	if y.Start() != NewDate(2024, time.April, 6) {
		t.Errorf("Start = %s", y.Start())
	}
	if y.End() != NewDate(2025, time.April, 5) {
		t.Errorf("End = %s", y.End())
	}
	if !y.Contains(y.Start()) || !y.Contains(y.End()) {
		t.Error("a tax year must contain its own bounds")
	}
	if y.Contains(y.Start().Add(-1)) || y.Contains(y.End().Add(1)) {
		t.Error("a tax year must not contain its neighbors' days")
	}
}

func TestTaxYearLabel(t *testing.T) {
	if got := TaxYear(2024).Label(); got != "2024-2025" {
		t.Errorf("Label = %q", got)
	}
}

func TestParseTaxYear(t *testing.T) {
	y, err := ParseTaxYear("2024-2025")
	if err != nil || y != TaxYear(2024) {
		t.Errorf("ParseTaxYear(2024-2025) = %v, %v", y, err)
	}
	y, err = ParseTaxYear("2023")
	if err != nil || y != TaxYear(2023) {
		t.Errorf("ParseTaxYear(2023) = %v, %v", y, err)
	}
	if _, err := ParseTaxYear("2024-2026"); err == nil {
		t.Error("a label must cover two consecutive years")
	}
	if _, err := ParseTaxYear("spring"); err == nil {
		t.Error("garbage must not parse")
	}
}
