package cgt

import "sort"

// ExemptAmounts is the annual exempt amount lookup, keyed by tax year. The
// amount is a per-year constant set by HMRC, so it is configuration, never
// hardcoded in the calculation itself.
type ExemptAmounts map[TaxYear]Money

// Of returns the exempt amount for the given tax year, or zero sterling when
// the year is not configured.
func (e ExemptAmounts) Of(y TaxYear) Money {
	if m, ok := e[y]; ok {
		return m
	}
	return GBP(0)
}

// DefaultExemptAmounts returns the published HMRC annual exempt amounts for
// individuals for recent tax years. Callers with older data, or trustee
// rates, supply their own table.
func DefaultExemptAmounts() ExemptAmounts {
	return ExemptAmounts{
		TaxYear(2020): GBP(12300),
		TaxYear(2021): GBP(12300),
		TaxYear(2022): GBP(12300),
		TaxYear(2023): GBP(6000),
		TaxYear(2024): GBP(3000),
		TaxYear(2025): GBP(3000),
	}
}

// TaxYearSummary aggregates the disposals of one UK tax year. Derived and
// recomputable, never mutated after construction.
type TaxYearSummary struct {
	Year           TaxYear
	Disposals      []Disposal
	TotalGains     Money // sum of positive gains
	TotalLosses    Money // sum of losses, as a positive magnitude
	NetGain        Money // TotalGains - TotalLosses, may be negative
	LossOffset     Money // brought-forward loss consumed by this year
	Exempt         Money // annual exempt amount for the year
	ExemptUsed     Money // portion of the exemption actually consumed
	TaxableGain    Money // never negative
	CarriedForward Money // loss available to the next summarized year
}

// MarshalJSON implements the json.Marshaler interface for TaxYearSummary.
func (s TaxYearSummary) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("taxYear", s.Year)
	w.Append("totalGains", s.TotalGains)
	w.Append("totalLosses", s.TotalLosses)
	w.Append("netGain", s.NetGain)
	w.Append("lossOffset", s.LossOffset)
	w.Append("exemptAmount", s.Exempt)
	w.Append("exemptUsed", s.ExemptUsed)
	w.Append("taxableGain", s.TaxableGain)
	w.Append("carriedForwardLoss", s.CarriedForward)
	w.Append("disposals", s.Disposals)
	return w.MarshalJSON()
}

// SummarizeTaxYears buckets disposals into UK tax years by disposal date and
// produces one summary per year with at least one disposal, in year order.
//
// Within each year gains and losses are summed separately, then netted.
// Losses offset a positive net gain before the exemption: first the loss
// brought into the year, then the annual exempt amount, and the taxable
// gain is floored at zero. A net loss year pays no tax and grows the loss
// carried into the next summarized year. broughtForward is the loss carried
// in from years before the first summarized one; pass zero sterling when
// there is none.
func SummarizeTaxYears(disposals []Disposal, exempt ExemptAmounts, broughtForward Money) []TaxYearSummary {
	byYear := make(map[TaxYear][]Disposal)
	var years []TaxYear
	for _, d := range disposals {
		y := d.TaxYear()
		if _, seen := byYear[y]; !seen {
			years = append(years, y)
		}
		byYear[y] = append(byYear[y], d)
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })

	carried := broughtForward
	if carried.IsNegative() {
		carried = carried.Neg()
	}
	var out []TaxYearSummary
	for _, y := range years {
		s := TaxYearSummary{
			Year:        y,
			Disposals:   byYear[y],
			TotalGains:  GBP(0),
			TotalLosses: GBP(0),
			LossOffset:  GBP(0),
			Exempt:      exempt.Of(y),
			ExemptUsed:  GBP(0),
			TaxableGain: GBP(0),
		}
		for _, d := range s.Disposals {
			if d.Gain.IsNegative() {
				s.TotalLosses = s.TotalLosses.Add(d.Gain.Neg())
			} else {
				s.TotalGains = s.TotalGains.Add(d.Gain)
			}
		}
		s.NetGain = s.TotalGains.Sub(s.TotalLosses)

		if s.NetGain.IsPositive() {
			s.LossOffset = carried
			if s.NetGain.LessThan(carried) {
				s.LossOffset = s.NetGain
			}
			carried = carried.Sub(s.LossOffset)
			remaining := s.NetGain.Sub(s.LossOffset)
			s.ExemptUsed = s.Exempt
			if remaining.LessThan(s.Exempt) {
				s.ExemptUsed = remaining
			}
			s.TaxableGain = remaining.Sub(s.ExemptUsed)
		} else {
			carried = carried.Add(s.NetGain.Neg())
		}
		s.CarriedForward = carried
		out = append(out, s)
	}
	return out
}
