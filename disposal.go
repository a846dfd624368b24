package cgt

// Portion is the slice of a disposal identified under a single rule. A
// disposal fully covered by one rule has a single portion; a disposal split
// across rules has one portion per (rule, lot) pair consumed, plus at most
// one pool portion.
type Portion struct {
	Rule     MatchRule
	Quantity Quantity
	Acquired Date  // acquisition date of the matched lot; zero for pool portions
	Cost     Money // sterling acquisition cost attributable to this portion
}

// MarshalJSON implements the json.Marshaler interface for Portion.
func (p Portion) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("rule", p.Rule)
	w.Append("quantity", p.Quantity)
	if !p.Acquired.IsZero() {
		w.Append("acquired", p.Acquired)
	}
	w.Append("cost", p.Cost)
	return w.MarshalJSON()
}

// Disposal is the computed outcome of one sell transaction: the portions
// consumed, and the sterling allowable cost, proceeds and gain or loss.
// It is immutable once produced.
//
// All three monetary amounts are rounded to pence here, and only here;
// intermediate pool and lot arithmetic keeps full precision.
type Disposal struct {
	Security      Security
	Date          Date
	Quantity      Quantity
	Proceeds      Money // sterling, gross of the disposal commission
	AllowableCost Money // sterling, including both sides' commissions
	Gain          Money // Proceeds - AllowableCost
	Portions      []Portion
}

// newDisposal computes the monetary outcome of a matched disposal.
//
// The disposal's own commission is deducted once, as part of the allowable
// cost: apportioning it per portion by quantity fraction and summing back
// yields the full commission, so there is no need to track the split.
// Proceeds are therefore gross. Each leg converts at the rate recorded on
// its own transaction, so a gain can arise purely from currency movement.
func newDisposal(sell Sell, portions []Portion) Disposal {
	proceeds := sell.sterling(sell.gross())
	cost := sell.sterling(sell.Commission)
	for _, p := range portions {
		cost = cost.Add(p.Cost)
	}
	proceeds = proceeds.Round()
	cost = cost.Round()
	return Disposal{
		Security:      sell.Sec,
		Date:          sell.Day,
		Quantity:      sell.Quantity,
		Proceeds:      proceeds,
		AllowableCost: cost,
		Gain:          proceeds.Sub(cost),
		Portions:      portions,
	}
}

// TaxYear returns the UK tax year the disposal falls in. The disposal date
// is authoritative, even when a bed-and-breakfast matched acquisition falls
// in the next tax year.
func (d Disposal) TaxYear() TaxYear { return TaxYearOf(d.Date) }

// Rules returns the distinct rules that matched the disposal, in priority
// order.
func (d Disposal) Rules() []MatchRule {
	var rules []MatchRule
	for _, r := range []MatchRule{SameDay, BedAndBreakfast, Section104} {
		for _, p := range d.Portions {
			if p.Rule == r {
				rules = append(rules, r)
				break
			}
		}
	}
	return rules
}

// RuleLabel returns the human readable rule tag of the disposal, joining
// rules with "+" when the disposal was split, e.g. "same-day+pool".
func (d Disposal) RuleLabel() string {
	var label string
	for i, r := range d.Rules() {
		if i > 0 {
			label += "+"
		}
		label += r.String()
	}
	return label
}

// MarshalJSON implements the json.Marshaler interface for Disposal.
func (d Disposal) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("security", d.Security.Key())
	w.Append("date", d.Date)
	w.Append("quantity", d.Quantity)
	w.Append("rule", d.RuleLabel())
	w.Append("proceeds", d.Proceeds)
	w.Append("allowableCost", d.AllowableCost)
	w.Append("gain", d.Gain)
	w.Append("portions", d.Portions)
	return w.MarshalJSON()
}
