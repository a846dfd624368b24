package cgt

// bedAndBreakfastDays is the length of the bed-and-breakfast window: an
// acquisition up to 30 calendar days after a disposal (inclusive) is matched
// before the pool is touched.
const bedAndBreakfastDays = 30

// matcher runs the share identification rules for a single security. It
// owns the security's lots and Section 104 pool for the duration of one
// pass; matching is stateful and must be replayed in full for a changed
// transaction set.
type matcher struct {
	sec  Security
	pool *SharePool
}

func newMatcher(sec Security) *matcher {
	return &matcher{sec: sec, pool: NewSharePool(sec)}
}

// pending accumulates the matched portions of one disposal during a pass.
type pending struct {
	sell      Sell
	remaining Quantity
	portions  []Portion
}

// take consumes from l what the disposal still needs and records the
// portion under the given rule.
func (p *pending) take(l *lot, rule MatchRule) {
	taken, cost := l.consume(p.remaining)
	if taken.IsZero() {
		return
	}
	p.portions = append(p.portions, Portion{Rule: rule, Quantity: taken, Acquired: l.buy.Day, Cost: cost})
	p.remaining = p.remaining.Sub(taken)
}

// match consumes the full transaction list of one security, pre-sorted
// ascending by date, and returns one Disposal per Sell in date order.
//
// The three rules run as passes in priority order. Same-day identification
// runs for every disposal before any bed-and-breakfast matching, so shares
// acquired on the day of a disposal go to that disposal even when an
// earlier disposal's 30-day window also covers them. The final pass folds
// chronologically: each acquisition's unconsumed remainder enters the pool
// at its proportional cost, and each disposal's unmatched remainder draws
// from the pool state prevailing at its own date.
func (m *matcher) match(txs []Transaction) ([]Disposal, error) {
	type event struct {
		buy  *lot
		sell *pending
	}
	var events []event
	var acquisitions []*lot
	var disposals []*pending
	for _, tx := range txs {
		switch v := tx.(type) {
		case Buy:
			l := newLot(v)
			acquisitions = append(acquisitions, l)
			events = append(events, event{buy: l})
		case Sell:
			p := &pending{sell: v, remaining: v.Quantity}
			disposals = append(disposals, p)
			events = append(events, event{sell: p})
		}
	}

	// Same-day rule. Multiple same-day lots are consumed in list order;
	// their available quantity is summed by the iteration itself.
	for _, p := range disposals {
		for _, l := range acquisitions {
			if p.remaining.IsZero() {
				break
			}
			if l.buy.Day == p.sell.Day {
				p.take(l, SameDay)
			}
		}
	}

	// Bed-and-breakfast rule: earliest acquisition first within the window.
	// Disposals run in date order, so an earlier disposal claims a
	// contested lot first.
	for _, p := range disposals {
		last := p.sell.Day.Add(bedAndBreakfastDays)
		for _, l := range acquisitions {
			if p.remaining.IsZero() {
				break
			}
			if l.buy.Day.After(p.sell.Day) && !l.buy.Day.After(last) {
				p.take(l, BedAndBreakfast)
			}
		}
	}

	// Section 104 fold.
	var out []Disposal
	for _, ev := range events {
		switch {
		case ev.buy != nil:
			if !ev.buy.remaining.IsZero() {
				taken, cost := ev.buy.consume(ev.buy.remaining)
				m.pool.Add(taken, cost)
			}
		case ev.sell != nil:
			p := ev.sell
			if !p.remaining.IsZero() {
				cost, err := m.pool.Remove(p.sell.Day, p.remaining)
				if err != nil {
					return nil, err
				}
				p.portions = append(p.portions, Portion{Rule: Section104, Quantity: p.remaining, Cost: cost})
				p.remaining = Q(0)
			}
			out = append(out, newDisposal(p.sell, p.portions))
		}
	}
	return out, nil
}
