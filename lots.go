package cgt

// lot tracks the unconsumed remainder of a single acquisition during one
// matching pass. Units are consumed by the same-day rule, then by the
// bed-and-breakfast rule, and whatever is left enters the Section 104 pool.
// A lot is never shared across runs.
type lot struct {
	buy       Buy
	remaining Quantity
}

func newLot(b Buy) *lot { return &lot{buy: b, remaining: b.Quantity} }

// consume removes up to q units from the lot and returns the units actually
// taken together with their sterling acquisition cost. The cost covers the
// units' share of the price and of the acquisition commission, converted at
// the rate recorded on the acquisition itself.
func (l *lot) consume(q Quantity) (taken Quantity, cost Money) {
	taken = q.Min(l.remaining)
	if taken.IsZero() {
		return taken, GBP(0)
	}
	fraction := taken.Div(l.buy.Quantity)
	amount := l.buy.Price.Mul(taken).Add(l.buy.Commission.Mul(fraction))
	cost = l.buy.sterling(amount)
	l.remaining = l.remaining.Sub(taken)
	return taken, cost
}
