package cgt

// SharePool is the Section 104 holding for a single security: a running
// total quantity and running total sterling cost. HMRC treats the holding as
// one fungible asset at a running average, so a partial disposal removes
// cost at the average prevailing at that instant, proportionally, never by
// recomputing the pool from scratch.
//
// Pool arithmetic keeps the full decimal precision; rounding across many
// partial disposals would otherwise compound.
type SharePool struct {
	sec      Security
	quantity Quantity
	cost     Money // sterling, full precision
}

// NewSharePool creates an empty pool for the given security.
func NewSharePool(sec Security) *SharePool {
	return &SharePool{sec: sec, cost: GBP(0)}
}

// Add enters quantity units with their sterling cost into the pool. Both
// totals grow additively; the average is derived as cost/quantity only when
// needed.
func (p *SharePool) Add(quantity Quantity, cost Money) {
	p.quantity = p.quantity.Add(quantity)
	p.cost = p.cost.Add(cost)
}

// Remove takes quantity units out of the pool and returns their sterling
// cost at the pre-removal average: cost × (quantity / pool quantity). The
// pool quantity must cover the request, otherwise a PoolUnderflowError is
// returned and the pool is left untouched.
func (p *SharePool) Remove(on Date, quantity Quantity) (Money, error) {
	if quantity.GreaterThan(p.quantity) {
		return Money{}, &PoolUnderflowError{Security: p.sec, Date: on, Requested: quantity, Held: p.quantity}
	}
	removed := p.cost.Mul(quantity.Div(p.quantity))
	p.cost = p.cost.Sub(removed)
	p.quantity = p.quantity.Sub(quantity)
	return removed, nil
}

// Quantity returns the number of units currently held in the pool.
func (p *SharePool) Quantity() Quantity { return p.quantity }

// Cost returns the total sterling cost currently held in the pool.
func (p *SharePool) Cost() Money { return p.cost }

// AverageCost returns the running average cost per unit, or zero for an
// empty pool.
func (p *SharePool) AverageCost() Money {
	if p.quantity.IsZero() {
		return GBP(0)
	}
	return p.cost.Div(p.quantity)
}
