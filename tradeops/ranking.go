package tradeops

import "github.com/shopspring/decimal"

// Entry is one aggregated group.
type Entry[K comparable] struct {
	Key    K
	Amount decimal.Decimal
}

// Ranking is an aggregation result in presentation order. Each key
// appears once.
type Ranking[K comparable] []Entry[K]

func (r Ranking[K]) Len() int { return len(r) }

func (r Ranking[K]) Keys() []K {
	keys := make([]K, len(r))
	for i, e := range r {
		keys[i] = e.Key
	}
	return keys
}

func (r Ranking[K]) Amounts() []decimal.Decimal {
	amounts := make([]decimal.Decimal, len(r))
	for i, e := range r {
		amounts[i] = e.Amount
	}
	return amounts
}

// Get returns the amount aggregated under k.
func (r Ranking[K]) Get(k K) (decimal.Decimal, bool) {
	for _, e := range r {
		if e.Key == k {
			return e.Amount, true
		}
	}
	return decimal.Decimal{}, false
}

// Total is the sum over every entry.
func (r Ranking[K]) Total() decimal.Decimal {
	total := decimal.Zero
	for _, e := range r {
		total = total.Add(e.Amount)
	}
	return total
}
