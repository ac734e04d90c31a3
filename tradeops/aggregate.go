package tradeops

import (
	"fmt"
	"sort"

	"github.com/rustyeddy/fxreport/instruction"
	"github.com/shopspring/decimal"
)

// aggregate filters ins by direction, groups the trade amounts under
// key(in), sums each group and orders the groups with less.
func aggregate[K comparable](
	c *Calculator,
	ins []*instruction.Instruction,
	dir instruction.Direction,
	key func(*instruction.Instruction) (K, error),
	less func(a, b Entry[K]) bool,
) (Ranking[K], error) {
	if len(ins) == 0 || !dir.Valid() {
		return nil, fmt.Errorf("%w: instructions and direction must not be nil/empty for amount settled calculation", ErrInvalidArgument)
	}

	sums := make(map[K]decimal.Decimal)
	var order []K
	for i, in := range ins {
		if in == nil {
			return nil, fmt.Errorf("%w: instruction %d is nil", ErrInvalidArgument, i)
		}
		if in.Direction() != dir {
			continue
		}

		k, err := key(in)
		if err != nil {
			return nil, fmt.Errorf("instruction %d (%s): %w", i, in.Entity(), err)
		}
		amount, err := c.TradeAmount(in)
		if err != nil {
			return nil, err
		}

		sum, seen := sums[k]
		if !seen {
			order = append(order, k)
		}
		sums[k] = sum.Add(amount)
	}

	out := make(Ranking[K], 0, len(order))
	for _, k := range order {
		out = append(out, Entry[K]{Key: k, Amount: sums[k]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out, nil
}
