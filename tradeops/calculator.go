// Package tradeops computes settlement dates, trade amounts and the daily
// and per-entity aggregations that make up the FX settlement report.
//
// Everything here is a pure function of its arguments: no I/O, no logging,
// no shared state. Invalid input is reported with an error wrapping
// ErrInvalidArgument and never yields a partial result.
package tradeops

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/rustyeddy/fxreport/instruction"
	"github.com/shopspring/decimal"
)

// ErrInvalidArgument marks calls that violate an operation's input contract.
var ErrInvalidArgument = errors.New("invalid argument")

// AmountScale is the number of fractional digits kept on trade amounts.
const AmountScale = 2

// Operations is the calculator contract used by the report engine.
type Operations interface {
	ResolveSettlementDate(date civil.Date, currency string) (civil.Date, error)
	TradeAmount(in *instruction.Instruction) (decimal.Decimal, error)
	DailySettledAmount(ins []*instruction.Instruction, dir instruction.Direction) (Ranking[civil.Date], error)
	RankEntitiesByAmount(ins []*instruction.Instruction, dir instruction.Direction) (Ranking[string], error)
}

// Calculator implements Operations. The zero value is ready to use.
type Calculator struct{}

var _ Operations = (*Calculator)(nil)

func New() *Calculator {
	return &Calculator{}
}

// TradeAmount is unit price × units × agreed fx, rounded half-to-even to
// AmountScale digits.
func (c *Calculator) TradeAmount(in *instruction.Instruction) (decimal.Decimal, error) {
	if in == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: instruction must not be nil for trade amount calculation", ErrInvalidArgument)
	}

	return in.UnitPrice().
		Mul(decimal.NewFromInt(in.Units())).
		Mul(in.AgreedFx()).
		RoundBank(AmountScale), nil
}

// DailySettledAmount sums the trade amounts of every instruction in
// direction dir per settlement date, earliest date first. The settlement
// date is always recomputed from the instruction date and currency.
func (c *Calculator) DailySettledAmount(ins []*instruction.Instruction, dir instruction.Direction) (Ranking[civil.Date], error) {
	return aggregate(c, ins, dir,
		func(in *instruction.Instruction) (civil.Date, error) {
			return c.ResolveSettlementDate(in.InstructionDate(), in.Currency())
		},
		func(a, b Entry[civil.Date]) bool {
			return a.Key.Before(b.Key)
		},
	)
}

// RankEntitiesByAmount sums the trade amounts of every instruction in
// direction dir per entity, largest total first. Entities with equal totals
// are ordered by name.
func (c *Calculator) RankEntitiesByAmount(ins []*instruction.Instruction, dir instruction.Direction) (Ranking[string], error) {
	return aggregate(c, ins, dir,
		func(in *instruction.Instruction) (string, error) {
			return in.Entity(), nil
		},
		func(a, b Entry[string]) bool {
			if cmp := a.Amount.Cmp(b.Amount); cmp != 0 {
				return cmp > 0
			}
			return a.Key < b.Key
		},
	)
}
