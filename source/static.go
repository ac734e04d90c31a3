package source

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rustyeddy/fxreport/instruction"
	"github.com/shopspring/decimal"
)

// Static serves a fixed set of six sample instructions.
type Static struct{}

func (Static) RetrieveInstructions(ctx context.Context) ([]*instruction.Instruction, error) {
	return SampleInstructions(), nil
}

type sample struct {
	entity     string
	dir        instruction.Direction
	fx         string
	currency   string
	in, settle civil.Date
	units      int64
	price      string
}

var samples = []sample{
	{"foo", instruction.Outgoing, "0.50", "SGD", civil.Date{Year: 2016, Month: time.January, Day: 1}, civil.Date{Year: 2016, Month: time.January, Day: 5}, 200, "100.25"},
	{"bar", instruction.Incoming, "0.22", "AED", civil.Date{Year: 2016, Month: time.April, Day: 8}, civil.Date{Year: 2016, Month: time.April, Day: 13}, 450, "150.50"},
	{"abc", instruction.Incoming, "0.38", "AED", civil.Date{Year: 2016, Month: time.September, Day: 8}, civil.Date{Year: 2016, Month: time.September, Day: 17}, 220, "124.50"},
	{"def", instruction.Outgoing, "0.75", "SAR", civil.Date{Year: 2016, Month: time.June, Day: 5}, civil.Date{Year: 2016, Month: time.June, Day: 17}, 231, "131.50"},
	{"xyz", instruction.Outgoing, "1.06", "GBP", civil.Date{Year: 2016, Month: time.July, Day: 6}, civil.Date{Year: 2016, Month: time.July, Day: 19}, 571, "110.50"},
	{"mac", instruction.Incoming, "1.12", "EUR", civil.Date{Year: 2016, Month: time.October, Day: 15}, civil.Date{Year: 2016, Month: time.October, Day: 19}, 171, "103.50"},
}

// SampleInstructions returns a fresh copy of the sample set.
func SampleInstructions() []*instruction.Instruction {
	out := make([]*instruction.Instruction, 0, len(samples))
	for _, s := range samples {
		out = append(out, instruction.NewBuilder().
			Entity(s.entity).
			Direction(s.dir).
			AgreedFx(decimal.RequireFromString(s.fx)).
			Currency(s.currency).
			InstructionDate(s.in).
			SettlementDate(s.settle).
			Units(s.units).
			UnitPrice(decimal.RequireFromString(s.price)).
			Build())
	}
	return out
}
