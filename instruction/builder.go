package instruction

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Builder assembles an Instruction field by field.
//
//	in := instruction.NewBuilder().
//		Entity("foo").
//		Direction(instruction.Outgoing).
//		AgreedFx(decimal.RequireFromString("0.50")).
//		Currency("SGD").
//		InstructionDate(civil.Date{Year: 2016, Month: time.January, Day: 1}).
//		Units(200).
//		UnitPrice(decimal.RequireFromString("100.25")).
//		Build()
type Builder struct {
	in Instruction
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Entity(v string) *Builder {
	b.in.entity = v
	return b
}

func (b *Builder) Direction(v Direction) *Builder {
	b.in.direction = v
	return b
}

func (b *Builder) AgreedFx(v decimal.Decimal) *Builder {
	b.in.agreedFx = v
	return b
}

// Currency stores the ISO 4217 code upper-cased.
func (b *Builder) Currency(v string) *Builder {
	b.in.currency = strings.ToUpper(strings.TrimSpace(v))
	return b
}

func (b *Builder) InstructionDate(v civil.Date) *Builder {
	b.in.instructionDate = v
	return b
}

func (b *Builder) SettlementDate(v civil.Date) *Builder {
	b.in.settlementDate = v
	return b
}

func (b *Builder) Units(v int64) *Builder {
	b.in.units = v
	return b
}

func (b *Builder) UnitPrice(v decimal.Decimal) *Builder {
	b.in.unitPrice = v
	return b
}

// Build returns the instruction without checking it. Producers that need
// the invariants enforced use BuildValid.
func (b *Builder) Build() *Instruction {
	in := b.in
	return &in
}

// BuildValid returns the instruction or an error wrapping ErrInvalid.
func (b *Builder) BuildValid() (*Instruction, error) {
	in := b.Build()
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return in, nil
}
