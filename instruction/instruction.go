// Package instruction holds the FX trade instruction record consumed by the
// settlement calculator and produced by instruction sources.
package instruction

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ErrInvalid is returned by BuildValid when mandatory fields are missing
// or out of range.
var ErrInvalid = errors.New("some mandatory fields on instruction were not set to correct values")

// Instruction is a single FX trade instruction sent by a client entity.
// It is immutable once built; WithSettlementDate returns a copy.
type Instruction struct {
	entity          string
	direction       Direction
	agreedFx        decimal.Decimal
	currency        string
	instructionDate civil.Date
	settlementDate  civil.Date
	units           int64
	unitPrice       decimal.Decimal
}

func (in *Instruction) Entity() string { return in.entity }
func (in *Instruction) Direction() Direction { return in.direction }
func (in *Instruction) AgreedFx() decimal.Decimal { return in.agreedFx }
func (in *Instruction) Currency() string { return in.currency }
func (in *Instruction) InstructionDate() civil.Date { return in.instructionDate }
func (in *Instruction) Units() int64 { return in.units }
func (in *Instruction) UnitPrice() decimal.Decimal { return in.unitPrice }

// SettlementDate is the date recorded by whoever produced the instruction.
// It is informational; the calculator always derives its own.
func (in *Instruction) SettlementDate() civil.Date { return in.settlementDate }

// WithSettlementDate returns a copy of the instruction with the stored
// settlement date replaced.
func (in *Instruction) WithSettlementDate(d civil.Date) *Instruction {
	cp := *in
	cp.settlementDate = d
	return &cp
}

func (in *Instruction) String() string {
	return fmt.Sprintf("Entity: %s, Operation: %s, AgreedFx: %s, Currency: %s, InstructionDate: %s, SettlementDate: %s, Units: %d, UnitPrice: %s",
		in.entity, in.direction.Code(), in.agreedFx, in.currency,
		in.instructionDate, in.settlementDate, in.units, in.unitPrice)
}

// Validate reports every field that violates the instruction invariants.
func (in *Instruction) Validate() error {
	var problems []string

	if strings.TrimSpace(in.entity) == "" {
		problems = append(problems, "entity is required")
	}
	if !in.direction.Valid() {
		problems = append(problems, "direction is required")
	}
	if !in.agreedFx.IsPositive() {
		problems = append(problems, "agreed fx must be positive")
	}
	if in.currency == "" {
		problems = append(problems, "currency is required")
	} else if _, err := currency.ParseISO(in.currency); err != nil {
		problems = append(problems, fmt.Sprintf("unknown currency %q", in.currency))
	}
	if in.instructionDate.IsZero() || !in.instructionDate.IsValid() {
		problems = append(problems, "instruction date is required")
	}
	if in.units <= 0 {
		problems = append(problems, "units must be positive")
	}
	if !in.unitPrice.IsPositive() {
		problems = append(problems, "unit price must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
