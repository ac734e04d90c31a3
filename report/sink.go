// Package report turns calculator results into report sections and hands
// them to a sink for rendering.
package report

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rustyeddy/fxreport/instruction"
	"github.com/rustyeddy/fxreport/tradeops"
	"github.com/shopspring/decimal"
)

// ErrInvalidSection is returned by sinks for sections they cannot render.
var ErrInvalidSection = errors.New("valid report data, report type and direction are required for report output")

// SectionKind identifies what a section's rows are keyed by.
type SectionKind int

const (
	SettlementByDate SectionKind = iota + 1
	EntityRanking
)

func (k SectionKind) String() string {
	switch k {
	case SettlementByDate:
		return "settlement-by-date"
	case EntityRanking:
		return "entity-ranking"
	}
	return "unknown"
}

// Row is one line of a section. Date is set for SettlementByDate
// sections, Entity for EntityRanking sections.
type Row struct {
	Date   civil.Date
	Entity string
	Amount decimal.Decimal
}

// Section is one ordered block of the report.
type Section struct {
	Kind      SectionKind
	Direction instruction.Direction
	Currency  string
	Rows      []Row
}

func (s Section) Validate() error {
	if len(s.Rows) == 0 || s.Currency == "" || !s.Direction.Valid() {
		return ErrInvalidSection
	}
	if s.Kind != SettlementByDate && s.Kind != EntityRanking {
		return fmt.Errorf("%w: unknown section kind %d", ErrInvalidSection, int(s.Kind))
	}
	return nil
}

// RunMeta describes one report run.
type RunMeta struct {
	RunID        string
	GeneratedAt  time.Time
	Firm         string
	Title        string
	Currency     string
	Instructions int
	Sections     int
}

// Sink renders a report. Calls arrive as WriteHeader, zero or more
// WriteSection, then WriteFooter.
type Sink interface {
	WriteHeader(meta RunMeta) error
	WriteSection(s Section) error
	WriteFooter() error
}

// SettlementSection converts a daily settled amount result.
func SettlementSection(currency string, dir instruction.Direction, r tradeops.Ranking[civil.Date]) Section {
	s := Section{Kind: SettlementByDate, Direction: dir, Currency: currency}
	for _, e := range r {
		s.Rows = append(s.Rows, Row{Date: e.Key, Amount: e.Amount})
	}
	return s
}

// RankingSection converts an entity ranking result.
func RankingSection(currency string, dir instruction.Direction, r tradeops.Ranking[string]) Section {
	s := Section{Kind: EntityRanking, Direction: dir, Currency: currency}
	for _, e := range r {
		s.Rows = append(s.Rows, Row{Entity: e.Key, Amount: e.Amount})
	}
	return s
}
