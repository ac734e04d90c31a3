package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/rustyeddy/fxreport/instruction"
	"github.com/shopspring/decimal"
)

// CSVHeader is the column layout read by ReadCSV and written by WriteCSV.
var CSVHeader = []string{"entity", "direction", "agreed_fx", "currency", "instruction_date", "settlement_date", "units", "unit_price"}

// CSV reads instructions from a CSV file on every retrieval.
type CSV struct {
	path string
}

func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

func (c *CSV) RetrieveInstructions(ctx context.Context) ([]*instruction.Instruction, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("open instructions csv: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses and validates every row. Row numbers in errors count the
// header as row 1.
func ReadCSV(r io.Reader) ([]*instruction.Instruction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("instructions csv is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, col := range header {
		if strings.ToLower(strings.TrimSpace(col)) != CSVHeader[i] {
			return nil, fmt.Errorf("csv header column %d: got %q, want %q", i+1, col, CSVHeader[i])
		}
	}

	var out []*instruction.Instruction
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		in, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func parseRecord(rec []string) (*instruction.Instruction, error) {
	dir, err := instruction.ParseDirection(rec[1])
	if err != nil {
		return nil, err
	}
	fx, err := decimal.NewFromString(strings.TrimSpace(rec[2]))
	if err != nil {
		return nil, fmt.Errorf("agreed_fx: %w", err)
	}
	inDate, err := civil.ParseDate(strings.TrimSpace(rec[4]))
	if err != nil {
		return nil, fmt.Errorf("instruction_date: %w", err)
	}
	var settle civil.Date
	if s := strings.TrimSpace(rec[5]); s != "" {
		if settle, err = civil.ParseDate(s); err != nil {
			return nil, fmt.Errorf("settlement_date: %w", err)
		}
	}
	units, err := strconv.ParseInt(strings.TrimSpace(rec[6]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("units: %w", err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(rec[7]))
	if err != nil {
		return nil, fmt.Errorf("unit_price: %w", err)
	}

	return instruction.NewBuilder().
		Entity(strings.TrimSpace(rec[0])).
		Direction(dir).
		AgreedFx(fx).
		Currency(rec[3]).
		InstructionDate(inDate).
		SettlementDate(settle).
		Units(units).
		UnitPrice(price).
		BuildValid()
}

// WriteCSV writes ins with a header row in the format ReadCSV accepts.
func WriteCSV(w io.Writer, ins []*instruction.Instruction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, in := range ins {
		if err := cw.Write(record(in)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func record(in *instruction.Instruction) []string {
	return []string{
		in.Entity(),
		in.Direction().Code(),
		in.AgreedFx().String(),
		in.Currency(),
		in.InstructionDate().String(),
		dateString(in.SettlementDate()),
		strconv.FormatInt(in.Units(), 10),
		in.UnitPrice().String(),
	}
}

func dateString(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
