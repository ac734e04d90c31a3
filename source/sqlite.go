package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rustyeddy/fxreport/instruction"
	"github.com/rustyeddy/fxreport/pkg/id"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is an instruction store backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

const insertInstruction = `
	INSERT INTO instructions
	(id, entity, direction, agreed_fx, currency, instruction_date, settlement_date, units, unit_price, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectInstructions = `
	SELECT entity, direction, agreed_fx, currency, instruction_date, settlement_date, units, unit_price
	FROM instructions`

// Save validates and stores one instruction, returning its generated ID.
func (s *SQLite) Save(ctx context.Context, in *instruction.Instruction) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	rowID := id.New()
	_, err := s.db.ExecContext(ctx, insertInstruction, insertArgs(rowID, in)...)
	if err != nil {
		return "", fmt.Errorf("insert instruction: %w", err)
	}
	return rowID, nil
}

// SaveAll stores every instruction in one transaction. Nothing is stored
// if any instruction is invalid.
func (s *SQLite) SaveAll(ctx context.Context, ins []*instruction.Instruction) error {
	for i, in := range ins {
		if err := in.Validate(); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertInstruction)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, in := range ins {
		if _, err := stmt.ExecContext(ctx, insertArgs(id.New(), in)...); err != nil {
			return fmt.Errorf("insert instruction: %w", err)
		}
	}
	return tx.Commit()
}

func insertArgs(rowID string, in *instruction.Instruction) []any {
	var settle sql.NullString
	if !in.SettlementDate().IsZero() {
		settle = sql.NullString{String: in.SettlementDate().String(), Valid: true}
	}
	return []any{
		rowID,
		in.Entity(),
		in.Direction().Code(),
		in.AgreedFx().String(),
		in.Currency(),
		in.InstructionDate().String(),
		settle,
		in.Units(),
		in.UnitPrice().String(),
		time.Now().UTC(),
	}
}

// RetrieveInstructions returns every stored instruction ordered by
// instruction date, then insertion order.
func (s *SQLite) RetrieveInstructions(ctx context.Context) ([]*instruction.Instruction, error) {
	return s.query(ctx, selectInstructions+` ORDER BY instruction_date ASC, id ASC`)
}

// ListBetween returns instructions whose instruction date is within
// [start, end].
func (s *SQLite) ListBetween(ctx context.Context, start, end civil.Date) ([]*instruction.Instruction, error) {
	return s.query(ctx, selectInstructions+`
	WHERE instruction_date >= ? AND instruction_date <= ?
	ORDER BY instruction_date ASC, id ASC`, start.String(), end.String())
}

// Count returns the number of stored instructions.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM instructions`).Scan(&n)
	return n, err
}

func (s *SQLite) query(ctx context.Context, q string, args ...any) ([]*instruction.Instruction, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*instruction.Instruction
	for rows.Next() {
		var (
			entity, dir, fx, ccy, inDate, price string
			settle                              sql.NullString
			units                               int64
		)
		if err := rows.Scan(&entity, &dir, &fx, &ccy, &inDate, &settle, &units, &price); err != nil {
			return nil, err
		}

		in, err := parseRecord([]string{entity, dir, fx, ccy, inDate, settle.String, fmt.Sprint(units), price})
		if err != nil {
			return nil, fmt.Errorf("stored instruction for %q: %w", entity, err)
		}
		out = append(out, in)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
