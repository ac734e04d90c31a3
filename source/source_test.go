package source

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rustyeddy/fxreport/config"
	"github.com/rustyeddy/fxreport/instruction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameInstructions(t *testing.T, want, got []*instruction.Instruction) {
	t.Helper()

	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].String(), got[i].String(), "instruction %d", i)
	}
}

func TestStaticSampleInstructions(t *testing.T) {
	t.Parallel()

	ins, err := Static{}.RetrieveInstructions(context.Background())
	require.NoError(t, err)
	require.Len(t, ins, 6)

	for _, in := range ins {
		assert.NoError(t, in.Validate())
	}
	assert.Equal(t, "foo", ins[0].Entity())
	assert.Equal(t, instruction.Outgoing, ins[0].Direction())
	assert.Equal(t, civil.Date{Year: 2016, Month: time.January, Day: 5}, ins[0].SettlementDate())
	assert.Equal(t, "mac", ins[5].Entity())

	// Each call hands out a fresh slice.
	again := SampleInstructions()
	again[0] = nil
	assert.NotNil(t, SampleInstructions()[0])
}

func TestCSVRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, SampleInstructions()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "entity,direction,agreed_fx,currency,instruction_date,settlement_date,units,unit_price", lines[0])
	assert.Equal(t, "foo,B,0.5,SGD,2016-01-01,2016-01-05,200,100.25", lines[1])

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assertSameInstructions(t, SampleInstructions(), got)
}

func TestCSVFileSource(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "instructions.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, WriteCSV(f, SampleInstructions()))
	require.NoError(t, f.Close())

	got, err := NewCSV(path).RetrieveInstructions(context.Background())
	require.NoError(t, err)
	assertSameInstructions(t, SampleInstructions(), got)

	_, err = NewCSV(filepath.Join(t.TempDir(), "missing.csv")).RetrieveInstructions(context.Background())
	assert.ErrorContains(t, err, "open instructions csv")
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	header := "entity,direction,agreed_fx,currency,instruction_date,settlement_date,units,unit_price\n"

	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"empty", "", "instructions csv is empty"},
		{"wrong header", strings.Replace(header, "units", "qty", 1), `got "qty", want "units"`},
		{"short row", header + "foo,B,0.5\n", "read csv row 2"},
		{"bad direction", header + "foo,X,0.5,SGD,2016-01-01,,200,100.25\n", `csv row 2: unknown direction "X"`},
		{"bad rate", header + "foo,B,abc,SGD,2016-01-01,,200,100.25\n", "agreed_fx"},
		{"bad date", header + "foo,B,0.5,SGD,01/01/2016,,200,100.25\n", "instruction_date"},
		{"bad settlement date", header + "foo,B,0.5,SGD,2016-01-01,soon,200,100.25\n", "settlement_date"},
		{"bad units", header + "foo,B,0.5,SGD,2016-01-01,,many,100.25\n", "units"},
		{"bad price", header + "foo,B,0.5,SGD,2016-01-01,,200,x\n", "unit_price"},
		{"invalid instruction", header + "foo,B,0.5,SGD,2016-01-01,,0,100.25\n", "units must be positive"},
		{"row number", header + "foo,B,0.5,SGD,2016-01-01,,200,100.25\nbar,S,-1,AED,2016-04-08,,450,150.5\n", "csv row 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestReadCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	got, err := ReadCSV(strings.NewReader(strings.Join(CSVHeader, ",") + "\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "instructions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSaveAllAndRetrieve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSQLite(t)

	require.NoError(t, s.SaveAll(ctx, SampleInstructions()))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	got, err := s.RetrieveInstructions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 6)

	var entities []string
	for _, in := range got {
		entities = append(entities, in.Entity())
	}
	// Ordered by instruction date.
	assert.Equal(t, []string{"foo", "bar", "def", "xyz", "abc", "mac"}, entities)
	assert.Equal(t, SampleInstructions()[0].String(), got[0].String())
}

func TestSQLiteSaveRejectsInvalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSQLite(t)

	bad := instruction.NewBuilder().Entity("bad").Build()
	_, err := s.Save(ctx, bad)
	assert.ErrorIs(t, err, instruction.ErrInvalid)

	err = s.SaveAll(ctx, append(SampleInstructions(), bad))
	assert.ErrorIs(t, err, instruction.ErrInvalid)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteSaveAndListBetween(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSQLite(t)

	for _, in := range SampleInstructions() {
		rowID, err := s.Save(ctx, in)
		require.NoError(t, err)
		assert.Len(t, rowID, 26)
	}

	got, err := s.ListBetween(ctx,
		civil.Date{Year: 2016, Month: time.April, Day: 1},
		civil.Date{Year: 2016, Month: time.July, Day: 6})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "bar", got[0].Entity())
	assert.Equal(t, "def", got[1].Entity())
	assert.Equal(t, "xyz", got[2].Entity())
}

func TestSQLiteKeepsMissingSettlementDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestSQLite(t)

	in := SampleInstructions()[0].WithSettlementDate(civil.Date{})
	_, err := s.Save(ctx, in)
	require.NoError(t, err)

	got, err := s.RetrieveInstructions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].SettlementDate().IsZero())
}

func TestOpen(t *testing.T) {
	t.Parallel()

	src, closeFn, err := Open(config.SourceConfig{Type: "static"})
	require.NoError(t, err)
	assert.IsType(t, Static{}, src)
	assert.NoError(t, closeFn())

	src, closeFn, err = Open(config.SourceConfig{Type: "csv", Path: "in.csv"})
	require.NoError(t, err)
	assert.IsType(t, &CSV{}, src)
	assert.NoError(t, closeFn())

	src, closeFn, err = Open(config.SourceConfig{Type: "sqlite", Path: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, src)
	assert.NoError(t, closeFn())

	_, _, err = Open(config.SourceConfig{Type: "ftp"})
	assert.ErrorContains(t, err, `unknown source type "ftp"`)
}
