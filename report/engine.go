package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/fxreport/instruction"
	"github.com/rustyeddy/fxreport/pkg/id"
	"github.com/rustyeddy/fxreport/source"
	"github.com/rustyeddy/fxreport/tradeops"
)

// Engine runs one report: retrieve instructions, compute the four
// aggregations and write them to the sink.
type Engine struct {
	Source   source.Source
	Ops      tradeops.Operations
	Sink     Sink
	Firm     string
	Title    string
	Currency string
	Logger   zerolog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run produces the report. Source and calculator failures abort the run
// before anything is written to the sink. Empty aggregations are left out
// of the report.
func (e *Engine) Run(ctx context.Context) (RunMeta, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	at := now()
	meta := RunMeta{
		RunID:       id.NewAt(at),
		GeneratedAt: at,
		Firm:        e.Firm,
		Title:       e.Title,
		Currency:    e.Currency,
	}
	log := e.Logger.With().Str("run_id", meta.RunID).Logger()

	ins, err := e.Source.RetrieveInstructions(ctx)
	if err != nil {
		return meta, fmt.Errorf("retrieve instructions: %w", err)
	}
	meta.Instructions = len(ins)
	log.Info().Int("instructions", len(ins)).Msg("instructions retrieved")

	settledOut, err := e.Ops.DailySettledAmount(ins, instruction.Outgoing)
	if err != nil {
		return meta, fmt.Errorf("outgoing settled amounts: %w", err)
	}
	settledIn, err := e.Ops.DailySettledAmount(ins, instruction.Incoming)
	if err != nil {
		return meta, fmt.Errorf("incoming settled amounts: %w", err)
	}
	rankingOut, err := e.Ops.RankEntitiesByAmount(ins, instruction.Outgoing)
	if err != nil {
		return meta, fmt.Errorf("outgoing entity ranking: %w", err)
	}
	rankingIn, err := e.Ops.RankEntitiesByAmount(ins, instruction.Incoming)
	if err != nil {
		return meta, fmt.Errorf("incoming entity ranking: %w", err)
	}

	sections := []Section{
		SettlementSection(e.Currency, instruction.Incoming, settledIn),
		SettlementSection(e.Currency, instruction.Outgoing, settledOut),
		RankingSection(e.Currency, instruction.Incoming, rankingIn),
		RankingSection(e.Currency, instruction.Outgoing, rankingOut),
	}

	if err := ctx.Err(); err != nil {
		return meta, err
	}

	if err := e.Sink.WriteHeader(meta); err != nil {
		return meta, fmt.Errorf("write header: %w", err)
	}
	for _, s := range sections {
		if len(s.Rows) == 0 {
			log.Debug().
				Str("kind", s.Kind.String()).
				Str("direction", s.Direction.String()).
				Msg("no instructions for section, skipping")
			continue
		}
		if err := e.Sink.WriteSection(s); err != nil {
			return meta, fmt.Errorf("write %s %s section: %w", s.Direction, s.Kind, err)
		}
		meta.Sections++
	}
	if err := e.Sink.WriteFooter(); err != nil {
		return meta, fmt.Errorf("write footer: %w", err)
	}

	log.Info().
		Int("sections", meta.Sections).
		Str("settled_out", settledOut.Total().StringFixed(tradeops.AmountScale)).
		Str("settled_in", settledIn.Total().StringFixed(tradeops.AmountScale)).
		Msg("report written")
	return meta, nil
}
