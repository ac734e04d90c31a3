package report

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Org writes the report as an Org-mode document: run facts in a
// PROPERTIES drawer and one table per section.
type Org struct {
	w io.Writer
}

func NewOrg(w io.Writer) *Org {
	return &Org{w: w}
}

func (o *Org) WriteHeader(meta RunMeta) error {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("* %s: %s (%s)\n", meta.Firm, meta.Title, shortID(meta.RunID)))
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":RUN_ID: %s\n", meta.RunID))
	b.WriteString(fmt.Sprintf(":GENERATED_AT: %s\n", meta.GeneratedAt.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":CURRENCY: %s\n", meta.Currency))
	b.WriteString(fmt.Sprintf(":INSTRUCTIONS: %d\n", meta.Instructions))
	b.WriteString(":END:\n")

	_, err := io.WriteString(o.w, b.String())
	return err
}

func (o *Org) WriteSection(s Section) error {
	if err := s.Validate(); err != nil {
		return err
	}

	var heading, keyCol string
	switch s.Kind {
	case SettlementByDate:
		heading = fmt.Sprintf("** Amount settled %s per day (%s)", s.Direction, s.Currency)
		keyCol = "Date"
	case EntityRanking:
		heading = fmt.Sprintf("** Entity ranking, %s (%s)", s.Direction, s.Currency)
		keyCol = "Entity"
	}

	keys := make([]string, len(s.Rows))
	amounts := make([]string, len(s.Rows))
	keyW, amtW := len(keyCol), len("Amount")
	for i, r := range s.Rows {
		if s.Kind == SettlementByDate {
			keys[i] = r.Date.String()
		} else {
			keys[i] = r.Entity
		}
		amounts[i] = r.Amount.StringFixed(2)
		keyW = max(keyW, len(keys[i]))
		amtW = max(amtW, len(amounts[i]))
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("| %-*s | %*s |\n", keyW, keyCol, amtW, "Amount"))
	b.WriteString(fmt.Sprintf("|-%s-+-%s-|\n", strings.Repeat("-", keyW), strings.Repeat("-", amtW)))
	for i := range keys {
		b.WriteString(fmt.Sprintf("| %-*s | %*s |\n", keyW, keys[i], amtW, amounts[i]))
	}

	_, err := io.WriteString(o.w, b.String())
	return err
}

func (o *Org) WriteFooter() error {
	_, err := io.WriteString(o.w, "\n")
	return err
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
