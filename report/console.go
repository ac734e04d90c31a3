package report

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Console writes the plain text report. Amounts get the locale's currency
// symbol and digit grouping; dates use DateLayout.
type Console struct {
	w          io.Writer
	printer    *message.Printer
	dateLayout string
	meta       RunMeta
}

func NewConsole(w io.Writer, locale language.Tag, dateLayout string) *Console {
	return &Console{
		w:          w,
		printer:    message.NewPrinter(locale),
		dateLayout: dateLayout,
	}
}

func (c *Console) WriteHeader(meta RunMeta) error {
	c.meta = meta
	_, err := fmt.Fprintf(c.w, "\n-------  %s  -------\n-------  %s  -------\n", meta.Firm, meta.Title)
	return err
}

func (c *Console) WriteSection(s Section) error {
	if err := s.Validate(); err != nil {
		return err
	}

	symbol, err := c.symbol(s.Currency)
	if err != nil {
		return err
	}

	switch s.Kind {
	case SettlementByDate:
		if _, err := fmt.Fprintf(c.w, "\nAmount in %s settled %s everyday:\n", s.Currency, s.Direction); err != nil {
			return err
		}
		for _, r := range s.Rows {
			date := r.Date.In(time.UTC).Format(c.dateLayout)
			if _, err := fmt.Fprintf(c.w, "Date: %s  Amount: %s\n", date, c.money(symbol, r.Amount)); err != nil {
				return err
			}
		}
	case EntityRanking:
		if _, err := fmt.Fprintf(c.w, "\nCurrent ranking of entities based on %s operations:\n", s.Direction); err != nil {
			return err
		}
		for _, r := range s.Rows {
			if _, err := fmt.Fprintf(c.w, "EntityName: %s  Amount: %s\n", r.Entity, c.money(symbol, r.Amount)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Console) WriteFooter() error {
	_, err := fmt.Fprintf(c.w, "\n-------  End Report  -------\n-------  %s Copyright © %d  -------\n",
		c.meta.Firm, c.meta.GeneratedAt.Year())
	return err
}

func (c *Console) symbol(code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: unknown currency %q", ErrInvalidSection, code)
	}
	return c.printer.Sprint(currency.Symbol(unit)), nil
}

func (c *Console) money(symbol string, amount decimal.Decimal) string {
	return symbol + c.printer.Sprint(number.Decimal(amount.InexactFloat64(), number.Scale(2)))
}
