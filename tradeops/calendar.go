package tradeops

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Weekdays is a set of days of the week.
type Weekdays uint8

func NewWeekdays(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

func (w Weekdays) Contains(d time.Weekday) bool {
	return w&(1<<uint(d)) != 0
}

var (
	mondayToFriday   = NewWeekdays(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
	thursdayToSunday = NewWeekdays(time.Thursday, time.Friday, time.Saturday, time.Sunday)
)

// workingWeeks maps currencies whose market does not trade Monday to Friday
// onto their working week. Anything not listed uses mondayToFriday.
var workingWeeks = map[string]Weekdays{
	"AED": thursdayToSunday,
	"SAR": thursdayToSunday,
}

// WorkingWeek returns the days on which instructions in currency settle.
func WorkingWeek(currency string) Weekdays {
	if w, ok := workingWeeks[strings.ToUpper(currency)]; ok {
		return w
	}
	return mondayToFriday
}

// IsWorkingDay reports whether d is a settlement day for currency.
func IsWorkingDay(d civil.Date, currency string) bool {
	return WorkingWeek(currency).Contains(weekday(d))
}

func weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// ResolveSettlementDate returns the first working day for currency strictly
// after date. Every working week has at least one day so the loop ends
// within seven steps.
func (c *Calculator) ResolveSettlementDate(date civil.Date, currency string) (civil.Date, error) {
	if date.IsZero() || !date.IsValid() || strings.TrimSpace(currency) == "" {
		return civil.Date{}, fmt.Errorf("%w: a valid date and currency symbol are required for settlement date calculation", ErrInvalidArgument)
	}

	week := WorkingWeek(currency)
	settlement := date.AddDays(1)
	for !week.Contains(weekday(settlement)) {
		settlement = settlement.AddDays(1)
	}
	return settlement, nil
}
