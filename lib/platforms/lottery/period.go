package lottery

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const specialToken = "special"

// Period identifies which table of the portal a receipt is filed under,
// either a calendar month or the special category.
type Period struct {
	special bool
	month   time.Month
	year    int
}

var SpecialPeriod = Period{special: true}

// MonthPeriod returns the period of the month `t` falls in, callers must
// convert `t` to the portal location first.
func MonthPeriod(t time.Time) Period {
	return Period{month: t.Month(), year: t.Year()}
}

// ParsePeriod parses a period token, either "special" or "<month>.<year>".
func ParsePeriod(token string) (Period, error) {
	if token == specialToken {
		return SpecialPeriod, nil
	}
	month, year, ok := strings.Cut(token, ".")
	if !ok {
		return Period{}, fmt.Errorf("invalid period token %q", token)
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return Period{}, fmt.Errorf("invalid month in period token %q", token)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Period{}, fmt.Errorf("invalid year in period token %q", token)
	}
	return Period{month: time.Month(m), year: y}, nil
}

func (p Period) Special() bool {
	return p.special
}

func (p Period) String() string {
	if p.special {
		return specialToken
	}
	return fmt.Sprintf("%d.%d", int(p.month), p.year)
}

// withPeriodFallback tries `primary` and then the special period, an attempt
// reports found=false when the portal answered with its not-found sentinel.
// There is never a third attempt.
func withPeriodFallback[T any](
	id string,
	primary Period,
	attempt func(period Period) (value T, found bool, err error),
) (T, Period, error) {
	periods := []Period{primary, SpecialPeriod}
	if primary.special {
		periods = periods[:1]
	}
	for _, period := range periods {
		value, found, err := attempt(period)
		if err != nil {
			return value, period, err
		}
		if found {
			return value, period, nil
		}
	}

	var zero T
	return zero, SpecialPeriod, ticketNotFound(id)
}
