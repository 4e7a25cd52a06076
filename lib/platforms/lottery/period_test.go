package lottery

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	for _, token := range []string{"special", "1.2016", "12.2015"} {
		period, err := ParsePeriod(token)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, token, period.String())
	}

	for _, token := range []string{"", "13.2016", "0.2016", "3-2016", "3.", "special.2016"} {
		_, err := ParsePeriod(token)
		require.Error(t, err, token)
	}

	require.True(t, SpecialPeriod.Special())
	require.Equal(t, "3.2016", MonthPeriod(testNow(t)).String())
}

func TestPeriodFallback(t *testing.T) {
	march := MonthPeriod(time.Date(2016, time.March, 1, 0, 0, 0, 0, time.UTC))

	t.Run("FoundInPrimary", func(t *testing.T) {
		attempts := []string{}
		value, period, err := withPeriodFallback("1", march, func(p Period) (string, bool, error) {
			attempts = append(attempts, p.String())
			return "found", true, nil
		})
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, "found", value)
		require.Equal(t, march, period)
		require.Equal(t, []string{"3.2016"}, attempts)
	})

	t.Run("FoundInSpecial", func(t *testing.T) {
		attempts := []string{}
		_, period, err := withPeriodFallback("1", march, func(p Period) (string, bool, error) {
			attempts = append(attempts, p.String())
			return "", p.Special(), nil
		})
		if err != nil {
			t.Fatal(err)
		}
		require.True(t, period.Special())
		require.Equal(t, []string{"3.2016", "special"}, attempts)
	})

	t.Run("NeverAThirdAttempt", func(t *testing.T) {
		attempts := 0
		_, _, err := withPeriodFallback("1", march, func(p Period) (string, bool, error) {
			attempts++
			return "", false, nil
		})
		require.ErrorIs(t, err, ErrTicketNotFound)
		require.Equal(t, 2, attempts)
	})

	t.Run("ErrorStopsFallback", func(t *testing.T) {
		failure := errors.New("broken")
		attempts := 0
		_, _, err := withPeriodFallback("1", march, func(p Period) (string, bool, error) {
			attempts++
			return "", false, failure
		})
		require.ErrorIs(t, err, failure)
		require.Equal(t, 1, attempts)
	})

	t.Run("SpecialPrimary", func(t *testing.T) {
		attempts := 0
		_, _, err := withPeriodFallback("1", SpecialPeriod, func(p Period) (string, bool, error) {
			attempts++
			return "", false, nil
		})
		require.ErrorIs(t, err, ErrTicketNotFound)
		require.Equal(t, 1, attempts)
	})
}
