package dispatch

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNextDispatchDate_Policarbonato(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			// Wednesday blocks the immediately following Thursday
			name: "wednesday skips tomorrow",
			now:  at(2025, time.March, 19, 10),
			want: date(2025, time.March, 27),
		},
		{
			name: "thursday before cutoff dispatches same day",
			now:  at(2025, time.March, 20, 10),
			want: date(2025, time.March, 20),
		},
		{
			name: "thursday at cutoff rolls to next week",
			now:  at(2025, time.March, 20, 18),
			want: date(2025, time.March, 27),
		},
		{
			name: "thursday after cutoff rolls to next week",
			now:  at(2025, time.March, 20, 21),
			want: date(2025, time.March, 27),
		},
		{
			name: "tuesday picks the upcoming thursday",
			now:  at(2025, time.March, 18, 12),
			want: date(2025, time.March, 20),
		},
		{
			name: "saturday picks the next thursday",
			now:  at(2025, time.March, 22, 12),
			want: date(2025, time.March, 27),
		},
		{
			// 2025-05-01 is Día del Trabajo, a Thursday
			name: "holiday thursday is skipped by the forward scan",
			now:  at(2025, time.April, 29, 10),
			want: date(2025, time.May, 8),
		},
		{
			name: "wednesday scan also skips holiday thursdays",
			now:  at(2025, time.April, 23, 10),
			want: date(2025, time.May, 8),
		},
		{
			name: "thursday on a holiday rolls a full week",
			now:  at(2025, time.May, 1, 10),
			want: date(2025, time.May, 8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NextDispatchDate("Policarbonato Alveolar", tt.now)
			require.NoError(t, err)
			require.Equal(t, tt.want, res.Date)
			require.Equal(t, time.Thursday, res.Date.Weekday())
			require.False(t, res.DefaultRuleApplied)
		})
	}
}

func TestNextDispatchDate_GenericCategories(t *testing.T) {
	tests := []struct {
		name        string
		productType string
		now         time.Time
		want        time.Time
	}{
		{
			name:        "accesorio before cutoff dispatches same day",
			productType: "Accesorios de instalación",
			now:         at(2025, time.March, 18, 14),
			want:        date(2025, time.March, 18),
		},
		{
			name:        "accesorio after cutoff moves to next day",
			productType: "Accesorios de instalación",
			now:         at(2025, time.March, 18, 17),
			want:        date(2025, time.March, 19),
		},
		{
			name:        "rollo on saturday waits for monday",
			productType: "Rollo Compacto",
			now:         at(2025, time.March, 22, 10),
			want:        date(2025, time.March, 24),
		},
		{
			// Pintura cutoff is 15, an hour earlier than accesorio
			name:        "pintura cutoff at 15",
			productType: "Pintura impermeabilizante",
			now:         at(2025, time.March, 18, 15),
			want:        date(2025, time.March, 19),
		},
		{
			// 2025-05-01 (Thursday) is a holiday; 2025-04-30 is Wednesday
			name:        "holiday pushes generic dispatch to friday",
			productType: "Herramientas",
			now:         at(2025, time.April, 30, 17),
			want:        date(2025, time.May, 2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NextDispatchDate(tt.productType, tt.now)
			require.NoError(t, err)
			require.Equal(t, tt.want, res.Date)
			require.False(t, res.DefaultRuleApplied)
		})
	}
}

func TestNextDispatchDate_UnknownTypeUsesDefaultRule(t *testing.T) {
	// Unknown categories inherit the policarbonato rule (Thursdays
	// only) but are flagged so callers can tell.
	res, err := NextDispatchDate("Madera dimensionada", at(2025, time.March, 18, 10))
	require.NoError(t, err)
	require.True(t, res.DefaultRuleApplied)
	require.Equal(t, "policarbonato", res.Rule.Category)
	require.Equal(t, date(2025, time.March, 20), res.Date)
}

func TestNextDispatchDate_IsDateOnly(t *testing.T) {
	res, err := NextDispatchDate("Policarbonato Ondulado", at(2025, time.March, 18, 11))
	require.NoError(t, err)
	require.Equal(t, 0, res.Date.Hour())
	require.Equal(t, 0, res.Date.Minute())
}

func TestDaysUntilNextDispatch(t *testing.T) {
	days, err := DaysUntilNextDispatch("Policarbonato Alveolar", at(2025, time.March, 19, 10))
	require.NoError(t, err)
	require.Equal(t, 8, days)

	days, err = DaysUntilNextDispatch("Accesorios", at(2025, time.March, 18, 10))
	require.NoError(t, err)
	require.Equal(t, 0, days)
}

func TestDaysUntilNextDispatch_DSTTransition(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	require.NoError(t, err)

	// Chilean summer time starts the night of September 6, 2025, so
	// the span from Friday the 5th to Thursday the 11th contains a
	// 23-hour day. Six calendar days must still count as six.
	now := time.Date(2025, time.September, 5, 10, 0, 0, 0, santiago)
	days, err := DaysUntilNextDispatch("Policarbonato Alveolar", now)
	require.NoError(t, err)
	require.Equal(t, 6, days)
}

func TestRuleForProduct(t *testing.T) {
	rule, matched := RuleForProduct("Perfil clip transparente")
	require.True(t, matched)
	require.Equal(t, "perfil", rule.Category)
	require.Equal(t, 16, rule.CutoffHour)

	rule, matched = RuleForProduct("algo sin categoría")
	require.False(t, matched)
	require.Equal(t, "policarbonato", rule.Category)
}

func TestIsChileanHoliday(t *testing.T) {
	require.True(t, IsChileanHoliday(date(2025, time.January, 1)))
	require.True(t, IsChileanHoliday(date(2025, time.September, 18)))
	require.False(t, IsChileanHoliday(date(2025, time.March, 27)))

	require.Equal(t, "Navidad", HolidayName(date(2025, time.December, 25)))
	require.Equal(t, "", HolidayName(date(2025, time.March, 27)))
}

func TestHolidaysReturnsCopy(t *testing.T) {
	holidays := Holidays()
	holidays["02-02"] = "inventado"
	require.False(t, IsChileanHoliday(date(2025, time.February, 2)))
}
