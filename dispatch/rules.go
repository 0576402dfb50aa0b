package dispatch

import (
	"strings"
	"time"
)

// TimeRange is the dispatch window shown to the customer (display only).
type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Rule describes the weekly dispatch availability of a product category.
// AvailableDays uses time.Weekday values (Sunday = 0). CutoffHour is the
// latest hour at which same-day dispatch may still be selected.
type Rule struct {
	Category      string         `json:"category"`
	AvailableDays []time.Weekday `json:"availableDays"`
	TimeRange     TimeRange      `json:"timeRange"`
	CutoffHour    int            `json:"cutoffHour"`
	Description   string         `json:"description"`
}

// dispatchRules is ordered: lookup is first match wins, and the first
// entry (policarbonato) doubles as the fallback when nothing matches.
var dispatchRules = []Rule{
	{
		Category:      "policarbonato",
		AvailableDays: []time.Weekday{time.Thursday},
		TimeRange:     TimeRange{Start: 9, End: 18},
		CutoffHour:    18,
		Description:   "Solo jueves de 9:00 a 18:00 hrs",
	},
	{
		Category:      "accesorio",
		AvailableDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		TimeRange:     TimeRange{Start: 9, End: 18},
		CutoffHour:    16,
		Description:   "Lunes a viernes de 9:00 a 18:00 hrs",
	},
	{
		Category:      "rollo",
		AvailableDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		TimeRange:     TimeRange{Start: 9, End: 18},
		CutoffHour:    16,
		Description:   "Lunes a viernes de 9:00 a 18:00 hrs",
	},
	{
		Category:      "perfil",
		AvailableDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		TimeRange:     TimeRange{Start: 9, End: 18},
		CutoffHour:    16,
		Description:   "Lunes a viernes de 9:00 a 18:00 hrs",
	},
	{
		Category:      "pintura",
		AvailableDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		TimeRange:     TimeRange{Start: 9, End: 17},
		CutoffHour:    15,
		Description:   "Lunes a viernes de 9:00 a 17:00 hrs",
	},
	{
		Category:      "sellador",
		AvailableDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		TimeRange:     TimeRange{Start: 9, End: 17},
		CutoffHour:    15,
		Description:   "Lunes a viernes de 9:00 a 17:00 hrs",
	},
	{
		Category:      "herramienta",
		AvailableDays: []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		TimeRange:     TimeRange{Start: 9, End: 18},
		CutoffHour:    16,
		Description:   "Lunes a viernes de 9:00 a 18:00 hrs",
	},
}

// RuleForProduct resolves the dispatch rule for a free-text product
// type by case-insensitive substring match, in table order. When no
// rule matches, the policarbonato rule is returned and matched=false
// so callers can tell the default was applied.
func RuleForProduct(productType string) (rule Rule, matched bool) {
	normalized := strings.ToLower(productType)
	for _, r := range dispatchRules {
		if strings.Contains(normalized, r.Category) {
			return r, true
		}
	}
	return dispatchRules[0], false
}

func (r Rule) availableOn(day time.Weekday) bool {
	for _, d := range r.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}
