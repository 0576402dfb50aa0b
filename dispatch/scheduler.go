package dispatch

import (
	"errors"
	"math"
	"strings"
	"time"
)

// maxLookaheadDays bounds the forward scans. Thursdays recur weekly
// and at most a couple of holidays can coincide, so the bound is not
// expected to be reached; when it is, the scheduler reports it
// instead of returning a zero date.
const maxLookaheadDays = 21

// ErrNoDispatchDate is returned when no valid dispatch date exists
// within the lookahead window.
var ErrNoDispatchDate = errors.New("dispatch: no valid dispatch date within lookahead window")

// Result is a resolved dispatch date. DefaultRuleApplied marks that
// the product type matched no rule and the fallback rule was used.
type Result struct {
	Date               time.Time `json:"date"`
	Rule               Rule      `json:"rule"`
	DefaultRuleApplied bool      `json:"defaultRuleApplied"`
}

// dateOnly truncates to midnight in the time's location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDispatchDate computes the next valid dispatch date for a product
// type, deterministically given now. Policarbonato has its own branch:
// a Wednesday blocks the immediately following Thursday, and dispatch
// only ever lands on Thursdays.
func NextDispatchDate(productType string, now time.Time) (Result, error) {
	rule, matched := RuleForProduct(productType)
	res := Result{Rule: rule, DefaultRuleApplied: !matched}

	currentDay := now.Weekday()
	currentHour := now.Hour()

	if strings.Contains(strings.ToLower(productType), "policarbonato") {
		switch {
		case currentDay == time.Wednesday:
			// Tomorrow's Thursday is blocked; search from next week on.
			for i := 8; i <= maxLookaheadDays; i++ {
				check := dateOnly(now).AddDate(0, 0, i)
				if check.Weekday() == time.Thursday && !IsChileanHoliday(check) {
					res.Date = check
					return res, nil
				}
			}
		case currentDay == time.Thursday && currentHour >= rule.CutoffHour:
			for i := 7; i <= maxLookaheadDays; i += 7 {
				check := dateOnly(now).AddDate(0, 0, i)
				if !IsChileanHoliday(check) {
					res.Date = check
					return res, nil
				}
			}
		case currentDay == time.Thursday && currentHour < rule.CutoffHour:
			if !IsChileanHoliday(now) {
				res.Date = dateOnly(now)
				return res, nil
			}
			for i := 7; i <= maxLookaheadDays; i += 7 {
				check := dateOnly(now).AddDate(0, 0, i)
				if !IsChileanHoliday(check) {
					res.Date = check
					return res, nil
				}
			}
		default:
			for i := 1; i <= maxLookaheadDays; i++ {
				check := dateOnly(now).AddDate(0, 0, i)
				if check.Weekday() == time.Thursday && !IsChileanHoliday(check) {
					res.Date = check
					return res, nil
				}
			}
		}
		return Result{}, ErrNoDispatchDate
	}

	// Generic branch: same-day dispatch when today qualifies, else the
	// first upcoming available non-holiday day.
	if rule.availableOn(currentDay) && currentHour < rule.CutoffHour && !IsChileanHoliday(now) {
		res.Date = dateOnly(now)
		return res, nil
	}
	for i := 1; i <= maxLookaheadDays; i++ {
		check := dateOnly(now).AddDate(0, 0, i)
		if rule.availableOn(check.Weekday()) && !IsChileanHoliday(check) {
			res.Date = check
			return res, nil
		}
	}
	return Result{}, ErrNoDispatchDate
}

// DaysUntilNextDispatch returns the whole days between now and the
// next dispatch date for the product type.
func DaysUntilNextDispatch(productType string, now time.Time) (int, error) {
	res, err := NextDispatchDate(productType, now)
	if err != nil {
		return 0, err
	}
	// Ceil, not truncate: a DST spring-forward leaves a 23-hour day
	// in the span and truncation would lose a whole day to it.
	return int(math.Ceil(res.Date.Sub(dateOnly(now)).Hours() / 24)), nil
}
