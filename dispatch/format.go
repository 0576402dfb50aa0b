package dispatch

import (
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"
)

// es-CL date vocabulary. The standard library does not localize dates,
// so the tables live here next to the only code that formats them.
var spanishWeekdays = [7]string{
	"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado",
}

var spanishMonthsShort = [13]string{
	"", "ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

var spanishMonthsLong = [13]string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatLongDate renders "jueves, 27 de mar" style es-CL dates.
func FormatLongDate(date time.Time) string {
	return fmt.Sprintf("%s, %d de %s",
		spanishWeekdays[date.Weekday()], date.Day(), spanishMonthsShort[date.Month()])
}

// FormatFullDate renders "jueves, 27 de marzo" for invoice lines.
func FormatFullDate(date time.Time) string {
	return fmt.Sprintf("%s, %d de %s",
		spanishWeekdays[date.Weekday()], date.Day(), spanishMonthsLong[date.Month()])
}

// FormatDispatchDate renders the customer-facing label with the first
// letter capitalized ("Despacho más próximo: Jueves, 27 de mar").
func FormatDispatchDate(date time.Time) string {
	return "Despacho más próximo: " + capitalizeFirst(FormatLongDate(date))
}

// TimeInfo renders the dispatch window of the product's rule.
func TimeInfo(productType string) string {
	rule, _ := RuleForProduct(productType)
	return fmt.Sprintf("%d:00 - %d:00 hrs", rule.TimeRange.Start, rule.TimeRange.End)
}

// Message combines the next dispatch date and the time window into the
// single line shown next to the calendar picker.
func Message(productType string, now time.Time) (string, error) {
	res, err := NextDispatchDate(productType, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Próximo: %s, %s", capitalizeFirst(FormatLongDate(res.Date)), TimeInfo(productType)), nil
}

// Description returns the rule's human readable availability text.
func Description(productType string) string {
	rule, _ := RuleForProduct(productType)
	return rule.Description
}
