package dispatch

import "time"

// chileanHolidays maps "MM-DD" to the holiday name. The table is
// year independent: Easter-derived dates (Viernes/Sábado Santo) are
// the 2024 dates and drift in other years. Kept as-is on purpose;
// replacing it with a computus would change observed behavior.
var chileanHolidays = map[string]string{
	"01-01": "Año Nuevo",
	"03-29": "Viernes Santo",
	"03-30": "Sábado Santo",
	"05-01": "Día del Trabajo",
	"05-21": "Día de las Glorias Navales",
	"06-20": "Día Nacional de los Pueblos Indígenas",
	"06-29": "San Pedro y San Pablo",
	"07-16": "Día de la Virgen del Carmen",
	"08-15": "Asunción de la Virgen",
	"09-18": "Primera Junta Nacional de Gobierno",
	"09-19": "Día de las Glorias del Ejército",
	"09-20": "Feriado adicional Fiestas Patrias",
	"10-12": "Encuentro de Dos Mundos",
	"10-31": "Día de las Iglesias Evangélicas",
	"11-01": "Día de Todos los Santos",
	"12-08": "Inmaculada Concepción",
	"12-25": "Navidad",
}

func holidayKey(date time.Time) string {
	return date.Format("01-02")
}

// IsChileanHoliday reports whether the date falls on a listed holiday.
func IsChileanHoliday(date time.Time) bool {
	_, ok := chileanHolidays[holidayKey(date)]
	return ok
}

// HolidayName returns the holiday name for the date, or "" if the
// date is not a holiday.
func HolidayName(date time.Time) string {
	return chileanHolidays[holidayKey(date)]
}

// Holidays returns a copy of the holiday table keyed by "MM-DD".
func Holidays() map[string]string {
	out := make(map[string]string, len(chileanHolidays))
	for k, v := range chileanHolidays {
		out[k] = v
	}
	return out
}
