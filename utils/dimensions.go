package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseDimension parses a catalog dimension value in meters. Values
// may use a comma as decimal separator ("1,05"). Returns 0 for empty
// or unparseable input.
func ParseDimension(value string) float64 {
	normalized := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
	if normalized == "" {
		return 0
	}
	num, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return num
}

// FormatDimension renders a dimension value (meters) in the unit a
// customer expects: millimeters below 1 cm, centimeters below 1 m,
// meters otherwise. Decimals use the Chilean comma.
func FormatDimension(value string) string {
	num := ParseDimension(value)
	if num == 0 {
		return "N/A"
	}

	switch {
	case num < 0.01:
		return fmt.Sprintf("%d mm", int(math.Round(num*1000)))
	case num < 1:
		return fmt.Sprintf("%d cm", int(math.Round(num*100)))
	default:
		if num == math.Trunc(num) {
			return fmt.Sprintf("%.0f mts", num)
		}
		return strings.Replace(fmt.Sprintf("%.2f mts", num), ".", ",", 1)
	}
}

// CleanEspesor strips a trailing "mm" suffix so the value can be
// re-rendered with a single unit label.
func CleanEspesor(espesor string) string {
	trimmed := strings.TrimSpace(espesor)
	if len(trimmed) >= 2 && strings.EqualFold(trimmed[len(trimmed)-2:], "mm") {
		return strings.TrimSpace(trimmed[:len(trimmed)-2])
	}
	return trimmed
}
