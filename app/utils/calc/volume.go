package calc

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`[0-9]+(\.[0-9]+)?`)

// ParseVolume extracts the litre value from a free-text size label such as
// "1L", "900ml" or "2.5 Ltr". A label containing "m" (but not "mm") is read as
// milli-units. Unparseable labels yield 0 rather than an error.
func ParseVolume(label string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(label))
	match := numberPattern.FindString(normalized)
	if match == "" {
		return 0
	}
	number, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	if strings.Contains(normalized, "m") && !strings.Contains(normalized, "mm") {
		return number / 1000.0
	}
	return number
}

// Litres is the carton math used for sales reporting: size volume times
// units per carton times carton count.
func Litres(size string, unitsPerCarton, cartons int) float64 {
	return ParseVolume(size) * float64(unitsPerCarton) * float64(cartons)
}
