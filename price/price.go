// Package price extracts a numeric price from arbitrary currency-formatted
// text ("$1,234.50 MXN", "Precio: 89.90").
package price

import (
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Parse pulls the first decimal number out of a price string. Thousands
// separators are stripped first, so "$1,234.50 MXN" parses as 1234.50.
// The second return is false when the text holds no number at all
// ("Agotado", empty string).
func Parse(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	cleaned := strings.ReplaceAll(text, ",", "")

	m := numberPattern.FindString(cleaned)
	if m == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
