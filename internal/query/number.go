package query

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)

// ParseNumber keeps only digits, '.' and '-' from s and parses the longest
// leading number, so "1,250,000 đ" reads as 1250000 and "1.200.000" as 1.2.
// It reports false when no number is left.
func ParseNumber(s string) (float64, bool) {
	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	m := leadingNumber.FindString(stripped)
	if m == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
