package account

import (
	"strconv"
	"strings"
)

const (
	MinHeight = 80
	MaxHeight = 250
)

// ParseLowerHeight reads the lower bound of a height range such as "170-175" or "170cm".
// Everything except digits and '-' is dropped first; the bound is the first run of digits.
func ParseLowerHeight(s string) (int, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)

	start := strings.IndexFunc(cleaned, isDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(cleaned) && isDigit(rune(cleaned[end])) {
		end++
	}

	n, err := strconv.Atoi(cleaned[start:end])
	if err != nil {
		return 0, false
	}
	if n < MinHeight || n > MaxHeight {
		return 0, false
	}
	return n, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
