package seating

import (
	"fmt"
	"strconv"
)

// FormatRoll builds the canonical roll number: level, division and the
// sequence padded to at least two digits ("SE", "A", 5 -> "SEA05").
// Padding never truncates, so 123 stays "123".
func FormatRoll(level, division string, seq int) string {
	return fmt.Sprintf("%s%s%02d", level, division, seq)
}

// rollSuffix returns the value of the last run of digits in a roll number
// and whether one was found.
func rollSuffix(roll string) (int, bool) {
	end := len(roll)
	for end > 0 && !isDigit(roll[end-1]) {
		end--
	}
	if end == 0 {
		return 0, false
	}
	start := end
	for start > 0 && isDigit(roll[start-1]) {
		start--
	}
	n, err := strconv.Atoi(roll[start:end])
	if err != nil {
		// a digit run too long for int; treat as unnumbered
		return 0, false
	}
	return n, true
}

// rollLess orders roll numbers by their numeric suffix, falling back to the
// plain string when suffixes tie or are missing.
func rollLess(a, b string) bool {
	na, okA := rollSuffix(a)
	nb, okB := rollSuffix(b)
	if okA && okB && na != nb {
		return na < nb
	}
	if okA != okB {
		return okA // numbered rolls sort before unnumbered ones
	}
	return a < b
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
