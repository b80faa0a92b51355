package planner

import (
	"math"
	"strconv"
	"strings"
)

// parseLeadingFloat reads the longest numeric prefix of s ("3", "2.5",
// "3學分"). Anything unparseable counts as 0.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}
	end := numericPrefix(s, true)
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return v
}

// parseLeadingInt is parseLeadingFloat without the fraction.
func parseLeadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := numericPrefix(s, false)
	if end == 0 {
		return 0
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return v
}

func numericPrefix(s string, allowFraction bool) int {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if allowFraction && i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			frac++
		}
		if frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	return i
}
