package planner

import (
	"fmt"
	"math"
)

type ProbabilityStatus string

const (
	StatusFull       ProbabilityStatus = "full"
	StatusOverbooked ProbabilityStatus = "overbooked"
	StatusNormal     ProbabilityStatus = "normal"
)

// GetSuccessProbability estimates the chance, 0 to 100, of getting a seat
// given the number of students requesting it and the seats left.
func GetSuccessProbability(selectCount, remaining int) float64 {
	if remaining <= 0 {
		return 0
	}
	if selectCount <= 0 {
		return 100
	}
	p := float64(remaining) / float64(selectCount) * 100
	return math.Max(0, math.Min(p, 100))
}

func GetProbabilityStatus(remaining int) ProbabilityStatus {
	switch {
	case remaining == 0:
		return StatusFull
	case remaining < 0:
		return StatusOverbooked
	default:
		return StatusNormal
	}
}

// GetProbabilityText is the display label: 已滿 when full, 超額N when over by N,
// otherwise the rounded percentage.
func GetProbabilityText(selectCount, remaining int) string {
	switch {
	case remaining == 0:
		return "已滿"
	case remaining < 0:
		return fmt.Sprintf("超額%d", -remaining)
	default:
		return fmt.Sprintf("%d%%", int(math.Round(GetSuccessProbability(selectCount, remaining))))
	}
}
