package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhyrak/course-planner/pkg/model"
)

func TestCalculateTotalCreditsEmpty(t *testing.T) {
	assert.Equal(t, Totals{}, CalculateTotalCredits(nil))
}

func TestCalculateTotalCreditsIsAdditive(t *testing.T) {
	courses := catalog()
	s1, s2 := courses[:2], courses[2:]
	assert.Equal(t, CalculateTotalCredits(s1).Add(CalculateTotalCredits(s2)), CalculateTotalCredits(courses))
	assert.Equal(t, Totals{TotalCredits: 15, TotalHours: 12}, CalculateTotalCredits(courses))
}

func TestCalculateTotalCreditsToleratesBadCredits(t *testing.T) {
	courses := []model.Course{
		{ID: "A", Credit: "abc", ClassTime: model.ClassTime{"12"}},
		{ID: "B", Credit: "2.5"},
		{ID: "C", Credit: "3學分"},
		{ID: "D", Credit: ""},
		{ID: "E", Credit: "NaN"},
	}
	assert.Equal(t, Totals{TotalCredits: 5.5, TotalHours: 2}, CalculateTotalCredits(courses))
}

func TestParseLeadingNumbers(t *testing.T) {
	assert.Equal(t, 3.0, parseLeadingFloat(" 3 "))
	assert.Equal(t, 0.0, parseLeadingFloat("."))
	assert.Equal(t, -1.5, parseLeadingFloat("-1.5x"))
	assert.Equal(t, 0.0, parseLeadingFloat("Inf"))
	assert.Equal(t, 3, parseLeadingInt("3.9"))
	assert.Equal(t, 0, parseLeadingInt("x3"))
	assert.Equal(t, 12, parseLeadingInt("12學分"))
}
