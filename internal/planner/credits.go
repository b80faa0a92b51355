package planner

import "github.com/rhyrak/course-planner/pkg/model"

// Totals aggregates a selection. Both sums are order independent and zero for
// an empty selection.
type Totals struct {
	TotalCredits float64 `json:"totalCredits"`
	TotalHours   int     `json:"totalHours"`
}

// CalculateTotalCredits sums credits (non-numeric credits count as 0) and
// weekly contact hours (one per slot code).
func CalculateTotalCredits(selected []model.Course) Totals {
	var t Totals
	for i := range selected {
		t.TotalCredits += parseLeadingFloat(selected[i].Credit)
		t.TotalHours += selected[i].ClassTime.Hours()
	}
	return t
}

// Add combines two totals.
func (t Totals) Add(o Totals) Totals {
	return Totals{TotalCredits: t.TotalCredits + o.TotalCredits, TotalHours: t.TotalHours + o.TotalHours}
}
