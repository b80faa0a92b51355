package planner

import (
	"fmt"

	"github.com/rhyrak/course-planner/pkg/model"
)

// Limits bounds the credits of a selection. Zero disables a bound.
type Limits struct {
	MinCredits float64
	MaxCredits float64
}

// ValidateSelection checks a selection for time collisions, credit limits
// and sections without free seats.
// Returns false and a report for invalid selections.
func ValidateSelection(selection model.Selection, limits Limits) (bool, string) {
	var message string
	var valid bool = true
	var hasCollision bool = false
	var creditsOK bool = true
	var hasFullCourse bool = false

	courses := selection.Courses()
	timetable := model.NewTimetable(courses)
	for _, col := range timetable.Collisions() {
		valid = false
		hasCollision = true
		message += fmt.Sprintf("- %s period %c: %v\n", model.DayNames[col.Day], col.Slot, col.Courses)
	}

	totals := CalculateTotalCredits(courses)
	if limits.MinCredits > 0 && totals.TotalCredits < limits.MinCredits {
		valid = false
		creditsOK = false
		message += fmt.Sprintf("- %g credits selected, at least %g required\n", totals.TotalCredits, limits.MinCredits)
	}
	if limits.MaxCredits > 0 && totals.TotalCredits > limits.MaxCredits {
		valid = false
		creditsOK = false
		message += fmt.Sprintf("- %g credits selected, at most %g allowed\n", totals.TotalCredits, limits.MaxCredits)
	}

	// Full sections are reported but do not invalidate the selection.
	for _, c := range courses {
		switch GetProbabilityStatus(c.Remaining) {
		case StatusFull:
			hasFullCourse = true
			message += fmt.Sprintf("- %s %s is full\n", c.ID, c.Name)
		case StatusOverbooked:
			hasFullCourse = true
			message += fmt.Sprintf("- %s %s is over-enrolled by %d\n", c.ID, c.Name, -c.Remaining)
		}
	}

	if hasFullCourse {
		message = "[WARN]: Seat availability check.\n" + message
	} else {
		message = "[  OK]: Seat availability check.\n" + message
	}
	if !creditsOK {
		message = "[FAIL]: Credit limit check.\n" + message
	} else {
		message = "[  OK]: Credit limit check.\n" + message
	}
	if hasCollision {
		message = "[FAIL]: Time collision check.\n" + message
	} else {
		message = "[  OK]: Time collision check.\n" + message
	}

	return valid, message
}
