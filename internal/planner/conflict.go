package planner

import (
	"slices"
	"strings"

	"github.com/rhyrak/course-planner/pkg/model"
)

// DetectTimeConflict reports whether candidate shares any (day, slot) cell
// with one of the selected courses. Entries carrying the candidate's own id
// are skipped so a course never conflicts with itself.
func DetectTimeConflict(candidate model.Course, selected []model.Course) bool {
	for day := 0; day < model.DaysPerWeek; day++ {
		codes := candidate.ClassTime[day]
		if codes == "" {
			continue
		}
		for i := range selected {
			if selected[i].ID == candidate.ID {
				continue
			}
			if strings.ContainsAny(selected[i].ClassTime[day], codes) {
				return true
			}
		}
	}
	return false
}

// ConflictingCourses lists the selected courses that overlap candidate, in
// selection order.
func ConflictingCourses(candidate model.Course, selected []model.Course) []model.Course {
	var out []model.Course
	for i := range selected {
		if selected[i].ID == candidate.ID {
			continue
		}
		if DetectTimeConflict(candidate, selected[i:i+1]) {
			out = append(out, selected[i])
		}
	}
	return out
}

// FilterByTimeSlots keeps the courses whose every meeting falls inside the
// chosen cells. Invalid entries are ignored; when no valid cell remains the
// filter is a no-op. Courses without meetings never fit.
func FilterByTimeSlots(courses []model.Course, slots []model.TimeSlotFilter) []model.Course {
	var chosen [model.DaysPerWeek]string
	valid := 0
	for _, s := range slots {
		if !s.Valid() {
			continue
		}
		chosen[s.Day] += s.TimeSlot
		valid++
	}
	if valid == 0 {
		return slices.Clone(courses)
	}

	out := make([]model.Course, 0, len(courses))
	for _, c := range courses {
		if c.ClassTime.IsEmpty() {
			continue
		}
		fits := true
		for _, cell := range c.ClassTime.Cells() {
			if !strings.ContainsRune(chosen[cell.Day], cell.Slot) {
				fits = false
				break
			}
		}
		if fits {
			out = append(out, c)
		}
	}
	return out
}
