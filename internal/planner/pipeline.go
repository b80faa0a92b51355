package planner

import "github.com/rhyrak/course-planner/pkg/model"

// Request carries everything a catalog view is derived from. The zero value
// returns the catalog unchanged.
type Request struct {
	Query      string                  `json:"query"`
	Conditions []model.FilterCondition `json:"conditions"`
	TimeSlots  []model.TimeSlotFilter  `json:"timeSlots"`
	Sort       model.SortConfig        `json:"sort"`
	Labels     model.LabelMap          `json:"labelMap,omitempty"`
}

// Apply searches, filters, restricts to time slots and sorts, in that order.
// The input slice is never modified.
func Apply(courses []model.Course, req Request) []model.Course {
	out := SearchCourses(courses, req.Query)
	out = FilterCourses(out, req.Conditions, req.Labels)
	out = FilterByTimeSlots(out, req.TimeSlots)
	return SortCourses(out, req.Sort)
}

// CourseView is a course annotated against the current selection.
type CourseView struct {
	model.Course
	Selected        bool              `json:"isSelected"`
	Conflict        bool              `json:"hasConflict"`
	Probability     float64           `json:"probability"`
	Status          ProbabilityStatus `json:"status"`
	ProbabilityText string            `json:"probabilityText"`
}

// Annotate marks every course with its selection, conflict and probability
// state. A selected course is checked against the rest of the selection.
func Annotate(courses []model.Course, selection model.Selection) []CourseView {
	selected := selection.Courses()
	views := make([]CourseView, len(courses))
	for i, c := range courses {
		views[i] = CourseView{
			Course:          c,
			Selected:        selection.Contains(c.ID),
			Conflict:        DetectTimeConflict(c, selected),
			Probability:     GetSuccessProbability(c.Select, c.Remaining),
			Status:          GetProbabilityStatus(c.Remaining),
			ProbabilityText: GetProbabilityText(c.Select, c.Remaining),
		}
	}
	return views
}
