package model

type TimeSlot struct {
	Code       rune
	Courses    []CourseID
	CourseRefs []*Course
}

type Day struct {
	DayOfWeek int
	Slots     []*TimeSlot // indexed by SlotIndex
}

// Timetable is the weekly day x slot grid of a set of courses.
type Timetable struct {
	Days []*Day
	Cost int // number of cells holding more than one course
}

// Collision is a cell shared by several courses.
type Collision struct {
	Day     int
	Slot    rune
	Courses []CourseID
}

/* NewTimetable creates the weekly grid and places every course into the cells it occupies. */
func NewTimetable(courses []Course) *Timetable {
	t := Timetable{Days: make([]*Day, DaysPerWeek)}
	for i := range t.Days {
		t.Days[i] = &Day{DayOfWeek: i, Slots: make([]*TimeSlot, SlotCount)}
		for j, code := range SlotOrder {
			t.Days[i].Slots[j] = &TimeSlot{Code: code}
		}
	}
	for i := range courses {
		t.Place(&courses[i])
	}
	return &t
}

// Place puts course into each of its cells. Codes outside SlotOrder are
// skipped since the grid has no row for them.
func (t *Timetable) Place(course *Course) {
	for _, cell := range course.ClassTime.Cells() {
		idx := SlotIndex(cell.Slot)
		if idx < 0 {
			continue
		}
		slot := t.Days[cell.Day].Slots[idx]
		slot.Courses = append(slot.Courses, course.ID)
		slot.CourseRefs = append(slot.CourseRefs, course)
	}
}

/* CalculateCost counts the cells where courses overlap. */
func (t *Timetable) CalculateCost() {
	t.Cost = len(t.Collisions())
}

// Collisions lists overlapping cells, day-major in chronological slot order.
func (t *Timetable) Collisions() []Collision {
	var collisions []Collision
	for _, day := range t.Days {
		for _, slot := range day.Slots {
			if len(slot.Courses) > 1 {
				ids := make([]CourseID, len(slot.Courses))
				copy(ids, slot.Courses)
				collisions = append(collisions, Collision{Day: day.DayOfWeek, Slot: slot.Code, Courses: ids})
			}
		}
	}
	return collisions
}

// UsedDays reports which weekdays have at least one placed course.
func (t *Timetable) UsedDays() []int {
	var days []int
	for _, day := range t.Days {
		for _, slot := range day.Slots {
			if len(slot.Courses) > 0 {
				days = append(days, day.DayOfWeek)
				break
			}
		}
	}
	return days
}
