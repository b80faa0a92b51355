package model

// Selection is an immutable set of courses keyed by id, kept in insertion
// order. Every operation returns a new Selection and leaves the receiver
// untouched.
type Selection struct {
	courses []Course
}

// NewSelection builds a selection; later duplicates of an id are dropped.
func NewSelection(courses ...Course) Selection {
	var s Selection
	for _, c := range courses {
		if s.Contains(c.ID) {
			continue
		}
		s.courses = append(s.courses, c)
	}
	return s
}

func (s Selection) Len() int {
	return len(s.courses)
}

func (s Selection) Contains(id CourseID) bool {
	return s.index(id) >= 0
}

func (s Selection) index(id CourseID) int {
	for i := range s.courses {
		if s.courses[i].ID == id {
			return i
		}
	}
	return -1
}

// Courses returns a copy of the selected courses.
func (s Selection) Courses() []Course {
	out := make([]Course, len(s.courses))
	copy(out, s.courses)
	return out
}

func (s Selection) IDs() []CourseID {
	ids := make([]CourseID, len(s.courses))
	for i := range s.courses {
		ids[i] = s.courses[i].ID
	}
	return ids
}

// Add returns a selection including c. Adding a present id is a no-op.
func (s Selection) Add(c Course) Selection {
	if s.Contains(c.ID) {
		return s
	}
	out := make([]Course, len(s.courses), len(s.courses)+1)
	copy(out, s.courses)
	return Selection{courses: append(out, c)}
}

// Remove returns a selection without id.
func (s Selection) Remove(id CourseID) Selection {
	i := s.index(id)
	if i < 0 {
		return s
	}
	out := make([]Course, 0, len(s.courses)-1)
	out = append(out, s.courses[:i]...)
	out = append(out, s.courses[i+1:]...)
	return Selection{courses: out}
}

// Toggle adds c when absent and removes it when present.
func (s Selection) Toggle(c Course) Selection {
	if s.Contains(c.ID) {
		return s.Remove(c.ID)
	}
	return s.Add(c)
}

// Without returns every selected course except id, as the comparison set for
// that course.
func (s Selection) Without(id CourseID) []Course {
	out := make([]Course, 0, len(s.courses))
	for _, c := range s.courses {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// SelectionFromIDs resolves ids against a catalog. Unknown ids are skipped
// and returned separately.
func SelectionFromIDs(ids []CourseID, catalog []Course) (Selection, []CourseID) {
	byID := make(map[CourseID]Course, len(catalog))
	for _, c := range catalog {
		byID[c.ID] = c
	}
	var (
		s       Selection
		missing []CourseID
	)
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		s = s.Add(c)
	}
	return s, missing
}
