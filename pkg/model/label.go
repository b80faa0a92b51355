package model

import "slices"

type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// LabelMap assigns custom label ids to courses.
type LabelMap map[CourseID][]string

// For returns the labels of id, or nil when none are assigned.
func (m LabelMap) For(id CourseID) []string {
	if m == nil {
		return nil
	}
	return m[id]
}

func (m LabelMap) clone() LabelMap {
	out := make(LabelMap, len(m))
	for id, labels := range m {
		out[id] = slices.Clone(labels)
	}
	return out
}

// AssignLabel returns a copy of m with label attached to id.
func (m LabelMap) AssignLabel(id CourseID, label string) LabelMap {
	out := m.clone()
	if !slices.Contains(out[id], label) {
		out[id] = append(out[id], label)
	}
	return out
}

// UnassignLabel returns a copy of m without label on id. Courses left with
// no labels are dropped from the map.
func (m LabelMap) UnassignLabel(id CourseID, label string) LabelMap {
	out := m.clone()
	labels := slices.DeleteFunc(out[id], func(l string) bool { return l == label })
	if len(labels) == 0 {
		delete(out, id)
	} else {
		out[id] = labels
	}
	return out
}

// RemoveLabel returns a copy of m with label detached from every course.
func (m LabelMap) RemoveLabel(label string) LabelMap {
	out := make(LabelMap, len(m))
	for id, labels := range m {
		kept := slices.DeleteFunc(slices.Clone(labels), func(l string) bool { return l == label })
		if len(kept) > 0 {
			out[id] = kept
		}
	}
	return out
}
