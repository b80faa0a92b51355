package model

type CourseID string

// Course describes one class section of a semester catalog.
// Courses are read-only once fetched; the planner never mutates them.
type Course struct {
	ID                 CourseID  `json:"id"`
	Name               string    `json:"name"`
	Teacher            string    `json:"teacher"`
	Department         string    `json:"department"`
	Room               string    `json:"room"`
	Description        string    `json:"description"`
	Credit             string    `json:"credit"`
	Grade              string    `json:"grade"` // "0" means any grade
	Class              string    `json:"class,omitempty"`
	YearSemester       string    `json:"yearSemester"`
	Compulsory         bool      `json:"compulsory"`
	MultipleCompulsory bool      `json:"multipleCompulsory"`
	English            bool      `json:"english"`
	Restrict           int       `json:"restrict"`
	Select             int       `json:"select"`
	Remaining          int       `json:"remaining"` // negative when over-enrolled
	ClassTime          ClassTime `json:"classTime"`
	Tags               []string  `json:"tags"`
	Labels             []string  `json:"labels,omitempty"`
}

// UniqueTags returns the tags with duplicates and blanks removed, keeping
// first-seen order.
func (c *Course) UniqueTags() []string {
	seen := make(map[string]bool, len(c.Tags))
	tags := make([]string, 0, len(c.Tags))
	for _, t := range c.Tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}
