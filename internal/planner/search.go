package planner

import (
	"strings"

	"github.com/rhyrak/course-planner/pkg/model"
)

// Haystack is the lowercased text a course is searched by: name, teacher,
// id, department, room and its distinct tags.
func Haystack(c *model.Course) string {
	parts := []string{c.Name, c.Teacher, string(c.ID), c.Department, c.Room}
	parts = append(parts, c.UniqueTags()...)
	return strings.ToLower(strings.Join(parts, " "))
}

// SearchQuery is a compiled free-text query. Queries the boolean grammar
// cannot parse degrade to a plain AND of their whitespace-separated terms.
type SearchQuery struct {
	Raw      string
	Fallback bool
	query    *Query
	terms    []string
}

var termCleaner = strings.NewReplacer("(", "", ")", "", `"`, "")

// simpleTerms splits q into lowercased terms, dropping grammar punctuation
// and operator keywords.
func simpleTerms(q string) []string {
	var terms []string
	for _, f := range strings.Fields(q) {
		if f == "AND" || f == "OR" || f == "NOT" {
			continue
		}
		f = strings.TrimLeft(termCleaner.Replace(f), "+")
		if f == "" {
			continue
		}
		terms = append(terms, strings.ToLower(f))
	}
	return terms
}

// CompileQuery never fails: a blank query matches everything and a malformed
// one falls back to simple terms.
func CompileQuery(raw string) SearchQuery {
	sq := SearchQuery{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return sq
	}
	q, err := Parse(trimmed)
	if err != nil {
		sq.Fallback = true
		sq.terms = simpleTerms(trimmed)
		return sq
	}
	sq.query = q
	return sq
}

// IsBlank reports whether the query matches every course.
func (sq SearchQuery) IsBlank() bool {
	return sq.query == nil && len(sq.terms) == 0
}

func (sq SearchQuery) Match(c *model.Course) bool {
	if sq.IsBlank() {
		return true
	}
	hay := Haystack(c)
	if sq.query != nil {
		return sq.query.Eval(func(needle string) bool {
			return strings.Contains(hay, needle)
		})
	}
	for _, term := range sq.terms {
		if !strings.Contains(hay, term) {
			return false
		}
	}
	return true
}

// SearchCourses returns the matching courses in their original order.
func SearchCourses(courses []model.Course, query string) []model.Course {
	sq := CompileQuery(query)
	out := make([]model.Course, 0, len(courses))
	for i := range courses {
		if sq.Match(&courses[i]) {
			out = append(out, courses[i])
		}
	}
	return out
}

// SimpleSearch is the fallback matcher on its own: every term must be a
// substring of the haystack.
func SimpleSearch(courses []model.Course, query string) []model.Course {
	sq := SearchQuery{Raw: query, Fallback: true, terms: simpleTerms(query)}
	out := make([]model.Course, 0, len(courses))
	for i := range courses {
		if sq.Match(&courses[i]) {
			out = append(out, courses[i])
		}
	}
	return out
}
