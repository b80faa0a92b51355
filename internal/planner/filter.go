package planner

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rhyrak/course-planner/pkg/model"
)

// Field names a course attribute a FilterCondition can target.
type Field string

const (
	FieldName               Field = "name"
	FieldTeacher            Field = "teacher"
	FieldDepartment         Field = "department"
	FieldGrade              Field = "grade"
	FieldClass              Field = "class"
	FieldCredit             Field = "credit"
	FieldYearSemester       Field = "yearSemester"
	FieldRoom               Field = "room"
	FieldID                 Field = "id"
	FieldDescription        Field = "description"
	FieldTags               Field = "tags"
	FieldCompulsory         Field = "compulsory"
	FieldEnglish            Field = "english"
	FieldMultipleCompulsory Field = "multipleCompulsory"
	FieldRemaining          Field = "remaining"
	FieldRestrict           Field = "restrict"
	FieldLabels             Field = "labels"
)

// Display strings of the boolean fields.
const (
	TextCompulsory         = "必修"
	TextElective           = "選修"
	TextEnglishTaught      = "英語授課"
	TextChineseTaught      = "中文授課"
	TextMultipleCompulsory = "多選必修"
	TextRegularCourse      = "一般課程"
)

// Numeric pseudo-values of remaining and restrict.
const (
	ThresholdEqualZero   = "等於0"
	ThresholdGreaterThan = "大於"
)

func boolText(v bool, yes, no string) string {
	if v {
		return yes
	}
	return no
}

var fieldExtractors = map[Field]func(c *model.Course) string{
	FieldName:               func(c *model.Course) string { return c.Name },
	FieldTeacher:            func(c *model.Course) string { return c.Teacher },
	FieldDepartment:         func(c *model.Course) string { return c.Department },
	FieldGrade:              func(c *model.Course) string { return c.Grade },
	FieldClass:              func(c *model.Course) string { return c.Class },
	FieldCredit:             func(c *model.Course) string { return c.Credit },
	FieldYearSemester:       func(c *model.Course) string { return c.YearSemester },
	FieldRoom:               func(c *model.Course) string { return c.Room },
	FieldID:                 func(c *model.Course) string { return string(c.ID) },
	FieldDescription:        func(c *model.Course) string { return c.Description },
	FieldTags:               func(c *model.Course) string { return strings.Join(c.UniqueTags(), ",") },
	FieldCompulsory:         func(c *model.Course) string { return boolText(c.Compulsory, TextCompulsory, TextElective) },
	FieldEnglish:            func(c *model.Course) string { return boolText(c.English, TextEnglishTaught, TextChineseTaught) },
	FieldMultipleCompulsory: func(c *model.Course) string { return boolText(c.MultipleCompulsory, TextMultipleCompulsory, TextRegularCourse) },
	FieldRemaining:          func(c *model.Course) string { return strconv.Itoa(c.Remaining) },
	FieldRestrict:           func(c *model.Course) string { return strconv.Itoa(c.Restrict) },
	FieldLabels:             func(c *model.Course) string { return strings.Join(c.Labels, ",") },
}

// KnownField reports whether field has an extractor.
func KnownField(field string) bool {
	_, ok := fieldExtractors[Field(field)]
	return ok
}

// FieldValue renders a course field as a string. Unknown fields, which can
// arrive from persisted state, render as "".
func FieldValue(c *model.Course, field string) string {
	extract, ok := fieldExtractors[Field(field)]
	if !ok {
		return ""
	}
	return extract(c)
}

var greaterThanPattern = regexp.MustCompile(`^大於\s*(-?\d+(?:\.\d+)?)$`)

// matchThreshold evaluates a remaining/restrict pseudo-value. Values that are
// not a known threshold never match.
func matchThreshold(n int, value string) bool {
	if value == ThresholdEqualZero {
		return n == 0
	}
	m := greaterThanPattern.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	limit, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return false
	}
	return float64(n) > limit
}

// matchesAny reports whether any of values matches the course field.
func matchesAny(c *model.Course, field string, values []string, labels model.LabelMap) bool {
	switch Field(field) {
	case FieldRemaining, FieldRestrict:
		n := c.Remaining
		if Field(field) == FieldRestrict {
			n = c.Restrict
		}
		for _, v := range values {
			if matchThreshold(n, v) {
				return true
			}
		}
		return false
	case FieldTags:
		tags := c.UniqueTags()
		for _, v := range values {
			for _, tag := range tags {
				if strings.EqualFold(tag, v) {
					return true
				}
			}
		}
		return false
	case FieldLabels:
		assigned := c.Labels
		if labels != nil {
			assigned = labels.For(c.ID)
		}
		for _, v := range values {
			for _, l := range assigned {
				if l == v {
					return true
				}
			}
		}
		return false
	}

	text := strings.ToLower(FieldValue(c, field))
	for _, v := range values {
		if strings.Contains(text, strings.ToLower(v)) {
			return true
		}
	}
	return false
}

// ConditionHolds evaluates one condition. Blank conditions always hold.
func ConditionHolds(c *model.Course, cond model.FilterCondition, labels model.LabelMap) bool {
	values := cond.Value.NonBlank()
	if len(values) == 0 {
		return true
	}
	matched := matchesAny(c, cond.Field, values, labels)
	if cond.Type == model.Exclude {
		return !matched
	}
	return matched
}

// FilterCourses keeps the courses satisfying every condition, in input order.
// labels supplies the labels field; when nil the courses' own Labels are used.
func FilterCourses(courses []model.Course, conditions []model.FilterCondition, labels model.LabelMap) []model.Course {
	active := make([]model.FilterCondition, 0, len(conditions))
	for _, cond := range conditions {
		if !cond.Value.IsBlank() {
			active = append(active, cond)
		}
	}
	if len(active) == 0 {
		return slices.Clone(courses)
	}

	out := make([]model.Course, 0, len(courses))
	for i := range courses {
		keep := true
		for _, cond := range active {
			if !ConditionHolds(&courses[i], cond, labels) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, courses[i])
		}
	}
	return out
}
