package planner

import (
	"slices"
	"strconv"
	"strings"

	"github.com/rhyrak/course-planner/pkg/model"
)

type OptionValue struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FilterOption lists the observed values of one field. Searchable fields are
// free text; the rest are small enumerations.
type FilterOption struct {
	Field      Field         `json:"field"`
	Label      string        `json:"label"`
	Options    []OptionValue `json:"options"`
	Searchable bool          `json:"searchable"`
}

type fieldSpec struct {
	field      Field
	label      string
	searchable bool
}

var discoverableFields = []fieldSpec{
	{FieldName, "課程名稱", true},
	{FieldTeacher, "授課教師", true},
	{FieldID, "課程代碼", true},
	{FieldDepartment, "開課系所", true},
	{FieldRoom, "上課教室", true},
	{FieldDescription, "課程說明", true},
	{FieldGrade, "年級", true},
	{FieldClass, "班別", true},
	{FieldTags, "學程標籤", true},
	{FieldCompulsory, "必選修", false},
	{FieldEnglish, "授課語言", false},
	{FieldMultipleCompulsory, "多選必修", false},
	{FieldRemaining, "剩餘名額", false},
	{FieldRestrict, "限制人數", false},
}

// Buckets offered for the numeric fields, in display order.
var (
	remainingBuckets = []int{0, 10, 30, 50}
	restrictBuckets  = []int{0, 30, 50, 100}
)

func gradeLabel(grade string) string {
	if grade == "0" {
		return "不限年級"
	}
	return grade + "年級"
}

// DiscoverFilterOptions counts the distinct values of every filterable field
// across courses, most frequent first. The labels field is reported only when
// label definitions are given; its counts come from assignments.
func DiscoverFilterOptions(courses []model.Course, labels []model.Label, assignments model.LabelMap) []FilterOption {
	out := make([]FilterOption, 0, len(discoverableFields)+1)
	for _, spec := range discoverableFields {
		var options []OptionValue
		switch spec.field {
		case FieldRemaining:
			options = bucketOptions(courses, remainingBuckets, func(c *model.Course) int { return c.Remaining })
		case FieldRestrict:
			options = bucketOptions(courses, restrictBuckets, func(c *model.Course) int { return c.Restrict })
		case FieldTags:
			options = countValues(courses, func(c *model.Course) []string { return c.UniqueTags() }, nil)
		case FieldGrade:
			options = countValues(courses, single(spec.field), gradeLabel)
		default:
			options = countValues(courses, single(spec.field), nil)
		}
		out = append(out, FilterOption{Field: spec.field, Label: spec.label, Options: options, Searchable: spec.searchable})
	}

	if len(labels) > 0 {
		out = append(out, FilterOption{Field: FieldLabels, Label: "自訂標籤", Options: labelOptions(courses, labels, assignments)})
	}
	return out
}

func single(field Field) func(c *model.Course) []string {
	return func(c *model.Course) []string {
		return []string{FieldValue(c, string(field))}
	}
}

func countValues(courses []model.Course, values func(c *model.Course) []string, label func(string) string) []OptionValue {
	counts := map[string]int{}
	for i := range courses {
		for _, v := range values(&courses[i]) {
			if v = strings.TrimSpace(v); v != "" {
				counts[v]++
			}
		}
	}
	options := make([]OptionValue, 0, len(counts))
	for v, n := range counts {
		display := v
		if label != nil {
			display = label(v)
		}
		options = append(options, OptionValue{Value: v, Label: display, Count: n})
	}
	orderOptions(options)
	return options
}

func bucketOptions(courses []model.Course, limits []int, number func(c *model.Course) int) []OptionValue {
	var options []OptionValue
	zero := 0
	for i := range courses {
		if number(&courses[i]) == 0 {
			zero++
		}
	}
	if zero > 0 {
		options = append(options, OptionValue{Value: ThresholdEqualZero, Label: ThresholdEqualZero, Count: zero})
	}
	for _, limit := range limits {
		n := 0
		for i := range courses {
			if number(&courses[i]) > limit {
				n++
			}
		}
		if n > 0 {
			v := ThresholdGreaterThan + strconv.Itoa(limit)
			options = append(options, OptionValue{Value: v, Label: v, Count: n})
		}
	}
	orderOptions(options)
	return options
}

func labelOptions(courses []model.Course, labels []model.Label, assignments model.LabelMap) []OptionValue {
	options := make([]OptionValue, 0, len(labels))
	for _, l := range labels {
		n := 0
		for i := range courses {
			if slices.Contains(assignments.For(courses[i].ID), l.ID) {
				n++
			}
		}
		options = append(options, OptionValue{Value: l.ID, Label: l.Name, Count: n})
	}
	orderOptions(options)
	return options
}

// orderOptions orders by count, descending, then by value.
func orderOptions(options []OptionValue) {
	slices.SortStableFunc(options, func(a, b OptionValue) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Value, b.Value)
	})
}
