package planner

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rhyrak/course-planner/pkg/model"
)

type SortOptionInfo struct {
	Key         model.SortOption `json:"key"`
	Label       string           `json:"label"`
	Description string           `json:"description,omitempty"`
}

var sortOptions = []SortOptionInfo{
	{Key: model.SortDefault, Label: "預設排序"},
	{Key: model.SortCredit, Label: "學分數"},
	{Key: model.SortRemaining, Label: "剩餘名額"},
	{Key: model.SortProbability, Label: "選上機率", Description: "高到低"},
	{Key: model.SortDepartment, Label: "開課系所"},
	{Key: model.SortTeacher, Label: "授課教師"},
	{Key: model.SortCourseName, Label: "課程名稱"},
	{Key: model.SortCourseID, Label: "課程代碼"},
}

// SortOptions lists every sort key in display order.
func SortOptions() []SortOptionInfo {
	return slices.Clone(sortOptions)
}

// GetSortOption looks up a sort key; unknown keys resolve to the default
// option and false.
func GetSortOption(key string) (SortOptionInfo, bool) {
	for _, o := range sortOptions {
		if string(o.Key) == key {
			return o, true
		}
	}
	return sortOptions[0], false
}

func ToggleDirection(dir model.SortDirection) model.SortDirection {
	if dir == model.Ascending {
		return model.Descending
	}
	return model.Ascending
}

func IsValidSortRule(rule model.SortRule) bool {
	_, known := GetSortOption(string(rule.Option))
	return known && rule.Direction.Valid()
}

// IsValidSortConfig accepts a non-empty rule list in which every option is a
// known key and every direction is asc or desc.
func IsValidSortConfig(cfg model.SortConfig) bool {
	if len(cfg.Rules) == 0 {
		return false
	}
	for _, r := range cfg.Rules {
		if !IsValidSortRule(r) {
			return false
		}
	}
	return true
}

type comparator func(a, b *model.Course) int

func newComparator(option model.SortOption, coll *collate.Collator) comparator {
	switch option {
	case model.SortCredit:
		return func(a, b *model.Course) int {
			return cmp.Compare(parseLeadingInt(a.Credit), parseLeadingInt(b.Credit))
		}
	case model.SortRemaining:
		return func(a, b *model.Course) int {
			return cmp.Compare(a.Remaining, b.Remaining)
		}
	case model.SortProbability:
		// Reversed on purpose: ascending shows the highest probability first.
		return func(a, b *model.Course) int {
			return cmp.Compare(GetSuccessProbability(b.Select, b.Remaining), GetSuccessProbability(a.Select, a.Remaining))
		}
	case model.SortDepartment:
		return func(a, b *model.Course) int { return coll.CompareString(a.Department, b.Department) }
	case model.SortTeacher:
		return func(a, b *model.Course) int { return coll.CompareString(a.Teacher, b.Teacher) }
	case model.SortCourseName:
		return func(a, b *model.Course) int { return coll.CompareString(a.Name, b.Name) }
	case model.SortCourseID:
		return func(a, b *model.Course) int { return coll.CompareString(string(a.ID), string(b.ID)) }
	}
	// default and unknown keys tie
	return nil
}

// SortCourses returns a new slice ordered by cfg. Rules apply in order, later
// rules breaking ties of earlier ones; descending negates a rule. With no
// effective rule the copy keeps the input order.
func SortCourses(courses []model.Course, cfg model.SortConfig) []model.Course {
	out := slices.Clone(courses)
	if out == nil {
		out = []model.Course{}
	}

	// collators keep scratch buffers, so each call gets its own
	coll := collate.New(language.TraditionalChinese)
	var cmps []comparator
	for _, rule := range cfg.Rules {
		c := newComparator(rule.Option, coll)
		if c == nil {
			continue
		}
		if rule.Direction == model.Descending {
			asc := c
			c = func(a, b *model.Course) int { return -asc(a, b) }
		}
		cmps = append(cmps, c)
	}
	if len(cmps) == 0 {
		return out
	}

	slices.SortStableFunc(out, func(a, b model.Course) int {
		for _, c := range cmps {
			if r := c(&a, &b); r != 0 {
				return r
			}
		}
		return 0
	})
	return out
}
