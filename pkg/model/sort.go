package model

import (
	"encoding/json"
)

type SortOption string

const (
	SortDefault     SortOption = "default"
	SortCredit      SortOption = "credit"
	SortRemaining   SortOption = "remaining"
	SortProbability SortOption = "probability"
	SortDepartment  SortOption = "department"
	SortTeacher     SortOption = "teacher"
	SortCourseName  SortOption = "courseName"
	SortCourseID    SortOption = "courseId"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == Ascending || d == Descending
}

type SortRule struct {
	Option    SortOption    `json:"option"`
	Direction SortDirection `json:"direction"`
}

// SortConfig is an ordered list of rules; the first rule has the highest
// priority and later rules only break its ties.
type SortConfig struct {
	Rules []SortRule `json:"rules"`
}

// DefaultSortConfig keeps catalog order.
func DefaultSortConfig() SortConfig {
	return SortConfig{Rules: []SortRule{{Option: SortDefault, Direction: Ascending}}}
}

// SingleSort builds a one-rule config.
func SingleSort(option SortOption, direction SortDirection) SortConfig {
	return SortConfig{Rules: []SortRule{{Option: option, Direction: direction}}}
}

// UnmarshalJSON accepts both {"rules":[...]} and the older single-rule
// {"option":..,"direction":..} shape.
func (c *SortConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Rules     *[]SortRule    `json:"rules"`
		Option    *SortOption    `json:"option"`
		Direction *SortDirection `json:"direction"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Rules != nil:
		c.Rules = *raw.Rules
	case raw.Option != nil:
		rule := SortRule{Option: *raw.Option, Direction: Ascending}
		if raw.Direction != nil {
			rule.Direction = *raw.Direction
		}
		c.Rules = []SortRule{rule}
	default:
		c.Rules = nil
	}
	return nil
}
