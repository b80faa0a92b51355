package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

type ConditionType string

const (
	Include ConditionType = "include"
	Exclude ConditionType = "exclude"
)

func (t ConditionType) Valid() bool {
	return t == Include || t == Exclude
}

// FilterValue is the value of a condition. On the wire it is either a single
// string or an array of strings.
type FilterValue []string

var errFilterValue = errors.New("filter value must be a string or an array of strings")

func (v *FilterValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FilterValue{s}
		return nil
	}
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return errFilterValue
		}
		*v = FilterValue(list)
		return nil
	}
	return errFilterValue
}

// MarshalJSON writes a single value as a bare string.
func (v FilterValue) MarshalJSON() ([]byte, error) {
	if len(v) == 1 {
		return json.Marshal(v[0])
	}
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(v))
}

// NonBlank returns the values that carry content, trimmed.
func (v FilterValue) NonBlank() []string {
	var out []string
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsBlank reports whether the value is empty, which turns its condition into a no-op.
func (v FilterValue) IsBlank() bool {
	return len(v.NonBlank()) == 0
}

// FilterCondition scopes an include or exclude test to one course field.
type FilterCondition struct {
	Field string        `json:"field"`
	Type  ConditionType `json:"type"`
	Value FilterValue   `json:"value"`
}

// TimeSlotFilter is one chosen cell of the weekly grid.
type TimeSlotFilter struct {
	Day      int    `json:"day"`
	TimeSlot string `json:"timeSlot"`
}

// Valid reports whether the entry names a real day and a single slot code.
func (f TimeSlotFilter) Valid() bool {
	if !ValidDay(f.Day) || len(f.TimeSlot) != 1 {
		return false
	}
	return IsSlotCode(rune(f.TimeSlot[0]))
}
