package store

import (
	"encoding/json"
	"strings"

	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/pkg/model"
)

// The decoders below guard every persisted shape. Absent data or any
// structural mismatch yields the default value, never an error.

type storedCondition struct {
	Field *string            `json:"field"`
	Type  *string            `json:"type"`
	Value json.RawMessage `json:"value"`
}

// DecodeFilterConditions defaults to an empty list.
func DecodeFilterConditions(data []byte) []model.FilterCondition {
	var raw []storedCondition
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return []model.FilterCondition{}
	}
	out := make([]model.FilterCondition, 0, len(raw))
	for _, c := range raw {
		if c.Field == nil || c.Type == nil || len(c.Value) == 0 {
			return []model.FilterCondition{}
		}
		typ := model.ConditionType(*c.Type)
		if !typ.Valid() {
			return []model.FilterCondition{}
		}
		// null is a blank value
		var value model.FilterValue
		if err := json.Unmarshal(c.Value, &value); err != nil {
			return []model.FilterCondition{}
		}
		out = append(out, model.FilterCondition{Field: *c.Field, Type: typ, Value: value})
	}
	return out
}

type storedTimeSlot struct {
	Day      *int    `json:"day"`
	TimeSlot *string `json:"timeSlot"`
}

// DecodeTimeSlotFilters defaults to an empty list.
func DecodeTimeSlotFilters(data []byte) []model.TimeSlotFilter {
	var raw []storedTimeSlot
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return []model.TimeSlotFilter{}
	}
	out := make([]model.TimeSlotFilter, 0, len(raw))
	for _, s := range raw {
		if s.Day == nil || s.TimeSlot == nil {
			return []model.TimeSlotFilter{}
		}
		out = append(out, model.TimeSlotFilter{Day: *s.Day, TimeSlot: *s.TimeSlot})
	}
	return out
}

// DecodeSortConfig defaults to the default option, ascending. Both the
// rules-list and the single-rule shapes are accepted.
func DecodeSortConfig(data []byte) model.SortConfig {
	var cfg model.SortConfig
	if err := json.Unmarshal(data, &cfg); err != nil || !planner.IsValidSortConfig(cfg) {
		return model.DefaultSortConfig()
	}
	return cfg
}

// DecodeSelectedIDs defaults to an empty selection. Blank and repeated ids
// are dropped.
func DecodeSelectedIDs(data []byte) []model.CourseID {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return []model.CourseID{}
	}
	seen := make(map[string]bool, len(raw))
	out := make([]model.CourseID, 0, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, model.CourseID(id))
	}
	return out
}

// DecodeLabels defaults to no labels. Every label needs an id and a name.
func DecodeLabels(data []byte) []model.Label {
	var raw []model.Label
	if err := json.Unmarshal(data, &raw); err != nil {
		return []model.Label{}
	}
	for _, l := range raw {
		if l.ID == "" || l.Name == "" {
			return []model.Label{}
		}
	}
	if raw == nil {
		return []model.Label{}
	}
	return raw
}

// DecodeCourseLabels defaults to an empty map.
func DecodeCourseLabels(data []byte) model.LabelMap {
	var raw model.LabelMap
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return model.LabelMap{}
	}
	return raw
}

// DecodeExportValues defaults to an empty map.
func DecodeExportValues(data []byte) map[model.CourseID]int {
	var raw map[model.CourseID]int
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return map[model.CourseID]int{}
	}
	return raw
}

// DecodeExportIncluded defaults to an empty map.
func DecodeExportIncluded(data []byte) map[model.CourseID]bool {
	var raw map[model.CourseID]bool
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return map[model.CourseID]bool{}
	}
	return raw
}
