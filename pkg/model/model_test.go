package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotIndexFollowsCanonicalOrder(t *testing.T) {
	assert.Equal(t, 0, SlotIndex('A'))
	assert.Equal(t, 1, SlotIndex('1'))
	assert.Equal(t, 5, SlotIndex('B'))
	assert.Equal(t, 14, SlotIndex('F'))
	assert.Equal(t, -1, SlotIndex('G'))
	assert.Equal(t, -1, SlotIndex('0'))
	assert.Equal(t, -1, SlotIndex('必'))
}

func TestClassTimeHoursAndCells(t *testing.T) {
	ct := ClassTime{"234", "", "56", "", "", "", ""}
	assert.Equal(t, 5, ct.Hours())
	assert.False(t, ct.IsEmpty())
	assert.True(t, ct.Occupies(2, '6'))
	assert.False(t, ct.Occupies(1, '2'))
	assert.False(t, ct.Occupies(9, '2'))
	assert.Equal(t, []Cell{{0, '2'}, {0, '3'}, {0, '4'}, {2, '5'}, {2, '6'}}, ct.Cells())
	assert.True(t, ClassTime{}.IsEmpty())
	assert.Equal(t, 0, ClassTime{}.Hours())
}

func TestSortedSlotsUsesChronologicalOrder(t *testing.T) {
	ct := ClassTime{"5B1A"}
	assert.Equal(t, []rune{'A', '1', 'B', '5'}, ct.SortedSlots(0))
	assert.Nil(t, ct.SortedSlots(7))
}

func TestClassTimeJSONKeepsSevenDays(t *testing.T) {
	var c Course
	require.NoError(t, json.Unmarshal([]byte(`{"id":"CS101","classTime":["12","","34"]}`), &c))
	assert.Equal(t, ClassTime{"12", "", "34", "", "", "", ""}, c.ClassTime)
}

func TestUniqueTags(t *testing.T) {
	c := Course{Tags: []string{"必修", "資訊", "必修", "", "資訊"}}
	assert.Equal(t, []string{"必修", "資訊"}, c.UniqueTags())
}

func TestFilterValueAcceptsStringOrArray(t *testing.T) {
	var cond FilterCondition
	require.NoError(t, json.Unmarshal([]byte(`{"field":"name","type":"include","value":"微積分"}`), &cond))
	assert.Equal(t, FilterValue{"微積分"}, cond.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"field":"tags","type":"exclude","value":["a","b"]}`), &cond))
	assert.Equal(t, FilterValue{"a", "b"}, cond.Value)
	assert.Equal(t, Exclude, cond.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"field":"name","type":"include","value":3}`), &cond))
	assert.Error(t, json.Unmarshal([]byte(`{"field":"name","type":"include","value":[1,2]}`), &cond))
}

func TestFilterValueNullIsBlank(t *testing.T) {
	var cond FilterCondition
	require.NoError(t, json.Unmarshal([]byte(`{"field":"name","type":"include","value":null}`), &cond))
	assert.True(t, cond.Value.IsBlank())
}

func TestFilterValueBlank(t *testing.T) {
	assert.True(t, FilterValue(nil).IsBlank())
	assert.True(t, FilterValue{""}.IsBlank())
	assert.True(t, FilterValue{"  ", ""}.IsBlank())
	assert.False(t, FilterValue{"", "x"}.IsBlank())
	assert.Equal(t, []string{"x"}, FilterValue{" x ", " "}.NonBlank())
}

func TestFilterValueMarshalsSingleAsString(t *testing.T) {
	data, err := json.Marshal(FilterValue{"x"})
	require.NoError(t, err)
	assert.JSONEq(t, `"x"`, string(data))

	data, err = json.Marshal(FilterValue{"x", "y"})
	require.NoError(t, err)
	assert.JSONEq(t, `["x","y"]`, string(data))
}

func TestTimeSlotFilterValid(t *testing.T) {
	assert.True(t, TimeSlotFilter{Day: 0, TimeSlot: "A"}.Valid())
	assert.True(t, TimeSlotFilter{Day: 6, TimeSlot: "9"}.Valid())
	assert.False(t, TimeSlotFilter{Day: 7, TimeSlot: "1"}.Valid())
	assert.False(t, TimeSlotFilter{Day: -1, TimeSlot: "1"}.Valid())
	assert.False(t, TimeSlotFilter{Day: 0, TimeSlot: "12"}.Valid())
	assert.False(t, TimeSlotFilter{Day: 0, TimeSlot: "Z"}.Valid())
}

func TestSortConfigAcceptsBothShapes(t *testing.T) {
	var cfg SortConfig
	require.NoError(t, json.Unmarshal([]byte(`{"option":"credit","direction":"desc"}`), &cfg))
	assert.Equal(t, SingleSort(SortCredit, Descending), cfg)

	require.NoError(t, json.Unmarshal([]byte(`{"rules":[{"option":"department","direction":"asc"},{"option":"credit","direction":"desc"}]}`), &cfg))
	assert.Equal(t, []SortRule{{SortDepartment, Ascending}, {SortCredit, Descending}}, cfg.Rules)

	require.NoError(t, json.Unmarshal([]byte(`{}`), &cfg))
	assert.Empty(t, cfg.Rules)
}

func TestSelectionIsImmutable(t *testing.T) {
	a := Course{ID: "A"}
	b := Course{ID: "B"}
	s0 := NewSelection(a)
	s1 := s0.Add(b)
	s2 := s1.Remove("A")

	assert.Equal(t, []CourseID{"A"}, s0.IDs())
	assert.Equal(t, []CourseID{"A", "B"}, s1.IDs())
	assert.Equal(t, []CourseID{"B"}, s2.IDs())

	s3 := s1.Toggle(a)
	assert.Equal(t, []CourseID{"B"}, s3.IDs())
	assert.Equal(t, []CourseID{"B", "A"}, s3.Toggle(a).IDs())
	assert.Equal(t, 2, s1.Len())
}

func TestSelectionDeduplicates(t *testing.T) {
	s := NewSelection(Course{ID: "A", Name: "first"}, Course{ID: "A", Name: "second"})
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "first", s.Courses()[0].Name)
	assert.Equal(t, s, s.Add(Course{ID: "A"}))
}

func TestSelectionFromIDs(t *testing.T) {
	catalog := []Course{{ID: "A"}, {ID: "B"}}
	s, missing := SelectionFromIDs([]CourseID{"B", "X", "A", "B"}, catalog)
	assert.Equal(t, []CourseID{"B", "A"}, s.IDs())
	assert.Equal(t, []CourseID{"X"}, missing)
}

func TestLabelMapOperationsCopy(t *testing.T) {
	m := LabelMap{}
	m1 := m.AssignLabel("CS101", "fav")
	m2 := m1.AssignLabel("CS101", "fav").AssignLabel("CS101", "maybe")
	assert.Empty(t, m)
	assert.Equal(t, []string{"fav"}, m1.For("CS101"))
	assert.Equal(t, []string{"fav", "maybe"}, m2.For("CS101"))

	m3 := m2.UnassignLabel("CS101", "fav")
	assert.Equal(t, []string{"maybe"}, m3.For("CS101"))
	assert.Equal(t, []string{"fav", "maybe"}, m2.For("CS101"))

	m4 := m3.UnassignLabel("CS101", "maybe")
	_, ok := m4["CS101"]
	assert.False(t, ok)

	assert.Nil(t, LabelMap(nil).For("X"))
	assert.Empty(t, m2.RemoveLabel("fav").RemoveLabel("maybe"))
}

func TestExportRecordsRoundTrip(t *testing.T) {
	catalog := []Course{{ID: "CS101"}, {ID: "MATH101"}, {ID: "ENG101"}}
	selection := NewSelection(catalog[1], catalog[0])
	values := map[CourseID]int{"CS101": 30, "MATH101": 70}
	included := map[CourseID]bool{"CS101": false}

	records := BuildExportRecords(selection, values, included)
	assert.Equal(t, []ExportRecord{
		{ID: "MATH101", Value: 70, IsSel: "1"},
		{ID: "CS101", Value: 30, IsSel: "0"},
	}, records)

	got, gotValues, gotIncluded, missing := ImportExportRecords(records, catalog)
	assert.Empty(t, missing)
	assert.Equal(t, selection.IDs(), got.IDs())
	assert.Equal(t, values, gotValues)
	assert.Equal(t, map[CourseID]bool{"CS101": false, "MATH101": true}, gotIncluded)
	assert.Equal(t, records, BuildExportRecords(got, gotValues, gotIncluded))
}

func TestImportReportsUnknownIDs(t *testing.T) {
	_, values, _, missing := ImportExportRecords([]ExportRecord{{ID: "GONE", Value: 5, IsSel: "1"}}, nil)
	assert.Equal(t, []CourseID{"GONE"}, missing)
	assert.Empty(t, values)
}

func TestTimetableCollisions(t *testing.T) {
	courses := []Course{
		{ID: "A", ClassTime: ClassTime{"12"}},
		{ID: "B", ClassTime: ClassTime{"2", "", "", "", "5"}},
		{ID: "C", ClassTime: ClassTime{"", "34"}},
	}
	tt := NewTimetable(courses)
	tt.CalculateCost()
	assert.Equal(t, 1, tt.Cost)
	assert.Equal(t, []Collision{{Day: 0, Slot: '2', Courses: []CourseID{"A", "B"}}}, tt.Collisions())
	assert.Equal(t, []int{0, 1, 4}, tt.UsedDays())
	assert.Equal(t, []CourseID{"C"}, tt.Days[1].Slots[SlotIndex('3')].Courses)
}
