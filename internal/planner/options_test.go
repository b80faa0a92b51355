package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/course-planner/pkg/model"
)

func optionFor(t *testing.T, options []FilterOption, field Field) FilterOption {
	t.Helper()
	for _, o := range options {
		if o.Field == field {
			return o
		}
	}
	require.Failf(t, "missing field", "%s", field)
	return FilterOption{}
}

func TestDiscoverFilterOptions(t *testing.T) {
	options := DiscoverFilterOptions(catalog(), nil, nil)
	assert.Len(t, options, len(discoverableFields))

	compulsory := optionFor(t, options, FieldCompulsory)
	assert.False(t, compulsory.Searchable)
	assert.Equal(t, []OptionValue{
		{Value: TextCompulsory, Label: TextCompulsory, Count: 3},
		{Value: TextElective, Label: TextElective, Count: 2},
	}, compulsory.Options)

	assert.True(t, optionFor(t, options, FieldName).Searchable)

	teacher := optionFor(t, options, FieldTeacher)
	assert.Equal(t, OptionValue{Value: "王大明", Label: "王大明", Count: 2}, teacher.Options[0])
	assert.Len(t, teacher.Options, 4)

	grade := optionFor(t, options, FieldGrade)
	var labels []string
	for _, o := range grade.Options {
		labels = append(labels, o.Label)
	}
	assert.Equal(t, []string{"1年級", "不限年級", "2年級", "3年級"}, labels)

	tags := optionFor(t, options, FieldTags)
	assert.Equal(t, []OptionValue{
		{Value: "必修", Label: "必修", Count: 3},
		{Value: "資訊", Label: "資訊", Count: 3},
		{Value: "選修", Label: "選修", Count: 2},
	}, tags.Options)
}

func TestDiscoverFilterOptionsBuckets(t *testing.T) {
	options := DiscoverFilterOptions(catalog(), nil, nil)

	var remaining []string
	for _, o := range optionFor(t, options, FieldRemaining).Options {
		remaining = append(remaining, o.Value)
	}
	assert.Equal(t, []string{"大於0", "大於10", "大於30", "大於50", "等於0"}, remaining)

	restrict := optionFor(t, options, FieldRestrict).Options
	assert.Equal(t, OptionValue{Value: "大於0", Label: "大於0", Count: 5}, restrict[0])
	for _, o := range restrict {
		assert.NotEqual(t, ThresholdEqualZero, o.Value)
	}
}

func TestDiscoverFilterOptionsLabels(t *testing.T) {
	defs := []model.Label{{ID: "fav", Name: "最愛"}, {ID: "later", Name: "再說"}}
	assignments := model.LabelMap{"CS101": {"fav"}, "ENG101": {"fav"}, "GONE": {"later"}}

	options := DiscoverFilterOptions(catalog(), defs, assignments)
	require.Len(t, options, len(discoverableFields)+1)
	last := options[len(options)-1]
	assert.Equal(t, FieldLabels, last.Field)
	assert.Equal(t, []OptionValue{
		{Value: "fav", Label: "最愛", Count: 2},
		{Value: "later", Label: "再說", Count: 0},
	}, last.Options)
}

func TestDiscoverFilterOptionsEmptyCatalog(t *testing.T) {
	for _, o := range DiscoverFilterOptions(nil, nil, nil) {
		assert.Empty(t, o.Options, o.Field)
	}
}
