package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhyrak/course-planner/pkg/model"
)

func include(field Field, values ...string) model.FilterCondition {
	return model.FilterCondition{Field: string(field), Type: model.Include, Value: values}
}

func exclude(field Field, values ...string) model.FilterCondition {
	return model.FilterCondition{Field: string(field), Type: model.Exclude, Value: values}
}

func TestFilterCourses(t *testing.T) {
	courses := catalog()
	cases := []struct {
		name       string
		conditions []model.FilterCondition
		want       []model.CourseID
	}{
		{"compulsory", []model.FilterCondition{include(FieldCompulsory, TextCompulsory)}, []model.CourseID{"CS101", "CS102", "MATH101"}},
		{"elective", []model.FilterCondition{include(FieldCompulsory, TextElective)}, []model.CourseID{"CS201", "ENG101"}},
		{"english", []model.FilterCondition{include(FieldEnglish, TextEnglishTaught)}, []model.CourseID{"CS201", "ENG101"}},
		{"any of values", []model.FilterCondition{include(FieldDepartment, "應用數學", "外國語文")}, []model.CourseID{"MATH101", "ENG101"}},
		{"all conditions", []model.FilterCondition{include(FieldCompulsory, TextCompulsory), include(FieldDepartment, "資訊")}, []model.CourseID{"CS101", "CS102"}},
		{"case insensitive", []model.FilterCondition{include(FieldName, "DATA")}, []model.CourseID{"CS102"}},
		{"tag membership", []model.FilterCondition{include(FieldTags, "資訊")}, []model.CourseID{"CS101", "CS102", "CS201"}},
		{"tag is not substring", []model.FilterCondition{include(FieldTags, "資")}, []model.CourseID{}},
		{"remaining zero", []model.FilterCondition{include(FieldRemaining, ThresholdEqualZero)}, []model.CourseID{"ENG101"}},
		{"remaining above", []model.FilterCondition{include(FieldRemaining, "大於50")}, []model.CourseID{"MATH101"}},
		{"remaining negative bound", []model.FilterCondition{include(FieldRemaining, "大於-5")}, []model.CourseID{"CS101", "CS102", "CS201", "MATH101", "ENG101"}},
		{"restrict above", []model.FilterCondition{include(FieldRestrict, "大於50")}, []model.CourseID{"CS101", "MATH101"}},
		{"unknown threshold", []model.FilterCondition{include(FieldRemaining, "大於abc")}, []model.CourseID{}},
		{"bare number", []model.FilterCondition{include(FieldRemaining, "50")}, []model.CourseID{}},
		{"unknown field include", []model.FilterCondition{include("bogus", "x")}, []model.CourseID{}},
		{"unknown field exclude", []model.FilterCondition{exclude("bogus", "x")}, []model.CourseID{"CS101", "CS102", "CS201", "MATH101", "ENG101"}},
		{"exclude teacher", []model.FilterCondition{exclude(FieldTeacher, "王大明")}, []model.CourseID{"CS102", "MATH101", "ENG101"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(FilterCourses(courses, tc.conditions, nil)))
		})
	}
}

func TestFilterCoursesBlankConditionsAreNoOp(t *testing.T) {
	courses := catalog()
	conditions := []model.FilterCondition{
		include(FieldName),
		include(FieldTeacher, ""),
		exclude(FieldDepartment, "  ", "\t"),
	}
	assert.Equal(t, courses, FilterCourses(courses, nil, nil))
	assert.Equal(t, courses, FilterCourses(courses, conditions, nil))

	out := FilterCourses(courses, conditions, nil)
	out[0].Name = "changed"
	assert.Equal(t, "計算機概論", courses[0].Name)
}

func TestFilterExcludeIsComplementOfInclude(t *testing.T) {
	courses := catalog()
	for _, cond := range []model.FilterCondition{
		include(FieldCompulsory, TextCompulsory),
		include(FieldTags, "資訊"),
		include(FieldRemaining, "大於10", ThresholdEqualZero),
		include(FieldTeacher, "王", "smith"),
	} {
		inc := FilterCourses(courses, []model.FilterCondition{cond}, nil)
		cond.Type = model.Exclude
		exc := FilterCourses(courses, []model.FilterCondition{cond}, nil)

		assert.Len(t, exc, len(courses)-len(inc), cond.Field)
		for _, c := range exc {
			assert.NotContains(t, ids(inc), c.ID)
		}
	}
}

func TestFilterLabels(t *testing.T) {
	courses := catalog()
	courses[3].Labels = []string{"fav"}
	labels := model.LabelMap{"CS102": {"fav", "hard"}}

	assert.Equal(t, []model.CourseID{"CS102"}, ids(FilterCourses(courses, []model.FilterCondition{include(FieldLabels, "fav")}, labels)))
	assert.Equal(t, []model.CourseID{"MATH101"}, ids(FilterCourses(courses, []model.FilterCondition{include(FieldLabels, "fav")}, nil)))
	assert.Equal(t, []model.CourseID{}, ids(FilterCourses(courses, []model.FilterCondition{include(FieldLabels, "fa")}, labels)))
}

func TestFieldValue(t *testing.T) {
	c := find(catalog(), "MATH101")
	assert.Equal(t, TextCompulsory, FieldValue(&c, "compulsory"))
	assert.Equal(t, TextChineseTaught, FieldValue(&c, "english"))
	assert.Equal(t, TextMultipleCompulsory, FieldValue(&c, "multipleCompulsory"))
	assert.Equal(t, "75", FieldValue(&c, "remaining"))
	assert.Equal(t, "必修", FieldValue(&c, "tags"))
	assert.Equal(t, "", FieldValue(&c, "nope"))
	assert.True(t, KnownField("yearSemester"))
	assert.False(t, KnownField("nope"))
}
