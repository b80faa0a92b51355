package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/course-planner/pkg/model"
)

const catalogCSV = `id;name;teacher;department;room;credit;grade;year_semester;compulsory;multiple_compulsory;english;restrict;select;remaining;mon;tue;wed;thu;fri;sat;sun;tags
CS101;計算機概論;王大明;資訊工程學系;EE-101;3;1;1131;是;0;0;60;10;20;234;;;;;;;必修, 資訊
MATH101;微積分;陳美玲;應用數學系;M-1;4;0;1131;1;1;false;120;100;75;;;1 2;;1;;;必修
ENG101;英文閱讀;Smith;外國語文學系;L-3;2;1;1131;0;0;yes;30;45;-3;;;;78;;;;
`

func TestLoadCoursesFrom(t *testing.T) {
	courses, err := LoadCoursesFrom(strings.NewReader(catalogCSV), ';')
	require.NoError(t, err)
	require.Len(t, courses, 3)

	cs := courses[0]
	assert.Equal(t, model.CourseID("CS101"), cs.ID)
	assert.Equal(t, "計算機概論", cs.Name)
	assert.Equal(t, "3", cs.Credit)
	assert.True(t, cs.Compulsory)
	assert.False(t, cs.English)
	assert.Equal(t, model.ClassTime{"234"}, cs.ClassTime)
	assert.Equal(t, []string{"必修", "資訊"}, cs.Tags)

	math := courses[1]
	assert.True(t, math.MultipleCompulsory)
	assert.Equal(t, model.ClassTime{"", "", "12", "", "1"}, math.ClassTime)
	assert.Equal(t, 75, math.Remaining)

	eng := courses[2]
	assert.True(t, eng.English)
	assert.Equal(t, -3, eng.Remaining)
	assert.Nil(t, eng.Tags)
}

func TestLoadCoursesFromRejectsBadRows(t *testing.T) {
	header := "id;name;mon\n"
	for name, body := range map[string]string{
		"blank id":     ";x;1\n",
		"unknown slot": "A1;x;1Z\n",
		"duplicate id": "A1;x;1\nA1;y;2\n",
	} {
		_, err := LoadCoursesFrom(strings.NewReader(header+body), ';')
		assert.ErrorIs(t, err, ErrInvalidRecord, name)
	}
}

func TestLoadCourses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.csv")
	require.NoError(t, os.WriteFile(path, []byte(catalogCSV), 0o644))

	courses, err := LoadCourses(path, ';')
	require.NoError(t, err)
	assert.Len(t, courses, 3)

	_, err = LoadCourses(filepath.Join(t.TempDir(), "missing.csv"), ';')
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteCoursesRoundTrip(t *testing.T) {
	courses, err := LoadCoursesFrom(strings.NewReader(catalogCSV), ';')
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCourses(&buf, courses))

	again, err := LoadCoursesFrom(&buf, ',')
	require.NoError(t, err)
	assert.Equal(t, courses, again)
}

func TestParseFlag(t *testing.T) {
	for _, s := range []string{"1", "TRUE", " yes ", "是", "Y"} {
		assert.True(t, parseFlag(s), s)
	}
	for _, s := range []string{"", "0", "false", "否", "no"} {
		assert.False(t, parseFlag(s), s)
	}
}
