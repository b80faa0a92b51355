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

var exportRecords = []model.ExportRecord{
	{ID: "CS101", Value: 30, IsSel: model.ExportIncluded},
	{ID: "MATH101", Value: 0, IsSel: model.ExportSkipped},
}

func TestExportRecordsString(t *testing.T) {
	s, err := ExportRecordsString(exportRecords)
	require.NoError(t, err)
	assert.Equal(t, "id,value,isSel\nCS101,30,1\nMATH101,0,0\n", s)
}

func TestReadExportRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExportRecords(&buf, exportRecords))

	got, err := ReadExportRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, exportRecords, got)

	got, err = ReadExportRecords(strings.NewReader("id,value,isSel\n ,5,1\nCS102,7,1\n"))
	require.NoError(t, err)
	assert.Equal(t, []model.ExportRecord{{ID: "CS102", Value: 7, IsSel: "1"}}, got)
}

func TestSaveExportRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))
	require.NoError(t, SaveExportRecords(exportRecords, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,value,isSel\nCS101,30,1\nMATH101,0,0\n", string(data))
}

func TestPrintTimetable(t *testing.T) {
	courses := []model.Course{
		{ID: "CS101", Name: "計概", ClassTime: model.ClassTime{"34"}},
		{ID: "CS201", Name: "演算法", ClassTime: model.ClassTime{"4A"}},
	}
	var buf bytes.Buffer
	PrintTimetable(&buf, model.NewTimetable(courses))
	out := buf.String()

	assert.Contains(t, out, " Monday ")
	assert.Contains(t, out, "! 4  CS101,CS201")
	assert.Contains(t, out, "  A  CS201")
	assert.Less(t, strings.Index(out, "  A  CS201"), strings.Index(out, "  3  CS101"))
	assert.True(t, strings.HasSuffix(out, "Printed rows: 3\n"))
}
