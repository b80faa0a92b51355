package csvio

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/course-planner/pkg/model"
)

// SaveExportRecords writes the registration export to the CSV file at path,
// replacing any existing file.
func SaveExportRecords(records []model.ExportRecord, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&records, out); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteExportRecords writes the registration export as CSV to w.
func WriteExportRecords(w io.Writer, records []model.ExportRecord) error {
	return gocsv.Marshal(&records, w)
}

// ExportRecordsString renders the registration export as a CSV string.
func ExportRecordsString(records []model.ExportRecord) (string, error) {
	return gocsv.MarshalString(&records)
}

// ReadExportRecords parses a registration export. Rows without an id are
// dropped.
func ReadExportRecords(in io.Reader) ([]model.ExportRecord, error) {
	records := []model.ExportRecord{}
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	out := records[:0]
	for _, r := range records {
		r.ID = model.CourseID(strings.TrimSpace(string(r.ID)))
		if r.ID != "" {
			out = append(out, r)
		}
	}
	return out, nil
}

// WriteCourses writes courses as a catalog file readable by LoadCoursesFrom
// with a ',' delimiter.
func WriteCourses(w io.Writer, courses []model.Course) error {
	rows := make([]*CourseCSV, len(courses))
	for i := range courses {
		rows[i] = FromCourse(&courses[i])
	}
	return gocsv.Marshal(&rows, w)
}

type timetableRow struct {
	Day       int
	Slot      rune
	Courses   []model.CourseID
	Names     []string
	Collision bool
}

// PrintTimetable prints the weekly timetable grouped by weekday. Cells shared
// by several courses are marked with '!'.
func PrintTimetable(w io.Writer, timetable *model.Timetable) {
	rows := formatTimetable(timetable)
	slices.SortFunc(rows, func(r1, r2 timetableRow) int {
		if day := r1.Day - r2.Day; day != 0 {
			return day
		}
		return model.SlotIndex(r1.Slot) - model.SlotIndex(r2.Slot)
	})
	days := make(map[int]bool, model.DaysPerWeek)
	for _, r := range rows {
		if !days[r.Day] {
			days[r.Day] = true
			name := model.DayNames[r.Day]
			fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(name))/2), name, strings.Repeat("-", int(0.5+(32-float32(len(name)))/2.0)))
		}
		mark := ' '
		if r.Collision {
			mark = '!'
		}
		ids := make([]string, len(r.Courses))
		for i, id := range r.Courses {
			ids[i] = string(id)
		}
		fmt.Fprintf(w, "%c %c  %-20s %s\n", mark, r.Slot, strings.Join(ids, ","), strings.Join(r.Names, " / "))
	}
	fmt.Fprintf(w, "Printed rows: %d\n", len(rows))
}

func formatTimetable(timetable *model.Timetable) []timetableRow {
	var formatted []timetableRow
	for _, day := range timetable.Days {
		for _, s := range day.Slots {
			if len(s.Courses) == 0 {
				continue
			}
			names := make([]string, len(s.CourseRefs))
			for i, c := range s.CourseRefs {
				names[i] = c.Name
			}
			formatted = append(formatted, timetableRow{
				Day:       day.DayOfWeek,
				Slot:      s.Code,
				Courses:   slices.Clone(s.Courses),
				Names:     names,
				Collision: len(s.Courses) > 1,
			})
		}
	}
	return formatted
}
