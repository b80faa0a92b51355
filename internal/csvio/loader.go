package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/course-planner/pkg/model"
)

// ErrInvalidRecord marks a catalog row that cannot become a course.
var ErrInvalidRecord = errors.New("csvio: invalid record")

// CourseCSV is one row of a semester catalog file. Meetings are given per
// weekday as concatenated slot codes, tags as a comma separated list.
type CourseCSV struct {
	ID                 string `csv:"id"`
	Name               string `csv:"name"`
	Teacher            string `csv:"teacher"`
	Department         string `csv:"department"`
	Room               string `csv:"room"`
	Description        string `csv:"description"`
	Credit             string `csv:"credit"`
	Grade              string `csv:"grade"`
	Class              string `csv:"class"`
	YearSemester       string `csv:"year_semester"`
	Compulsory         string `csv:"compulsory"`
	MultipleCompulsory string `csv:"multiple_compulsory"`
	English            string `csv:"english"`
	Restrict           int    `csv:"restrict"`
	Select             int    `csv:"select"`
	Remaining          int    `csv:"remaining"`
	Mon                string `csv:"mon"`
	Tue                string `csv:"tue"`
	Wed                string `csv:"wed"`
	Thu                string `csv:"thu"`
	Fri                string `csv:"fri"`
	Sat                string `csv:"sat"`
	Sun                string `csv:"sun"`
	Tags               string `csv:"tags"`
}

// LoadCourses reads and parses given csv file for course data.
func LoadCourses(path string, delim rune) ([]model.Course, error) {
	coursesFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer coursesFile.Close()

	courses, err := LoadCoursesFrom(coursesFile, delim)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return courses, nil
}

// LoadCoursesFrom parses a catalog from in. Rows keep their file order;
// a duplicate id, a blank id or an unknown slot code fails the whole load.
func LoadCoursesFrom(in io.Reader, delim rune) ([]model.Course, error) {
	r := csv.NewReader(in)
	r.Comma = delim
	r.TrimLeadingSpace = true

	rows := []*CourseCSV{}
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(rows))
	seen := make(map[model.CourseID]bool, len(rows))
	for i, row := range rows {
		// header is line 1
		line := i + 2
		c, err := row.toCourse()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("line %d: %w: duplicate id %s", line, ErrInvalidRecord, c.ID)
		}
		seen[c.ID] = true
		courses = append(courses, c)
	}
	return courses, nil
}

func (row *CourseCSV) toCourse() (model.Course, error) {
	id := strings.TrimSpace(row.ID)
	if id == "" {
		return model.Course{}, fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}

	var ct model.ClassTime
	for day, codes := range []string{row.Mon, row.Tue, row.Wed, row.Thu, row.Fri, row.Sat, row.Sun} {
		codes = strings.Join(strings.Fields(codes), "")
		for _, code := range codes {
			if !model.IsSlotCode(code) {
				return model.Course{}, fmt.Errorf("%w: %s: unknown slot %q on %s", ErrInvalidRecord, id, code, model.DayNames[day])
			}
		}
		ct[day] = codes
	}

	return model.Course{
		ID:                 model.CourseID(id),
		Name:               strings.TrimSpace(row.Name),
		Teacher:            strings.TrimSpace(row.Teacher),
		Department:         strings.TrimSpace(row.Department),
		Room:               strings.TrimSpace(row.Room),
		Description:        row.Description,
		Credit:             strings.TrimSpace(row.Credit),
		Grade:              strings.TrimSpace(row.Grade),
		Class:              strings.TrimSpace(row.Class),
		YearSemester:       strings.TrimSpace(row.YearSemester),
		Compulsory:         parseFlag(row.Compulsory),
		MultipleCompulsory: parseFlag(row.MultipleCompulsory),
		English:            parseFlag(row.English),
		Restrict:           row.Restrict,
		Select:             row.Select,
		Remaining:          row.Remaining,
		ClassTime:          ct,
		Tags:               splitTags(row.Tags),
	}, nil
}

// FromCourse flattens a course back into a catalog row.
func FromCourse(c *model.Course) *CourseCSV {
	return &CourseCSV{
		ID:                 string(c.ID),
		Name:               c.Name,
		Teacher:            c.Teacher,
		Department:         c.Department,
		Room:               c.Room,
		Description:        c.Description,
		Credit:             c.Credit,
		Grade:              c.Grade,
		Class:              c.Class,
		YearSemester:       c.YearSemester,
		Compulsory:         strconv.FormatBool(c.Compulsory),
		MultipleCompulsory: strconv.FormatBool(c.MultipleCompulsory),
		English:            strconv.FormatBool(c.English),
		Restrict:           c.Restrict,
		Select:             c.Select,
		Remaining:          c.Remaining,
		Mon:                c.ClassTime[0],
		Tue:                c.ClassTime[1],
		Wed:                c.ClassTime[2],
		Thu:                c.ClassTime[3],
		Fri:                c.ClassTime[4],
		Sat:                c.ClassTime[5],
		Sun:                c.ClassTime[6],
		Tags:               strings.Join(c.Tags, ","),
	}
}

// parseFlag accepts the spellings catalog exports use for yes.
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "y", "yes", "是", "必修":
		return true
	}
	return false
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
