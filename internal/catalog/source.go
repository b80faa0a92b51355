// Package catalog fetches semester course catalogs.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/rhyrak/course-planner/internal/csvio"
	"github.com/rhyrak/course-planner/pkg/model"
)

// ErrSemesterNotFound is returned when no catalog exists for a semester.
var ErrSemesterNotFound = errors.New("catalog: semester not found")

// Source returns the courses offered in a semester. Callers must not
// modify the returned courses.
type Source interface {
	Courses(ctx context.Context, semester string) ([]model.Course, error)
}

// StaticSource serves catalogs held in memory.
type StaticSource struct {
	semesters map[string][]model.Course
}

func NewStaticSource(semesters map[string][]model.Course) *StaticSource {
	return &StaticSource{semesters: semesters}
}

func (s *StaticSource) Courses(_ context.Context, semester string) ([]model.Course, error) {
	courses, ok := s.semesters[semester]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSemesterNotFound, semester)
	}
	return slices.Clone(courses), nil
}

var semesterPattern = regexp.MustCompile(`^[0-9A-Za-z_-]+$`)

// FileSource reads <dir>/<semester>.csv on every call.
type FileSource struct {
	Dir   string
	Delim rune
}

func NewFileSource(dir string, delim rune) *FileSource {
	return &FileSource{Dir: dir, Delim: delim}
}

func (f *FileSource) Courses(ctx context.Context, semester string) ([]model.Course, error) {
	if !semesterPattern.MatchString(semester) {
		return nil, fmt.Errorf("%w: %q", ErrSemesterNotFound, semester)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	courses, err := csvio.LoadCourses(filepath.Join(f.Dir, semester+".csv"), f.Delim)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSemesterNotFound, semester)
	}
	return courses, err
}
