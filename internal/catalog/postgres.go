package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rhyrak/course-planner/pkg/model"
)

const coursesQuery = `
	SELECT id, name, teacher, department, room, description, credit, grade, class,
	       year_semester, compulsory, multiple_compulsory, english,
	       restrict_count, select_count, remaining, class_time, tags
	FROM courses
	WHERE year_semester = $1
	ORDER BY id`

// PostgresSource reads catalogs from the courses table. class_time holds
// one text element per weekday, tags a text array.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresSource connects to databaseURL and checks the connection.
func NewPostgresSource(ctx context.Context, databaseURL string, logger *slog.Logger) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSource{pool: pool, logger: logger}, nil
}

func (p *PostgresSource) Courses(ctx context.Context, semester string) ([]model.Course, error) {
	rows, err := p.pool.Query(ctx, coursesQuery, semester)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	courses, err := pgx.CollectRows(rows, scanCourse)
	if err != nil {
		return nil, fmt.Errorf("scan courses: %w", err)
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSemesterNotFound, semester)
	}
	p.logger.Debug("catalog loaded from postgres", slog.String("semester", semester), slog.Int("courses", len(courses)))
	return courses, nil
}

func scanCourse(row pgx.CollectableRow) (model.Course, error) {
	var (
		c         model.Course
		id        string
		classTime []string
	)
	err := row.Scan(&id, &c.Name, &c.Teacher, &c.Department, &c.Room, &c.Description, &c.Credit, &c.Grade, &c.Class,
		&c.YearSemester, &c.Compulsory, &c.MultipleCompulsory, &c.English,
		&c.Restrict, &c.Select, &c.Remaining, &classTime, &c.Tags)
	if err != nil {
		return model.Course{}, err
	}
	c.ID = model.CourseID(id)
	c.ClassTime = classTimeFromArray(classTime)
	return c, nil
}

// classTimeFromArray maps a weekday array onto ClassTime. Missing days are
// empty; extra elements are ignored.
func classTimeFromArray(days []string) model.ClassTime {
	var ct model.ClassTime
	copy(ct[:], days)
	return ct
}

func (p *PostgresSource) Close() {
	p.pool.Close()
}
