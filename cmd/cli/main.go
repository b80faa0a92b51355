package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rhyrak/course-planner/internal/csvio"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/internal/store"
	"github.com/rhyrak/course-planner/pkg/model"
)

// filterFlag collects repeated -filter field:type:value[|value...] flags.
type filterFlag []model.FilterCondition

func (f *filterFlag) String() string { return fmt.Sprint(*f) }

func (f *filterFlag) Set(s string) error {
	cond, err := parseFilter(s)
	if err != nil {
		return err
	}
	*f = append(*f, cond)
	return nil
}

// sortFlag collects repeated -sort option[:direction] flags.
type sortFlag []model.SortRule

func (f *sortFlag) String() string { return fmt.Sprint(*f) }

func (f *sortFlag) Set(s string) error {
	rule, err := parseSortRule(s)
	if err != nil {
		return err
	}
	*f = append(*f, rule)
	return nil
}

// slotFlag collects repeated -slot day:codes flags.
type slotFlag []model.TimeSlotFilter

func (f *slotFlag) String() string { return fmt.Sprint(*f) }

func (f *slotFlag) Set(s string) error {
	slots, err := parseSlots(s)
	if err != nil {
		return err
	}
	*f = append(*f, slots...)
	return nil
}

func parseFilter(s string) (model.FilterCondition, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return model.FilterCondition{}, fmt.Errorf("filter %q: want field:include|exclude:value", s)
	}
	typ := model.ConditionType(parts[1])
	if !typ.Valid() {
		return model.FilterCondition{}, fmt.Errorf("filter %q: unknown type %q", s, parts[1])
	}
	if !planner.KnownField(parts[0]) {
		return model.FilterCondition{}, fmt.Errorf("filter %q: unknown field %q", s, parts[0])
	}
	return model.FilterCondition{Field: parts[0], Type: typ, Value: model.FilterValue(strings.Split(parts[2], "|"))}, nil
}

func parseSortRule(s string) (model.SortRule, error) {
	option, dir, found := strings.Cut(s, ":")
	rule := model.SortRule{Option: model.SortOption(option), Direction: model.Ascending}
	if found {
		rule.Direction = model.SortDirection(dir)
	}
	if !planner.IsValidSortRule(rule) {
		return model.SortRule{}, fmt.Errorf("sort %q: want option[:asc|desc]", s)
	}
	return rule, nil
}

func parseSlots(s string) ([]model.TimeSlotFilter, error) {
	dayText, codes, found := strings.Cut(s, ":")
	day, err := strconv.Atoi(dayText)
	if !found || err != nil || !model.ValidDay(day) || codes == "" {
		return nil, fmt.Errorf("slot %q: want day(0-6):codes", s)
	}
	var slots []model.TimeSlotFilter
	for _, code := range codes {
		if !model.IsSlotCode(code) {
			return nil, fmt.Errorf("slot %q: unknown code %q", s, code)
		}
		slots = append(slots, model.TimeSlotFilter{Day: day, TimeSlot: string(code)})
	}
	return slots, nil
}

func parseIDs(s string) []model.CourseID {
	var ids []model.CourseID
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, model.CourseID(id))
		}
	}
	return ids
}

type options struct {
	coursesFile string
	delim       rune
	query       string
	filters     filterFlag
	slots       slotFlag
	sorts       sortFlag
	selected    []model.CourseID
	limits      planner.Limits
	exportFile  string
	statePath   string
	plannerID   string
	save        bool
	verbose     bool
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var delim, selected string
	fs.StringVar(&opts.coursesFile, "courses", "./res/courses.csv", "catalog CSV file")
	fs.StringVar(&delim, "delim", ";", "catalog CSV delimiter")
	fs.StringVar(&opts.query, "q", "", "search query (AND, OR, NOT, +term, \"phrase\", parentheses)")
	fs.Var(&opts.filters, "filter", "field:include|exclude:value[|value...] (repeatable)")
	fs.Var(&opts.slots, "slot", "day:codes, only courses meeting inside these cells (repeatable)")
	fs.Var(&opts.sorts, "sort", "option[:asc|desc] (repeatable, later rules break ties)")
	fs.StringVar(&selected, "select", "", "comma separated course ids to select")
	fs.Float64Var(&opts.limits.MinCredits, "min-credits", 0, "minimum credits of the selection")
	fs.Float64Var(&opts.limits.MaxCredits, "max-credits", 25, "maximum credits of the selection")
	fs.StringVar(&opts.exportFile, "export", "", "write the selection export records to this CSV file")
	fs.StringVar(&opts.statePath, "state", "", "SQLite file holding saved planners")
	fs.StringVar(&opts.plannerID, "planner", "", "planner id to load from -state")
	fs.BoolVar(&opts.save, "save", false, "save filters, sort and selection to -state")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	r, size := utf8.DecodeRuneInString(delim)
	if r == utf8.RuneError || size != len(delim) {
		err := fmt.Errorf("delim %q: want a single character", delim)
		fmt.Fprintln(stderr, err)
		return nil, err
	}
	opts.delim = r
	opts.selected = parseIDs(selected)
	if opts.save && opts.statePath == "" {
		err := errors.New("-save needs -state")
		fmt.Fprintln(stderr, err)
		return nil, err
	}
	return opts, nil
}

func setupLogger(verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(log)
	return log
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	log := setupLogger(opts.verbose)

	if err := run(context.Background(), opts, os.Stdout, log); err != nil {
		log.Error("failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options, out io.Writer, log *slog.Logger) error {
	start := time.Now()
	courses, err := csvio.LoadCourses(opts.coursesFile, opts.delim)
	if err != nil {
		return err
	}
	log.Debug("catalog loaded", slog.Int("courses", len(courses)), slog.Duration("took", time.Since(start)))

	req := planner.Request{
		Query:      opts.query,
		Conditions: opts.filters,
		TimeSlots:  opts.slots,
		Sort:       model.SortConfig{Rules: opts.sorts},
	}
	selectedIDs := opts.selected

	var (
		repo  *store.Repository
		state store.PlannerState
	)
	if opts.statePath != "" {
		kv, err := store.NewSQLiteStore(ctx, opts.statePath)
		if err != nil {
			return err
		}
		defer kv.Close()
		repo = store.NewRepository(kv, log)

		switch {
		case opts.plannerID != "":
			if state, err = repo.Load(ctx, opts.plannerID); err != nil {
				return err
			}
		case opts.save:
			if state, err = repo.Create(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "Created planner %s\n", state.ID)
		}
		// saved values fill in whatever was not given on the command line
		if state.ID != "" {
			if len(req.Conditions) == 0 {
				req.Conditions = state.Conditions
			}
			if len(req.TimeSlots) == 0 {
				req.TimeSlots = state.TimeSlots
			}
			if len(req.Sort.Rules) == 0 {
				req.Sort = state.Sort
			}
			if len(selectedIDs) == 0 {
				selectedIDs = state.SelectedIDs
			}
			req.Labels = state.CourseLabels
		}
	}

	selection, missing := model.SelectionFromIDs(selectedIDs, courses)
	for _, id := range missing {
		log.Warn("selected course not in catalog", slog.String("id", string(id)))
	}

	result := planner.Apply(courses, req)
	printCourses(out, planner.Annotate(result, selection))
	fmt.Fprintf(out, "Matched: %d of %d\n", len(result), len(courses))

	if selection.Len() > 0 {
		totals := planner.CalculateTotalCredits(selection.Courses())
		fmt.Fprintf(out, "\nSelected: %d courses, %g credits, %d hours\n", selection.Len(), totals.TotalCredits, totals.TotalHours)
		_, report := planner.ValidateSelection(selection, opts.limits)
		fmt.Fprint(out, report)
		csvio.PrintTimetable(out, model.NewTimetable(selection.Courses()))
	}

	if opts.exportFile != "" {
		values, included := state.ExportValues, state.ExportIncluded
		if err := csvio.SaveExportRecords(model.BuildExportRecords(selection, values, included), opts.exportFile); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d records to %s\n", selection.Len(), opts.exportFile)
	}

	if opts.save && repo != nil {
		state.Conditions = req.Conditions
		state.TimeSlots = req.TimeSlots
		state.Sort = req.Sort
		state.SelectedIDs = selection.IDs()
		if err := repo.Save(ctx, state); err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved planner %s\n", state.ID)
	}
	return nil
}

func printCourses(out io.Writer, views []planner.CourseView) {
	for _, v := range views {
		mark := ' '
		switch {
		case v.Selected:
			mark = '*'
		case v.Conflict:
			mark = '!'
		}
		fmt.Fprintf(out, "%c %-10s %-24s %-12s %4s %6s  %s\n",
			mark, v.ID, v.Name, v.Teacher, v.Credit, v.ProbabilityText, formatClassTime(v.ClassTime))
	}
}

func formatClassTime(ct model.ClassTime) string {
	var parts []string
	for day := 0; day < model.DaysPerWeek; day++ {
		if slots := ct.SortedSlots(day); len(slots) > 0 {
			parts = append(parts, model.DayNames[day][:3]+" "+string(slots))
		}
	}
	return strings.Join(parts, ", ")
}
