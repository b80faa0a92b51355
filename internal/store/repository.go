package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rhyrak/course-planner/pkg/model"
)

// ErrPlannerNotFound is returned by Load for ids that were never created.
var ErrPlannerNotFound = errors.New("store: planner not found")

// PlannerState is everything one planner persists between sessions.
type PlannerState struct {
	ID             string                  `json:"id"`
	CreatedAt      time.Time               `json:"createdAt"`
	Conditions     []model.FilterCondition `json:"conditions"`
	TimeSlots      []model.TimeSlotFilter  `json:"timeSlots"`
	Sort           model.SortConfig        `json:"sort"`
	SelectedIDs    []model.CourseID        `json:"selectedIds"`
	Labels         []model.Label           `json:"labels"`
	CourseLabels   model.LabelMap          `json:"courseLabels"`
	ExportValues   map[model.CourseID]int  `json:"exportValues"`
	ExportIncluded map[model.CourseID]bool `json:"exportIncluded"`
}

// DefaultState is the state of a planner nothing was saved for.
func DefaultState(id string) PlannerState {
	return PlannerState{
		ID:             id,
		Conditions:     []model.FilterCondition{},
		TimeSlots:      []model.TimeSlotFilter{},
		Sort:           model.DefaultSortConfig(),
		SelectedIDs:    []model.CourseID{},
		Labels:         []model.Label{},
		CourseLabels:   model.LabelMap{},
		ExportValues:   map[model.CourseID]int{},
		ExportIncluded: map[model.CourseID]bool{},
	}
}

// Persisted keys of one planner.
const (
	keyMeta           = "meta"
	keyConditions     = "filterConditions"
	keyTimeSlots      = "timeSlotFilters"
	keySort           = "sortConfig"
	keySelected       = "selectedCourses"
	keyLabels         = "labels"
	keyCourseLabels   = "courseLabels"
	keyExportValues   = "exportValues"
	keyExportIncluded = "exportIncluded"
)

type meta struct {
	CreatedAt time.Time `json:"createdAt"`
}

// Repository loads and saves whole planner states on top of a Store, one
// key per persisted shape.
type Repository struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewRepository(store Store, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{store: store, logger: logger, now: time.Now}
}

func plannerKey(id, name string) string {
	return "planner:" + id + ":" + name
}

// Create issues a new planner id and saves its default state.
func (r *Repository) Create(ctx context.Context) (PlannerState, error) {
	state := DefaultState(uuid.NewString())
	state.CreatedAt = r.now().UTC()
	if err := r.Save(ctx, state); err != nil {
		return PlannerState{}, err
	}
	r.logger.Info("planner created", slog.String("planner_id", state.ID))
	return state, nil
}

// Load reads a planner. Malformed values are replaced with their
// defaults; only unknown ids and backend failures are errors.
func (r *Repository) Load(ctx context.Context, id string) (PlannerState, error) {
	rawMeta, err := r.store.Get(ctx, plannerKey(id, keyMeta))
	if errors.Is(err, ErrNotFound) {
		return PlannerState{}, fmt.Errorf("%w: %s", ErrPlannerNotFound, id)
	}
	if err != nil {
		return PlannerState{}, fmt.Errorf("load planner %s: %w", id, err)
	}

	state := DefaultState(id)
	var m meta
	if json.Unmarshal(rawMeta, &m) == nil {
		state.CreatedAt = m.CreatedAt
	}

	read := func(name string, decode func([]byte)) error {
		data, err := r.store.Get(ctx, plannerKey(id, name))
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load planner %s %s: %w", id, name, err)
		}
		decode(data)
		return nil
	}

	steps := []struct {
		name   string
		decode func([]byte)
	}{
		{keyConditions, func(b []byte) { state.Conditions = DecodeFilterConditions(b) }},
		{keyTimeSlots, func(b []byte) { state.TimeSlots = DecodeTimeSlotFilters(b) }},
		{keySort, func(b []byte) { state.Sort = DecodeSortConfig(b) }},
		{keySelected, func(b []byte) { state.SelectedIDs = DecodeSelectedIDs(b) }},
		{keyLabels, func(b []byte) { state.Labels = DecodeLabels(b) }},
		{keyCourseLabels, func(b []byte) { state.CourseLabels = DecodeCourseLabels(b) }},
		{keyExportValues, func(b []byte) { state.ExportValues = DecodeExportValues(b) }},
		{keyExportIncluded, func(b []byte) { state.ExportIncluded = DecodeExportIncluded(b) }},
	}
	for _, s := range steps {
		if err := read(s.name, s.decode); err != nil {
			return PlannerState{}, err
		}
	}
	return state, nil
}

// Save writes every part of state in one batch. A nil part is stored as its
// default.
func (r *Repository) Save(ctx context.Context, state PlannerState) error {
	if state.ID == "" {
		return ErrEmptyKey
	}
	def := DefaultState(state.ID)
	if state.Conditions == nil {
		state.Conditions = def.Conditions
	}
	if state.TimeSlots == nil {
		state.TimeSlots = def.TimeSlots
	}
	if len(state.Sort.Rules) == 0 {
		state.Sort = def.Sort
	}
	if state.SelectedIDs == nil {
		state.SelectedIDs = def.SelectedIDs
	}
	if state.Labels == nil {
		state.Labels = def.Labels
	}
	if state.CourseLabels == nil {
		state.CourseLabels = def.CourseLabels
	}
	if state.ExportValues == nil {
		state.ExportValues = def.ExportValues
	}
	if state.ExportIncluded == nil {
		state.ExportIncluded = def.ExportIncluded
	}
	if state.CreatedAt.IsZero() {
		state.CreatedAt = r.now().UTC()
	}

	parts := []struct {
		name  string
		value any
	}{
		{keyMeta, meta{CreatedAt: state.CreatedAt}},
		{keyConditions, state.Conditions},
		{keyTimeSlots, state.TimeSlots},
		{keySort, state.Sort},
		{keySelected, state.SelectedIDs},
		{keyLabels, state.Labels},
		{keyCourseLabels, state.CourseLabels},
		{keyExportValues, state.ExportValues},
		{keyExportIncluded, state.ExportIncluded},
	}
	entries := make(map[string][]byte, len(parts))
	for _, p := range parts {
		data, err := json.Marshal(p.value)
		if err != nil {
			return fmt.Errorf("encode planner %s %s: %w", state.ID, p.name, err)
		}
		entries[plannerKey(state.ID, p.name)] = data
	}
	if err := r.store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("save planner %s: %w", state.ID, err)
	}
	r.logger.Debug("planner saved", slog.String("planner_id", state.ID), slog.Int("selected", len(state.SelectedIDs)))
	return nil
}

// Delete removes every key of a planner.
func (r *Repository) Delete(ctx context.Context, id string) error {
	for _, name := range []string{keyMeta, keyConditions, keyTimeSlots, keySort, keySelected, keyLabels, keyCourseLabels, keyExportValues, keyExportIncluded} {
		if err := r.store.Delete(ctx, plannerKey(id, name)); err != nil {
			return fmt.Errorf("delete planner %s: %w", id, err)
		}
	}
	return nil
}
