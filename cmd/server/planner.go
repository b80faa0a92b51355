package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rhyrak/course-planner/internal/csvio"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/internal/store"
	"github.com/rhyrak/course-planner/pkg/model"
)

// loadPlanner reads a planner, writing the error response itself when that
// fails.
func (s *server) loadPlanner(ctx *gin.Context, id string) (store.PlannerState, bool) {
	state, err := s.repo.Load(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrPlannerNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "planner not found"})
			return store.PlannerState{}, false
		}
		s.logger.Error("load planner", slog.String("planner_id", id), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "planner store unavailable"})
		return store.PlannerState{}, false
	}
	return state, true
}

func (s *server) savePlanner(ctx *gin.Context, state store.PlannerState) bool {
	if err := s.repo.Save(ctx.Request.Context(), state); err != nil {
		s.logger.Error("save planner", slog.String("planner_id", state.ID), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "planner store unavailable"})
		return false
	}
	return true
}

func (s *server) handleCreatePlanner(ctx *gin.Context) {
	state, err := s.repo.Create(ctx.Request.Context())
	if err != nil {
		s.logger.Error("create planner", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "planner store unavailable"})
		return
	}
	ctx.JSON(http.StatusCreated, state)
}

func (s *server) handleGetPlanner(ctx *gin.Context) {
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, state)
}

// plannerUpdate carries the parts a client wants to replace. Each part goes
// through the same guard as persisted data.
type plannerUpdate struct {
	Conditions     json.RawMessage `json:"conditions"`
	TimeSlots      json.RawMessage `json:"timeSlots"`
	Sort           json.RawMessage `json:"sort"`
	SelectedIDs    json.RawMessage `json:"selectedIds"`
	Labels         json.RawMessage `json:"labels"`
	CourseLabels   json.RawMessage `json:"courseLabels"`
	ExportValues   json.RawMessage `json:"exportValues"`
	ExportIncluded json.RawMessage `json:"exportIncluded"`
}

func (s *server) handleUpdatePlanner(ctx *gin.Context) {
	var update plannerUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}

	if update.Conditions != nil {
		state.Conditions = store.DecodeFilterConditions(update.Conditions)
	}
	if update.TimeSlots != nil {
		state.TimeSlots = store.DecodeTimeSlotFilters(update.TimeSlots)
	}
	if update.Sort != nil {
		state.Sort = store.DecodeSortConfig(update.Sort)
	}
	if update.SelectedIDs != nil {
		state.SelectedIDs = store.DecodeSelectedIDs(update.SelectedIDs)
	}
	if update.Labels != nil {
		state.Labels = store.DecodeLabels(update.Labels)
	}
	if update.CourseLabels != nil {
		state.CourseLabels = store.DecodeCourseLabels(update.CourseLabels)
	}
	if update.ExportValues != nil {
		state.ExportValues = store.DecodeExportValues(update.ExportValues)
	}
	if update.ExportIncluded != nil {
		state.ExportIncluded = store.DecodeExportIncluded(update.ExportIncluded)
	}

	if !s.savePlanner(ctx, state) {
		return
	}
	ctx.JSON(http.StatusOK, state)
}

func (s *server) handleDeletePlanner(ctx *gin.Context) {
	if err := s.repo.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		s.logger.Error("delete planner", slog.String("planner_id", ctx.Param("id")), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "planner store unavailable"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (s *server) handleToggleCourse(ctx *gin.Context) {
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}
	courses, ok := s.courses(ctx)
	if !ok {
		return
	}

	id := model.CourseID(ctx.Param("courseId"))
	var course *model.Course
	for i := range courses {
		if courses[i].ID == id {
			course = &courses[i]
			break
		}
	}
	if course == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
		return
	}

	selection, _ := model.SelectionFromIDs(state.SelectedIDs, courses)
	selection = selection.Toggle(*course)
	state.SelectedIDs = selection.IDs()
	if !s.savePlanner(ctx, state) {
		return
	}

	conflicts := planner.ConflictingCourses(*course, selection.Courses())
	conflictIDs := make([]model.CourseID, len(conflicts))
	for i, c := range conflicts {
		conflictIDs[i] = c.ID
	}
	ctx.JSON(http.StatusOK, gin.H{
		"selected":    selection.Contains(id),
		"selectedIds": state.SelectedIDs,
		"conflicts":   conflictIDs,
		"totals":      planner.CalculateTotalCredits(selection.Courses()),
	})
}

func (s *server) handleAssignLabel(ctx *gin.Context) {
	s.updateLabels(ctx, func(state *store.PlannerState, courseID model.CourseID, label string) {
		state.CourseLabels = state.CourseLabels.AssignLabel(courseID, label)
	})
}

func (s *server) handleUnassignLabel(ctx *gin.Context) {
	s.updateLabels(ctx, func(state *store.PlannerState, courseID model.CourseID, label string) {
		state.CourseLabels = state.CourseLabels.UnassignLabel(courseID, label)
	})
}

func (s *server) updateLabels(ctx *gin.Context, apply func(*store.PlannerState, model.CourseID, string)) {
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}
	label := ctx.Param("labelId")
	known := false
	for _, l := range state.Labels {
		if l.ID == label {
			known = true
			break
		}
	}
	if !known {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "label not found"})
		return
	}

	apply(&state, model.CourseID(ctx.Param("courseId")), label)
	if !s.savePlanner(ctx, state) {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"courseLabels": state.CourseLabels})
}

func (s *server) handleRemoveLabel(ctx *gin.Context) {
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}
	label := ctx.Param("labelId")
	kept := make([]model.Label, 0, len(state.Labels))
	for _, l := range state.Labels {
		if l.ID != label {
			kept = append(kept, l)
		}
	}
	state.Labels = kept
	state.CourseLabels = state.CourseLabels.RemoveLabel(label)
	if !s.savePlanner(ctx, state) {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"labels": state.Labels, "courseLabels": state.CourseLabels})
}

func (s *server) handleSummary(ctx *gin.Context) {
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}
	courses, ok := s.courses(ctx)
	if !ok {
		return
	}

	selection, missing := model.SelectionFromIDs(state.SelectedIDs, courses)
	valid, report := planner.ValidateSelection(selection, s.limits)
	timetable := model.NewTimetable(selection.Courses())
	var grid bytes.Buffer
	csvio.PrintTimetable(&grid, timetable)

	ctx.JSON(http.StatusOK, gin.H{
		"courses":    selection.Courses(),
		"totals":     planner.CalculateTotalCredits(selection.Courses()),
		"valid":      valid,
		"report":     report,
		"collisions": timetable.Collisions(),
		"timetable":  grid.String(),
		"missingIds": missing,
	})
}

func (s *server) handleExport(ctx *gin.Context) {
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}
	courses, ok := s.courses(ctx)
	if !ok {
		return
	}

	selection, _ := model.SelectionFromIDs(state.SelectedIDs, courses)
	records := model.BuildExportRecords(selection, state.ExportValues, state.ExportIncluded)

	if ctx.Query("format") == "csv" {
		out, err := csvio.ExportRecordsString(records)
		if err != nil {
			s.logger.Error("export csv", slog.String("planner_id", state.ID), slog.String("error", err.Error()))
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Header("Content-Disposition", `attachment; filename="`+state.ID+`-export.csv"`)
		ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(out))
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"records": records})
}

func (s *server) handleImport(ctx *gin.Context) {
	state, ok := s.loadPlanner(ctx, ctx.Param("id"))
	if !ok {
		return
	}

	var records []model.ExportRecord
	if strings.HasPrefix(ctx.ContentType(), "text/csv") {
		var err error
		if records, err = csvio.ReadExportRecords(ctx.Request.Body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	} else if err := ctx.ShouldBindJSON(&records); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	courses, ok := s.courses(ctx)
	if !ok {
		return
	}
	selection, values, included, missing := model.ImportExportRecords(records, courses)
	state.SelectedIDs = selection.IDs()
	state.ExportValues = values
	state.ExportIncluded = included
	if !s.savePlanner(ctx, state) {
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"selectedIds": state.SelectedIDs,
		"missingIds":  missing,
	})
}
