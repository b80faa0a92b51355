package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rhyrak/course-planner/internal/catalog"
	"github.com/rhyrak/course-planner/internal/planner"
	"github.com/rhyrak/course-planner/internal/store"
	"github.com/rhyrak/course-planner/pkg/model"
)

type server struct {
	source   catalog.Source
	semester string
	repo     *store.Repository
	limits   planner.Limits
	logger   *slog.Logger
}

// courses loads the catalog of the requested semester, writing the error
// response itself when that fails.
func (s *server) courses(ctx *gin.Context) ([]model.Course, bool) {
	semester := ctx.DefaultQuery("semester", s.semester)
	courses, err := s.source.Courses(ctx.Request.Context(), semester)
	if err != nil {
		if errors.Is(err, catalog.ErrSemesterNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return nil, false
		}
		s.logger.Error("load catalog", slog.String("semester", semester), slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
		return nil, false
	}
	return courses, true
}

func (s *server) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) handleListCourses(ctx *gin.Context) {
	courses, ok := s.courses(ctx)
	if !ok {
		return
	}

	sortCfg := model.DefaultSortConfig()
	if key := ctx.Query("sort"); key != "" {
		dir := model.SortDirection(ctx.DefaultQuery("direction", string(model.Ascending)))
		if cfg := model.SingleSort(model.SortOption(key), dir); planner.IsValidSortConfig(cfg) {
			sortCfg = cfg
		}
	}

	result := planner.Apply(courses, planner.Request{Query: ctx.Query("q"), Sort: sortCfg})
	ctx.JSON(http.StatusOK, gin.H{
		"courses": result,
		"total":   len(result),
	})
}

type searchRequest struct {
	planner.Request
	SelectedIDs []model.CourseID `json:"selectedIds"`
}

func (s *server) handleSearchCourses(ctx *gin.Context) {
	var req searchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courses, ok := s.courses(ctx)
	if !ok {
		return
	}

	if !planner.IsValidSortConfig(req.Sort) {
		req.Sort = model.DefaultSortConfig()
	}
	selection, missing := model.SelectionFromIDs(req.SelectedIDs, courses)
	result := planner.Apply(courses, req.Request)

	ctx.JSON(http.StatusOK, gin.H{
		"courses":    planner.Annotate(result, selection),
		"total":      len(result),
		"totals":     planner.CalculateTotalCredits(selection.Courses()),
		"missingIds": missing,
	})
}

func (s *server) handleFilterOptions(ctx *gin.Context) {
	courses, ok := s.courses(ctx)
	if !ok {
		return
	}

	var (
		labels      []model.Label
		assignments model.LabelMap
	)
	if id := ctx.Query("planner"); id != "" {
		state, ok := s.loadPlanner(ctx, id)
		if !ok {
			return
		}
		labels, assignments = state.Labels, state.CourseLabels
	}

	ctx.JSON(http.StatusOK, gin.H{
		"options": planner.DiscoverFilterOptions(courses, labels, assignments),
	})
}

func (s *server) handleSortOptions(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"options": planner.SortOptions(),
		"default": model.DefaultSortConfig(),
	})
}
