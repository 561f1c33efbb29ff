package goal

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	CreateGoal(c *gin.Context)
	GetGoals(c *gin.Context)
	GetGoal(c *gin.Context)
	UpdateGoal(c *gin.Context)
	DeleteGoal(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Create a goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param request body CreateGoalRequest true "Goal payload"
// @Success 201 {object} Goal
// @Failure 403 {object} ErrorResponse
// @Router /api/goals [post]
func (h *handler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	goal, err := h.service.CreateGoal(middleware.UserIDFromContext(c), req)
	if err != nil {
		respondServiceError(c, h.logger, "CreateGoal", err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// @Summary List goals
// @Description Active goals on boards the requester participates in. Archived goals never appear.
// @Tags Goal
// @Produce json
// @Param category query int false "Filter by category ID"
// @Param status query int false "Filter by status (1..3)"
// @Param priority query int false "Filter by priority (1..4)"
// @Param due_date__gte query string false "Due on or after (YYYY-MM-DD)"
// @Param due_date__lte query string false "Due on or before (YYYY-MM-DD)"
// @Param search query string false "Title substring"
// @Param sort query string false "priority|-priority|due_date|-due_date|created|-created"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} GoalListResponse
// @Router /api/goals [get]
func (h *handler) GetGoals(c *gin.Context) {
	page, limit := pageParams(c)

	filter := ListFilter{Page: page, Limit: limit}
	if v, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
		filter.CategoryID = v
	}
	if v, err := strconv.Atoi(c.Query("status")); err == nil {
		filter.Status = Status(v)
	}
	if v, err := strconv.Atoi(c.Query("priority")); err == nil {
		filter.Priority = Priority(v)
	}
	if t, ok := dateParam(c, "due_date__gte"); ok {
		filter.DueAfter = t
	}
	if t, ok := dateParam(c, "due_date__lte"); ok {
		filter.DueBefore = t
	}
	filter.Search = c.Query("search")

	goals, total, err := h.service.GetGoals(
		middleware.UserIDFromContext(c),
		filter,
		c.DefaultQuery("sort", "priority"),
	)
	if err != nil {
		h.logger.Errorw("GetGoals failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch goals"})
		return
	}
	c.JSON(http.StatusOK, GoalListResponse{
		Goals:      goals,
		Pagination: paginationFor(page, limit, total),
	})
}

// @Summary Get a goal
// @Description Retrievable by id for participants even when archived.
// @Tags Goal
// @Produce json
// @Param id path int true "Goal ID"
// @Success 200 {object} Goal
// @Failure 404 {object} ErrorResponse
// @Router /api/goals/{id} [get]
func (h *handler) GetGoal(c *gin.Context) {
	goalID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid goal id"})
		return
	}

	goal, err := h.service.GetGoal(middleware.UserIDFromContext(c), goalID)
	if err != nil {
		respondServiceError(c, h.logger, "GetGoal", err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// @Summary Update a goal
// @Tags Goal
// @Accept json
// @Produce json
// @Param id path int true "Goal ID"
// @Param request body UpdateGoalRequest true "Goal payload"
// @Success 200 {object} Goal
// @Failure 403 {object} ErrorResponse
// @Router /api/goals/{id} [put]
func (h *handler) UpdateGoal(c *gin.Context) {
	goalID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid goal id"})
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	goal, err := h.service.UpdateGoal(middleware.UserIDFromContext(c), goalID, req)
	if err != nil {
		respondServiceError(c, h.logger, "UpdateGoal", err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// @Summary Delete a goal
// @Description Sets status=archived; the row is kept.
// @Tags Goal
// @Param id path int true "Goal ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/goals/{id} [delete]
func (h *handler) DeleteGoal(c *gin.Context) {
	goalID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid goal id"})
		return
	}

	if err := h.service.DeleteGoal(middleware.UserIDFromContext(c), goalID); err != nil {
		respondServiceError(c, h.logger, "DeleteGoal", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func dateParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func paginationFor(page, limit int, total int64) Pagination {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

func respondServiceError(c *gin.Context, logger *zap.SugaredLogger, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "goal not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	default:
		logger.Errorw(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
