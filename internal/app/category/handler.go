package category

import (
	"errors"
	"net/http"
	"strconv"

	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	CreateCategory(c *gin.Context)
	GetCategories(c *gin.Context)
	GetCategory(c *gin.Context)
	UpdateCategory(c *gin.Context)
	DeleteCategory(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Create a goal category
// @Tags GoalCategory
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category payload"
// @Success 201 {object} GoalCategory
// @Failure 403 {object} ErrorResponse
// @Router /api/goal_categories [post]
func (h *handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	category, err := h.service.CreateCategory(middleware.UserIDFromContext(c), req)
	if err != nil {
		respondServiceError(c, h.logger, "CreateCategory", err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// @Summary List goal categories
// @Description Categories on boards the requester participates in; deleted ones excluded.
// @Tags GoalCategory
// @Produce json
// @Param board query int false "Filter by board ID"
// @Param search query string false "Title substring"
// @Param sort query string false "title|-title|created|-created"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} CategoryListResponse
// @Router /api/goal_categories [get]
func (h *handler) GetCategories(c *gin.Context) {
	page, limit := pageParams(c)
	boardID, _ := strconv.ParseUint(c.Query("board"), 10, 64)

	categories, total, err := h.service.GetCategories(
		middleware.UserIDFromContext(c),
		boardID,
		c.Query("search"),
		c.DefaultQuery("sort", "title"),
		page, limit,
	)
	if err != nil {
		h.logger.Errorw("GetCategories failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, CategoryListResponse{
		Categories: categories,
		Pagination: paginationFor(page, limit, total),
	})
}

// @Summary Get a goal category
// @Tags GoalCategory
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} GoalCategory
// @Failure 404 {object} ErrorResponse
// @Router /api/goal_categories/{id} [get]
func (h *handler) GetCategory(c *gin.Context) {
	categoryID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category id"})
		return
	}

	category, err := h.service.GetCategory(middleware.UserIDFromContext(c), categoryID)
	if err != nil {
		respondServiceError(c, h.logger, "GetCategory", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// @Summary Update a goal category
// @Tags GoalCategory
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body UpdateCategoryRequest true "Category payload"
// @Success 200 {object} GoalCategory
// @Failure 403 {object} ErrorResponse
// @Router /api/goal_categories/{id} [put]
func (h *handler) UpdateCategory(c *gin.Context) {
	categoryID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category id"})
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	category, err := h.service.UpdateCategory(middleware.UserIDFromContext(c), categoryID, req)
	if err != nil {
		respondServiceError(c, h.logger, "UpdateCategory", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// @Summary Delete a goal category
// @Description Soft delete; the category's goals are archived in the same transaction.
// @Tags GoalCategory
// @Param id path int true "Category ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/goal_categories/{id} [delete]
func (h *handler) DeleteCategory(c *gin.Context) {
	categoryID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category id"})
		return
	}

	if err := h.service.DeleteCategory(middleware.UserIDFromContext(c), categoryID); err != nil {
		respondServiceError(c, h.logger, "DeleteCategory", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func idParam(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
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
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "category not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	default:
		logger.Errorw(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
