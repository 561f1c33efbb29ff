package comment

import (
	"errors"
	"net/http"
	"strconv"

	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	CreateComment(c *gin.Context)
	GetComments(c *gin.Context)
	GetComment(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Create a goal comment
// @Tags GoalComment
// @Accept json
// @Produce json
// @Param request body CreateCommentRequest true "Comment payload"
// @Success 201 {object} GoalComment
// @Failure 403 {object} ErrorResponse
// @Router /api/goal_comments [post]
func (h *handler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.service.CreateComment(middleware.UserIDFromContext(c), req)
	if err != nil {
		respondServiceError(c, h.logger, "CreateComment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// @Summary List goal comments
// @Description Newest first; visible only to board participants.
// @Tags GoalComment
// @Produce json
// @Param goal query int false "Filter by goal ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} CommentListResponse
// @Router /api/goal_comments [get]
func (h *handler) GetComments(c *gin.Context) {
	page, limit := pageParams(c)
	goalID, _ := strconv.ParseUint(c.Query("goal"), 10, 64)

	comments, total, err := h.service.GetComments(middleware.UserIDFromContext(c), goalID, page, limit)
	if err != nil {
		h.logger.Errorw("GetComments failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch comments"})
		return
	}
	c.JSON(http.StatusOK, CommentListResponse{
		Comments:   comments,
		Pagination: paginationFor(page, limit, total),
	})
}

// @Summary Get a goal comment
// @Tags GoalComment
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} GoalComment
// @Failure 404 {object} ErrorResponse
// @Router /api/goal_comments/{id} [get]
func (h *handler) GetComment(c *gin.Context) {
	commentID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
		return
	}

	comment, err := h.service.GetComment(middleware.UserIDFromContext(c), commentID)
	if err != nil {
		respondServiceError(c, h.logger, "GetComment", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// @Summary Update a goal comment
// @Description Author only.
// @Tags GoalComment
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body UpdateCommentRequest true "Comment payload"
// @Success 200 {object} GoalComment
// @Failure 403 {object} ErrorResponse
// @Router /api/goal_comments/{id} [put]
func (h *handler) UpdateComment(c *gin.Context) {
	commentID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.service.UpdateComment(middleware.UserIDFromContext(c), commentID, req)
	if err != nil {
		respondServiceError(c, h.logger, "UpdateComment", err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// @Summary Delete a goal comment
// @Description Author only; hard delete.
// @Tags GoalComment
// @Param id path int true "Comment ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/goal_comments/{id} [delete]
func (h *handler) DeleteComment(c *gin.Context) {
	commentID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid comment id"})
		return
	}

	if err := h.service.DeleteComment(middleware.UserIDFromContext(c), commentID); err != nil {
		respondServiceError(c, h.logger, "DeleteComment", err)
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
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "comment not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	default:
		logger.Errorw(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
