package board

import (
	"errors"
	"net/http"
	"strconv"

	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	CreateBoard(c *gin.Context)
	GetBoards(c *gin.Context)
	GetBoard(c *gin.Context)
	UpdateBoard(c *gin.Context)
	DeleteBoard(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Create a board
// @Tags Board
// @Accept json
// @Produce json
// @Param request body CreateBoardRequest true "Board payload"
// @Success 201 {object} Board
// @Failure 400 {object} ErrorResponse
// @Router /api/boards [post]
func (h *handler) CreateBoard(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	board, err := h.service.CreateBoard(c.Request.Context(), middleware.UserIDFromContext(c), req.Title)
	if err != nil {
		h.logger.Errorw("CreateBoard failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to create board"})
		return
	}
	c.JSON(http.StatusCreated, board)
}

// @Summary List boards
// @Description Boards the requester participates in; deleted boards excluded.
// @Tags Board
// @Produce json
// @Param sort query string false "title|-title|created|-created"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} BoardListResponse
// @Router /api/boards [get]
func (h *handler) GetBoards(c *gin.Context) {
	page, limit := pageParams(c)
	boards, total, err := h.service.GetBoards(
		c.Request.Context(),
		middleware.UserIDFromContext(c),
		c.DefaultQuery("sort", "title"),
		page, limit,
	)
	if err != nil {
		h.logger.Errorw("GetBoards failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch boards"})
		return
	}
	c.JSON(http.StatusOK, BoardListResponse{
		Boards:     boards,
		Pagination: paginationFor(page, limit, total),
	})
}

// @Summary Get a board
// @Tags Board
// @Produce json
// @Param id path int true "Board ID"
// @Success 200 {object} Board
// @Failure 404 {object} ErrorResponse
// @Router /api/boards/{id} [get]
func (h *handler) GetBoard(c *gin.Context) {
	boardID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board id"})
		return
	}

	board, err := h.service.GetBoard(middleware.UserIDFromContext(c), boardID)
	if err != nil {
		respondServiceError(c, h.logger, "GetBoard", err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// @Summary Update a board
// @Description Owner only. Replaces title and non-owner participants.
// @Tags Board
// @Accept json
// @Produce json
// @Param id path int true "Board ID"
// @Param request body UpdateBoardRequest true "Board payload"
// @Success 200 {object} Board
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id} [put]
func (h *handler) UpdateBoard(c *gin.Context) {
	boardID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board id"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	board, err := h.service.UpdateBoard(c.Request.Context(), middleware.UserIDFromContext(c), boardID, req)
	if err != nil {
		respondServiceError(c, h.logger, "UpdateBoard", err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// @Summary Delete a board
// @Description Owner only. Soft-deletes the board and its categories and archives their goals atomically.
// @Tags Board
// @Param id path int true "Board ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /api/boards/{id} [delete]
func (h *handler) DeleteBoard(c *gin.Context) {
	boardID, err := idParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid board id"})
		return
	}

	if err := h.service.DeleteBoard(c.Request.Context(), middleware.UserIDFromContext(c), boardID); err != nil {
		respondServiceError(c, h.logger, "DeleteBoard", err)
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
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "board not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	default:
		logger.Errorw(op+" failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
