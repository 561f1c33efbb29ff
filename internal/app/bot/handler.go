package bot

import (
	"errors"
	"net/http"

	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Verify(c *gin.Context)
}

type handler struct {
	service Service
	logger  *zap.SugaredLogger
}

func NewHandler(service Service, logger *zap.Logger) Handler {
	return &handler{service: service, logger: logger.Sugar()}
}

// @Summary Redeem a Telegram verification code
// @Description Binds the Telegram chat that was issued the code to the authenticated user.
// @Tags Bot
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification payload"
// @Success 200 {object} TgUser
// @Failure 400 {object} ErrorResponse
// @Router /api/bot/verify [patch]
func (h *handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tgUser, err := h.service.Verify(middleware.UserIDFromContext(c), req.VerificationCode)
	if err != nil {
		if errors.Is(err, ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown verification code"})
			return
		}
		h.logger.Errorw("Verify failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to verify"})
		return
	}
	c.JSON(http.StatusOK, tgUser)
}
