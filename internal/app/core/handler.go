package core

import (
	"errors"
	"net/http"
	"time"

	"goalboard/internal/app/session"
	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	Profile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	Logout(c *gin.Context)
	UpdatePassword(c *gin.Context)
}

type handler struct {
	service    Service
	sessionSvc session.Service
	sessionTTL time.Duration
	logger     *zap.SugaredLogger
}

func NewHandler(service Service, sessionSvc session.Service, sessionTTL time.Duration, logger *zap.Logger) Handler {
	return &handler{
		service:    service,
		sessionSvc: sessionSvc,
		sessionTTL: sessionTTL,
		logger:     logger.Sugar(),
	}
}

// @Summary Register a new user
// @Tags Core
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} User
// @Failure 400 {object} ErrorResponse
// @Router /api/signup [post]
func (h *handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.service.Signup(req)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username already taken"})
			return
		}
		h.logger.Errorw("Signup failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to register"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary Log in
// @Tags Core
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/login [post]
func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "invalid username or password"})
			return
		}
		h.logger.Errorw("Login failed", "username", req.Username, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to log in"})
		return
	}

	sess, err := h.sessionSvc.CreateSession(user.ID)
	if err != nil {
		h.logger.Errorw("Failed to create session", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to log in"})
		return
	}

	c.SetCookie(session.CookieName, sess.SessionKey, int(h.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, LoginResponse{User: *user, SessionKey: sess.SessionKey})
}

// @Summary Current user profile
// @Tags Core
// @Produce json
// @Success 200 {object} User
// @Failure 401 {object} ErrorResponse
// @Router /api/profile [get]
func (h *handler) Profile(c *gin.Context) {
	user, err := h.service.GetUserByID(middleware.UserIDFromContext(c))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Update profile
// @Tags Core
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Profile payload"
// @Success 200 {object} User
// @Failure 400 {object} ErrorResponse
// @Router /api/profile [put]
func (h *handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.service.UpdateProfile(middleware.UserIDFromContext(c), req)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Log out
// @Description Ends the current session.
// @Tags Core
// @Success 204
// @Router /api/profile [delete]
func (h *handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		if err := h.sessionSvc.EndSession(c.Request.Context(), cookie); err != nil {
			h.logger.Warnw("Failed to end session", "error", err)
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// @Summary Update password
// @Tags Core
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "Password payload"
// @Success 200 {object} gin.H
// @Failure 400 {object} ErrorResponse
// @Router /api/update_password [put]
func (h *handler) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	userID := middleware.UserIDFromContext(c)
	err := h.service.UpdatePassword(userID, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, ErrWrongPassword) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "old password does not match"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to update password"})
		return
	}

	// other devices must re-authenticate with the new password
	if err := h.sessionSvc.CloseOtherSessions(c.Request.Context(), userID, middleware.SessionKeyFromRequest(c)); err != nil {
		h.logger.Warnw("Failed to close other sessions", "user_id", userID, "error", err)
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
