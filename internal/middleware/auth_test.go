package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goalboard/internal/app/session"
	"goalboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, session.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&session.Session{}))

	sessions := session.NewService(session.NewRepository(db), nil, time.Hour)

	r := gin.New()
	r.GET("/whoami", middleware.RequireAuth(sessions), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.UserIDFromContext(c)})
	})
	return r, sessions
}

func TestRequireAuthCookie(t *testing.T) {
	r, sessions := setupRouter(t)

	s, err := sessions.CreateSession(42)
	require.NoError(t, err)
	require.Len(t, s.SessionKey, 64)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: s.SessionKey})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"user_id": 42}`, w.Body.String())
}

func TestRequireAuthBearer(t *testing.T) {
	r, sessions := setupRouter(t)

	s, err := sessions.CreateSession(42)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+s.SessionKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejections(t *testing.T) {
	r, sessions := setupRouter(t)

	// no credentials at all
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// made-up key
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// ended session
	s, err := sessions.CreateSession(42)
	require.NoError(t, err)
	require.NoError(t, sessions.EndSession(req.Context(), s.SessionKey))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+s.SessionKey)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
