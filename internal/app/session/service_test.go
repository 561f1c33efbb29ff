package session_test

import (
	"context"
	"testing"
	"time"

	"goalboard/internal/app/session"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) session.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&session.Session{}))
	return session.NewService(session.NewRepository(db), nil, time.Hour)
}

func TestCloseOtherSessions(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	const userID = uint64(1)
	current, err := svc.CreateSession(userID)
	require.NoError(t, err)
	other, err := svc.CreateSession(userID)
	require.NoError(t, err)
	foreign, err := svc.CreateSession(2)
	require.NoError(t, err)

	require.NoError(t, svc.CloseOtherSessions(ctx, userID, current.SessionKey))

	got, err := svc.UserIDByKey(ctx, current.SessionKey)
	require.NoError(t, err)
	require.Equal(t, userID, got)

	_, err = svc.UserIDByKey(ctx, other.SessionKey)
	require.Error(t, err)

	// other users' sessions stay untouched
	got, err = svc.UserIDByKey(ctx, foreign.SessionKey)
	require.NoError(t, err)
	require.EqualValues(t, 2, got)
}

func TestEndSession(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	s, err := svc.CreateSession(1)
	require.NoError(t, err)

	got, err := svc.UserIDByKey(ctx, s.SessionKey)
	require.NoError(t, err)
	require.EqualValues(t, 1, got)

	require.NoError(t, svc.EndSession(ctx, s.SessionKey))
	_, err = svc.UserIDByKey(ctx, s.SessionKey)
	require.Error(t, err)
}
