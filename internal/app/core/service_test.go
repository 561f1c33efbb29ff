package core_test

import (
	"testing"

	"goalboard/internal/app/core"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) (core.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&core.User{}))
	return core.NewService(core.NewRepository(db), zap.NewNop()), db
}

func signup(t *testing.T, svc core.Service, username, password string) *core.User {
	t.Helper()
	user, err := svc.Signup(core.SignupRequest{
		Username:       username,
		Password:       password,
		PasswordRepeat: password,
	})
	require.NoError(t, err)
	return user
}

func TestSignupHashesPassword(t *testing.T) {
	svc, db := setup(t)

	user := signup(t, svc, "alice", "supersecret")
	require.NotZero(t, user.ID)

	var stored core.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	require.NotEqual(t, "supersecret", stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("supersecret")))
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := setup(t)

	signup(t, svc, "alice", "supersecret")
	_, err := svc.Signup(core.SignupRequest{
		Username:       "alice",
		Password:       "otherpassword",
		PasswordRepeat: "otherpassword",
	})
	require.ErrorIs(t, err, core.ErrUsernameTaken)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := setup(t)
	signup(t, svc, "alice", "supersecret")

	user, err := svc.Authenticate("alice", "supersecret")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)

	_, err = svc.Authenticate("alice", "wrongpass")
	require.ErrorIs(t, err, core.ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody", "supersecret")
	require.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setup(t)
	alice := signup(t, svc, "alice", "supersecret")
	signup(t, svc, "bob", "supersecret")

	updated, err := svc.UpdateProfile(alice.ID, core.UpdateProfileRequest{
		Username:  "alice2",
		Email:     "alice@example.com",
		FirstName: "Alice",
	})
	require.NoError(t, err)
	require.Equal(t, "alice2", updated.Username)
	require.Equal(t, "alice@example.com", updated.Email)

	// keeping your own username is not a conflict
	_, err = svc.UpdateProfile(alice.ID, core.UpdateProfileRequest{Username: "alice2"})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(alice.ID, core.UpdateProfileRequest{Username: "bob"})
	require.ErrorIs(t, err, core.ErrUsernameTaken)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := setup(t)
	alice := signup(t, svc, "alice", "supersecret")

	require.ErrorIs(t, svc.UpdatePassword(alice.ID, "wrongpass", "newpassword"), core.ErrWrongPassword)
	require.NoError(t, svc.UpdatePassword(alice.ID, "supersecret", "newpassword"))

	_, err := svc.Authenticate("alice", "supersecret")
	require.ErrorIs(t, err, core.ErrInvalidCredentials)
	_, err = svc.Authenticate("alice", "newpassword")
	require.NoError(t, err)
}
