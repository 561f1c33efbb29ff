package bot_test

import (
	"strings"
	"testing"

	"goalboard/internal/app/board"
	"goalboard/internal/app/bot"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&bot.TgUser{},
		&board.Board{},
		&board.Participant{},
	))
	return db
}

func newService(db *gorm.DB) bot.Service {
	return bot.NewService(bot.NewRepository(db), nil, zap.NewNop())
}

func TestGenerateVerificationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := bot.GenerateVerificationCode()
		require.NoError(t, err)
		require.Len(t, code, 10)
		for _, r := range code {
			require.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected character %q in code %q", r, code)
		}
		seen[code] = true
	}
	require.Greater(t, len(seen), 1)
}

func TestIssueCodeUpsertsAndRotates(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)

	first, err := svc.IssueCode(100, 200, "alice")
	require.NoError(t, err)
	require.NotZero(t, first.ID)
	require.Len(t, first.VerificationCode, 10)

	second, err := svc.IssueCode(100, 200, "alice")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.NotEqual(t, first.VerificationCode, second.VerificationCode)

	var count int64
	require.NoError(t, db.Model(&bot.TgUser{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestVerifyBindsUser(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)

	issued, err := svc.IssueCode(100, 200, "alice")
	require.NoError(t, err)

	linked, err := svc.Verify(7, issued.VerificationCode)
	require.NoError(t, err)
	require.NotNil(t, linked.UserID)
	require.EqualValues(t, 7, *linked.UserID)

	stored, err := svc.GetByChatID(200)
	require.NoError(t, err)
	require.NotNil(t, stored.UserID)
	require.EqualValues(t, 7, *stored.UserID)
}

func TestVerifyUnknownCode(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)

	_, err := svc.Verify(7, "definitely-not-issued")
	require.ErrorIs(t, err, bot.ErrInvalidCode)
}

func TestChatsToNotify(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)

	b := &board.Board{Title: "board"}
	require.NoError(t, db.Create(b).Error)
	for userID, role := range map[uint64]board.Role{
		1: board.RoleOwner,
		2: board.RoleWriter,
		3: board.RoleReader,
	} {
		require.NoError(t, db.Create(&board.Participant{BoardID: b.ID, UserID: userID, Role: role}).Error)
	}

	link := func(tgID, chatID int64, userID uint64) {
		issued, err := svc.IssueCode(tgID, chatID, "")
		require.NoError(t, err)
		_, err = svc.Verify(userID, issued.VerificationCode)
		require.NoError(t, err)
	}
	link(101, 201, 1)
	link(102, 202, 2)
	// user 3 has a chat but never redeemed a code
	_, err := svc.IssueCode(103, 203, "")
	require.NoError(t, err)

	chats, err := svc.ChatsToNotify(b.ID, 1)
	require.NoError(t, err)
	require.ElementsMatch(t, []int64{202}, chats)
}
