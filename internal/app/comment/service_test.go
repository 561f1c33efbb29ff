package comment_test

import (
	"testing"
	"time"

	"goalboard/internal/app/board"
	"goalboard/internal/app/category"
	"goalboard/internal/app/comment"
	"goalboard/internal/app/goal"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	db   *gorm.DB
	svc  comment.Service
	goal *goal.Goal
}

func setup(t *testing.T) fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&board.Board{},
		&board.Participant{},
		&category.GoalCategory{},
		&goal.Goal{},
		&comment.GoalComment{},
	))

	logger := zap.NewNop()
	boardSvc := board.NewService(board.NewRepository(db), nil, logger)
	categorySvc := category.NewService(category.NewRepository(db), boardSvc, logger)
	goalSvc := goal.NewService(goal.NewRepository(db), categorySvc, boardSvc, nil, logger)
	svc := comment.NewService(comment.NewRepository(db), goalSvc, boardSvc, nil, logger)

	b := &board.Board{Title: "board"}
	require.NoError(t, db.Create(b).Error)
	for userID, role := range map[uint64]board.Role{
		1: board.RoleOwner,
		2: board.RoleWriter,
		3: board.RoleReader,
	} {
		require.NoError(t, db.Create(&board.Participant{BoardID: b.ID, UserID: userID, Role: role}).Error)
	}
	c := &category.GoalCategory{Title: "cat", BoardID: b.ID, AuthorID: 1}
	require.NoError(t, db.Create(c).Error)
	g := &goal.Goal{Title: "goal", CategoryID: c.ID, AuthorID: 1, Status: goal.StatusToDo, Priority: goal.PriorityMedium}
	require.NoError(t, db.Create(g).Error)

	return fixture{db: db, svc: svc, goal: g}
}

func TestCreateCommentRoleChecks(t *testing.T) {
	f := setup(t)

	created, err := f.svc.CreateComment(2, comment.CreateCommentRequest{Text: "looks good", GoalID: f.goal.ID})
	require.NoError(t, err)
	require.EqualValues(t, 2, created.AuthorID)

	// readers can see the goal but may not comment
	_, err = f.svc.CreateComment(3, comment.CreateCommentRequest{Text: "nope", GoalID: f.goal.ID})
	require.ErrorIs(t, err, comment.ErrForbidden)

	// strangers do not see the goal at all
	_, err = f.svc.CreateComment(99, comment.CreateCommentRequest{Text: "nope", GoalID: f.goal.ID})
	require.ErrorIs(t, err, comment.ErrNotFound)
}

func TestUpdateCommentAuthorOnly(t *testing.T) {
	f := setup(t)

	created, err := f.svc.CreateComment(2, comment.CreateCommentRequest{Text: "first", GoalID: f.goal.ID})
	require.NoError(t, err)

	updated, err := f.svc.UpdateComment(2, created.ID, comment.UpdateCommentRequest{Text: "edited"})
	require.NoError(t, err)
	require.Equal(t, "edited", updated.Text)

	// even the board owner cannot edit someone else's comment
	_, err = f.svc.UpdateComment(1, created.ID, comment.UpdateCommentRequest{Text: "hijack"})
	require.ErrorIs(t, err, comment.ErrForbidden)
}

func TestDeleteCommentAuthorOnlyAndHard(t *testing.T) {
	f := setup(t)

	created, err := f.svc.CreateComment(2, comment.CreateCommentRequest{Text: "to remove", GoalID: f.goal.ID})
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeleteComment(1, created.ID), comment.ErrForbidden)
	require.NoError(t, f.svc.DeleteComment(2, created.ID))

	var count int64
	require.NoError(t, f.db.Model(&comment.GoalComment{}).Where("id = ?", created.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestGetCommentsVisibilityAndOrder(t *testing.T) {
	f := setup(t)

	first, err := f.svc.CreateComment(1, comment.CreateCommentRequest{Text: "first", GoalID: f.goal.ID})
	require.NoError(t, err)
	second, err := f.svc.CreateComment(2, comment.CreateCommentRequest{Text: "second", GoalID: f.goal.ID})
	require.NoError(t, err)

	// bump the second comment so ordering is deterministic
	require.NoError(t, f.db.Model(&comment.GoalComment{}).
		Where("id = ?", second.ID).
		Update("created_at", first.CreatedAt.Add(time.Second)).Error)

	comments, total, err := f.svc.GetComments(3, f.goal.ID, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, comments, 2)
	require.Equal(t, second.ID, comments[0].ID)

	// non-participants see nothing
	comments, total, err = f.svc.GetComments(99, f.goal.ID, 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, comments)

	_, err = f.svc.GetComment(99, first.ID)
	require.ErrorIs(t, err, comment.ErrNotFound)
}
