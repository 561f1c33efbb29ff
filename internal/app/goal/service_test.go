package goal_test

import (
	"testing"

	"goalboard/internal/app/board"
	"goalboard/internal/app/category"
	"goalboard/internal/app/goal"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(db *gorm.DB) goal.Service {
	logger := zap.NewNop()
	boardSvc := board.NewService(board.NewRepository(db), nil, logger)
	categorySvc := category.NewService(category.NewRepository(db), boardSvc, logger)
	return goal.NewService(goal.NewRepository(db), categorySvc, boardSvc, nil, logger)
}

func TestDeleteGoalRequiresWriter(t *testing.T) {
	db := setupDB(t)
	f := newFixture(t, db, 1, board.RoleOwner)
	require.NoError(t, db.Create(&board.Participant{BoardID: f.board.ID, UserID: 2, Role: board.RoleReader}).Error)
	g := f.addGoal(t, "task", goal.StatusToDo, goal.PriorityMedium, nil)

	svc := newService(db)
	require.ErrorIs(t, svc.DeleteGoal(2, g.ID), goal.ErrForbidden)

	var got goal.Goal
	require.NoError(t, db.First(&got, g.ID).Error)
	require.Equal(t, goal.StatusToDo, got.Status)
}

func TestDeleteGoalUnderDeletedCategory(t *testing.T) {
	db := setupDB(t)
	f := newFixture(t, db, 1, board.RoleOwner)
	g := f.addGoal(t, "task", goal.StatusToDo, goal.PriorityMedium, nil)

	require.NoError(t, db.Model(&category.GoalCategory{}).
		Where("id = ?", f.category.ID).
		Update("is_deleted", true).Error)

	svc := newService(db)
	require.ErrorIs(t, svc.DeleteGoal(1, g.ID), goal.ErrNotFound)

	// the failed delete must not touch the goal
	var got goal.Goal
	require.NoError(t, db.First(&got, g.ID).Error)
	require.Equal(t, goal.StatusToDo, got.Status)
}
