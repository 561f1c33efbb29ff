package goal_test

import (
	"testing"
	"time"

	"goalboard/internal/app/board"
	"goalboard/internal/app/category"
	"goalboard/internal/app/goal"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&board.Board{},
		&board.Participant{},
		&category.GoalCategory{},
		&goal.Goal{},
	))
	return db
}

type fixture struct {
	db       *gorm.DB
	board    *board.Board
	category *category.GoalCategory
}

func newFixture(t *testing.T, db *gorm.DB, userID uint64, role board.Role) fixture {
	t.Helper()
	b := &board.Board{Title: "board"}
	require.NoError(t, db.Create(b).Error)
	require.NoError(t, db.Create(&board.Participant{BoardID: b.ID, UserID: userID, Role: role}).Error)
	c := &category.GoalCategory{Title: "cat", BoardID: b.ID, AuthorID: userID}
	require.NoError(t, db.Create(c).Error)
	return fixture{db: db, board: b, category: c}
}

func (f fixture) addGoal(t *testing.T, title string, status goal.Status, priority goal.Priority, due *time.Time) *goal.Goal {
	t.Helper()
	g := &goal.Goal{
		Title:      title,
		CategoryID: f.category.ID,
		AuthorID:   1,
		Status:     status,
		Priority:   priority,
		DueDate:    due,
	}
	require.NoError(t, f.db.Create(g).Error)
	return g
}

func listFor(t *testing.T, db *gorm.DB, filter goal.ListFilter) []*goal.Goal {
	t.Helper()
	if filter.OrderBy == "" {
		filter.OrderBy = "goals.priority ASC, goals.due_date ASC"
	}
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	goals, _, err := goal.NewRepository(db).GetGoalsForUser(filter)
	require.NoError(t, err)
	return goals
}

func TestListExcludesArchived(t *testing.T) {
	db := setupDB(t)
	f := newFixture(t, db, 1, board.RoleOwner)

	active := f.addGoal(t, "active", goal.StatusInProgress, goal.PriorityMedium, nil)
	f.addGoal(t, "archived", goal.StatusArchived, goal.PriorityMedium, nil)

	goals := listFor(t, db, goal.ListFilter{UserID: 1})
	require.Len(t, goals, 1)
	require.Equal(t, active.ID, goals[0].ID)
}

func TestListExcludesForeignBoards(t *testing.T) {
	db := setupDB(t)
	mine := newFixture(t, db, 1, board.RoleOwner)
	foreign := newFixture(t, db, 2, board.RoleOwner)

	g := mine.addGoal(t, "mine", goal.StatusToDo, goal.PriorityMedium, nil)
	foreign.addGoal(t, "not mine", goal.StatusToDo, goal.PriorityMedium, nil)

	goals := listFor(t, db, goal.ListFilter{UserID: 1})
	require.Len(t, goals, 1)
	require.Equal(t, g.ID, goals[0].ID)
}

func TestListExcludesDeletedCategory(t *testing.T) {
	db := setupDB(t)
	f := newFixture(t, db, 1, board.RoleOwner)
	f.addGoal(t, "orphaned", goal.StatusToDo, goal.PriorityMedium, nil)

	require.NoError(t, db.Model(&category.GoalCategory{}).
		Where("id = ?", f.category.ID).
		Update("is_deleted", true).Error)

	require.Empty(t, listFor(t, db, goal.ListFilter{UserID: 1}))
}

func TestListFilters(t *testing.T) {
	db := setupDB(t)
	f := newFixture(t, db, 1, board.RoleOwner)

	near := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	far := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	urgent := f.addGoal(t, "urgent", goal.StatusInProgress, goal.PriorityCritical, &near)
	f.addGoal(t, "later", goal.StatusToDo, goal.PriorityLow, &far)

	goals := listFor(t, db, goal.ListFilter{UserID: 1, Status: goal.StatusInProgress})
	require.Len(t, goals, 1)
	require.Equal(t, urgent.ID, goals[0].ID)

	goals = listFor(t, db, goal.ListFilter{UserID: 1, Priority: goal.PriorityLow})
	require.Len(t, goals, 1)
	require.Equal(t, "later", goals[0].Title)

	cut := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	goals = listFor(t, db, goal.ListFilter{UserID: 1, DueBefore: &cut})
	require.Len(t, goals, 1)
	require.Equal(t, urgent.ID, goals[0].ID)
}

func TestArchivedGoalStillRetrievableByID(t *testing.T) {
	db := setupDB(t)
	f := newFixture(t, db, 1, board.RoleOwner)
	g := f.addGoal(t, "done with", goal.StatusArchived, goal.PriorityMedium, nil)

	repo := goal.NewRepository(db)
	got, err := repo.GetGoalForUser(g.ID, 1)
	require.NoError(t, err)
	require.Equal(t, goal.StatusArchived, got.Status)

	// but not for a non-participant
	_, err = repo.GetGoalForUser(g.ID, 99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestArchiveOnDelete(t *testing.T) {
	db := setupDB(t)
	f := newFixture(t, db, 1, board.RoleOwner)
	g := f.addGoal(t, "to archive", goal.StatusToDo, goal.PriorityMedium, nil)

	repo := goal.NewRepository(db)
	require.NoError(t, repo.Archive(g.ID))

	var got goal.Goal
	require.NoError(t, db.First(&got, g.ID).Error)
	require.Equal(t, goal.StatusArchived, got.Status)
}
