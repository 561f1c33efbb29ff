package category_test

import (
	"testing"

	"goalboard/internal/app/board"
	"goalboard/internal/app/category"
	"goalboard/internal/app/goal"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
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

func newService(db *gorm.DB) category.Service {
	boardSvc := board.NewService(board.NewRepository(db), nil, zap.NewNop())
	return category.NewService(category.NewRepository(db), boardSvc, zap.NewNop())
}

func seedBoard(t *testing.T, db *gorm.DB, userID uint64, role board.Role) *board.Board {
	t.Helper()
	b := &board.Board{Title: "board"}
	require.NoError(t, db.Create(b).Error)
	require.NoError(t, db.Create(&board.Participant{BoardID: b.ID, UserID: userID, Role: role}).Error)
	return b
}

func TestCreateCategoryRoleChecks(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)

	const owner, reader = uint64(1), uint64(2)
	b := seedBoard(t, db, owner, board.RoleOwner)
	require.NoError(t, db.Create(&board.Participant{BoardID: b.ID, UserID: reader, Role: board.RoleReader}).Error)

	created, err := svc.CreateCategory(owner, category.CreateCategoryRequest{Title: "sprint", BoardID: b.ID})
	require.NoError(t, err)
	require.Equal(t, b.ID, created.BoardID)
	require.Equal(t, owner, created.AuthorID)

	_, err = svc.CreateCategory(reader, category.CreateCategoryRequest{Title: "nope", BoardID: b.ID})
	require.ErrorIs(t, err, category.ErrForbidden)

	_, err = svc.CreateCategory(99, category.CreateCategoryRequest{Title: "nope", BoardID: b.ID})
	require.ErrorIs(t, err, category.ErrNotFound)
}

func TestDeleteCategoryArchivesGoals(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)

	const owner = uint64(1)
	b := seedBoard(t, db, owner, board.RoleOwner)
	cat, err := svc.CreateCategory(owner, category.CreateCategoryRequest{Title: "sprint", BoardID: b.ID})
	require.NoError(t, err)

	g := &goal.Goal{Title: "task", CategoryID: cat.ID, AuthorID: owner, Status: goal.StatusToDo, Priority: goal.PriorityMedium}
	require.NoError(t, db.Create(g).Error)

	require.NoError(t, svc.DeleteCategory(owner, cat.ID))

	var gotCat category.GoalCategory
	require.NoError(t, db.First(&gotCat, cat.ID).Error)
	require.True(t, gotCat.IsDeleted)

	var gotGoal goal.Goal
	require.NoError(t, db.First(&gotGoal, g.ID).Error)
	require.Equal(t, goal.StatusArchived, gotGoal.Status)
}

func TestDeletedCategoryHiddenFromListButFetchableByID(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)
	repo := category.NewRepository(db)

	const owner = uint64(1)
	b := seedBoard(t, db, owner, board.RoleOwner)
	cat, err := svc.CreateCategory(owner, category.CreateCategoryRequest{Title: "sprint", BoardID: b.ID})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(owner, cat.ID))

	categories, total, err := svc.GetCategories(owner, 0, "", "title", 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, categories)

	_, err = svc.GetCategory(owner, cat.ID)
	require.ErrorIs(t, err, category.ErrNotFound)

	// the row itself survives for internal lookups
	got, err := repo.GetCategoryByID(cat.ID)
	require.NoError(t, err)
	require.True(t, got.IsDeleted)
}

func TestGetCategoriesScopedToBoard(t *testing.T) {
	db := setupDB(t)
	svc := newService(db)

	const owner = uint64(1)
	b1 := seedBoard(t, db, owner, board.RoleOwner)
	b2 := seedBoard(t, db, owner, board.RoleOwner)

	_, err := svc.CreateCategory(owner, category.CreateCategoryRequest{Title: "a", BoardID: b1.ID})
	require.NoError(t, err)
	c2, err := svc.CreateCategory(owner, category.CreateCategoryRequest{Title: "b", BoardID: b2.ID})
	require.NoError(t, err)

	categories, total, err := svc.GetCategories(owner, b2.ID, "", "title", 1, 20)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, categories, 1)
	require.Equal(t, c2.ID, categories[0].ID)
}
