package category

import "gorm.io/gorm"

const goalStatusArchived = 4

type ListFilter struct {
	UserID  uint64
	BoardID uint64 // 0 means all boards
	Search  string
	OrderBy string
	Page    int
	Limit   int
}

type Repository interface {
	CreateCategory(category *GoalCategory) error
	GetCategoriesForUser(filter ListFilter) ([]*GoalCategory, int64, error)
	GetCategoryForUser(categoryID, userID uint64) (*GoalCategory, error)
	GetCategoryByID(categoryID uint64) (*GoalCategory, error)
	UpdateTitle(categoryID uint64, title string) error
	SoftDeleteCascade(categoryID uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateCategory(category *GoalCategory) error {
	return r.db.Create(category).Error
}

func (r *repository) GetCategoriesForUser(filter ListFilter) ([]*GoalCategory, int64, error) {
	var categories []*GoalCategory
	var total int64

	base := r.db.Model(&GoalCategory{}).
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", filter.UserID).
		Where("goal_categories.is_deleted = ? AND boards.is_deleted = ?", false, false)

	if filter.BoardID != 0 {
		base = base.Where("goal_categories.board_id = ?", filter.BoardID)
	}
	if filter.Search != "" {
		base = base.Where("goal_categories.title ILIKE ?", "%"+filter.Search+"%")
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order(filter.OrderBy).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *repository) GetCategoryForUser(categoryID, userID uint64) (*GoalCategory, error) {
	var category GoalCategory
	err := r.db.
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("goal_categories.id = ? AND board_participants.user_id = ?", categoryID, userID).
		Where("goal_categories.is_deleted = ? AND boards.is_deleted = ?", false, false).
		First(&category).Error
	return &category, err
}

// GetCategoryByID ignores the is_deleted flag; internal lookups only.
func (r *repository) GetCategoryByID(categoryID uint64) (*GoalCategory, error) {
	var category GoalCategory
	err := r.db.Where("id = ?", categoryID).First(&category).Error
	return &category, err
}

func (r *repository) UpdateTitle(categoryID uint64, title string) error {
	return r.db.Model(&GoalCategory{}).Where("id = ?", categoryID).Update("title", title).Error
}

// SoftDeleteCascade marks the category deleted and archives its goals in
// one transaction, matching the board-level cascade.
func (r *repository) SoftDeleteCascade(categoryID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&GoalCategory{}).
			Where("id = ?", categoryID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Table("goals").
			Where("category_id = ?", categoryID).
			Update("status", goalStatusArchived).Error
	})
}
