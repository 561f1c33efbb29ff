package goal

import (
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	UserID     uint64
	CategoryID uint64 // 0 means all categories
	Status     Status // 0 means any non-archived status
	Priority   Priority
	DueAfter   *time.Time
	DueBefore  *time.Time
	Search     string
	OrderBy    string
	Page       int
	Limit      int
}

type Repository interface {
	CreateGoal(goal *Goal) error
	GetGoalsForUser(filter ListFilter) ([]*Goal, int64, error)
	GetGoalForUser(goalID, userID uint64) (*Goal, error)
	UpdateGoal(goal *Goal) error
	Archive(goalID uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateGoal(goal *Goal) error {
	return r.db.Create(goal).Error
}

func (r *repository) GetGoalsForUser(filter ListFilter) ([]*Goal, int64, error) {
	var goals []*Goal
	var total int64

	base := r.db.Model(&Goal{}).
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ?", filter.UserID).
		Where("goals.status <> ?", StatusArchived).
		Where("goal_categories.is_deleted = ? AND boards.is_deleted = ?", false, false)

	if filter.CategoryID != 0 {
		base = base.Where("goals.category_id = ?", filter.CategoryID)
	}
	if filter.Status != 0 {
		base = base.Where("goals.status = ?", filter.Status)
	}
	if filter.Priority != 0 {
		base = base.Where("goals.priority = ?", filter.Priority)
	}
	if filter.DueAfter != nil {
		base = base.Where("goals.due_date >= ?", *filter.DueAfter)
	}
	if filter.DueBefore != nil {
		base = base.Where("goals.due_date <= ?", *filter.DueBefore)
	}
	if filter.Search != "" {
		base = base.Where("goals.title ILIKE ?", "%"+filter.Search+"%")
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order(filter.OrderBy).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&goals).Error
	if err != nil {
		return nil, 0, err
	}
	return goals, total, nil
}

// GetGoalForUser does not exclude archived goals: a goal stays
// retrievable by id for participants after archiving.
func (r *repository) GetGoalForUser(goalID, userID uint64) (*Goal, error) {
	var goal Goal
	err := r.db.
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Joins("JOIN boards ON boards.id = goal_categories.board_id").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("goals.id = ? AND board_participants.user_id = ?", goalID, userID).
		First(&goal).Error
	return &goal, err
}

func (r *repository) UpdateGoal(goal *Goal) error {
	return r.db.Model(&Goal{}).Where("id = ?", goal.ID).Updates(map[string]interface{}{
		"title":       goal.Title,
		"description": goal.Description,
		"category_id": goal.CategoryID,
		"status":      goal.Status,
		"priority":    goal.Priority,
		"due_date":    goal.DueDate,
	}).Error
}

func (r *repository) Archive(goalID uint64) error {
	return r.db.Model(&Goal{}).Where("id = ?", goalID).Update("status", StatusArchived).Error
}
