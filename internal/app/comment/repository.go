package comment

import "gorm.io/gorm"

type Repository interface {
	CreateComment(comment *GoalComment) error
	GetCommentsForUser(userID, goalID uint64, page, limit int) ([]*GoalComment, int64, error)
	GetCommentForUser(commentID, userID uint64) (*GoalComment, error)
	UpdateText(commentID uint64, text string) error
	DeleteComment(commentID uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateComment(comment *GoalComment) error {
	return r.db.Create(comment).Error
}

func (r *repository) GetCommentsForUser(userID, goalID uint64, page, limit int) ([]*GoalComment, int64, error) {
	var comments []*GoalComment
	var total int64

	base := r.db.Model(&GoalComment{}).
		Joins("JOIN goals ON goals.id = goal_comments.goal_id").
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Joins("JOIN board_participants ON board_participants.board_id = goal_categories.board_id").
		Where("board_participants.user_id = ?", userID)

	if goalID != 0 {
		base = base.Where("goal_comments.goal_id = ?", goalID)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order("goal_comments.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *repository) GetCommentForUser(commentID, userID uint64) (*GoalComment, error) {
	var comment GoalComment
	err := r.db.
		Joins("JOIN goals ON goals.id = goal_comments.goal_id").
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id").
		Joins("JOIN board_participants ON board_participants.board_id = goal_categories.board_id").
		Where("goal_comments.id = ? AND board_participants.user_id = ?", commentID, userID).
		First(&comment).Error
	return &comment, err
}

func (r *repository) UpdateText(commentID uint64, text string) error {
	return r.db.Model(&GoalComment{}).Where("id = ?", commentID).Update("text", text).Error
}

// DeleteComment is the one hard delete in the system.
func (r *repository) DeleteComment(commentID uint64) error {
	return r.db.Where("id = ?", commentID).Delete(&GoalComment{}).Error
}
