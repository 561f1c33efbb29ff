package category

import "time"

type GoalCategory struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	BoardID   uint64    `json:"board_id" gorm:"not null;index"`
	AuthorID  uint64    `json:"author_id" gorm:"not null"`
	IsDeleted bool      `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GoalCategory) TableName() string {
	return "goal_categories"
}

type CreateCategoryRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	BoardID uint64 `json:"board" binding:"required"`
}

type UpdateCategoryRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

type CategoryListResponse struct {
	Categories []*GoalCategory `json:"categories"`
	Pagination Pagination      `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
