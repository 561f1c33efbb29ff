package comment

import "time"

type GoalComment struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	GoalID    uint64    `json:"goal" gorm:"not null;index"`
	AuthorID  uint64    `json:"author_id" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (GoalComment) TableName() string {
	return "goal_comments"
}

type CreateCommentRequest struct {
	Text   string `json:"text" binding:"required"`
	GoalID uint64 `json:"goal" binding:"required"`
}

type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type CommentListResponse struct {
	Comments   []*GoalComment `json:"comments"`
	Pagination Pagination     `json:"pagination"`
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

// CreatedEvent is published on the event bus for every new comment.
type CreatedEvent struct {
	CommentID uint64
	GoalID    uint64
	BoardID   uint64
	AuthorID  uint64
	GoalTitle string
}

const CreatedEventName = "comment_created"
