package goal

import "time"

type Status int16

const (
	StatusToDo Status = iota + 1
	StatusInProgress
	StatusDone
	// StatusArchived is terminal: archived goals leave every active
	// listing and only come back through the detail endpoint.
	StatusArchived
)

func (s Status) String() string {
	switch s {
	case StatusToDo:
		return "to_do"
	case StatusInProgress:
		return "in_progress"
	case StatusDone:
		return "done"
	case StatusArchived:
		return "archived"
	default:
		return "unknown"
	}
}

type Priority int16

const (
	PriorityLow Priority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

type Goal struct {
	ID          uint64     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	CategoryID  uint64     `json:"category" gorm:"not null;index"`
	AuthorID    uint64     `json:"author_id" gorm:"not null"`
	Status      Status     `json:"status" gorm:"not null;default:1;index"`
	Priority    Priority   `json:"priority" gorm:"not null;default:2"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateGoalRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	CategoryID  uint64     `json:"category" binding:"required"`
	Status      Status     `json:"status" binding:"omitempty,oneof=1 2 3"`
	Priority    Priority   `json:"priority" binding:"omitempty,oneof=1 2 3 4"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateGoalRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	CategoryID  uint64     `json:"category" binding:"required"`
	Status      Status     `json:"status" binding:"required,oneof=1 2 3 4"`
	Priority    Priority   `json:"priority" binding:"required,oneof=1 2 3 4"`
	DueDate     *time.Time `json:"due_date"`
}

type GoalListResponse struct {
	Goals      []*Goal    `json:"goals"`
	Pagination Pagination `json:"pagination"`
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

// CreatedEvent is published on the event bus whenever a goal is created.
type CreatedEvent struct {
	GoalID   uint64
	BoardID  uint64
	AuthorID uint64
	Title    string
}

const CreatedEventName = "goal_created"
