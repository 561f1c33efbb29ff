package board

import "time"

// Role defines what a participant may do on a board. Owners manage the
// board itself, writers may mutate its contents, readers only view.
type Role int16

const (
	RoleOwner Role = iota + 1
	RoleWriter
	RoleReader
)

type Board struct {
	ID           uint64         `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"not null"`
	IsDeleted    bool           `json:"is_deleted" gorm:"not null;default:false;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Participants []*Participant `json:"participants,omitempty" gorm:"foreignKey:BoardID"`
}

type Participant struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	BoardID   uint64    `json:"board_id" gorm:"not null;uniqueIndex:uq_board_participants_board_user"`
	UserID    uint64    `json:"user_id" gorm:"not null;uniqueIndex:uq_board_participants_board_user;index"`
	Role      Role      `json:"role" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Participant) TableName() string {
	return "board_participants"
}

type CreateBoardRequest struct {
	Title string `json:"title" binding:"required,max=255"`
}

type ParticipantInput struct {
	UserID uint64 `json:"user_id" binding:"required"`
	Role   Role   `json:"role" binding:"required,oneof=2 3"`
}

type UpdateBoardRequest struct {
	Title        string             `json:"title" binding:"required,max=255"`
	Participants []ParticipantInput `json:"participants" binding:"dive"`
}

type BoardListResponse struct {
	Boards     []*Board   `json:"boards"`
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
