package board

import (
	"gorm.io/gorm"
)

// goalStatusArchived mirrors the archived goal status. Kept local so the
// cascade can touch the goals table without importing the goal package.
const goalStatusArchived = 4

type Repository interface {
	CreateBoardWithOwner(board *Board, ownerID uint64) error
	GetBoardsForUser(userID uint64, orderBy string, page, limit int) ([]*Board, int64, error)
	GetBoardForUser(boardID, userID uint64) (*Board, error)
	GetBoardByID(boardID uint64) (*Board, error)
	RoleForUser(boardID, userID uint64) (Role, error)
	UpdateBoard(board *Board, participants []*Participant) error
	SoftDeleteCascade(boardID uint64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBoardWithOwner(board *Board, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		owner := &Participant{BoardID: board.ID, UserID: ownerID, Role: RoleOwner}
		if err := tx.Create(owner).Error; err != nil {
			return err
		}
		board.Participants = []*Participant{owner}
		return nil
	})
}

func (r *repository) GetBoardsForUser(userID uint64, orderBy string, page, limit int) ([]*Board, int64, error) {
	var boards []*Board
	var total int64

	base := r.db.Model(&Board{}).
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ? AND boards.is_deleted = ?", userID, false)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Order(orderBy).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&boards).Error
	if err != nil {
		return nil, 0, err
	}
	return boards, total, nil
}

func (r *repository) GetBoardForUser(boardID, userID uint64) (*Board, error) {
	var board Board
	err := r.db.
		Preload("Participants").
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("boards.id = ? AND board_participants.user_id = ? AND boards.is_deleted = ?", boardID, userID, false).
		First(&board).Error
	return &board, err
}

// GetBoardByID fetches regardless of the is_deleted flag. Internal use
// only; the HTTP surface always goes through GetBoardForUser.
func (r *repository) GetBoardByID(boardID uint64) (*Board, error) {
	var board Board
	err := r.db.Preload("Participants").Where("id = ?", boardID).First(&board).Error
	return &board, err
}

func (r *repository) RoleForUser(boardID, userID uint64) (Role, error) {
	var participant Participant
	err := r.db.
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&participant).Error
	if err != nil {
		return 0, err
	}
	return participant.Role, nil
}

// UpdateBoard replaces the title and the non-owner participant set in a
// single transaction. Owner rows are never touched.
func (r *repository) UpdateBoard(board *Board, participants []*Participant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Board{}).Where("id = ?", board.ID).Update("title", board.Title).Error; err != nil {
			return err
		}
		if err := tx.
			Where("board_id = ? AND role <> ?", board.ID, RoleOwner).
			Delete(&Participant{}).Error; err != nil {
			return err
		}
		if len(participants) > 0 {
			if err := tx.Create(participants).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SoftDeleteCascade marks the board deleted, soft-deletes its categories
// and archives every goal under them. All three steps share one
// transaction: any failure rolls the whole cascade back.
func (r *repository) SoftDeleteCascade(boardID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Board{}).
			Where("id = ?", boardID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Table("goal_categories").
			Where("board_id = ?", boardID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Table("goals").
			Where("category_id IN (?)",
				tx.Table("goal_categories").Select("id").Where("board_id = ?", boardID)).
			Update("status", goalStatusArchived).Error
	})
}
