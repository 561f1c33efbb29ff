package bot

import (
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	GetByChatID(chatID int64) (*TgUser, error)
	Create(tgUser *TgUser) error
	SetVerificationCode(id uint64, code string) error
	GetByVerificationCode(code string) (*TgUser, error)
	BindUser(id, userID uint64) error
	LinkedChatsForBoard(boardID uint64, excludeUserID uint64) ([]int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByChatID(chatID int64) (*TgUser, error) {
	var tgUser TgUser
	err := r.db.Where("tg_chat_id = ?", chatID).First(&tgUser).Error
	return &tgUser, err
}

func (r *repository) Create(tgUser *TgUser) error {
	return r.db.Create(tgUser).Error
}

func (r *repository) SetVerificationCode(id uint64, code string) error {
	return r.db.Model(&TgUser{}).Where("id = ?", id).Update("verification_code", code).Error
}

// GetByVerificationCode returns the newest match. Codes carry no
// uniqueness constraint, matching the original data model.
func (r *repository) GetByVerificationCode(code string) (*TgUser, error) {
	var tgUser TgUser
	err := r.db.
		Where("verification_code = ?", code).
		Order("updated_at DESC").
		First(&tgUser).Error
	return &tgUser, err
}

func (r *repository) BindUser(id, userID uint64) error {
	return r.db.Model(&TgUser{}).Where("id = ?", id).Update("user_id", userID).Error
}

func (r *repository) LinkedChatsForBoard(boardID uint64, excludeUserID uint64) ([]int64, error) {
	var chatIDs []int64
	err := r.db.Model(&TgUser{}).
		Select("tg_users.tg_chat_id").
		Joins("JOIN board_participants ON board_participants.user_id = tg_users.user_id").
		Where("board_participants.board_id = ? AND tg_users.user_id IS NOT NULL", boardID).
		Where("tg_users.user_id <> ?", excludeUserID).
		Pluck("tg_users.tg_chat_id", &chatIDs).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return chatIDs, nil
}
