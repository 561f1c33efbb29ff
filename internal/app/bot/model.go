package bot

import "time"

type TgUser struct {
	ID               uint64    `json:"id" gorm:"primaryKey"`
	TgUserID         int64     `json:"tg_user_id" gorm:"not null"`
	TgChatID         int64     `json:"tg_chat_id" gorm:"unique;not null"`
	TgUsername       string    `json:"tg_username"`
	VerificationCode string    `json:"verification_code" gorm:"not null"`
	UserID           *uint64   `json:"user_id,omitempty" gorm:"index"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type VerifyRequest struct {
	VerificationCode string `json:"verification_code" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// LinkedEvent is published when a verification code is redeemed, so the
// worker can confirm in the chat that issued it.
type LinkedEvent struct {
	ChatID int64
	UserID uint64
}

const LinkedEventName = "tg_user_linked"
