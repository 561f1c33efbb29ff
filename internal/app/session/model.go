package session

import "time"

// CookieName is the cookie carrying the session key. The same key is
// also accepted as a bearer token.
const CookieName = "session_id"

type Session struct {
	ID         uint64    `json:"id" gorm:"primaryKey"`
	SessionKey string    `json:"session_key" gorm:"unique;not null"`
	UserID     uint64    `json:"user_id" gorm:"not null;index"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	EndedAt    *time.Time
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
