package session

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateSession(session *Session) error
	GetActiveByKey(sessionKey string) (*Session, error)
	EndSession(sessionKey string) error
	ActiveKeysForUser(userID uint64) ([]string, error)
	CloseUserSessions(userID uint64, exceptKey string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSession(session *Session) error {
	return r.db.Create(session).Error
}

func (r *repository) GetActiveByKey(sessionKey string) (*Session, error) {
	var session Session
	err := r.db.
		Where("session_key = ? AND ended_at IS NULL AND expires_at > ?", sessionKey, time.Now().UTC()).
		First(&session).Error
	return &session, err
}

func (r *repository) EndSession(sessionKey string) error {
	return r.db.Model(&Session{}).
		Where("session_key = ? AND ended_at IS NULL", sessionKey).
		Update("ended_at", time.Now().UTC()).Error
}

func (r *repository) ActiveKeysForUser(userID uint64) ([]string, error) {
	var keys []string
	err := r.db.Model(&Session{}).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Pluck("session_key", &keys).Error
	return keys, err
}

// CloseUserSessions ends every active session of the user except the
// one identified by exceptKey.
func (r *repository) CloseUserSessions(userID uint64, exceptKey string) error {
	return r.db.Model(&Session{}).
		Where("user_id = ? AND ended_at IS NULL AND session_key <> ?", userID, exceptKey).
		Update("ended_at", time.Now().UTC()).Error
}
