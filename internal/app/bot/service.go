package bot

import (
	"crypto/rand"
	"errors"
	"fmt"

	"goalboard/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Verification codes are 10 characters over letters and digits. Codes
// are regenerated on every request and never expire.
const (
	codeLength     = 10
	codeVocabulary = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var ErrInvalidCode = errors.New("unknown verification code")

type Service interface {
	IssueCode(tgUserID, chatID int64, username string) (*TgUser, error)
	Verify(userID uint64, code string) (*TgUser, error)
	GetByChatID(chatID int64) (*TgUser, error)
	ChatsToNotify(boardID, excludeUserID uint64) ([]int64, error)
}

type service struct {
	repo     Repository
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{repo: repo, eventBus: eventBus, logger: logger.Sugar()}
}

// IssueCode upserts the TgUser record for the chat and rotates its
// verification code.
func (s *service) IssueCode(tgUserID, chatID int64, username string) (*TgUser, error) {
	code, err := GenerateVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	tgUser, err := s.repo.GetByChatID(chatID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to fetch tg user: %w", err)
		}
		tgUser = &TgUser{
			TgUserID:         tgUserID,
			TgChatID:         chatID,
			TgUsername:       username,
			VerificationCode: code,
		}
		if err := s.repo.Create(tgUser); err != nil {
			return nil, fmt.Errorf("failed to create tg user: %w", err)
		}
		return tgUser, nil
	}

	if err := s.repo.SetVerificationCode(tgUser.ID, code); err != nil {
		return nil, fmt.Errorf("failed to rotate verification code: %w", err)
	}
	tgUser.VerificationCode = code
	return tgUser, nil
}

func (s *service) Verify(userID uint64, code string) (*TgUser, error) {
	tgUser, err := s.repo.GetByVerificationCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to fetch tg user: %w", err)
	}

	if err := s.repo.BindUser(tgUser.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to bind tg user: %w", err)
	}
	tgUser.UserID = &userID

	s.logger.Infow("Telegram account linked", "tg_chat_id", tgUser.TgChatID, "user_id", userID)
	if s.eventBus != nil {
		s.eventBus.Publish(LinkedEventName, LinkedEvent{ChatID: tgUser.TgChatID, UserID: userID})
	}
	return tgUser, nil
}

func (s *service) GetByChatID(chatID int64) (*TgUser, error) {
	return s.repo.GetByChatID(chatID)
}

func (s *service) ChatsToNotify(boardID, excludeUserID uint64) ([]int64, error) {
	return s.repo.LinkedChatsForBoard(boardID, excludeUserID)
}

func GenerateVerificationCode() (string, error) {
	// rejection sampling: bytes at or above the largest multiple of the
	// vocabulary size are discarded to keep the distribution uniform
	const limit = byte(256 - 256%len(codeVocabulary))

	code := make([]byte, 0, codeLength)
	buf := make([]byte, codeLength)
	for len(code) < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			code = append(code, codeVocabulary[int(b)%len(codeVocabulary)])
			if len(code) == codeLength {
				break
			}
		}
	}
	return string(code), nil
}
