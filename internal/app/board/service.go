package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"goalboard/internal/providers/redis"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("board not found")
	ErrForbidden = errors.New("insufficient board role")
)

var listOrderings = map[string]string{
	"title":    "boards.title ASC",
	"-title":   "boards.title DESC",
	"created":  "boards.created_at ASC",
	"-created": "boards.created_at DESC",
}

type Service interface {
	CreateBoard(ctx context.Context, userID uint64, title string) (*Board, error)
	GetBoards(ctx context.Context, userID uint64, sort string, page, limit int) ([]*Board, int64, error)
	GetBoard(userID, boardID uint64) (*Board, error)
	UpdateBoard(ctx context.Context, userID, boardID uint64, req UpdateBoardRequest) (*Board, error)
	DeleteBoard(ctx context.Context, userID, boardID uint64) error
	RoleForUser(boardID, userID uint64) (Role, error)
}

type service struct {
	repo   Repository
	redisP *redis.RedisProvider
	logger *zap.SugaredLogger
}

func NewService(repo Repository, redisP *redis.RedisProvider, logger *zap.Logger) Service {
	return &service{repo: repo, redisP: redisP, logger: logger.Sugar()}
}

func (s *service) CreateBoard(ctx context.Context, userID uint64, title string) (*Board, error) {
	board := &Board{Title: title}
	if err := s.repo.CreateBoardWithOwner(board, userID); err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}
	s.invalidateListCache(ctx)
	s.logger.Infow("Board created", "board_id", board.ID, "owner_id", userID)
	return board, nil
}

func (s *service) GetBoards(ctx context.Context, userID uint64, sort string, page, limit int) ([]*Board, int64, error) {
	orderBy, ok := listOrderings[sort]
	if !ok {
		orderBy = listOrderings["title"]
	}

	cacheKey := fmt.Sprintf("boards:user:%d:%s:%d:%d", userID, sort, page, limit)
	if s.redisP != nil {
		if cached, err := s.redisP.Get(ctx, cacheKey).Result(); err == nil {
			var entry cachedBoardList
			if json.Unmarshal([]byte(cached), &entry) == nil {
				return entry.Boards, entry.Total, nil
			}
		}
	}

	boards, total, err := s.repo.GetBoardsForUser(userID, orderBy, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list boards: %w", err)
	}

	if s.redisP != nil {
		if data, err := json.Marshal(cachedBoardList{Boards: boards, Total: total}); err == nil {
			s.redisP.SetWithDefaultTTL(ctx, cacheKey, data, 0)
		}
	}
	return boards, total, nil
}

func (s *service) GetBoard(userID, boardID uint64) (*Board, error) {
	board, err := s.repo.GetBoardForUser(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch board: %w", err)
	}
	return board, nil
}

func (s *service) UpdateBoard(ctx context.Context, userID, boardID uint64, req UpdateBoardRequest) (*Board, error) {
	if err := s.requireOwner(boardID, userID); err != nil {
		return nil, err
	}

	participants := make([]*Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		if p.UserID == userID {
			continue
		}
		participants = append(participants, &Participant{
			BoardID: boardID,
			UserID:  p.UserID,
			Role:    p.Role,
		})
	}

	board := &Board{ID: boardID, Title: req.Title}
	if err := s.repo.UpdateBoard(board, participants); err != nil {
		return nil, fmt.Errorf("failed to update board: %w", err)
	}
	s.invalidateListCache(ctx)
	return s.GetBoard(userID, boardID)
}

func (s *service) DeleteBoard(ctx context.Context, userID, boardID uint64) error {
	if err := s.requireOwner(boardID, userID); err != nil {
		return err
	}
	if err := s.repo.SoftDeleteCascade(boardID); err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	s.invalidateListCache(ctx)
	s.logger.Infow("Board deleted", "board_id", boardID, "user_id", userID)
	return nil
}

func (s *service) RoleForUser(boardID, userID uint64) (Role, error) {
	role, err := s.repo.RoleForUser(boardID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to fetch board role: %w", err)
	}
	return role, nil
}

func (s *service) requireOwner(boardID, userID uint64) error {
	role, err := s.RoleForUser(boardID, userID)
	if err != nil {
		return err
	}
	if role != RoleOwner {
		return ErrForbidden
	}
	return nil
}

// Board membership changes affect other participants' listings too, so
// the whole namespace is dropped instead of per-user keys.
func (s *service) invalidateListCache(ctx context.Context) {
	if s.redisP == nil {
		return
	}
	keys, err := s.redisP.Keys(ctx, "boards:user:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.redisP.Del(ctx, keys...)
}

type cachedBoardList struct {
	Boards []*Board `json:"boards"`
	Total  int64    `json:"total"`
}
