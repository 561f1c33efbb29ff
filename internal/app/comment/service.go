package comment

import (
	"errors"
	"fmt"

	"goalboard/internal/app/board"
	"goalboard/internal/app/goal"
	"goalboard/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("comment not found")
	ErrForbidden = errors.New("not allowed")
)

type Service interface {
	CreateComment(userID uint64, req CreateCommentRequest) (*GoalComment, error)
	GetComments(userID, goalID uint64, page, limit int) ([]*GoalComment, int64, error)
	GetComment(userID, commentID uint64) (*GoalComment, error)
	UpdateComment(userID, commentID uint64, req UpdateCommentRequest) (*GoalComment, error)
	DeleteComment(userID, commentID uint64) error
}

type service struct {
	repo     Repository
	goalSvc  goal.Service
	boardSvc board.Service
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, goalSvc goal.Service, boardSvc board.Service, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		goalSvc:  goalSvc,
		boardSvc: boardSvc,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

func (s *service) CreateComment(userID uint64, req CreateCommentRequest) (*GoalComment, error) {
	g, err := s.goalSvc.GetGoal(userID, req.GoalID)
	if err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	boardID, err := s.goalSvc.BoardIDForGoal(userID, req.GoalID)
	if err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	role, err := s.boardSvc.RoleForUser(boardID, userID)
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != board.RoleOwner && role != board.RoleWriter {
		return nil, ErrForbidden
	}

	comment := &GoalComment{
		Text:     req.Text,
		GoalID:   req.GoalID,
		AuthorID: userID,
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Infow("Comment created", "comment_id", comment.ID, "goal_id", comment.GoalID)
	if s.eventBus != nil {
		s.eventBus.Publish(CreatedEventName, CreatedEvent{
			CommentID: comment.ID,
			GoalID:    comment.GoalID,
			BoardID:   boardID,
			AuthorID:  userID,
			GoalTitle: g.Title,
		})
	}
	return comment, nil
}

func (s *service) GetComments(userID, goalID uint64, page, limit int) ([]*GoalComment, int64, error) {
	comments, total, err := s.repo.GetCommentsForUser(userID, goalID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

func (s *service) GetComment(userID, commentID uint64) (*GoalComment, error) {
	comment, err := s.repo.GetCommentForUser(commentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch comment: %w", err)
	}
	return comment, nil
}

// UpdateComment is author-only.
func (s *service) UpdateComment(userID, commentID uint64, req UpdateCommentRequest) (*GoalComment, error) {
	comment, err := s.GetComment(userID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateText(commentID, req.Text); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment.Text = req.Text
	return comment, nil
}

// DeleteComment is author-only and removes the row for good.
func (s *service) DeleteComment(userID, commentID uint64) error {
	comment, err := s.GetComment(userID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}

	if err := s.repo.DeleteComment(commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	s.logger.Infow("Comment deleted", "comment_id", commentID, "user_id", userID)
	return nil
}
