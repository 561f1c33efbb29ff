package goal

import (
	"errors"
	"fmt"

	"goalboard/internal/app/board"
	"goalboard/internal/app/category"
	"goalboard/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("goal not found")
	ErrForbidden = errors.New("insufficient board role")
)

var listOrderings = map[string]string{
	"priority":  "goals.priority ASC, goals.due_date ASC",
	"-priority": "goals.priority DESC, goals.due_date ASC",
	"due_date":  "goals.due_date ASC",
	"-due_date": "goals.due_date DESC",
	"created":   "goals.created_at ASC",
	"-created":  "goals.created_at DESC",
}

type Service interface {
	CreateGoal(userID uint64, req CreateGoalRequest) (*Goal, error)
	GetGoals(userID uint64, filter ListFilter, sort string) ([]*Goal, int64, error)
	GetGoal(userID, goalID uint64) (*Goal, error)
	UpdateGoal(userID, goalID uint64, req UpdateGoalRequest) (*Goal, error)
	DeleteGoal(userID, goalID uint64) error
	BoardIDForGoal(userID, goalID uint64) (uint64, error)
}

type service struct {
	repo        Repository
	categorySvc category.Service
	boardSvc    board.Service
	eventBus    *utils.EventBus
	logger      *zap.SugaredLogger
}

func NewService(repo Repository, categorySvc category.Service, boardSvc board.Service, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:        repo,
		categorySvc: categorySvc,
		boardSvc:    boardSvc,
		eventBus:    eventBus,
		logger:      logger.Sugar(),
	}
}

func (s *service) CreateGoal(userID uint64, req CreateGoalRequest) (*Goal, error) {
	cat, err := s.visibleCategory(userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireWriter(cat.BoardID, userID); err != nil {
		return nil, err
	}

	goal := &Goal{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		AuthorID:    userID,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}
	if goal.Status == 0 {
		goal.Status = StatusToDo
	}
	if goal.Priority == 0 {
		goal.Priority = PriorityMedium
	}

	if err := s.repo.CreateGoal(goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	s.logger.Infow("Goal created", "goal_id", goal.ID, "category_id", goal.CategoryID)
	if s.eventBus != nil {
		s.eventBus.Publish(CreatedEventName, CreatedEvent{
			GoalID:   goal.ID,
			BoardID:  cat.BoardID,
			AuthorID: userID,
			Title:    goal.Title,
		})
	}
	return goal, nil
}

func (s *service) GetGoals(userID uint64, filter ListFilter, sort string) ([]*Goal, int64, error) {
	orderBy, ok := listOrderings[sort]
	if !ok {
		orderBy = listOrderings["priority"]
	}
	filter.UserID = userID
	filter.OrderBy = orderBy

	goals, total, err := s.repo.GetGoalsForUser(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, total, nil
}

func (s *service) GetGoal(userID, goalID uint64) (*Goal, error) {
	goal, err := s.repo.GetGoalForUser(goalID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch goal: %w", err)
	}
	return goal, nil
}

func (s *service) UpdateGoal(userID, goalID uint64, req UpdateGoalRequest) (*Goal, error) {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return nil, err
	}

	cat, err := s.visibleCategory(userID, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireWriter(cat.BoardID, userID); err != nil {
		return nil, err
	}

	goal.Title = req.Title
	goal.Description = req.Description
	goal.CategoryID = req.CategoryID
	goal.Status = req.Status
	goal.Priority = req.Priority
	goal.DueDate = req.DueDate

	if err := s.repo.UpdateGoal(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// DeleteGoal archives instead of removing: the row survives, it just
// leaves all active listings.
func (s *service) DeleteGoal(userID, goalID uint64) error {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return err
	}

	cat, err := s.visibleCategory(userID, goal.CategoryID)
	if err != nil {
		return err
	}
	if err := s.requireWriter(cat.BoardID, userID); err != nil {
		return err
	}

	if err := s.repo.Archive(goalID); err != nil {
		return fmt.Errorf("failed to archive goal: %w", err)
	}
	s.logger.Infow("Goal archived", "goal_id", goalID, "user_id", userID)
	return nil
}

func (s *service) BoardIDForGoal(userID, goalID uint64) (uint64, error) {
	goal, err := s.GetGoal(userID, goalID)
	if err != nil {
		return 0, err
	}
	cat, err := s.categorySvc.GetCategory(userID, goal.CategoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return cat.BoardID, nil
}

func (s *service) visibleCategory(userID, categoryID uint64) (*category.GoalCategory, error) {
	cat, err := s.categorySvc.GetCategory(userID, categoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cat, nil
}

func (s *service) requireWriter(boardID, userID uint64) error {
	role, err := s.boardSvc.RoleForUser(boardID, userID)
	if err != nil {
		if errors.Is(err, board.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if role != board.RoleOwner && role != board.RoleWriter {
		return ErrForbidden
	}
	return nil
}
