package category

import (
	"errors"
	"fmt"

	"goalboard/internal/app/board"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrForbidden = errors.New("insufficient board role")
)

var listOrderings = map[string]string{
	"title":    "goal_categories.title ASC",
	"-title":   "goal_categories.title DESC",
	"created":  "goal_categories.created_at ASC",
	"-created": "goal_categories.created_at DESC",
}

type Service interface {
	CreateCategory(userID uint64, req CreateCategoryRequest) (*GoalCategory, error)
	GetCategories(userID uint64, boardID uint64, search, sort string, page, limit int) ([]*GoalCategory, int64, error)
	GetCategory(userID, categoryID uint64) (*GoalCategory, error)
	UpdateCategory(userID, categoryID uint64, req UpdateCategoryRequest) (*GoalCategory, error)
	DeleteCategory(userID, categoryID uint64) error
}

type service struct {
	repo     Repository
	boardSvc board.Service
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, boardSvc board.Service, logger *zap.Logger) Service {
	return &service{repo: repo, boardSvc: boardSvc, logger: logger.Sugar()}
}

func (s *service) CreateCategory(userID uint64, req CreateCategoryRequest) (*GoalCategory, error) {
	if err := s.requireWriter(req.BoardID, userID); err != nil {
		return nil, err
	}

	category := &GoalCategory{
		Title:    req.Title,
		BoardID:  req.BoardID,
		AuthorID: userID,
	}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.logger.Infow("Category created", "category_id", category.ID, "board_id", category.BoardID)
	return category, nil
}

func (s *service) GetCategories(userID uint64, boardID uint64, search, sort string, page, limit int) ([]*GoalCategory, int64, error) {
	orderBy, ok := listOrderings[sort]
	if !ok {
		orderBy = listOrderings["title"]
	}

	categories, total, err := s.repo.GetCategoriesForUser(ListFilter{
		UserID:  userID,
		BoardID: boardID,
		Search:  search,
		OrderBy: orderBy,
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, total, nil
}

func (s *service) GetCategory(userID, categoryID uint64) (*GoalCategory, error) {
	category, err := s.repo.GetCategoryForUser(categoryID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}
	return category, nil
}

func (s *service) UpdateCategory(userID, categoryID uint64, req UpdateCategoryRequest) (*GoalCategory, error) {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return nil, err
	}
	if err := s.requireWriter(category.BoardID, userID); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateTitle(categoryID, req.Title); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	category.Title = req.Title
	return category, nil
}

func (s *service) DeleteCategory(userID, categoryID uint64) error {
	category, err := s.GetCategory(userID, categoryID)
	if err != nil {
		return err
	}
	if err := s.requireWriter(category.BoardID, userID); err != nil {
		return err
	}

	if err := s.repo.SoftDeleteCascade(categoryID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	s.logger.Infow("Category deleted", "category_id", categoryID, "user_id", userID)
	return nil
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
