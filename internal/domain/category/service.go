package category

import (
	"context"
	"sort"
)

// Service contains the business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCategory trims and validates the params, then stores the category.
func (s *Service) CreateCategory(ctx context.Context, userID int64, params CreateCategoryParams) (*Category, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, userID, params)
}

// GetCategory retrieves a category owned by userID
func (s *Service) GetCategory(ctx context.Context, userID, id int64) (*Category, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// ListCategories returns the user's categories with transaction counts,
// income first, then by name.
func (s *Service) ListCategories(ctx context.Context, userID int64) ([]*CategoryWithCount, error) {
	categories, err := s.repo.ListWithCounts(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if a.Type != b.Type {
			return a.Type.Rank() < b.Type.Rank()
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})

	return categories, nil
}

// DeleteCategory removes a category that no transaction references.
func (s *Service) DeleteCategory(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
