package transaction

import (
	"context"
)

// Service contains the business logic for transaction operations
type Service struct {
	repo       Repository
	categories CategoryLookup
}

// NewService creates a new transaction service
func NewService(repo Repository, categories CategoryLookup) *Service {
	return &Service{repo: repo, categories: categories}
}

// CreateTransaction records a transaction against one of the user's categories.
func (s *Service) CreateTransaction(ctx context.Context, userID int64, params Params) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params.Normalize()

	if err := s.checkCategory(ctx, userID, params); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, userID, params)
}

// ListTransactions returns one page of the user's transactions plus pagination metadata.
func (s *Service) ListTransactions(ctx context.Context, userID int64, params ListParams) (*ListResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, userID, params.Filter)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, userID, params.Filter, params.PageSize, params.Offset())
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Transaction{}
	}

	return &ListResult{
		Items:      items,
		Pagination: NewPagination(params.Page, params.PageSize, total),
	}, nil
}

// ExportTransactions returns every transaction matching filter, unpaginated.
func (s *Service) ExportTransactions(ctx context.Context, userID int64, filter Filter) ([]*Transaction, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, userID, filter, 0, 0)
}

// GetTransaction retrieves a transaction owned by userID
func (s *Service) GetTransaction(ctx context.Context, userID, id int64) (*Transaction, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// UpdateTransaction replaces every field of an existing transaction,
// re-checking the (possibly new) category's type.
func (s *Service) UpdateTransaction(ctx context.Context, userID, id int64, params Params) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params.Normalize()

	if _, err := s.repo.GetByID(ctx, userID, id); err != nil {
		return nil, err
	}

	if err := s.checkCategory(ctx, userID, params); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, userID, id, params)
}

// DeleteTransaction removes a transaction owned by userID
func (s *Service) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

func (s *Service) checkCategory(ctx context.Context, userID int64, params Params) error {
	cat, err := s.categories.GetByID(ctx, userID, params.CategoryID)
	if err != nil {
		return err
	}
	if cat.Type != params.Type {
		return ErrTypeMismatch
	}
	return nil
}
