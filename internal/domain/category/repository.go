package category

import (
	"context"
)

// Repository persists categories. Every method is scoped to the owning user.
type Repository interface {
	// Create returns ErrCategoryExists when (user, name, type) is taken.
	Create(ctx context.Context, userID int64, params CreateCategoryParams) (*Category, error)
	// GetByID returns ErrCategoryNotFound for missing or foreign categories.
	GetByID(ctx context.Context, userID, id int64) (*Category, error)
	// FindByNameAndType returns nil, nil when no category matches.
	FindByNameAndType(ctx context.Context, userID int64, name string, typ Type) (*Category, error)
	ListWithCounts(ctx context.Context, userID int64) ([]*CategoryWithCount, error)
	// Delete removes the category atomically, failing with ErrCategoryNotFound
	// or ErrCategoryInUse.
	Delete(ctx context.Context, userID, id int64) error
}
