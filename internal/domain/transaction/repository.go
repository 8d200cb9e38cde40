package transaction

import (
	"context"

	"pftracker/internal/domain/category"
)

// Repository persists transactions. Every method is scoped to the owning user,
// and returned transactions are hydrated with their category.
type Repository interface {
	// Create stores the transaction while holding the category, failing with
	// category.ErrCategoryNotFound or ErrTypeMismatch if it changed underneath.
	Create(ctx context.Context, userID int64, params Params) (*Transaction, error)
	GetByID(ctx context.Context, userID, id int64) (*Transaction, error)
	// List returns matches newest first. A limit <= 0 returns every match.
	List(ctx context.Context, userID int64, filter Filter, limit, offset int) ([]*Transaction, error)
	Count(ctx context.Context, userID int64, filter Filter) (int64, error)
	// Update replaces every writable field under the same guarantees as Create.
	Update(ctx context.Context, userID, id int64, params Params) (*Transaction, error)
	Delete(ctx context.Context, userID, id int64) error
}

// CategoryLookup resolves a category owned by the user.
type CategoryLookup interface {
	GetByID(ctx context.Context, userID, id int64) (*category.Category, error)
}
