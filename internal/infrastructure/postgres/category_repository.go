package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pftracker/internal/domain/category"
)

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create relies on uq_categories_user_name_type: a conflicting insert returns
// no row instead of aborting, so duplicates surface as ErrCategoryExists
// without racing a separate existence check.
func (r *CategoryRepository) Create(ctx context.Context, userID int64, params category.CreateCategoryParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, type, color)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT uq_categories_user_name_type DO NOTHING
		RETURNING id, user_id, name, type, color
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, userID, params.Name, params.Type, params.Color).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, category.ErrCategoryExists
	}
	if err != nil {
		if mapped := constraintError(err, category.ErrCategoryExists, nil); mapped != err {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &c, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID, id int64) (*category.Category, error) {
	return getCategory(ctx, r.db, userID, id, "")
}

func (r *CategoryRepository) FindByNameAndType(ctx context.Context, userID int64, name string, typ category.Type) (*category.Category, error) {
	query := `
		SELECT id, user_id, name, type, color
		FROM categories
		WHERE user_id = $1 AND name = $2 AND type = $3
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, userID, name, typ).Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return &c, nil
}

// ListWithCounts counts only the owner's transactions per category. The join
// repeats the user filter so stray rows from other users never inflate a count.
func (r *CategoryRepository) ListWithCounts(ctx context.Context, userID int64) ([]*category.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.user_id, c.name, c.type, c.color, COUNT(t.id)
		FROM categories c
		LEFT JOIN transactions t ON t.category_id = c.id AND t.user_id = $1
		WHERE c.user_id = $1
		GROUP BY c.id
		ORDER BY c.type ASC, c.name ASC, c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []*category.CategoryWithCount{}
	for rows.Next() {
		var c category.CategoryWithCount
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color, &c.TransactionCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Delete locks the category row, refuses while any transaction references it,
// and removes it, all in one transaction. The RESTRICT foreign key backs this up.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id int64) error {
	return r.db.WithTx(ctx, func(tx *Tx) error {
		if _, err := getCategory(ctx, tx, userID, id, "FOR UPDATE"); err != nil {
			return err
		}

		var inUse bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM transactions WHERE category_id = $1)`, id,
		).Scan(&inUse)
		if err != nil {
			return fmt.Errorf("failed to check category usage: %w", err)
		}
		if inUse {
			return category.ErrCategoryInUse
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			if mapped := constraintError(err, nil, category.ErrCategoryInUse); mapped != err {
				return mapped
			}
			return fmt.Errorf("failed to delete category: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return category.ErrCategoryNotFound
		}

		return nil
	})
}

// getCategory loads a category owned by userID, optionally with a row lock
// clause such as "FOR UPDATE" or "FOR SHARE".
func getCategory(ctx context.Context, q queryer, userID, id int64, lock string) (*category.Category, error) {
	query := `
		SELECT id, user_id, name, type, color
		FROM categories
		WHERE id = $1 AND user_id = $2
	` + lock

	var c category.Category
	err := q.QueryRowContext(ctx, query, id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}
