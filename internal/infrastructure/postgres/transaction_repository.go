package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/shared/civil"
)

type TransactionRepository struct {
	db *DB
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.category_id, t.amount, t.type, t.note, t.date, t.created_at,
	       c.id, c.name, c.type, c.color
	FROM transactions t
	JOIN categories c ON c.id = t.category_id
`

func scanTransaction(row interface{ Scan(...any) error }) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var note sql.NullString
	err := row.Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Amount, &t.Type, &note, &t.Date, &t.CreatedAt,
		&t.Category.ID, &t.Category.Name, &t.Category.Type, &t.Category.Color,
	)
	if err != nil {
		return nil, err
	}
	if note.Valid {
		t.Note = &note.String
	}
	return &t, nil
}

// filterBuilder accumulates WHERE conditions with numbered placeholders.
type filterBuilder struct {
	conds []string
	args  []any
}

func (b *filterBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(b.args))))
}

func (b *filterBuilder) where() string {
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// dateRange adds inclusive bounds on t.date.
func (b *filterBuilder) dateRange(start, end *civil.Date) {
	if start != nil {
		b.add("t.date >= ?", *start)
	}
	if end != nil {
		b.add("t.date <= ?", *end)
	}
}

// newTransactionFilter always scopes to userID first.
func newTransactionFilter(userID int64, f transaction.Filter) *filterBuilder {
	b := &filterBuilder{}
	b.add("t.user_id = ?", userID)
	if f.Type != nil {
		b.add("t.type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		b.add("t.category_id = ?", *f.CategoryID)
	}
	b.dateRange(f.StartDate, f.EndDate)
	return b
}

func (r *TransactionRepository) Create(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error) {
	var created *transaction.Transaction
	err := r.db.WithTx(ctx, func(tx *Tx) error {
		if err := lockCategoryForType(ctx, tx, userID, params.CategoryID, params.Type); err != nil {
			return err
		}

		var id int64
		err := tx.QueryRowContext(ctx, `
			INSERT INTO transactions (user_id, category_id, amount, type, note, date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, userID, params.CategoryID, params.Amount, params.Type, params.Note, params.Date).Scan(&id)
		if err != nil {
			if mapped := constraintError(err, nil, category.ErrCategoryNotFound); mapped != err {
				return mapped
			}
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		created, err = getTransaction(ctx, tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	return getTransaction(ctx, r.db, userID, id)
}

func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error) {
	b := newTransactionFilter(userID, filter)
	query := transactionSelect + b.where() + ` ORDER BY t.date DESC, t.created_at DESC, t.id DESC`

	args := b.args
	if limit > 0 {
		args = append(args, limit, offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*transaction.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	b := newTransactionFilter(userID, filter)
	query := `SELECT COUNT(*) FROM transactions t ` + b.where()

	var total int64
	if err := r.db.QueryRowContext(ctx, query, b.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	return total, nil
}

func (r *TransactionRepository) Update(ctx context.Context, userID, id int64, params transaction.Params) (*transaction.Transaction, error) {
	var updated *transaction.Transaction
	err := r.db.WithTx(ctx, func(tx *Tx) error {
		if err := lockCategoryForType(ctx, tx, userID, params.CategoryID, params.Type); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE transactions
			SET category_id = $1, amount = $2, type = $3, note = $4, date = $5
			WHERE id = $6 AND user_id = $7
		`, params.CategoryID, params.Amount, params.Type, params.Note, params.Date, id, userID)
		if err != nil {
			if mapped := constraintError(err, nil, category.ErrCategoryNotFound); mapped != err {
				return mapped
			}
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return transaction.ErrTransactionNotFound
		}

		updated, err = getTransaction(ctx, tx, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// lockCategoryForType holds a share lock on the category for the rest of the
// transaction, so it can be neither deleted nor changed while a transaction
// is written against it, and re-checks its type under that lock.
func lockCategoryForType(ctx context.Context, tx *Tx, userID, categoryID int64, typ transaction.Type) error {
	c, err := getCategory(ctx, tx, userID, categoryID, "FOR SHARE")
	if err != nil {
		return err
	}
	if c.Type != typ {
		return transaction.ErrTypeMismatch
	}
	return nil
}

func getTransaction(ctx context.Context, q queryer, userID, id int64) (*transaction.Transaction, error) {
	query := transactionSelect + `WHERE t.id = $1 AND t.user_id = $2`

	t, err := scanTransaction(q.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return t, nil
}
