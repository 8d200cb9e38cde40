package postgres

import (
	"context"
	"fmt"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/report"
)

type ReportRepository struct {
	db *DB
}

func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func reportFilter(userID int64, rng report.Range) *filterBuilder {
	b := &filterBuilder{}
	b.add("t.user_id = ?", userID)
	b.dateRange(rng.StartDate, rng.EndDate)
	return b
}

func (r *ReportRepository) Totals(ctx context.Context, userID int64, rng report.Range) (report.Totals, error) {
	b := reportFilter(userID, rng)
	query := `
		SELECT
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0)
		FROM transactions t
	` + b.where()

	var totals report.Totals
	if err := r.db.QueryRowContext(ctx, query, b.args...).Scan(&totals.Income, &totals.Expenses); err != nil {
		return report.Totals{}, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return totals, nil
}

func (r *ReportRepository) CategoryTotals(ctx context.Context, userID int64, rng report.Range, typ *category.Type) ([]report.CategoryTotal, error) {
	b := reportFilter(userID, rng)
	if typ != nil {
		b.add("t.type = ?", *typ)
	}
	query := `
		SELECT c.id, c.name, c.color, t.type, COALESCE(SUM(t.amount), 0) AS total
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
	` + b.where() + `
		GROUP BY c.id, c.name, c.color, t.type
		ORDER BY total DESC, c.id ASC, t.type ASC
	`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to total by category: %w", err)
	}
	defer rows.Close()

	var totals []report.CategoryTotal
	for rows.Next() {
		var ct report.CategoryTotal
		if err := rows.Scan(&ct.CategoryID, &ct.CategoryName, &ct.CategoryColor, &ct.Type, &ct.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, ct)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return totals, nil
}

func (r *ReportRepository) MonthlyTotals(ctx context.Context, userID int64, rng report.Range) ([]report.MonthTotals, error) {
	b := reportFilter(userID, rng)
	query := `
		SELECT
			date_trunc('month', t.date)::date AS month,
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'income'), 0),
			COALESCE(SUM(t.amount) FILTER (WHERE t.type = 'expense'), 0)
		FROM transactions t
	` + b.where() + `
		GROUP BY month
		ORDER BY month ASC
	`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to total by month: %w", err)
	}
	defer rows.Close()

	var totals []report.MonthTotals
	for rows.Next() {
		var mt report.MonthTotals
		if err := rows.Scan(&mt.Month, &mt.Income, &mt.Expenses); err != nil {
			return nil, fmt.Errorf("failed to scan monthly total: %w", err)
		}
		totals = append(totals, mt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly totals: %w", err)
	}

	return totals, nil
}
