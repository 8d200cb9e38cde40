package report

import (
	"context"

	"pftracker/internal/domain/category"
)

// Repository runs the aggregate queries behind reports. Sums are exact and
// default to zero when nothing matches.
type Repository interface {
	Totals(ctx context.Context, userID int64, rng Range) (Totals, error)
	// CategoryTotals groups by (category, transaction type). A nil typ
	// includes both types.
	CategoryTotals(ctx context.Context, userID int64, rng Range, typ *category.Type) ([]CategoryTotal, error)
	// MonthlyTotals returns one row per month with at least one transaction.
	MonthlyTotals(ctx context.Context, userID int64, rng Range) ([]MonthTotals, error)
}
