package report

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"pftracker/internal/domain/category"
	"pftracker/internal/shared/civil"
)

const percentagePlaces = 2

var hundred = decimal.NewFromInt(100)

// Service derives reports from a user's transactions
type Service struct {
	repo Repository
}

// NewService creates a new report service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Summary returns income, expenses and their difference over rng.
func (s *Service) Summary(ctx context.Context, userID int64, rng Range) (*Summary, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	totals, err := s.repo.Totals(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Income:   totals.Income,
		Expenses: totals.Expenses,
		Net:      totals.Income.Sub(totals.Expenses),
	}, nil
}

// ByCategory breaks totals down per (category, type) with each group's share
// of the grand total, largest first.
func (s *Service) ByCategory(ctx context.Context, userID int64, rng Range, typ *category.Type) (*ByCategory, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}
	if typ != nil && !typ.Valid() {
		return nil, category.ErrInvalidType
	}

	rows, err := s.repo.CategoryTotals(ctx, userID, rng, typ)
	if err != nil {
		return nil, err
	}

	return buildByCategory(rows), nil
}

// Monthly returns per-month income, expenses and net, oldest month first.
// Months without transactions are omitted.
func (s *Service) Monthly(ctx context.Context, userID int64, rng Range) (*Monthly, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.repo.MonthlyTotals(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	return buildMonthly(rows), nil
}

type groupKey struct {
	categoryID int64
	typ        category.Type
}

func buildByCategory(rows []CategoryTotal) *ByCategory {
	merged := make(map[groupKey]*CategoryTotal, len(rows))
	order := make([]groupKey, 0, len(rows))
	for _, row := range rows {
		key := groupKey{categoryID: row.CategoryID, typ: row.Type}
		if existing, ok := merged[key]; ok {
			existing.Total = existing.Total.Add(row.Total)
			continue
		}
		r := row
		merged[key] = &r
		order = append(order, key)
	}

	grandTotal := decimal.Zero
	for _, key := range order {
		grandTotal = grandTotal.Add(merged[key].Total)
	}

	items := make([]CategoryItem, 0, len(order))
	for _, key := range order {
		row := *merged[key]
		items = append(items, CategoryItem{
			CategoryTotal: row,
			Percentage:    Percentage(row.Total, grandTotal),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if c := a.Total.Cmp(b.Total); c != 0 {
			return c > 0
		}
		if a.CategoryID != b.CategoryID {
			return a.CategoryID < b.CategoryID
		}
		return a.Type.Rank() < b.Type.Rank()
	})

	return &ByCategory{Items: items, Total: grandTotal}
}

// Percentage returns part as a share of whole, rounded half away from zero
// to two places. A zero whole yields zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).DivRound(whole, percentagePlaces)
}

func buildMonthly(rows []MonthTotals) *Monthly {
	byMonth := make(map[civil.Date]*MonthTotals, len(rows))
	months := make([]civil.Date, 0, len(rows))
	for _, row := range rows {
		month := row.Month.MonthStart()
		if existing, ok := byMonth[month]; ok {
			existing.Income = existing.Income.Add(row.Income)
			existing.Expenses = existing.Expenses.Add(row.Expenses)
			continue
		}
		byMonth[month] = &MonthTotals{Month: month, Income: row.Income, Expenses: row.Expenses}
		months = append(months, month)
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	items := make([]MonthlyItem, 0, len(months))
	for _, month := range months {
		t := byMonth[month]
		items = append(items, MonthlyItem{
			Month:    month,
			Income:   t.Income,
			Expenses: t.Expenses,
			Net:      t.Income.Sub(t.Expenses),
		})
	}

	return &Monthly{Items: items}
}
