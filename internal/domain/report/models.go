package report

import (
	"github.com/shopspring/decimal"

	"pftracker/internal/domain/category"
	"pftracker/internal/shared/apperror"
	"pftracker/internal/shared/civil"
)

var ErrInvalidDateRange = apperror.Validation("start_date must be before or equal to end_date")

// Range bounds a report by transaction date, inclusive on both ends.
type Range struct {
	StartDate *civil.Date
	EndDate   *civil.Date
}

func (r Range) Validate() error {
	if !civil.ValidateRange(r.StartDate, r.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

// Totals is the raw income/expense sum for a range.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

type Summary struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// CategoryTotal is the sum of one (category, type) group.
type CategoryTotal struct {
	CategoryID    int64           `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Type          category.Type   `json:"type"`
	Total         decimal.Decimal `json:"total"`
}

type CategoryItem struct {
	CategoryTotal
	Percentage decimal.Decimal `json:"percentage"`
}

type ByCategory struct {
	Items []CategoryItem   `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// MonthTotals holds the sums for the month starting at Month.
type MonthTotals struct {
	Month    civil.Date
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

type MonthlyItem struct {
	Month    civil.Date      `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

type Monthly struct {
	Items []MonthlyItem `json:"items"`
}
