package transaction

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"pftracker/internal/domain/category"
	"pftracker/internal/shared/apperror"
	"pftracker/internal/shared/civil"
)

// Type is the direction of a transaction; it always equals its category's type.
type Type = category.Type

const (
	TypeIncome  = category.TypeIncome
	TypeExpense = category.TypeExpense
)

var (
	ErrTransactionNotFound = apperror.NotFound("Transaction not found")
	ErrTypeMismatch        = apperror.Validation("Transaction type must match the selected category type")
	ErrInvalidDateRange    = apperror.Validation("start_date must be before or equal to end_date")
)

const (
	maxNoteLength   = 1000
	amountScale     = 2
	maxWholeDigits  = 10
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// maxAmount is the first value NUMERIC(12,2) can no longer hold.
var maxAmount = decimal.New(1, maxWholeDigits)

// CategorySnapshot is the category embedded in a hydrated transaction.
type CategorySnapshot struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  Type   `json:"type"`
	Color string `json:"color"`
}

type Transaction struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"-"`
	CategoryID int64            `json:"category_id"`
	Amount     decimal.Decimal  `json:"amount"`
	Type       Type             `json:"type"`
	Note       *string          `json:"note"`
	Date       civil.Date       `json:"date"`
	CreatedAt  time.Time        `json:"created_at"`
	Category   CategorySnapshot `json:"category"`
}

// Params carries every writable field; update replaces all of them.
type Params struct {
	CategoryID int64
	Amount     decimal.Decimal
	Type       Type
	Note       *string
	Date       civil.Date
}

func (p *Params) Validate() error {
	if p.CategoryID <= 0 {
		return apperror.Validation("category_id is required")
	}
	if err := ValidateAmount(p.Amount); err != nil {
		return err
	}
	if !p.Type.Valid() {
		return category.ErrInvalidType
	}
	if p.Note != nil && utf8.RuneCountInString(*p.Note) > maxNoteLength {
		return apperror.Validation("note must be 1000 characters or less")
	}
	if p.Date.IsZero() {
		return apperror.Validation("date is required")
	}
	return nil
}

// Normalize trims the note and drops it when nothing is left.
func (p *Params) Normalize() {
	if p.Note == nil {
		return
	}
	note := strings.TrimSpace(*p.Note)
	if note == "" {
		p.Note = nil
		return
	}
	p.Note = &note
}

// ValidateAmount enforces a positive amount that fits NUMERIC(12,2) without
// rounding.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperror.Validation("amount must be greater than zero")
	}
	if !amount.Equal(amount.Truncate(amountScale)) {
		return apperror.Validation("amount must have at most 2 decimal places")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return apperror.Validation("amount must have at most 12 digits")
	}
	return nil
}

// Filter narrows a listing. Nil fields are not applied; the rest combine with AND.
type Filter struct {
	Type       *Type
	CategoryID *int64
	StartDate  *civil.Date
	EndDate    *civil.Date
}

func (f Filter) Validate() error {
	if f.Type != nil && !f.Type.Valid() {
		return category.ErrInvalidType
	}
	if !civil.ValidateRange(f.StartDate, f.EndDate) {
		return ErrInvalidDateRange
	}
	return nil
}

type ListParams struct {
	Filter
	Page     int
	PageSize int
}

func (p ListParams) Validate() error {
	if p.Page < 1 {
		return apperror.Validation("page must be greater than or equal to 1")
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return apperror.Validation("page_size must be between 1 and 100")
	}
	return p.Filter.Validate()
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
}

type ListResult struct {
	Items      []*Transaction `json:"items"`
	Pagination Pagination     `json:"pagination"`
}
