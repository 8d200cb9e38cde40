package category

import (
	"strings"
	"unicode/utf8"

	"pftracker/internal/shared/apperror"
)

var (
	ErrCategoryNotFound = apperror.NotFound("Category not found")
	ErrCategoryExists   = apperror.Conflict("Category already exists")
	ErrCategoryInUse    = apperror.Conflict("Cannot delete category with existing transactions")
	ErrInvalidType      = apperror.Validation("type must be one of: income, expense")
)

// Type is the direction of money a category (and its transactions) records.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// ParseType accepts the canonical string form of a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeIncome, TypeExpense:
		return Type(s), nil
	}
	return "", ErrInvalidType
}

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Rank orders types the way the database enum does: income first.
func (t Type) Rank() int {
	switch t {
	case TypeIncome:
		return 0
	case TypeExpense:
		return 1
	}
	return 2
}

func (t Type) String() string {
	return string(t)
}

type Category struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"-"`
	Name   string `json:"name"`
	Type   Type   `json:"type"`
	Color  string `json:"color"`
}

// CategoryWithCount annotates a category with the number of the owner's
// transactions that reference it.
type CategoryWithCount struct {
	Category
	TransactionCount int64 `json:"transaction_count"`
}

const (
	maxNameLength  = 80
	minColorLength = 4
	maxColorLength = 20
)

type CreateCategoryParams struct {
	Name  string
	Type  Type
	Color string
}

// Normalize trims surrounding whitespace from name and color.
func (p *CreateCategoryParams) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Color = strings.TrimSpace(p.Color)
}

func (p *CreateCategoryParams) Validate() error {
	if p.Name == "" {
		return apperror.Validation("name is required")
	}
	if utf8.RuneCountInString(p.Name) > maxNameLength {
		return apperror.Validation("name must be 80 characters or less")
	}
	if !p.Type.Valid() {
		return ErrInvalidType
	}
	n := utf8.RuneCountInString(p.Color)
	if n < minColorLength || n > maxColorLength {
		return apperror.Validation("color must be between 4 and 20 characters")
	}
	return nil
}
