package http

import (
	"time"

	"github.com/shopspring/decimal"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/dashboard"
	"pftracker/internal/domain/report"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/domain/user"
	"pftracker/internal/shared/civil"
)

// Money renders a decimal as a JSON string with exactly two fractional digits.
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return fixed2(decimal.Decimal(m)), nil
}

// Percent is a share of a total in percentage points, rendered like Money.
type Percent decimal.Decimal

func (p Percent) MarshalJSON() ([]byte, error) {
	return fixed2(decimal.Decimal(p)), nil
}

func fixed2(d decimal.Decimal) []byte {
	return []byte(`"` + d.StringFixed(2) + `"`)
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

type CategoryResponse struct {
	ID               int64         `json:"id"`
	Name             string        `json:"name"`
	Type             category.Type `json:"type"`
	Color            string        `json:"color"`
	TransactionCount *int64        `json:"transaction_count,omitempty"`
}

func toCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Type: c.Type, Color: c.Color}
}

func toCategoryWithCountResponse(c *category.CategoryWithCount) CategoryResponse {
	resp := toCategoryResponse(&c.Category)
	count := c.TransactionCount
	resp.TransactionCount = &count
	return resp
}

type TransactionCategory struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Type  category.Type `json:"type"`
	Color string        `json:"color"`
}

type TransactionResponse struct {
	ID         int64               `json:"id"`
	CategoryID int64               `json:"category_id"`
	Amount     Money               `json:"amount"`
	Type       category.Type       `json:"type"`
	Note       *string             `json:"note"`
	Date       civil.Date          `json:"date"`
	CreatedAt  time.Time           `json:"created_at"`
	Category   TransactionCategory `json:"category"`
}

func toTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID,
		CategoryID: t.CategoryID,
		Amount:     Money(t.Amount),
		Type:       t.Type,
		Note:       t.Note,
		Date:       t.Date,
		CreatedAt:  t.CreatedAt,
		Category: TransactionCategory{
			ID:    t.Category.ID,
			Name:  t.Category.Name,
			Type:  t.Category.Type,
			Color: t.Category.Color,
		},
	}
}

func toTransactionResponses(items []*transaction.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

type TransactionListResponse struct {
	Items      []TransactionResponse  `json:"items"`
	Pagination transaction.Pagination `json:"pagination"`
}

type SummaryResponse struct {
	Income   Money `json:"income"`
	Expenses Money `json:"expenses"`
	Net      Money `json:"net"`
}

func toSummaryResponse(s *report.Summary) SummaryResponse {
	return SummaryResponse{Income: Money(s.Income), Expenses: Money(s.Expenses), Net: Money(s.Net)}
}

type CategoryTotalResponse struct {
	CategoryID    int64         `json:"category_id"`
	CategoryName  string        `json:"category_name"`
	CategoryColor string        `json:"category_color"`
	Type          category.Type `json:"type"`
	Total         Money         `json:"total"`
	Percentage    Percent       `json:"percentage"`
}

type ByCategoryResponse struct {
	Items []CategoryTotalResponse `json:"items"`
	Total Money                   `json:"total"`
}

func toByCategoryResponse(b *report.ByCategory) ByCategoryResponse {
	items := make([]CategoryTotalResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, CategoryTotalResponse{
			CategoryID:    it.CategoryID,
			CategoryName:  it.CategoryName,
			CategoryColor: it.CategoryColor,
			Type:          it.Type,
			Total:         Money(it.Total),
			Percentage:    Percent(it.Percentage),
		})
	}
	return ByCategoryResponse{Items: items, Total: Money(b.Total)}
}

type MonthlyItemResponse struct {
	Month    civil.Date `json:"month"`
	Income   Money      `json:"income"`
	Expenses Money      `json:"expenses"`
	Net      Money      `json:"net"`
}

type MonthlyResponse struct {
	Items []MonthlyItemResponse `json:"items"`
}

func toMonthlyResponse(m *report.Monthly) MonthlyResponse {
	items := make([]MonthlyItemResponse, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, MonthlyItemResponse{
			Month:    it.Month,
			Income:   Money(it.Income),
			Expenses: Money(it.Expenses),
			Net:      Money(it.Net),
		})
	}
	return MonthlyResponse{Items: items}
}

type DashboardResponse struct {
	Summary            SummaryResponse       `json:"summary"`
	ExpensesByCategory ByCategoryResponse    `json:"expenses_by_category"`
	Monthly            MonthlyResponse       `json:"monthly"`
	RecentTransactions []TransactionResponse `json:"recent_transactions"`
}

func toDashboardResponse(d *dashboard.Dashboard) DashboardResponse {
	return DashboardResponse{
		Summary:            toSummaryResponse(d.Summary),
		ExpensesByCategory: toByCategoryResponse(d.ExpensesByCategory),
		Monthly:            toMonthlyResponse(d.Monthly),
		RecentTransactions: toTransactionResponses(d.Recent),
	}
}
