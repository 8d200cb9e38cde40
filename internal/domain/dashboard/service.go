// Package dashboard assembles the landing view from reports and the latest
// transactions.
package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/report"
	"pftracker/internal/domain/transaction"
)

const recentLimit = 5

type Dashboard struct {
	Summary            *report.Summary            `json:"summary"`
	ExpensesByCategory *report.ByCategory         `json:"expenses_by_category"`
	Monthly            *report.Monthly            `json:"monthly"`
	Recent             []*transaction.Transaction `json:"recent_transactions"`
}

type Reports interface {
	Summary(ctx context.Context, userID int64, rng report.Range) (*report.Summary, error)
	ByCategory(ctx context.Context, userID int64, rng report.Range, typ *category.Type) (*report.ByCategory, error)
	Monthly(ctx context.Context, userID int64, rng report.Range) (*report.Monthly, error)
}

type Transactions interface {
	ListTransactions(ctx context.Context, userID int64, params transaction.ListParams) (*transaction.ListResult, error)
}

type Service struct {
	reports      Reports
	transactions Transactions
}

func NewService(reports Reports, transactions Transactions) *Service {
	return &Service{reports: reports, transactions: transactions}
}

// Get loads every dashboard section concurrently. The first failure cancels
// the remaining loads and is returned.
func (s *Service) Get(ctx context.Context, userID int64) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summary, err := s.reports.Summary(ctx, userID, report.Range{})
		d.Summary = summary
		return err
	})

	g.Go(func() error {
		expense := category.TypeExpense
		byCategory, err := s.reports.ByCategory(ctx, userID, report.Range{}, &expense)
		d.ExpensesByCategory = byCategory
		return err
	})

	g.Go(func() error {
		monthly, err := s.reports.Monthly(ctx, userID, report.Range{})
		d.Monthly = monthly
		return err
	})

	g.Go(func() error {
		page, err := s.transactions.ListTransactions(ctx, userID, transaction.ListParams{Page: 1, PageSize: recentLimit})
		if err != nil {
			return err
		}
		d.Recent = page.Items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
