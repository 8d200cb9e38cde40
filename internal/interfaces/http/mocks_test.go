package http

import (
	"context"
	"net/http"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/report"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/domain/user"
	"pftracker/internal/shared/middleware"
)

// MockCategoryRepo implements category.Repository for testing
type MockCategoryRepo struct {
	CreateFunc            func(ctx context.Context, userID int64, params category.CreateCategoryParams) (*category.Category, error)
	GetByIDFunc           func(ctx context.Context, userID, id int64) (*category.Category, error)
	FindByNameAndTypeFunc func(ctx context.Context, userID int64, name string, typ category.Type) (*category.Category, error)
	ListWithCountsFunc    func(ctx context.Context, userID int64) ([]*category.CategoryWithCount, error)
	DeleteFunc            func(ctx context.Context, userID, id int64) error
}

func (m *MockCategoryRepo) Create(ctx context.Context, userID int64, params category.CreateCategoryParams) (*category.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, userID, id int64) (*category.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, category.ErrCategoryNotFound
}

func (m *MockCategoryRepo) FindByNameAndType(ctx context.Context, userID int64, name string, typ category.Type) (*category.Category, error) {
	if m.FindByNameAndTypeFunc != nil {
		return m.FindByNameAndTypeFunc(ctx, userID, name, typ)
	}
	return nil, nil
}

func (m *MockCategoryRepo) ListWithCounts(ctx context.Context, userID int64) ([]*category.CategoryWithCount, error) {
	if m.ListWithCountsFunc != nil {
		return m.ListWithCountsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, userID, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc  func(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error)
	GetByIDFunc func(ctx context.Context, userID, id int64) (*transaction.Transaction, error)
	ListFunc    func(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error)
	CountFunc   func(ctx context.Context, userID int64, filter transaction.Filter) (int64, error)
	UpdateFunc  func(ctx context.Context, userID, id int64, params transaction.Params) (*transaction.Transaction, error)
	DeleteFunc  func(ctx context.Context, userID, id int64) error
}

func (m *MockTransactionRepo) Create(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) GetByID(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, userID, id)
	}
	return nil, transaction.ErrTransactionNotFound
}

func (m *MockTransactionRepo) List(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter, limit, offset)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, userID, filter)
	}
	return 0, nil
}

func (m *MockTransactionRepo) Update(ctx context.Context, userID, id int64, params transaction.Params) (*transaction.Transaction, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, id, params)
	}
	return nil, nil
}

func (m *MockTransactionRepo) Delete(ctx context.Context, userID, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, userID, id)
	}
	return nil
}

// MockReportRepo implements report.Repository for testing
type MockReportRepo struct {
	TotalsFunc         func(ctx context.Context, userID int64, rng report.Range) (report.Totals, error)
	CategoryTotalsFunc func(ctx context.Context, userID int64, rng report.Range, typ *category.Type) ([]report.CategoryTotal, error)
	MonthlyTotalsFunc  func(ctx context.Context, userID int64, rng report.Range) ([]report.MonthTotals, error)
}

func (m *MockReportRepo) Totals(ctx context.Context, userID int64, rng report.Range) (report.Totals, error) {
	if m.TotalsFunc != nil {
		return m.TotalsFunc(ctx, userID, rng)
	}
	return report.Totals{}, nil
}

func (m *MockReportRepo) CategoryTotals(ctx context.Context, userID int64, rng report.Range, typ *category.Type) ([]report.CategoryTotal, error) {
	if m.CategoryTotalsFunc != nil {
		return m.CategoryTotalsFunc(ctx, userID, rng, typ)
	}
	return nil, nil
}

func (m *MockReportRepo) MonthlyTotals(ctx context.Context, userID int64, rng report.Range) ([]report.MonthTotals, error) {
	if m.MonthlyTotalsFunc != nil {
		return m.MonthlyTotalsFunc(ctx, userID, rng)
	}
	return nil, nil
}

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateUserParams) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

// withUser authenticates req as userID the way middleware.Auth does.
func withUser(req *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}
