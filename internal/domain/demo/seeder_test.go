package demo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/domain/user"
	"pftracker/internal/shared/civil"
)

type memUsers struct {
	users []*user.User
}

func (m *memUsers) Create(ctx context.Context, params user.CreateUserParams) (*user.User, error) {
	u := &user.User{ID: int64(len(m.users) + 1), Name: params.Name, Email: params.Email, PasswordHash: params.PasswordHash}
	m.users = append(m.users, u)
	return u, nil
}

func (m *memUsers) GetByID(ctx context.Context, id int64) (*user.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type memCategories struct {
	cats []*category.Category
}

func (m *memCategories) Create(ctx context.Context, userID int64, params category.CreateCategoryParams) (*category.Category, error) {
	c := &category.Category{ID: int64(len(m.cats) + 1), UserID: userID, Name: params.Name, Type: params.Type, Color: params.Color}
	m.cats = append(m.cats, c)
	return c, nil
}

func (m *memCategories) GetByID(ctx context.Context, userID, id int64) (*category.Category, error) {
	for _, c := range m.cats {
		if c.ID == id && c.UserID == userID {
			return c, nil
		}
	}
	return nil, category.ErrCategoryNotFound
}

func (m *memCategories) FindByNameAndType(ctx context.Context, userID int64, name string, typ category.Type) (*category.Category, error) {
	for _, c := range m.cats {
		if c.UserID == userID && c.Name == name && c.Type == typ {
			return c, nil
		}
	}
	return nil, nil
}

func (m *memCategories) ListWithCounts(ctx context.Context, userID int64) ([]*category.CategoryWithCount, error) {
	return nil, nil
}

func (m *memCategories) Delete(ctx context.Context, userID, id int64) error {
	return nil
}

type memTransactions struct {
	txs []*transaction.Transaction
}

func (m *memTransactions) Create(ctx context.Context, userID int64, params transaction.Params) (*transaction.Transaction, error) {
	tx := &transaction.Transaction{
		ID:         int64(len(m.txs) + 1),
		UserID:     userID,
		CategoryID: params.CategoryID,
		Amount:     params.Amount,
		Type:       params.Type,
		Note:       params.Note,
		Date:       params.Date,
	}
	m.txs = append(m.txs, tx)
	return tx, nil
}

func (m *memTransactions) GetByID(ctx context.Context, userID, id int64) (*transaction.Transaction, error) {
	return nil, transaction.ErrTransactionNotFound
}

func (m *memTransactions) List(ctx context.Context, userID int64, filter transaction.Filter, limit, offset int) ([]*transaction.Transaction, error) {
	return m.txs, nil
}

func (m *memTransactions) Count(ctx context.Context, userID int64, filter transaction.Filter) (int64, error) {
	var n int64
	for _, tx := range m.txs {
		if tx.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memTransactions) Update(ctx context.Context, userID, id int64, params transaction.Params) (*transaction.Transaction, error) {
	return nil, transaction.ErrTransactionNotFound
}

func (m *memTransactions) Delete(ctx context.Context, userID, id int64) error {
	return nil
}

func TestEnsure_IsIdempotent(t *testing.T) {
	users := &memUsers{}
	cats := &memCategories{}
	txs := &memTransactions{}

	seeder := NewSeeder(users, cats, txs, Config{Name: "Demo User", Email: "Demo@PFTracker.app", Password: "Demo@12345"})
	seeder.today = func() civil.Date { return civil.NewDate(2026, time.March, 18) }

	ctx := context.Background()
	first, err := seeder.Ensure(ctx)
	if err != nil {
		t.Fatalf("Ensure() unexpected error: %v", err)
	}
	if !first.UserCreated || first.CategoriesCreated != 6 || first.TransactionsCreated != 8 {
		t.Errorf("first run = %+v", first)
	}
	if users.users[0].Email != "demo@pftracker.app" {
		t.Errorf("email = %q, want lowercased", users.users[0].Email)
	}

	second, err := seeder.Ensure(ctx)
	if err != nil {
		t.Fatalf("second Ensure() unexpected error: %v", err)
	}
	if second.UserCreated || second.CategoriesCreated != 0 || second.TransactionsCreated != 0 {
		t.Errorf("second run = %+v, want no changes", second)
	}
	if len(txs.txs) != 8 || len(cats.cats) != 6 {
		t.Errorf("stored %d transactions and %d categories", len(txs.txs), len(cats.cats))
	}
}

func TestEnsure_TransactionsMatchCategoriesAndMonth(t *testing.T) {
	cats := &memCategories{}
	txs := &memTransactions{}
	seeder := NewSeeder(&memUsers{}, cats, txs, Config{Name: "Demo User", Email: "demo@pftracker.app", Password: "Demo@12345"})
	seeder.today = func() civil.Date { return civil.NewDate(2026, time.March, 18) }

	if _, err := seeder.Ensure(context.Background()); err != nil {
		t.Fatalf("Ensure() unexpected error: %v", err)
	}

	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs.txs {
		cat, err := cats.GetByID(context.Background(), tx.UserID, tx.CategoryID)
		if err != nil {
			t.Fatalf("transaction %d references unknown category", tx.ID)
		}
		if cat.Type != tx.Type {
			t.Errorf("transaction %d type %s on %s category", tx.ID, tx.Type, cat.Type)
		}
		if tx.Date.MonthStart() != civil.NewDate(2026, time.March, 1) {
			t.Errorf("transaction %d dated %s, outside current month", tx.ID, tx.Date)
		}
		if tx.Type == transaction.TypeIncome {
			income = income.Add(tx.Amount)
		} else {
			expenses = expenses.Add(tx.Amount)
		}
	}

	if !income.Equal(decimal.RequireFromString("5470.00")) {
		t.Errorf("income = %s, want 5470.00", income)
	}
	if !expenses.Equal(decimal.RequireFromString("2093.95")) {
		t.Errorf("expenses = %s, want 2093.95", expenses)
	}
}

func TestEnsure_KeepsExistingTransactions(t *testing.T) {
	users := &memUsers{}
	txs := &memTransactions{}
	existing, _ := users.Create(context.Background(), user.CreateUserParams{Name: "Demo User", Email: "demo@pftracker.app"})
	txs.txs = append(txs.txs, &transaction.Transaction{ID: 1, UserID: existing.ID})

	seeder := NewSeeder(users, &memCategories{}, txs, Config{Name: "Demo User", Email: "demo@pftracker.app", Password: "Demo@12345"})
	res, err := seeder.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure() unexpected error: %v", err)
	}
	if res.UserCreated || res.TransactionsCreated != 0 {
		t.Errorf("Ensure() = %+v, want no new user or transactions", res)
	}
	if res.CategoriesCreated != 6 {
		t.Errorf("CategoriesCreated = %d, want 6", res.CategoriesCreated)
	}
}
