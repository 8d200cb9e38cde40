// Package demo bootstraps the shared demo account with sample data.
package demo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"pftracker/internal/domain/category"
	"pftracker/internal/domain/transaction"
	"pftracker/internal/domain/user"
	"pftracker/internal/shared/auth"
	"pftracker/internal/shared/civil"
)

type Config struct {
	Name     string
	Email    string
	Password string
}

type categorySeed struct {
	name  string
	typ   category.Type
	color string
}

var categorySeeds = []categorySeed{
	{name: "Salary", typ: category.TypeIncome, color: "#17c964"},
	{name: "Freelance", typ: category.TypeIncome, color: "#06b6d4"},
	{name: "Rent", typ: category.TypeExpense, color: "#f31260"},
	{name: "Groceries", typ: category.TypeExpense, color: "#f59e0b"},
	{name: "Transport", typ: category.TypeExpense, color: "#8b5cf6"},
	{name: "Utilities", typ: category.TypeExpense, color: "#3b82f6"},
}

type transactionSeed struct {
	category string
	amount   string
	note     string
	// offset in days from the first of the current month
	offset int
}

var transactionSeeds = []transactionSeed{
	{category: "Salary", amount: "4200.00", note: "Monthly salary", offset: 1},
	{category: "Freelance", amount: "850.00", note: "Landing page project", offset: 9},
	{category: "Rent", amount: "1450.00", note: "Apartment rent", offset: 2},
	{category: "Groceries", amount: "220.40", note: "Weekly groceries", offset: 6},
	{category: "Transport", amount: "95.30", note: "Metro and rides", offset: 10},
	{category: "Utilities", amount: "130.00", note: "Electricity and internet", offset: 12},
	{category: "Groceries", amount: "198.25", note: "Supermarket refill", offset: 16},
	{category: "Freelance", amount: "420.00", note: "Design revisions", offset: 19},
}

// Result reports what a seeding run created.
type Result struct {
	UserID              int64
	UserCreated         bool
	CategoriesCreated   int
	TransactionsCreated int
}

// Seeder creates the demo user, its categories and, for an empty account,
// a month of sample transactions. Running it again changes nothing.
type Seeder struct {
	users        user.Repository
	categories   category.Repository
	transactions transaction.Repository
	cfg          Config
	today        func() civil.Date
}

func NewSeeder(users user.Repository, categories category.Repository, transactions transaction.Repository, cfg Config) *Seeder {
	return &Seeder{
		users:        users,
		categories:   categories,
		transactions: transactions,
		cfg:          cfg,
		today:        civil.Today,
	}
}

func (s *Seeder) Ensure(ctx context.Context) (*Result, error) {
	var res Result

	u, created, err := s.ensureUser(ctx)
	if err != nil {
		return nil, err
	}
	res.UserID = u.ID
	res.UserCreated = created

	byName := make(map[string]*category.Category, len(categorySeeds))
	for _, def := range categorySeeds {
		cat, err := s.categories.FindByNameAndType(ctx, u.ID, def.name, def.typ)
		if err != nil {
			return nil, fmt.Errorf("failed to look up demo category %s: %w", def.name, err)
		}
		if cat == nil {
			cat, err = s.categories.Create(ctx, u.ID, category.CreateCategoryParams{
				Name:  def.name,
				Type:  def.typ,
				Color: def.color,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to create demo category %s: %w", def.name, err)
			}
			res.CategoriesCreated++
		}
		byName[def.name] = cat
	}

	count, err := s.transactions.Count(ctx, u.ID, transaction.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to count demo transactions: %w", err)
	}
	if count > 0 {
		return &res, nil
	}

	monthStart := s.today().MonthStart()
	for _, def := range transactionSeeds {
		cat := byName[def.category]
		note := def.note
		_, err := s.transactions.Create(ctx, u.ID, transaction.Params{
			CategoryID: cat.ID,
			Amount:     decimal.RequireFromString(def.amount),
			Type:       cat.Type,
			Note:       &note,
			Date:       monthStart.AddDays(def.offset),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create demo transaction %q: %w", def.note, err)
		}
		res.TransactionsCreated++
	}

	return &res, nil
}

func (s *Seeder) ensureUser(ctx context.Context) (*user.User, bool, error) {
	email := user.NormalizeEmail(s.cfg.Email)

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up demo user: %w", err)
	}
	if u != nil {
		return u, false, nil
	}

	hash, err := auth.HashPassword(s.cfg.Password)
	if err != nil {
		return nil, false, fmt.Errorf("failed to hash demo password: %w", err)
	}

	u, err = s.users.Create(ctx, user.CreateUserParams{
		Name:         s.cfg.Name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to create demo user: %w", err)
	}
	return u, true, nil
}
