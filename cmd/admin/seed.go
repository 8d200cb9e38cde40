package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"

	"pftracker/internal/domain/demo"
	"pftracker/internal/infrastructure/postgres"
	"pftracker/internal/shared/logging"
)

type seedDemoCmd struct {
	timeout time.Duration
}

func (*seedDemoCmd) Name() string     { return "seed-demo" }
func (*seedDemoCmd) Synopsis() string { return "create the demo account and its sample data" }
func (*seedDemoCmd) Usage() string {
	return `admin seed-demo [-timeout D]

  Creates the demo user and its categories when missing and, for an
  account without transactions, a month of sample transactions. Safe
  to run repeatedly. Uses the DEMO_USER_* settings.
`
}

func (c *seedDemoCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.timeout, "timeout", time.Minute, "give up after this long")
}

func (c *seedDemoCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, logger, err := setup()
	if err != nil {
		return fail(err)
	}
	if !cfg.Demo.Enabled {
		return fail(errors.New("demo mode is disabled (DEMO_MODE=false)"))
	}
	logger = logging.Component(logger, logging.ComponentDemo)

	db, err := postgres.New(cfg.Database.ConnectionString(), postgres.Options{
		MaxOpenConns:     2,
		StatementTimeout: cfg.Database.StatementTimeout,
	})
	if err != nil {
		return fail(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	seeder := demo.NewSeeder(
		postgres.NewUserRepository(db),
		postgres.NewCategoryRepository(db),
		postgres.NewTransactionRepository(db),
		demo.Config{Name: cfg.Demo.Name, Email: cfg.Demo.Email, Password: cfg.Demo.Password},
	)

	res, err := seeder.Ensure(ctx)
	if err != nil {
		return fail(err)
	}

	logger.Info("demo data ready", logging.FieldUserID, res.UserID)
	fmt.Printf("Demo user:            %s (id %d)\n", cfg.Demo.Email, res.UserID)
	fmt.Printf("  User created:         %t\n", res.UserCreated)
	fmt.Printf("  Categories created:   %d\n", res.CategoriesCreated)
	fmt.Printf("  Transactions created: %d\n", res.TransactionsCreated)

	return subcommands.ExitSuccess
}
