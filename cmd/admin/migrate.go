package main

import (
	"context"
	"errors"
	"flag"

	"github.com/google/subcommands"

	"pftracker/internal/infrastructure/postgres"
	"pftracker/internal/shared/logging"
)

type migrateCmd struct {
	down  bool
	steps int
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply or roll back database schema migrations" }
func (*migrateCmd) Usage() string {
	return `admin migrate [-down] [-steps N]

  Without flags, applies every pending migration. -steps N moves N
  migrations forward (or back with -down). -down alone rolls back
  every migration.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.down, "down", false, "roll migrations back instead of forward")
	f.IntVar(&c.steps, "steps", 0, "number of migrations to apply (0 means all)")
}

func (c *migrateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.steps < 0 {
		return fail(errors.New("-steps must not be negative; use -down to roll back"))
	}

	cfg, logger, err := setup()
	if err != nil {
		return fail(err)
	}
	logger = logging.Component(logger, logging.ComponentMigrate)

	mg, err := postgres.NewMigrator(cfg.Database.ConnectionString())
	if err != nil {
		return fail(err)
	}
	defer mg.Close()

	switch {
	case c.steps > 0 && c.down:
		err = mg.Steps(-c.steps)
	case c.steps > 0:
		err = mg.Steps(c.steps)
	case c.down:
		err = mg.Down()
	default:
		err = mg.Up()
	}
	if err != nil {
		return fail(err)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return fail(err)
	}
	logger.Info("migrations complete", "version", version, "dirty", dirty)

	return subcommands.ExitSuccess
}
