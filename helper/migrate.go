package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"spacebook/config"
	"spacebook/infras/postgres"
	"spacebook/migrations"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
)

type action func(mig *migrate.Migrate) error

var actions = map[string]action{
	"up": func(mig *migrate.Migrate) error {
		return mig.Up()
	},
	"down": func(mig *migrate.Migrate) error {
		return mig.Steps(-1)
	},
	"step-up": func(mig *migrate.Migrate) error {
		return mig.Steps(1)
	},
	"drop": func(mig *migrate.Migrate) error {
		return mig.Down()
	},
}

func databaseName(cfg *config.Config) string {
	return cfg.DB.Postgres.Prefix + cfg.DB.Postgres.Write.Name
}

// DSN is the write database URL with the migrations table golang-migrate
// should track versions in.
func DSN(cfg *config.Config) string {
	extra := url.Values{}
	if table := cfg.DB.Postgres.MigrationTable; table != "" {
		extra.Set("x-migrations-table", table)
	}

	return postgres.DSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix, extra)
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.Postgres, migrations.PostgresDir)
	if err != nil {
		return nil, fmt.Errorf("error reading embedded migrations: %w", err)
	}

	mig, err := migrate.NewWithSourceInstance("iofs", source, DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func closeMigrate(mig *migrate.Migrate) {
	sourceErr, dbErr := mig.Close()
	if err := errors.Join(sourceErr, dbErr); err != nil {
		log.Warn().Err(err).Msg("Failed to close migrate instance")
	}
}

// Run applies a named migration action: up, down, step-up or drop.
func Run(cfg *config.Config, name string) error {
	act, ok := actions[name]
	if !ok {
		return fmt.Errorf("unknown migration action %q", name)
	}

	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer closeMigrate(mig)

	if err := act(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running migration %s: %w", name, err)
	}

	log.Info().Str("action", name).Str("database", databaseName(cfg)).Msg("Database migration finished")

	return nil
}

// Version reports the applied migration version and whether it is dirty.
func Version(cfg *config.Config) (uint, bool, error) {
	mig, err := open(cfg)
	if err != nil {
		return 0, false, err
	}

	defer closeMigrate(mig)

	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}

	if err != nil {
		return 0, false, fmt.Errorf("error reading migration version: %w", err)
	}

	return version, dirty, nil
}

// Force marks version as applied without running it. Used to recover a dirty state.
func Force(cfg *config.Config, version int) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer closeMigrate(mig)

	if err := mig.Force(version); err != nil {
		return fmt.Errorf("error forcing migration version %d: %w", version, err)
	}

	return nil
}

func Up(cfg *config.Config) error {
	return Run(cfg, "up")
}
