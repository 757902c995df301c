package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	migrationsTable       = "schema_migrations"
	defaultMigrateTimeout = time.Minute
)

// Migrator applies the embedded migrations. golang-migrate takes a postgres advisory
// lock around every run, so concurrent callers (several processes included) are safe.
type Migrator struct {
	dsn     string
	log     zerolog.Logger
	timeout time.Duration

	mu      sync.Mutex
	applied bool
}

func NewMigrator(dsn string, log zerolog.Logger) *Migrator {
	return &Migrator{
		dsn:     dsn,
		log:     log.With().Str("component", "migrate").Logger(),
		timeout: defaultMigrateTimeout,
	}
}

// open uses its own connection: closing a migrate instance closes the database handle it was given.
// The first dial honors ctx so an unreachable server fails at the caller's deadline.
func (m *Migrator) open(ctx context.Context) (*migrate.Migrate, error) {
	sqlDB, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration connection: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("reach migration database: %w", err)
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: migrationsTable})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = driver.Close()
		return nil, fmt.Errorf("migration source: %w", err)
	}
	mg, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return mg, nil
}

func (m *Migrator) closeQuietly(mg *migrate.Migrate) {
	srcErr, dbErr := mg.Close()
	if srcErr != nil || dbErr != nil {
		m.log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("closing migrator")
	}
}

// run executes fn on a fresh migrate instance, bounded by ctx and the migrator timeout.
// When the deadline passes first, golang-migrate is told to stop after the current step
// and the caller gets ctx.Err() without waiting; the instance is closed once fn returns.
func (m *Migrator) run(ctx context.Context, fn func(mg *migrate.Migrate) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	mg, err := m.open(ctx)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		defer m.closeQuietly(mg)
		done <- fn(mg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		select {
		case mg.GracefulStop <- true:
		default:
		}
		m.log.Warn().Err(ctx.Err()).Msg("migration abandoned")
		return ctx.Err()
	}
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, func(mg *migrate.Migrate) error {
		if err := mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate up: %w", err)
		}
		version, dirty, _ := mg.Version()
		m.log.Info().Uint("version", version).Bool("dirty", dirty).Msg("schema up to date")
		return nil
	})
}

// Down reverts the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	err := m.run(ctx, func(mg *migrate.Migrate) error {
		if err := mg.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migrate down: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.applied = false
	m.mu.Unlock()
	return nil
}

func (m *Migrator) Version(ctx context.Context) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := m.run(ctx, func(mg *migrate.Migrate) error {
		var err error
		version, dirty, err = mg.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			version, dirty = 0, false
			return nil
		}
		return err
	})
	if err != nil {
		return 0, false, err
	}
	return version, dirty, nil
}

// EnsureSchema runs Up once per process; later calls are no-ops. A failed attempt is retried
// on the next call.
func (m *Migrator) EnsureSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.applied {
		return nil
	}
	if err := m.Up(ctx); err != nil {
		return err
	}
	m.applied = true
	return nil
}
