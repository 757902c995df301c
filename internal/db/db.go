package db

import (
	"context"
	"fmt"
	"time"

	"github.com/MyelinBots/knightrun-go/config"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB is the only handle the repositories use to reach the database.
type DB struct {
	DB *gorm.DB
}

// NewDatabase opens a pooled connection. An unreachable server is logged, not fatal:
// the pool dials again on the next query.
func NewDatabase(cfg config.DBConfig, log zerolog.Logger) (*DB, error) {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{DSN: cfg.DSN()}), &gorm.Config{
		DisableAutomaticPing: true,
		TranslateError:       true,
		Logger:               NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &DB{DB: gormDB}
	if err := d.configurePool(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("host", cfg.Host).Msg("database not reachable at startup, serving anyway")
	} else {
		log.Info().Str("host", cfg.Host).Str("database", cfg.DataBase).Msg("connected to database")
	}

	return d, nil
}

// Wrap adapts an already opened gorm handle, used by tests with other dialects.
func Wrap(gormDB *gorm.DB) *DB {
	return &DB{DB: gormDB}
}

func (d *DB) configurePool(cfg config.DBConfig) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("database pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Msgf(format, args...)
}

// NewGormLogger routes gorm's own logging through zerolog. Slow queries and errors
// only surface when the process logger is at debug level.
func NewGormLogger(log zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{log: log.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
