// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/shkim9348/FSND/cliparse"
	"github.com/shkim9348/FSND/models"
)

// Open connects to the configured database and wraps the connection with gorm
func Open(cfg cliparse.Config) (*gorm.DB, error) {
	var (
		sqlDB     *sql.DB
		dialector gorm.Dialector
		err       error
	)

	switch cfg.DatabaseType {
	case cliparse.DatabasePostgres:
		sqlDB, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case cliparse.DatabaseSQLite:
		sqlDB, err = sql.Open("sqlite", SQLiteDSN(cfg.DatabaseURL))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: sqlDB})
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	level := logger.Warn
	if cfg.LogMode == cliparse.LogModeProd {
		level = logger.Error
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{Logger: newGormLogger(slog.Default(), level)})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}

	return gdb, nil
}

// gormWriter sends gorm's log lines to slog
type gormWriter struct {
	logger *slog.Logger
}

func (g gormWriter) Printf(format string, args ...interface{}) {
	g.logger.Warn("gorm", "detail", strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func newGormLogger(l *slog.Logger, level logger.LogLevel) logger.Interface {
	return logger.New(gormWriter{logger: l}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// SQLiteDSN turns on foreign key enforcement unless the DSN already sets it
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// Models returns the tables owned by app
func Models(app string) []any {
	switch app {
	case cliparse.AppFyyur:
		return []any{&models.Venue{}, &models.Artist{}, &models.Show{}}
	case cliparse.AppTrivia:
		return []any{&models.Category{}, &models.TriviaQuestion{}}
	case cliparse.AppCoffee:
		return []any{&models.Drink{}}
	case cliparse.AppPybo:
		return []any{&models.User{}, &models.BoardQuestion{}, &models.BoardAnswer{}}
	default:
		return nil
	}
}

// Migrate creates or updates the tables of app. Safe to call repeatedly.
func Migrate(gdb *gorm.DB, app string) error {
	tables := Models(app)
	if tables == nil {
		return fmt.Errorf("unknown app %q", app)
	}
	if err := gdb.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", app, err)
	}
	return nil
}

// Seed inserts the starter rows of app into empty tables
func Seed(gdb *gorm.DB, app string) error {
	switch app {
	case cliparse.AppTrivia:
		return seedIfEmpty(gdb, &models.Category{}, func(tx *gorm.DB) error {
			categories := make([]models.Category, 0, len(models.DefaultCategories))
			for _, name := range models.DefaultCategories {
				categories = append(categories, models.Category{Type: name})
			}
			return tx.Create(&categories).Error
		})
	case cliparse.AppCoffee:
		return seedIfEmpty(gdb, &models.Drink{}, func(tx *gorm.DB) error {
			drink := models.DefaultDrink
			return tx.Create(&drink).Error
		})
	}
	return nil
}

func seedIfEmpty(gdb *gorm.DB, model any, insert func(tx *gorm.DB) error) error {
	return gdb.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count seed table: %w", err)
		}
		if count > 0 {
			return nil
		}
		if err := insert(tx); err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
		slog.Info("seed data inserted", "table", fmt.Sprintf("%T", model))
		return nil
	})
}

// IsUniqueViolation reports whether err came from a unique constraint
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *msqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
