package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/dbx"
	"github.com/dmitrijs2005/studymate/internal/filex"
	"github.com/dmitrijs2005/studymate/internal/storage/migrations"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// DialectFromDSN picks Postgres for postgres:// and postgresql:// DSNs and
// SQLite (a file path or "file:" URI) for everything else.
func DialectFromDSN(dsn string) dbx.Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return dbx.DialectPostgres
	}
	return dbx.DialectSQLite
}

func driverName(d dbx.Dialect) string {
	if d == dbx.DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func gooseDialect(d dbx.Dialect) string {
	if d == dbx.DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// RunMigrations applies the embedded migrations for dialect. Re-running is
// a no-op.
func RunMigrations(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, string(dialect)); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Open connects to dsn, migrates the schema and returns the store together
// with the underlying handle, which the caller closes.
func Open(ctx context.Context, dsn string) (*SQLStore, *sql.DB, error) {
	dialect := DialectFromDSN(dsn)

	if dialect == dbx.DialectSQLite {
		if path := filex.SQLitePath(dsn); path != "" {
			if _, err := filex.EnsureParentDir(path); err != nil {
				return nil, nil, fmt.Errorf("open %s storage: %w", dialect, err)
			}
		}
	}

	db, err := sql.Open(driverName(dialect), dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", dialect, err)
	}
	if dialect == dbx.DialectSQLite {
		// A single connection keeps in-memory databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("connect %s storage: %w", dialect, err)
	}

	if err := RunMigrations(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return NewSQLStore(db, dialect), db, nil
}
