package repository

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// schema holds one statement per entry; the MySQL driver rejects multi-statement Exec.
// Nested experience, education, skills and social data are stored as JSON documents.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id       VARCHAR(36)  NOT NULL PRIMARY KEY,
		name     VARCHAR(255) NOT NULL DEFAULT '',
		email    VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		avatar   VARCHAR(512) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		id             VARCHAR(36)  NOT NULL PRIMARY KEY,
		user_id        VARCHAR(36)  NOT NULL UNIQUE,
		company        VARCHAR(255) NOT NULL DEFAULT '',
		website        VARCHAR(512) NOT NULL DEFAULT '',
		location       VARCHAR(255) NOT NULL DEFAULT '',
		status         VARCHAR(255) NOT NULL DEFAULT '',
		githubusername VARCHAR(255) NOT NULL DEFAULT '',
		bio            TEXT NOT NULL,
		skills         TEXT NOT NULL,
		social         TEXT NOT NULL,
		experience     TEXT NOT NULL,
		education      TEXT NOT NULL
	)`,
}

// NewDB opens a connection pool for the given driver ("mysql" or "sqlite") and
// verifies it with a ping.
func NewDB(driver, dsn string) (*sqlx.DB, error) {
	if driver != DriverMySQL && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// A single connection keeps in-memory databases alive and serializes writers.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	return db, nil
}

// EnsureSchema creates the users and profiles tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
