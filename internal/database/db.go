// Package database owns the sqlite-backed watchlist store.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Config holds database settings.
type Config struct {
	DatabasePath string
}

// DB wraps the sqlite connection and applies pending migrations on open.
type DB struct {
	conn *sql.DB
}

func NewDB(cfg Config) (*DB, error) {
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	conn, err := sql.Open("sqlite3", cfg.DatabasePath+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// sqlite allows one writer at a time
	conn.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(conn, "migrations"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Connection exposes the underlying sql.DB for repositories.
func (d *DB) Connection() *sql.DB { return d.conn }

func (d *DB) Close() error { return d.conn.Close() }
