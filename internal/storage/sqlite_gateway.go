package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	sqliteTimeLayout = time.RFC3339Nano
	themeSettingKey  = "theme"
)

type SQLiteGateway struct {
	db *sql.DB
}

// NewSQLiteGateway migrates db and wraps it. The caller keeps ownership of db
// until Close is called on the gateway.
func NewSQLiteGateway(db *sql.DB) (*SQLiteGateway, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteGateway{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteGateway, error) {
	if path == "" {
		return nil, errors.New("storage: db path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; a single connection keeps the transaction and the reads on the same file handle.
	db.SetMaxOpenConns(1)
	gw, err := NewSQLiteGateway(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return gw, nil
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

func (g *SQLiteGateway) LoadTasks(ctx context.Context) ([]Record, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, text, due, priority, completed, created_at
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (g *SQLiteGateway) SaveTasks(ctx context.Context, records []Record) (err error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, text, due, priority, completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err = stmt.ExecContext(ctx,
			rec.ID, i, rec.Text, nullString(rec.Due), rec.Priority, boolInt(rec.Completed), formatTime(rec.CreatedAt),
		); err != nil {
			return fmt.Errorf("insert task %s: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

func (g *SQLiteGateway) LoadTheme(ctx context.Context) (string, error) {
	var theme string
	err := g.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, themeSettingKey).Scan(&theme)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && theme == "") {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", err
	}
	return theme, nil
}

func (g *SQLiteGateway) SaveTheme(ctx context.Context, theme string) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		themeSettingKey, theme,
	)
	return err
}

func nullString(v *string) any {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func formatTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var out Record
	var due sql.NullString
	var completed int
	var created string
	if err := s.Scan(&out.ID, &out.Text, &due, &out.Priority, &completed, &created); err != nil {
		return Record{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Record{}, fmt.Errorf("task %s created_at: %w", out.ID, err)
	}
	if due.Valid && due.String != "" {
		d := due.String
		out.Due = &d
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	return out, nil
}
