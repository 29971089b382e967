// Package catalog keeps a small sqlite index of completed captures so
// past demo recordings can be listed later. It sits outside the engine:
// a run is self-contained and only reports here after the fact.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

type Capture struct {
	Handle       string
	Target       string
	CastPath     string
	ArtifactPath string
	StartedAt    time.Time
	StoppedAt    time.Time
	ActionCount  int
}

type Store struct {
	db *sql.DB
}

func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) InsertCapture(ctx context.Context, c Capture) error {
	if c.Handle == "" {
		return fmt.Errorf("capture handle is required")
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO captures(handle, target, cast_path, artifact_path, started_at, stopped_at, action_count)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(handle) DO UPDATE SET
	artifact_path=excluded.artifact_path,
	stopped_at=excluded.stopped_at,
	action_count=excluded.action_count
`, c.Handle, c.Target, c.CastPath, c.ArtifactPath, ts(c.StartedAt), ts(c.StoppedAt), c.ActionCount)
	if err != nil {
		return fmt.Errorf("insert capture: %w", err)
	}
	return nil
}

func (s *Store) GetCapture(ctx context.Context, handle string) (Capture, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT handle, target, cast_path, artifact_path, started_at, stopped_at, action_count
FROM captures WHERE handle = ?`, handle)
	c, err := scanCapture(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Capture{}, ErrNotFound
	}
	return c, err
}

func (s *Store) ListCaptures(ctx context.Context) ([]Capture, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT handle, target, cast_path, artifact_path, started_at, stopped_at, action_count
FROM captures ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}
	defer rows.Close()
	var out []Capture
	for rows.Next() {
		c, err := scanCapture(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCapture(scan func(...any) error) (Capture, error) {
	var c Capture
	var started, stopped string
	if err := scan(&c.Handle, &c.Target, &c.CastPath, &c.ArtifactPath, &started, &stopped, &c.ActionCount); err != nil {
		return Capture{}, err
	}
	var err error
	if c.StartedAt, err = parseTS(started); err != nil {
		return Capture{}, err
	}
	if c.StoppedAt, err = parseTS(stopped); err != nil {
		return Capture{}, err
	}
	return c, nil
}

func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTS(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
