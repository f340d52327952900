package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// MaxLimit caps how many records Recent returns
const MaxLimit = 200

// Record is one logged prediction
type Record struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"created_at"`
	Features       map[string]float64 `json:"features"`
	PredictedPrice float64            `json:"predicted_price"`
	Formatted      string             `json:"predicted_price_formatted"`
	RemoteAddr     string             `json:"remote_addr,omitempty"`
}

// Store persists predictions in a SQLite database
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the history database at path
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS predictions (
  id TEXT PRIMARY KEY,
  created_at TEXT NOT NULL,
  features TEXT NOT NULL,
  predicted_price REAL NOT NULL,
  formatted TEXT NOT NULL,
  remote_addr TEXT NOT NULL DEFAULT ''
);
`)
	return err
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.path
}

// Add appends a prediction, assigning ID and timestamp when unset
func (s *Store) Add(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	features, err := json.Marshal(rec.Features)
	if err != nil {
		return fmt.Errorf("failed to marshal features: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO predictions(id, created_at, features, predicted_price, formatted, remote_addr)
VALUES(?, ?, ?, ?, ?, ?);
`, rec.ID, rec.CreatedAt.Format(time.RFC3339Nano), string(features), rec.PredictedPrice, rec.Formatted, rec.RemoteAddr)
	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, features, predicted_price, formatted, remote_addr
FROM predictions
ORDER BY rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var rec Record
		var createdAt, features string
		if err := rows.Scan(&rec.ID, &createdAt, &features, &rec.PredictedPrice, &rec.Formatted, &rec.RemoteAddr); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("bad timestamp on prediction %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(features), &rec.Features); err != nil {
			return nil, fmt.Errorf("bad features on prediction %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the total number of logged predictions
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM predictions").Scan(&n)
	return n, err
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
