package track

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/gogpu/trackheat"
)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path      TEXT PRIMARY KEY,
	digest    INTEGER NOT NULL,
	points    INTEGER NOT NULL,
	loaded_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS points (
	path    TEXT NOT NULL REFERENCES files(path) ON DELETE CASCADE,
	seq     INTEGER NOT NULL,
	lat     REAL NOT NULL,
	lon     REAL NOT NULL,
	time_ns INTEGER NOT NULL,
	PRIMARY KEY (path, seq)
);`

// Store persists parsed files in a SQLite database so later runs skip
// parsing unchanged files. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the database at path.
func OpenStore(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("track: open store %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection serializes workers.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		schema,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("track: init store %s: %w", path, err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the points saved for path if they were saved with digest.
func (s *Store) Load(ctx context.Context, path string, digest uint64) ([]trackheat.GeoPoint, bool, error) {
	var stored int64
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT digest, points FROM files WHERE path = ?", path).Scan(&stored, &n)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("track: load %s: %w", path, err)
	}
	if uint64(stored) != digest {
		return nil, false, nil
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT lat, lon, time_ns FROM points WHERE path = ? ORDER BY seq", path)
	if err != nil {
		return nil, false, fmt.Errorf("track: load %s: %w", path, err)
	}
	defer func() { _ = rows.Close() }()

	points := make([]trackheat.GeoPoint, 0, n)
	for rows.Next() {
		var p trackheat.GeoPoint
		var ns int64
		if err := rows.Scan(&p.Lat, &p.Lon, &ns); err != nil {
			return nil, false, fmt.Errorf("track: load %s: %w", path, err)
		}
		p.Time = time.Unix(0, ns).UTC()
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("track: load %s: %w", path, err)
	}
	return points, true, nil
}

// Save replaces the points stored for path.
func (s *Store) Save(ctx context.Context, path string, digest uint64, points []trackheat.GeoPoint) error {
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		if err := deleteFile(ctx, tx, path); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO files (path, digest, points, loaded_at) VALUES (?, ?, ?, ?)",
			path, int64(digest), len(points), time.Now().UTC().Format(time.RFC3339)); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO points (path, seq, lat, lon, time_ns) VALUES (?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for i, p := range points {
			if _, err := stmt.ExecContext(ctx, path, i, p.Lat, p.Lon, p.Time.UnixNano()); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("track: save %s: %w", path, err)
	}
	return nil
}

// Forget removes path from the store.
func (s *Store) Forget(ctx context.Context, path string) error {
	err := s.transaction(ctx, func(tx *sql.Tx) error {
		return deleteFile(ctx, tx, path)
	})
	if err != nil {
		return fmt.Errorf("track: forget %s: %w", path, err)
	}
	return nil
}

// deleteFile removes path and its points. Points are deleted explicitly
// because foreign key enforcement is per connection.
func deleteFile(ctx context.Context, tx *sql.Tx, path string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM points WHERE path = ?", path); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, "DELETE FROM files WHERE path = ?", path)
	return err
}

// StoreStats summarizes the store contents.
type StoreStats struct {
	Files  int
	Points int
}

// Stats counts stored files and points.
func (s *Store) Stats(ctx context.Context) (StoreStats, error) {
	var st StoreStats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(points), 0) FROM files").Scan(&st.Files, &st.Points)
	if err != nil {
		return StoreStats{}, fmt.Errorf("track: store stats: %w", err)
	}
	return st, nil
}

func (s *Store) transaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
