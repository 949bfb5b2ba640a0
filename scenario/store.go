package scenario

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS scenarios (
	name        TEXT PRIMARY KEY,
	description TEXT NOT NULL DEFAULT '',
	width       INTEGER NOT NULL,
	height      INTEGER NOT NULL,
	data        BLOB NOT NULL,
	updated_at  TEXT NOT NULL
)`

// Store persists scenarios in a SQLite database.
// Layouts are stored as msgpack blobs keyed by scenario name.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	path   string
}

// Summary is one row of List.
type Summary struct {
	Name        string
	Description string
	Width       int
	Height      int
	UpdatedAt   time.Time
}

// Open opens or creates the database at path. ":memory:" is accepted.
// A nil logger discards output.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("scenario: create store directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("scenario: open store: %w", err)
	}
	// An in-memory database lives only as long as its connection.
	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("scenario: set pragma: %w", err)
		}
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("scenario: initialize schema: %w", err)
	}

	logger.Debug("scenario store opened", "path", path)
	return &Store{conn: conn, logger: logger, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Save validates sc and inserts or replaces it by name.
func (s *Store) Save(ctx context.Context, sc Scenario) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	data, err := msgpack.Marshal(sc)
	if err != nil {
		return fmt.Errorf("scenario: encode %q: %w", sc.Name, err)
	}
	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO scenarios (name, description, width, height, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			description = excluded.description,
			width = excluded.width,
			height = excluded.height,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		sc.Name, sc.Description, sc.Width, sc.Height, data,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("scenario: save %q: %w", sc.Name, err)
	}

	s.logger.Debug("scenario saved", "name", sc.Name, "walls", len(sc.Walls), "traffic", len(sc.Traffic))
	return nil
}

// Get loads the scenario called name.
// Returns ErrUnknownScenario if there is none.
func (s *Store) Get(ctx context.Context, name string) (Scenario, error) {
	var data []byte
	err := s.conn.QueryRowContext(ctx, `SELECT data FROM scenarios WHERE name = ?`, name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: get %q: %w", name, err)
	}

	var sc Scenario
	if err := msgpack.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode %q: %w", name, err)
	}
	return sc, nil
}

// List returns a summary of every stored scenario ordered by name.
func (s *Store) List(ctx context.Context) ([]Summary, error) {
	rows, err := s.conn.QueryContext(ctx,
		`SELECT name, description, width, height, updated_at FROM scenarios ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("scenario: list: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			updated string
		)
		if err := rows.Scan(&sum.Name, &sum.Description, &sum.Width, &sum.Height, &updated); err != nil {
			return nil, fmt.Errorf("scenario: list: %w", err)
		}
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the scenario called name.
// Returns ErrUnknownScenario if there is none.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM scenarios WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("scenario: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("scenario: delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return nil
}

// Resolve looks name up among the built-ins first, then in the store.
// A nil store only consults the built-ins.
func Resolve(ctx context.Context, st *Store, name string) (Scenario, error) {
	if sc, err := Builtin(name); err == nil {
		return sc, nil
	}
	if st == nil {
		return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
	return st.Get(ctx, name)
}
