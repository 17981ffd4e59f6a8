// Package migrator applies the embedded goose migrations of a schema.
package migrator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// ErrUnknownCommand is returned by Run for anything other than up, down or status.
var ErrUnknownCommand = errors.New("unknown migrate command")

// Migrator runs one migration set against one database.
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
	owned    bool
}

// New builds a Migrator over an open connection. The caller keeps ownership of db.
func New(db *sql.DB, files fs.FS) (*Migrator, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return nil, fmt.Errorf("goose provider: %w", err)
	}
	return &Migrator{db: db, provider: provider}, nil
}

// Open connects to dbURL through the pgx stdlib driver. Close releases the connection.
func Open(dbURL string, files fs.FS) (*Migrator, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	m, err := New(db, files)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	m.owned = true
	return m, nil
}

// Close releases the connection when Open created it.
func (m *Migrator) Close() error {
	if !m.owned {
		return nil
	}
	return m.db.Close()
}

// Up applies every pending migration and returns the versions applied.
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate up: %w", err)
	}
	return versions(results), nil
}

// Down rolls back the most recent migration. It reports no version when
// nothing was applied.
func (m *Migrator) Down(ctx context.Context) ([]int64, error) {
	result, err := m.provider.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("migrate down: %w", err)
	}
	return versions([]*goose.MigrationResult{result}), nil
}

// Status describes one migration and whether it is applied.
type Status struct {
	Version int64
	Source  string
	Applied bool
}

// Status lists every known migration in version order.
func (m *Migrator) Status(ctx context.Context) ([]Status, error) {
	states, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate status: %w", err)
	}
	out := make([]Status, 0, len(states))
	for _, s := range states {
		out = append(out, Status{
			Version: s.Source.Version,
			Source:  s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}

// Up applies pending migrations from files to an open connection.
func Up(ctx context.Context, db *sql.DB, files fs.FS) error {
	m, err := New(db, files)
	if err != nil {
		return err
	}
	_, err = m.Up(ctx)
	return err
}

func versions(results []*goose.MigrationResult) []int64 {
	out := make([]int64, 0, len(results))
	for _, r := range results {
		if r != nil && r.Source != nil {
			out = append(out, r.Source.Version)
		}
	}
	return out
}
