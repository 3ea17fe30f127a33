package slot

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	// Registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/skilltree-api/internal/errors"
	"github.com/KirkDiggler/skilltree-api/internal/pkg/clock"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationTable = "schema_migrations"

// SQLiteConfig holds the configuration for the SQLite repository
type SQLiteConfig struct {
	// Path of the database file
	Path  string
	Clock clock.Clock
}

// Validate ensures all required values are provided
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if strings.TrimSpace(c.Path) == "" {
		vb.RequiredField("Path")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

// SQLiteRepository stores slots in a single SQLite table
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLiteRepository opens the database and applies the embedded migrations
func NewSQLiteRepository(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite database")
	}
	if err := applyMigrations(db, migrationFS); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return &SQLiteRepository{db: db, clock: cfg.Clock}, nil
}

// Ensure SQLiteRepository implements Repository
var _ Repository = (*SQLiteRepository)(nil)

// Close closes the database handle
func (r *SQLiteRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Save upserts the slot row
func (r *SQLiteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}
	if len(input.Payload) == 0 {
		return nil, errors.InvalidArgument(errPayloadEmpty)
	}

	slot := &Slot{
		Name:    input.Name,
		Payload: append([]byte{}, input.Payload...),
		Format:  input.Format,
		SavedAt: r.clock.Now().UTC(),
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO slots (name, payload, format, saved_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   payload = excluded.payload,
		   format = excluded.format,
		   saved_at = excluded.saved_at`,
		slot.Name,
		slot.Payload,
		slot.Format,
		slot.SavedAt.UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save slot %s", input.Name)
	}

	slog.DebugContext(ctx, "Slot saved", "slot", input.Name, "bytes", len(slot.Payload))
	return &SaveOutput{Slot: slot}, nil
}

// Load reads the slot row; a missing row is reported through Found
func (r *SQLiteRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	var (
		payload []byte
		format  string
		savedAt int64
	)
	row := r.db.QueryRowContext(ctx,
		`SELECT payload, format, saved_at FROM slots WHERE name = ?`, input.Name)
	if err := row.Scan(&payload, &format, &savedAt); err != nil {
		if err == sql.ErrNoRows {
			return &LoadOutput{Found: false}, nil
		}
		return nil, errors.Wrapf(err, "failed to load slot %s", input.Name)
	}

	return &LoadOutput{
		Slot: &Slot{
			Name:    input.Name,
			Payload: payload,
			Format:  format,
			SavedAt: time.UnixMilli(savedAt).UTC(),
		},
		Found: true,
	}, nil
}

// Delete removes the slot row
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, input.Name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete slot %s", input.Name)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read affected rows")
	}

	return &DeleteOutput{Deleted: affected > 0}, nil
}

// List returns every slot name
func (r *SQLiteRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT name FROM slots ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan slot name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list slots")
	}

	return &ListOutput{Names: names}, nil
}

// applyMigrations runs each embedded file at most once, recording applied
// files in schema_migrations.
func applyMigrations(db *sql.DB, migrations fs.FS) error {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Strings(files)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
		name TEXT PRIMARY KEY,
		applied_at INTEGER NOT NULL
	)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, file := range files {
		name := filepath.Base(file)

		var found int
		err := db.QueryRow(`SELECT 1 FROM `+migrationTable+` WHERE name = ?`, name).Scan(&found)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration %s: %w", name, err)
		}

		content, err := fs.ReadFile(migrations, file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(upSection(string(content))); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO `+migrationTable+` (name, applied_at) VALUES (?, ?)`,
			name, time.Now().UTC().UnixMilli()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}

	return nil
}

// upSection returns the SQL between the Up and Down markers
func upSection(content string) string {
	const up, down = "-- +migrate Up", "-- +migrate Down"
	if i := strings.Index(content, up); i >= 0 {
		content = content[i+len(up):]
	}
	if i := strings.Index(content, down); i >= 0 {
		content = content[:i]
	}
	return content
}
