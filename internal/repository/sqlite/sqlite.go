package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"familytree/internal/domain"
	"familytree/internal/repository"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New opens (creating if needed) the snapshot database at dbPath
func New(dbPath string) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		gender TEXT NOT NULL,
		mother TEXT,
		spouse TEXT
	);

	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY,
		kind TEXT NOT NULL,
		anchor TEXT NOT NULL,
		name TEXT NOT NULL,
		gender TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_people_name ON people(name);
	CREATE INDEX IF NOT EXISTS idx_people_mother ON people(mother);
	`

	_, err := r.db.Exec(schema)
	return err
}

// WriteFamily replaces the stored snapshot with family in one transaction
func (r *Repository) WriteFamily(ctx context.Context, family *domain.Family) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM people`); err != nil {
		return fmt.Errorf("failed to clear people: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}

	personStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO people (`+personColumns+`) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare people insert: %w", err)
	}
	defer personStmt.Close()

	for i, p := range family.Members() {
		if _, err := personStmt.ExecContext(ctx, personInsertArgs(i, p)...); err != nil {
			return fmt.Errorf("failed to insert person %s: %w", p.Name, err)
		}
	}

	eventStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare events insert: %w", err)
	}
	defer eventStmt.Close()

	fragment := family.Fragment()
	for i, e := range fragment.Events {
		if _, err := eventStmt.ExecContext(ctx, i, string(e.Kind), e.Anchor, e.Name, e.Gender); err != nil {
			return fmt.Errorf("failed to insert event %d: %w", i, err)
		}
	}

	metaStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare metadata upsert: %w", err)
	}
	defer metaStmt.Close()

	for key, value := range map[string]string{"father": fragment.Father, "mother": fragment.Mother} {
		if _, err := metaStmt.ExecContext(ctx, key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListPeople returns stored members in registry order
func (r *Repository) ListPeople(ctx context.Context) ([]repository.PersonRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+personColumns+` FROM people ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	people := make([]repository.PersonRecord, 0)
	for rows.Next() {
		var row personRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, row.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}
	return people, nil
}

// ListEvents returns stored history events in order
func (r *Repository) ListEvents(ctx context.Context) ([]repository.EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := make([]repository.EventRecord, 0)
	for rows.Next() {
		var row eventRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, row.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}
	return events, nil
}

// Founders returns the founding couple recorded with the last snapshot.
// Both are empty when nothing has been written yet.
func (r *Repository) Founders(ctx context.Context) (father, mother string, err error) {
	father, err = r.metadata(ctx, "father")
	if err != nil {
		return "", "", err
	}
	mother, err = r.metadata(ctx, "mother")
	if err != nil {
		return "", "", err
	}
	return father, mother, nil
}

func (r *Repository) metadata(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query %s: %w", key, err)
	}
	return value, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
