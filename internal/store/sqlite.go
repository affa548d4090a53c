package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/rcliao/action-shelf/internal/model"
)

// SQLiteGateway persists the collection in a SQLite database, one row per
// record, ordered by position.
type SQLiteGateway struct {
	db *sql.DB
}

// NewSQLiteGateway opens or creates a SQLite database at the given path.
func NewSQLiteGateway(dbPath string) (*SQLiteGateway, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	g := &SQLiteGateway{db: db}
	if err := g.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return g, nil
}

func (g *SQLiteGateway) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS actions (
		position        INTEGER PRIMARY KEY,
		id              TEXT,
		name            TEXT NOT NULL,
		alias           TEXT NOT NULL DEFAULT '',
		description     TEXT NOT NULL,
		transition_mode TEXT NOT NULL,
		pack            TEXT NOT NULL,
		transitions     TEXT NOT NULL DEFAULT '[]',
		raw_json        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_actions_id ON actions(id);
	`
	_, err := g.db.Exec(schema)
	return err
}

// Load returns every row ordered by position.
func (g *SQLiteGateway) Load(ctx context.Context) ([]model.Action, error) {
	rows, err := g.db.QueryContext(ctx,
		`SELECT id, name, alias, description, transition_mode, pack, transitions, raw_json
		 FROM actions ORDER BY position`)
	if err != nil {
		return []model.Action{}, err
	}
	defer rows.Close()

	actions := []model.Action{}
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return []model.Action{}, err
		}
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return []model.Action{}, err
	}
	return actions, nil
}

// Save replaces all rows inside one transaction.
func (g *SQLiteGateway) Save(ctx context.Context, actions []model.Action) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM actions`); err != nil {
		return fmt.Errorf("clear actions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO actions (position, id, name, alias, description, transition_mode, pack, transitions, raw_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, a := range actions {
		transitions := a.Transitions
		if transitions == nil {
			transitions = []model.Transition{}
		}
		b, err := json.Marshal(transitions)
		if err != nil {
			return fmt.Errorf("encode transitions: %w", err)
		}
		_, err = stmt.ExecContext(ctx, i, a.ID, a.Name, a.Alias, a.Description,
			a.TransitionMode, a.Pack, string(b), a.Raw)
		if err != nil {
			return fmt.Errorf("insert action: %w", err)
		}
	}

	return tx.Commit()
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAction(row scanner) (model.Action, error) {
	var a model.Action
	var id sql.NullString
	var transitions string

	err := row.Scan(&id, &a.Name, &a.Alias, &a.Description, &a.TransitionMode,
		&a.Pack, &transitions, &a.Raw)
	if err != nil {
		return a, err
	}
	if id.Valid {
		a.ID = id.String
	}
	if err := json.Unmarshal([]byte(transitions), &a.Transitions); err != nil {
		return a, fmt.Errorf("%w: transitions of %q: %v", ErrMalformed, a.Name, err)
	}
	return a, nil
}
