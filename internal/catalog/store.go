// Package catalog is the SQLite-backed plan-step catalog: the flat
// id/parent-id tables the annotator derives execution order from. Three
// sources are supported, one table each: explained statements
// (plan_table), live cursors (cursor_plans) and historical plans
// (plan_history).
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/oracle-developer/xplan/internal/plan"
)

// AccessError wraps a failure to reach or query the catalog. Always
// fatal; the report is never produced from partial catalog data.
type AccessError struct {
	Op  string
	Err error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("plan catalog %s: %v", e.Op, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

const schema = `
CREATE TABLE IF NOT EXISTS plan_table (
	statement_id      TEXT NOT NULL,
	plan_id           INTEGER NOT NULL DEFAULT 0,
	id                INTEGER NOT NULL,
	parent_id         INTEGER,
	operation         TEXT,
	options           TEXT,
	object_owner      TEXT,
	object_name       TEXT,
	depth             INTEGER,
	cardinality       INTEGER,
	bytes             INTEGER,
	cost              INTEGER,
	access_predicates TEXT,
	filter_predicates TEXT
);
CREATE INDEX IF NOT EXISTS idx_plan_table_stmt ON plan_table(statement_id, plan_id, id);

CREATE TABLE IF NOT EXISTS cursor_plans (
	sql_id            TEXT NOT NULL,
	child_number      INTEGER NOT NULL,
	id                INTEGER NOT NULL,
	parent_id         INTEGER,
	operation         TEXT,
	options           TEXT,
	object_owner      TEXT,
	object_name       TEXT,
	depth             INTEGER,
	cardinality       INTEGER,
	bytes             INTEGER,
	cost              INTEGER,
	access_predicates TEXT,
	filter_predicates TEXT
);
CREATE INDEX IF NOT EXISTS idx_cursor_plans_sql ON cursor_plans(sql_id, child_number, id);

CREATE TABLE IF NOT EXISTS plan_history (
	sql_id            TEXT NOT NULL,
	plan_hash_value   INTEGER NOT NULL,
	id                INTEGER NOT NULL,
	parent_id         INTEGER,
	operation         TEXT,
	options           TEXT,
	object_owner      TEXT,
	object_name       TEXT,
	depth             INTEGER,
	cardinality       INTEGER,
	bytes             INTEGER,
	cost              INTEGER,
	access_predicates TEXT,
	filter_predicates TEXT
);
CREATE INDEX IF NOT EXISTS idx_plan_history_sql ON plan_history(sql_id, plan_hash_value, id);
`

// Store is a read-mostly catalog handle. One invocation opens it, runs
// its queries and closes it; nothing is cached across invocations.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens (creating if needed) the catalog database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &AccessError{Op: "open", Err: err}
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logger.Debug("failed to set sqlite journal_mode=WAL", zap.Error(err))
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &AccessError{Op: "open", Err: err}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, &AccessError{Op: "init schema", Err: err}
	}

	logger.Debug("plan catalog opened", zap.String("path", path))
	return &Store{db: db, path: path, logger: logger}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying handle for fixtures and tooling.
func (s *Store) DB() *sql.DB { return s.db }

const stepColumns = `id, parent_id, operation, options, object_owner, object_name,
	depth, cardinality, bytes, cost, access_predicates, filter_predicates`

// ByStatement fetches the plan steps recorded for an explained
// statement, one group per plan_id, ascending.
func (s *Store) ByStatement(ctx context.Context, statementID string) ([]plan.Group, error) {
	query := `SELECT plan_id, ` + stepColumns + `
		FROM plan_table WHERE statement_id = ?
		ORDER BY plan_id, id`
	return s.groups(ctx, "by statement", query, statementID)
}

// ByCursor fetches the plan steps of a live cursor. A negative child
// selects every child, one group per child number, ascending.
func (s *Store) ByCursor(ctx context.Context, sqlID string, child int64) ([]plan.Group, error) {
	if child >= 0 {
		query := `SELECT child_number, ` + stepColumns + `
			FROM cursor_plans WHERE sql_id = ? AND child_number = ?
			ORDER BY child_number, id`
		return s.groups(ctx, "by cursor", query, sqlID, child)
	}
	query := `SELECT child_number, ` + stepColumns + `
		FROM cursor_plans WHERE sql_id = ?
		ORDER BY child_number, id`
	return s.groups(ctx, "by cursor", query, sqlID)
}

// ByHistory fetches historical plans for a statement. A negative
// planHash selects every recorded plan, one group per hash, ascending.
func (s *Store) ByHistory(ctx context.Context, sqlID string, planHash int64) ([]plan.Group, error) {
	if planHash >= 0 {
		query := `SELECT plan_hash_value, ` + stepColumns + `
			FROM plan_history WHERE sql_id = ? AND plan_hash_value = ?
			ORDER BY plan_hash_value, id`
		return s.groups(ctx, "by history", query, sqlID, planHash)
	}
	query := `SELECT plan_hash_value, ` + stepColumns + `
		FROM plan_history WHERE sql_id = ?
		ORDER BY plan_hash_value, id`
	return s.groups(ctx, "by history", query, sqlID)
}

func (s *Store) groups(ctx context.Context, op, query string, args ...interface{}) ([]plan.Group, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &AccessError{Op: op, Err: err}
	}
	defer rows.Close()

	var out []plan.Group
	for rows.Next() {
		var (
			key                    int64
			step                   plan.Step
			parent                 sql.NullInt64
			operation, options     sql.NullString
			owner, name            sql.NullString
			depth, card, byt, cost sql.NullInt64
			accessPred, filterPred sql.NullString
		)
		err := rows.Scan(&key, &step.ID, &parent, &operation, &options, &owner, &name,
			&depth, &card, &byt, &cost, &accessPred, &filterPred)
		if err != nil {
			return nil, &AccessError{Op: op, Err: err}
		}
		step.ParentID = int(nullInt(parent, plan.NoParent))
		step.Operation = operation.String
		step.Options = options.String
		step.Owner = owner.String
		step.Name = name.String
		step.Depth = int(nullInt(depth, 0))
		step.Rows = nullInt(card, 0)
		step.Bytes = nullInt(byt, 0)
		step.Cost = nullInt(cost, 0)
		step.AccessPred = accessPred.String
		step.FilterPred = filterPred.String

		if len(out) == 0 || out[len(out)-1].Key != key {
			out = append(out, plan.Group{Key: key})
		}
		g := &out[len(out)-1]
		g.Steps = append(g.Steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, &AccessError{Op: op, Err: err}
	}
	s.logger.Debug("catalog fetch complete", zap.String("op", op), zap.Int("groups", len(out)))
	return out, nil
}

func nullInt(v sql.NullInt64, absent int64) int64 {
	if !v.Valid {
		return absent
	}
	return v.Int64
}
