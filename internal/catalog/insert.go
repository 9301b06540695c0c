package catalog

import (
	"context"
	"fmt"

	"github.com/oracle-developer/xplan/internal/plan"
)

// Insert helpers used by the load command and test fixtures. Empty
// strings, zero statistics and the NoParent sentinel are stored as NULL.

// InsertStatementSteps records one explained plan under a statement id.
func (s *Store) InsertStatementSteps(ctx context.Context, statementID string, planID int64, steps []plan.Step) error {
	return s.insert(ctx, "plan_table", "statement_id, plan_id", statementID, planID, steps)
}

// InsertCursorSteps records one child cursor's plan.
func (s *Store) InsertCursorSteps(ctx context.Context, sqlID string, child int64, steps []plan.Step) error {
	return s.insert(ctx, "cursor_plans", "sql_id, child_number", sqlID, child, steps)
}

// InsertHistorySteps records one historical plan.
func (s *Store) InsertHistorySteps(ctx context.Context, sqlID string, planHash int64, steps []plan.Step) error {
	return s.insert(ctx, "plan_history", "sql_id, plan_hash_value", sqlID, planHash, steps)
}

func (s *Store) insert(ctx context.Context, table, keyCols string, textKey string, numKey int64, steps []plan.Step) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &AccessError{Op: "insert", Err: err}
	}
	defer tx.Rollback()

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		table, keyCols, stepColumns)
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return &AccessError{Op: "insert", Err: err}
	}
	defer stmt.Close()

	for _, step := range steps {
		_, err := stmt.ExecContext(ctx, textKey, numKey,
			step.ID,
			nullableInt(int64(step.ParentID), int64(plan.NoParent)),
			nullableText(step.Operation),
			nullableText(step.Options),
			nullableText(step.Owner),
			nullableText(step.Name),
			nullableInt(int64(step.Depth), 0),
			nullableInt(step.Rows, 0),
			nullableInt(step.Bytes, 0),
			nullableInt(step.Cost, 0),
			nullableText(step.AccessPred),
			nullableText(step.FilterPred),
		)
		if err != nil {
			return &AccessError{Op: "insert", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &AccessError{Op: "insert", Err: err}
	}
	return nil
}

func nullableText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableInt(v, absent int64) interface{} {
	if v == absent {
		return nil
	}
	return v
}
