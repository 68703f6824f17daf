package history

import (
	"context"
	"database/sql"

	"recipe-planner/internal/core/plan"
	"recipe-planner/internal/pkg/common"

	"go.uber.org/zap"
)

// historyLimit caps how many past names feed back into a prompt. Newest
// entries win.
const historyLimit = 100

// Store persists generated recipe names per scope key so later generations
// can avoid repeating them. Every method degrades silently: history is an
// enhancement and must never fail a generation call.
type Store struct {
	db *sql.DB
}

// New creates a history store. db may be nil, in which case the store is a
// no-op.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Recent returns up to historyLimit recipe names for the scope, newest first.
// Failures log a warning and return an empty list.
func (s *Store) Recent(ctx context.Context, scope string) []string {
	if s.db == nil {
		return nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM recipe_history
		 WHERE scope_key = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scope, historyLimit,
	)
	if err != nil {
		common.LogWarn("failed to read recipe history", zap.Error(err))
		return nil
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			common.LogWarn("failed to scan recipe history row", zap.Error(err))
			return nil
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		common.LogWarn("failed to iterate recipe history", zap.Error(err))
		return nil
	}

	return names
}

// Append records the given entries for the scope. Duplicate names within a
// scope are ignored; failures log and move on.
func (s *Store) Append(ctx context.Context, scope string, entries []plan.HistoryEntry) {
	if s.db == nil || len(entries) == 0 {
		return
	}

	for _, entry := range entries {
		if entry.Name == "" {
			continue
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO recipe_history (name, category, scope_key)
			 VALUES (?, ?, ?)`,
			entry.Name, entry.Category, scope,
		)
		if err != nil {
			common.LogWarn("failed to record recipe history",
				zap.String("name", entry.Name),
				zap.Error(err),
			)
		}
	}
}
