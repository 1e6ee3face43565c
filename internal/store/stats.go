package store

import (
	"context"
	"os"

	"github.com/rcliao/fitfizz/internal/advisor"
)

// Stats holds database statistics.
type Stats struct {
	DBPath            string          `json:"db_path"`
	DBSizeBytes       int64           `json:"db_size_bytes"`
	TotalSessions     int             `json:"total_sessions"`
	ActiveSessions    int             `json:"active_sessions"`
	TotalMeasurements int             `json:"total_measurements"`
	TotalTurns        int             `json:"total_turns"`
	Categories        []CategoryStats `json:"categories"`
	Rules             []RuleStats     `json:"rules"`
}

// CategoryStats counts active sessions currently in a category.
type CategoryStats struct {
	Category advisor.Category `json:"category"`
	Sessions int              `json:"sessions"`
}

// RuleStats counts chat turns answered by a rule.
type RuleStats struct {
	Rule  advisor.Rule `json:"rule"`
	Count int          `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&st.TotalSessions)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE deleted_at IS NULL`).Scan(&st.ActiveSessions)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM measurements`).Scan(&st.TotalMeasurements)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_turns`).Scan(&st.TotalTurns)

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) AS cnt
		FROM sessions WHERE deleted_at IS NULL AND category != ''
		GROUP BY category ORDER BY cnt DESC, category`)
	if err != nil {
		return st, err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var cs CategoryStats
		if err := rows.Scan(&key, &cs.Sessions); err != nil {
			return st, err
		}
		if err := cs.Category.UnmarshalText([]byte(key)); err != nil {
			return st, err
		}
		st.Categories = append(st.Categories, cs)
	}
	if err := rows.Err(); err != nil {
		return st, err
	}

	ruleRows, err := s.db.QueryContext(ctx, `
		SELECT rule, COUNT(*) AS cnt FROM chat_turns
		GROUP BY rule ORDER BY cnt DESC, rule`)
	if err != nil {
		return st, err
	}
	defer ruleRows.Close()
	for ruleRows.Next() {
		var rule string
		var rs RuleStats
		if err := ruleRows.Scan(&rule, &rs.Count); err != nil {
			return st, err
		}
		rs.Rule = advisor.Rule(rule)
		st.Rules = append(st.Rules, rs)
	}

	return st, ruleRows.Err()
}
