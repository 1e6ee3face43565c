package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/model"
)

// SearchParams holds parameters for searching chat turns.
type SearchParams struct {
	Session string
	Query   string
	Rule    advisor.Rule
	Limit   int
}

// SearchResult wraps a chat turn with the name of its session.
type SearchResult struct {
	model.ChatTurn
	Session string `json:"session"`
}

// SearchTurns finds chat turns whose query or reply contains the substring.
func (s *SQLiteStore) SearchTurns(ctx context.Context, p SearchParams) ([]SearchResult, error) {
	if p.Rule != "" && !advisor.ValidRules[p.Rule] {
		return nil, fmt.Errorf("invalid rule %q (valid: snack, hydration, rice, fallback)", p.Rule)
	}

	where, args := sessionFilter(p.Session)
	if p.Rule != "" {
		where += " AND t.rule = ?"
		args = append(args, string(p.Rule))
	}

	like := "%" + likeEscaper.Replace(p.Query) + "%"
	query := fmt.Sprintf(`
		SELECT t.id, t.session_id, t.query, t.reply, t.rule, t.category, t.created_at, s.name
		FROM chat_turns t
		INNER JOIN sessions s ON s.id = t.session_id
		WHERE %s AND (t.query LIKE ? ESCAPE '\' OR t.reply LIKE ? ESCAPE '\')
		ORDER BY t.id DESC
		LIMIT ?`, where)
	args = append(args, like, like, limitOrDefault(p.Limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		t, err := scanTurn(namedRow{rows, &r.Session})
		if err != nil {
			return nil, err
		}
		r.ChatTurn = t
		results = append(results, r)
	}
	return results, rows.Err()
}

// likeEscaper makes LIKE wildcards in a query match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// namedRow appends one trailing column to a scan.
type namedRow struct {
	scanner
	extra *string
}

func (r namedRow) Scan(dest ...interface{}) error {
	return r.scanner.Scan(append(dest, r.extra)...)
}
