package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/fitfizz/internal/model"
)

// ExportAll returns every active session with its full history, optionally
// filtered by session name.
func (s *SQLiteStore) ExportAll(ctx context.Context, name string) ([]model.SessionExport, error) {
	var sessions []model.Session
	if name != "" {
		sess, err := s.GetSession(ctx, name)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	} else {
		all, err := s.ListSessions(ctx)
		if err != nil {
			return nil, err
		}
		sessions = all
	}

	out := make([]model.SessionExport, 0, len(sessions))
	for _, sess := range sessions {
		exp := model.SessionExport{Session: sess}

		rows, err := s.db.QueryContext(ctx,
			`SELECT id, session_id, weight_kg, height_m, bmi, category, created_at
			 FROM measurements WHERE session_id = ? ORDER BY id`, sess.ID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			m, err := scanMeasurement(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			exp.Measurements = append(exp.Measurements, m)
		}
		rows.Close()

		rows, err = s.db.QueryContext(ctx,
			`SELECT id, session_id, query, reply, rule, category, created_at
			 FROM chat_turns WHERE session_id = ? ORDER BY id`, sess.ID)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			t, err := scanTurn(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			exp.Turns = append(exp.Turns, t)
		}
		rows.Close()

		out = append(out, exp)
	}
	return out, nil
}

// Import merges exported sessions by name. Measurements and turns whose ID
// already exists are skipped, so importing the same export twice is a no-op.
// It returns the number of measurements and turns inserted.
func (s *SQLiteStore) Import(ctx context.Context, exports []model.SessionExport) (int, error) {
	imported := 0
	for _, exp := range exports {
		n, err := s.importSession(ctx, exp)
		if err != nil {
			return imported, fmt.Errorf("import %q: %w", exp.Session.Name, err)
		}
		imported += n
	}
	return imported, nil
}

func (s *SQLiteStore) importSession(ctx context.Context, exp model.SessionExport) (int, error) {
	if exp.Session.Name == "" {
		return 0, fmt.Errorf("session name is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	sessionID, err := activeSessionID(ctx, tx, exp.Session.Name)
	if err != nil {
		return 0, err
	}

	updated := exp.Session.UpdatedAt.UTC().Format(time.RFC3339)
	if sessionID == "" {
		sessionID = s.newID()
		created := exp.Session.CreatedAt.UTC().Format(time.RFC3339)
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (id, name, category, bmi, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
			sessionID, exp.Session.Name, exp.Session.Category.Key(), nullBMI(exp.Session.BMI), created, updated)
		if err != nil {
			return 0, fmt.Errorf("insert session: %w", err)
		}
	} else {
		// Newer state wins.
		_, err = tx.ExecContext(ctx,
			`UPDATE sessions SET category = ?, bmi = ?, updated_at = ? WHERE id = ? AND updated_at < ?`,
			exp.Session.Category.Key(), nullBMI(exp.Session.BMI), updated, sessionID, updated)
		if err != nil {
			return 0, fmt.Errorf("update session: %w", err)
		}
	}

	imported := 0
	for _, m := range exp.Measurements {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO measurements (id, session_id, weight_kg, height_m, bmi, category, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, sessionID, m.WeightKg, m.HeightM, m.BMI, m.Category.Key(), m.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return 0, fmt.Errorf("insert measurement: %w", err)
		}
		n, _ := res.RowsAffected()
		imported += int(n)
	}
	for _, t := range exp.Turns {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO chat_turns (id, session_id, query, reply, rule, category, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, sessionID, t.Query, t.Reply, string(t.Rule), t.Category.Key(), t.CreatedAt.UTC().Format(time.RFC3339))
		if err != nil {
			return 0, fmt.Errorf("insert turn: %w", err)
		}
		n, _ := res.RowsAffected()
		imported += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return imported, nil
}

func nullBMI(v float64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
