package store

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/model"
	"github.com/rcliao/fitfizz/internal/observability"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	// Transactions read then write; BEGIN IMMEDIATE takes the write lock up
	// front so concurrent writers wait on busy_timeout instead of failing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	observability.Logger().Debug("store opened", "path", dbPath)
	return s, nil
}

// newID returns a ULID. IDs from one store sort in creation order.
func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		category    TEXT NOT NULL DEFAULT '',
		bmi         REAL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		deleted_at  TEXT
	);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_active_name ON sessions(name) WHERE deleted_at IS NULL;
	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);

	CREATE TABLE IF NOT EXISTS measurements (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES sessions(id),
		weight_kg   REAL NOT NULL,
		height_m    REAL NOT NULL,
		bmi         REAL NOT NULL,
		category    TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_measurements_session ON measurements(session_id);

	CREATE TABLE IF NOT EXISTS chat_turns (
		id          TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES sessions(id),
		query       TEXT NOT NULL,
		reply       TEXT NOT NULL,
		rule        TEXT NOT NULL,
		category    TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_turns_session ON chat_turns(session_id);
	CREATE INDEX IF NOT EXISTS idx_turns_rule ON chat_turns(rule);
	`
	_, err := s.db.Exec(schema)
	return err
}

// activeSessionID looks up the active session by name. It returns "" and
// no error when there is none.
func activeSessionID(ctx context.Context, q querier, name string) (string, error) {
	var id string
	err := q.QueryRowContext(ctx,
		`SELECT id FROM sessions WHERE name = ? AND deleted_at IS NULL`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return id, err
}

func (s *SQLiteStore) RecordAssessment(ctx context.Context, p AssessmentParams) (*model.Measurement, error) {
	if strings.TrimSpace(p.Session) == "" {
		return nil, fmt.Errorf("session name is required")
	}
	now := time.Now().UTC()
	ts := now.Format(time.RFC3339)
	a := p.Assessment

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	sessionID, err := activeSessionID(ctx, tx, p.Session)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sessionID == "" {
		sessionID = s.newID()
		_, err = tx.ExecContext(ctx,
			`INSERT INTO sessions (id, name, category, created_at, updated_at) VALUES (?, ?, '', ?, ?)`,
			sessionID, p.Session, ts, ts)
		if err != nil {
			return nil, fmt.Errorf("insert session: %w", err)
		}
	}

	id := s.newID()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO measurements (id, session_id, weight_kg, height_m, bmi, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, sessionID, a.Measurement.WeightKg, a.Measurement.HeightM, a.BMI, a.Category.Key(), ts)
	if err != nil {
		return nil, fmt.Errorf("insert measurement: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE sessions SET category = ?, bmi = ?, updated_at = ? WHERE id = ?`,
		a.Category.Key(), a.BMI, ts, sessionID)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Measurement{
		ID:        id,
		SessionID: sessionID,
		WeightKg:  a.Measurement.WeightKg,
		HeightM:   a.Measurement.HeightM,
		BMI:       a.BMI,
		Category:  a.Category,
		CreatedAt: now,
	}, nil
}

const sessionColumns = `s.id, s.name, s.category, s.bmi, s.created_at, s.updated_at, s.deleted_at,
	(SELECT COUNT(*) FROM measurements m WHERE m.session_id = s.id),
	(SELECT COUNT(*) FROM chat_turns t WHERE t.session_id = s.id)`

func (s *SQLiteStore) GetSession(ctx context.Context, name string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions s WHERE s.name = ? AND s.deleted_at IS NULL`, name)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *SQLiteStore) RecordTurn(ctx context.Context, p TurnParams) (*model.ChatTurn, error) {
	now := time.Now().UTC()
	ts := now.Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	sessionID, err := activeSessionID(ctx, tx, p.Session)
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session %q: %w", p.Session, ErrNotFound)
	}

	id := s.newID()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO chat_turns (id, session_id, query, reply, rule, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, sessionID, p.Query, p.Reply.Text, string(p.Reply.Rule), p.Category.Key(), ts)
	if err != nil {
		return nil, fmt.Errorf("insert turn: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, ts, sessionID); err != nil {
		return nil, fmt.Errorf("touch session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.ChatTurn{
		ID:        id,
		SessionID: sessionID,
		Query:     p.Query,
		Reply:     p.Reply.Text,
		Rule:      p.Reply.Rule,
		Category:  p.Category,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStore) ListMeasurements(ctx context.Context, p ListParams) ([]model.Measurement, error) {
	where, args := sessionFilter(p.Session)
	query := fmt.Sprintf(`
		SELECT m.id, m.session_id, m.weight_kg, m.height_m, m.bmi, m.category, m.created_at
		FROM measurements m
		INNER JOIN sessions s ON s.id = m.session_id
		WHERE %s
		ORDER BY m.id DESC
		LIMIT ?`, where)
	args = append(args, limitOrDefault(p.Limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListTurns(ctx context.Context, p ListParams) ([]model.ChatTurn, error) {
	where, args := sessionFilter(p.Session)
	query := fmt.Sprintf(`
		SELECT t.id, t.session_id, t.query, t.reply, t.rule, t.category, t.created_at
		FROM chat_turns t
		INNER JOIN sessions s ON s.id = t.session_id
		WHERE %s
		ORDER BY t.id DESC
		LIMIT ?`, where)
	args = append(args, limitOrDefault(p.Limit))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChatTurn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListSessions(ctx context.Context) ([]model.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions s WHERE s.deleted_at IS NULL ORDER BY s.updated_at DESC, s.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RmSession(ctx context.Context, p RmParams) error {
	if p.Hard {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		// Hard delete removes every session with the name, including
		// previously soft-deleted ones.
		var n int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE name = ?`, p.Name).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("session %q: %w", p.Name, ErrNotFound)
		}
		for _, table := range []string{"measurements", "chat_turns"} {
			_, err := tx.ExecContext(ctx,
				`DELETE FROM `+table+` WHERE session_id IN (SELECT id FROM sessions WHERE name = ?)`, p.Name)
			if err != nil {
				return fmt.Errorf("delete %s: %w", table, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, p.Name); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return tx.Commit()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET deleted_at = ? WHERE name = ? AND deleted_at IS NULL`, now, p.Name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %q: %w", p.Name, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func sessionFilter(name string) (string, []interface{}) {
	where := []string{"s.deleted_at IS NULL"}
	var args []interface{}
	if name != "" {
		where = append(where, "s.name = ?")
		args = append(args, name)
	}
	return strings.Join(where, " AND "), args
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

func scanSession(row scanner) (model.Session, error) {
	var sess model.Session
	var category, createdAt, updatedAt string
	var bmi sql.NullFloat64
	var deletedAt sql.NullString

	err := row.Scan(&sess.ID, &sess.Name, &category, &bmi, &createdAt, &updatedAt, &deletedAt,
		&sess.Measurements, &sess.Turns)
	if err != nil {
		return sess, err
	}

	if err := sess.Category.UnmarshalText([]byte(category)); err != nil {
		return sess, err
	}
	if bmi.Valid {
		sess.BMI = bmi.Float64
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	if deletedAt.Valid {
		t, _ := time.Parse(time.RFC3339, deletedAt.String)
		sess.DeletedAt = &t
	}
	return sess, nil
}

func scanMeasurement(row scanner) (model.Measurement, error) {
	var m model.Measurement
	var category, createdAt string

	err := row.Scan(&m.ID, &m.SessionID, &m.WeightKg, &m.HeightM, &m.BMI, &category, &createdAt)
	if err != nil {
		return m, err
	}
	if err := m.Category.UnmarshalText([]byte(category)); err != nil {
		return m, err
	}
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return m, nil
}

func scanTurn(row scanner) (model.ChatTurn, error) {
	var t model.ChatTurn
	var rule, category, createdAt string

	err := row.Scan(&t.ID, &t.SessionID, &t.Query, &t.Reply, &rule, &category, &createdAt)
	if err != nil {
		return t, err
	}
	t.Rule = advisor.Rule(rule)
	if err := t.Category.UnmarshalText([]byte(category)); err != nil {
		return t, err
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return t, nil
}
