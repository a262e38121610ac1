package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Privacy-conscious visitor record. Raw IPs are never stored.
type VisitorMetric struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// InteractionStat counts one kind of page interaction on one target.
type InteractionStat struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Count  int64  `json:"count"`
}

type AdminStats struct {
	TotalVisitors     int64             `json:"total_visitors"`
	UniqueVisitors    int64             `json:"unique_visitors"`
	VisitorsToday     int64             `json:"visitors_today"`
	VisitorsThisWeek  int64             `json:"visitors_this_week"`
	TotalInteractions int64             `json:"total_interactions"`
	EmailCopies       int64             `json:"email_copies"`
	EmailCopyFailures int64             `json:"email_copy_failures"`
	TopInteractions   []InteractionStat `json:"top_interactions"`
	RecentVisitors    []VisitorMetric   `json:"recent_visitors"`
}

// Interaction kinds recorded by the fragment handlers.
const (
	kindHireToggle      = "hire_toggle"
	kindServiceOpen     = "service_open"
	kindCarousel        = "carousel"
	kindEmailCopy       = "email_copy"
	kindEmailCopyFailed = "email_copy_failed"
	kindContactCheck    = "contact_check"
)

type store struct {
	db *sql.DB
}

func openStore(path string) (*store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// openMemoryStore is used by tests. A single connection keeps every
// query on the same in-memory database.
func openMemoryStore() (*store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *store) Close() error { return s.db.Close() }

func (s *store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,  -- hashed, never the raw IP
			user_agent TEXT,
			path TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			kind TEXT NOT NULL,
			target TEXT NOT NULL DEFAULT '',
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_kind ON interactions(kind, target)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *store) recordVisit(hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO visitors (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, userAgent, path, at.UTC())
	return err
}

func (s *store) recordInteraction(hashedIP, kind, target string, at time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO interactions (hashed_ip, kind, target, timestamp)
		VALUES (?, ?, ?, ?)
	`, hashedIP, kind, target, at.UTC())
	return err
}

// cleanup drops visitor and interaction rows older than the retention window.
func (s *store) cleanup(retentionDays int, now time.Time) (int64, error) {
	cutoff := now.UTC().AddDate(0, 0, -retentionDays)

	var total int64
	for _, table := range []string{"visitors", "interactions"} {
		res, err := s.db.Exec(`DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleaning %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

func (s *store) recentVisitors(limit int) ([]VisitorMetric, error) {
	rows, err := s.db.Query(`
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visitors []VisitorMetric
	for rows.Next() {
		var v VisitorMetric
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			continue
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (s *store) stats(now time.Time) (*AdminStats, error) {
	stats := &AdminStats{}
	now = now.UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.AddDate(0, 0, -7)}},
		{&stats.TotalInteractions, `SELECT COUNT(*) FROM interactions`, nil},
		{&stats.EmailCopies, `SELECT COUNT(*) FROM interactions WHERE kind = ?`, []any{kindEmailCopy}},
		{&stats.EmailCopyFailures, `SELECT COUNT(*) FROM interactions WHERE kind = ?`, []any{kindEmailCopyFailed}},
	}
	for _, q := range counts {
		if err := s.db.QueryRow(q.query, q.args...).Scan(q.dst); err != nil {
			return nil, err
		}
	}

	rows, err := s.db.Query(`
		SELECT kind, target, COUNT(*) AS n
		FROM interactions
		GROUP BY kind, target
		ORDER BY n DESC, kind, target
		LIMIT 10
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var is InteractionStat
		if err := rows.Scan(&is.Kind, &is.Target, &is.Count); err != nil {
			continue
		}
		stats.TopInteractions = append(stats.TopInteractions, is)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.RecentVisitors, err = s.recentVisitors(50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
