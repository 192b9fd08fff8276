// Package storage keeps the round ledger for the current visit: every
// answer given in every game session since the arcade started. It uses
// an in-memory SQLite database (pure-Go modernc.org/sqlite driver), so
// nothing outlives the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/learning-arcade/internal/core"
)

// Store manages the in-memory ledger database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// SessionEntry is one game session of this visit.
type SessionEntry struct {
	ID        string
	GameID    string
	Level     int
	Score     int
	Completed bool
	StartedAt time.Time
	EndedAt   time.Time
}

// RoundEntry is one submitted answer.
type RoundEntry struct {
	ID        int64
	SessionID string
	Level     int
	PromptID  string
	Answer    string
	Correct   bool
	Streak    int
	CreatedAt time.Time
}

// Summary aggregates the answers of one session.
type Summary struct {
	SessionID  string
	GameID     string
	Attempts   int
	Correct    int
	BestStreak int
}

// Accuracy returns the share of correct answers, 0..1.
func (s Summary) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// GameStats contains aggregated statistics for one game over the visit.
type GameStats struct {
	GameID     string
	Sessions   int
	Completed  int
	BestScore  int
	Attempts   int
	Correct    int
	BestStreak int
	LastPlayed time.Time
}

// Accuracy returns the share of correct answers, 0..1.
func (g GameStats) Accuracy() float64 {
	if g.Attempts == 0 {
		return 0
	}
	return float64(g.Correct) / float64(g.Attempts)
}

// ErrUnknownSession is returned for a session ID the ledger never issued.
var ErrUnknownSession = errors.New("storage: unknown session")

// Open creates an empty in-memory ledger and runs migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			started_at TEXT NOT NULL,
			ended_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_game_id ON sessions(game_id);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			level INTEGER NOT NULL,
			prompt_id TEXT NOT NULL,
			answer TEXT NOT NULL,
			correct INTEGER NOT NULL,
			streak INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_session_id ON rounds(session_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the ledger.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BeginSession records the start of a game session and returns its ID.
func (s *Store) BeginSession(gameID string, level int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, game_id, level, started_at) VALUES (?, ?, ?, ?)",
		id, gameID, level, formatTime(s.now()),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin session: %w", err)
	}
	return id, nil
}

// RecordRound appends an answer to a session.
func (s *Store) RecordRound(sessionID string, rec core.AnswerRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds (session_id, level, prompt_id, answer, correct, streak, created_at)
		 SELECT id, ?, ?, ?, ?, ?, ? FROM sessions WHERE id = ?`,
		rec.Level, rec.PromptID, rec.Answer, rec.Correct, rec.Streak, formatTime(s.now()), sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record round: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// EndSession stores the final score of a session.
func (s *Store) EndSession(sessionID string, score int, completed bool) error {
	result, err := s.db.Exec(
		"UPDATE sessions SET score = ?, completed = ?, ended_at = ? WHERE id = ?",
		score, completed, formatTime(s.now()), sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	return nil
}

// SessionSummary aggregates the answers of a session.
func (s *Store) SessionSummary(sessionID string) (Summary, error) {
	sum := Summary{SessionID: sessionID}
	err := s.db.QueryRow(
		`SELECT s.game_id, COUNT(r.id), COALESCE(SUM(r.correct), 0), COALESCE(MAX(r.streak), 0)
		 FROM sessions s LEFT JOIN rounds r ON r.session_id = s.id
		 WHERE s.id = ?
		 GROUP BY s.id`,
		sessionID,
	).Scan(&sum.GameID, &sum.Attempts, &sum.Correct, &sum.BestStreak)
	if errors.Is(err, sql.ErrNoRows) {
		return sum, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	if err != nil {
		return sum, fmt.Errorf("storage: cannot summarize session: %w", err)
	}
	return sum, nil
}

// SessionRounds lists a session's answers in the order they were given.
func (s *Store) SessionRounds(sessionID string) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, session_id, level, prompt_id, answer, correct, streak, created_at
		 FROM rounds
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Level, &e.PromptID, &e.Answer, &e.Correct, &e.Streak, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// Sessions lists the sessions of a game, newest first. An empty gameID
// lists every game.
func (s *Store) Sessions(gameID string) ([]SessionEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, level, score, completed, started_at, COALESCE(ended_at, '')
		 FROM sessions
		 WHERE ? = '' OR game_id = ?
		 ORDER BY started_at DESC, rowid DESC`,
		gameID, gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var started, ended string
		if err := rows.Scan(&e.ID, &e.GameID, &e.Level, &e.Score, &e.Completed, &started, &ended); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.StartedAt = parseTime(started)
		e.EndedAt = parseTime(ended)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// GetAllGamesStats retrieves statistics for every game played this visit.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT s.game_id,
		        COUNT(DISTINCT s.id),
		        COUNT(DISTINCT CASE WHEN s.completed THEN s.id END),
		        COALESCE(MAX(s.score), 0),
		        COUNT(r.id),
		        COALESCE(SUM(r.correct), 0),
		        COALESCE(MAX(r.streak), 0),
		        MAX(s.started_at)
		 FROM sessions s LEFT JOIN rounds r ON r.session_id = s.id
		 GROUP BY s.game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var g GameStats
		var lastPlayed string
		if err := rows.Scan(&g.GameID, &g.Sessions, &g.Completed, &g.BestScore, &g.Attempts, &g.Correct, &g.BestStreak, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		g.LastPlayed = parseTime(lastPlayed)
		stats[g.GameID] = &g
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// Fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02 15:04:05.000000000"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
