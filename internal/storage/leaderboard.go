package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLimit is used when a query asks for a non-positive number of rows.
const DefaultLimit = 10

// Player is one finished run on the leaderboard.
type Player struct {
	ID        int64
	Name      string
	Elapsed   time.Duration
	CreatedAt time.Time
}

// Stats contains aggregated leaderboard statistics.
type Stats struct {
	Runs       int
	Players    int
	Best       time.Duration
	Average    time.Duration
	LastPlayed time.Time
}

// AddScore records a finished run. Returns the ID of the inserted record.
func (s *Store) AddScore(p Player) (int64, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return 0, fmt.Errorf("storage: player name is empty")
	}
	if p.Elapsed < 0 {
		return 0, fmt.Errorf("storage: negative elapsed time %v", p.Elapsed)
	}

	var id int64
	err := s.db.QueryRow(
		s.rebind("INSERT INTO leaderboard (name, elapsed_ms) VALUES (?, ?) RETURNING id"),
		name, p.Elapsed.Milliseconds(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	return id, nil
}

// TopPlayers retrieves the best N runs across all players, longest first.
func (s *Store) TopPlayers(limit int) ([]Player, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return s.queryPlayers(
		`SELECT id, name, elapsed_ms, created_at
		 FROM leaderboard
		 ORDER BY elapsed_ms DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerTopScores retrieves the best N runs of a single player, longest first.
func (s *Store) PlayerTopScores(name string, limit int) ([]Player, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	return s.queryPlayers(
		`SELECT id, name, elapsed_ms, created_at
		 FROM leaderboard
		 WHERE name = ?
		 ORDER BY elapsed_ms DESC, id ASC
		 LIMIT ?`,
		strings.TrimSpace(name), limit,
	)
}

func (s *Store) queryPlayers(query string, args ...any) ([]Player, error) {
	rows, err := s.db.Query(s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var elapsedMS int64
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Name, &elapsedMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		p.CreatedAt = parseTime(createdAt)
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return players, nil
}

// BestTime returns the longest run for the given player, or across all
// players when name is empty. Returns 0 if no runs exist.
func (s *Store) BestTime(name string) (time.Duration, error) {
	var best sql.NullInt64
	var err error

	name = strings.TrimSpace(name)
	if name == "" {
		err = s.db.QueryRow("SELECT MAX(elapsed_ms) FROM leaderboard").Scan(&best)
	} else {
		err = s.db.QueryRow(s.rebind("SELECT MAX(elapsed_ms) FROM leaderboard WHERE name = ?"), name).Scan(&best)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}

	return time.Duration(best.Int64) * time.Millisecond, nil
}

// Stats retrieves aggregated statistics for the whole leaderboard.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var best int64
	var avg float64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT name), COALESCE(MAX(elapsed_ms), 0), COALESCE(AVG(elapsed_ms), 0)
		 FROM leaderboard`,
	).Scan(&stats.Runs, &stats.Players, &best, &avg)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.Best = time.Duration(best) * time.Millisecond
	stats.Average = time.Duration(avg * float64(time.Millisecond))

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM leaderboard ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// Reset deletes every leaderboard record.
func (s *Store) Reset() error {
	if _, err := s.db.Exec("DELETE FROM leaderboard"); err != nil {
		return fmt.Errorf("storage: cannot reset leaderboard: %w", err)
	}
	return nil
}
