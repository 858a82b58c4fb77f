package sink

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"

	"wolfarena/internal/game"
)

// ErrGameNotFound is returned when a game id has no stored record.
var ErrGameNotFound = errors.New("game not found")

// DB is a SQLite store for game records. One DB serves many games; each
// game writes through its own GameSink.
type DB struct {
	db  *sql.DB
	log *log.Logger
}

// NewDB opens (or creates) the SQLite database at path.
func NewDB(path string, logger *log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sink: open database: %w", err)
	}

	// One connection: concurrent games write through here, and a second
	// pooled connection would mean SQLITE_BUSY or, for :memory: paths, a
	// second empty database.
	db.SetMaxOpenConns(1)

	// WAL mode so the service can read results while games are writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("sink: enable WAL mode: %w", err)
	}

	return &DB{db: db, log: logger}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Migrate creates the schema.
func (d *DB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			payload TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (game_id) REFERENCES games(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_game ON events(game_id, seq)`,
		`CREATE TABLE IF NOT EXISTS votes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			voter TEXT NOT NULL,
			target TEXT NOT NULL,
			FOREIGN KEY (game_id) REFERENCES games(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_votes_game ON votes(game_id, round)`,
		`CREATE TABLE IF NOT EXISTS metrics (
			game_id TEXT PRIMARY KEY,
			winner TEXT NOT NULL,
			rounds_played INTEGER NOT NULL,
			report TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (game_id) REFERENCES games(id)
		)`,
	}

	for _, migration := range migrations {
		if _, err := d.db.Exec(migration); err != nil {
			return fmt.Errorf("sink: migration failed: %w", err)
		}
	}

	return nil
}

// CreateGame registers a game id so it lists before any event lands.
// Registering an existing id is a no-op.
func (d *DB) CreateGame(gameID string) error {
	if _, err := d.db.Exec(`INSERT OR IGNORE INTO games (id) VALUES (?)`, gameID); err != nil {
		return fmt.Errorf("sink: register game: %w", err)
	}
	return nil
}

// GameSink registers gameID and returns the sink that persists its run.
func (d *DB) GameSink(gameID string) (*DBSink, error) {
	if err := d.CreateGame(gameID); err != nil {
		return nil, err
	}
	return &DBSink{db: d, gameID: gameID}, nil
}

// DBSink persists one game's records. Write failures are logged and
// swallowed; the game must not fail because its log did.
type DBSink struct {
	db     *DB
	gameID string
	seq    int
}

func (s *DBSink) RecordEvent(kind string, payload any) {
	s.seq++
	data, err := json.Marshal(payload)
	if err != nil {
		s.db.log.Printf("sink: marshal event %s: %v", kind, err)
		return
	}
	_, err = s.db.db.Exec(`INSERT INTO events (game_id, seq, kind, payload) VALUES (?, ?, ?, ?)`,
		s.gameID, s.seq, kind, string(data))
	if err != nil {
		s.db.log.Printf("sink: insert event %s: %v", kind, err)
	}
}

func (s *DBSink) RecordVote(round int, votes map[string]string) {
	tx, err := s.db.db.Begin()
	if err != nil {
		s.db.log.Printf("sink: begin vote tx: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO votes (game_id, round, voter, target) VALUES (?, ?, ?, ?)`)
	if err != nil {
		s.db.log.Printf("sink: prepare vote insert: %v", err)
		return
	}
	defer stmt.Close()

	for voter, target := range votes {
		if _, err := stmt.Exec(s.gameID, round, voter, target); err != nil {
			s.db.log.Printf("sink: insert vote: %v", err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.db.log.Printf("sink: commit votes: %v", err)
	}
}

func (s *DBSink) RecordMetrics(report game.Report) {
	data, err := json.Marshal(report)
	if err != nil {
		s.db.log.Printf("sink: marshal report: %v", err)
		return
	}
	_, err = s.db.db.Exec(`INSERT OR REPLACE INTO metrics (game_id, winner, rounds_played, report) VALUES (?, ?, ?, ?)`,
		s.gameID, report.Winner, report.RoundsPlayed, string(data))
	if err != nil {
		s.db.log.Printf("sink: insert metrics: %v", err)
	}
}

// GameRow is a stored game with its outcome, if finished.
type GameRow struct {
	ID           string    `json:"id"`
	Winner       string    `json:"winner,omitempty"`
	RoundsPlayed int       `json:"rounds_played"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetGame retrieves one game by id.
func (d *DB) GetGame(id string) (*GameRow, error) {
	query := `SELECT g.id, COALESCE(m.winner, ''), COALESCE(m.rounds_played, 0), g.created_at
		FROM games g LEFT JOIN metrics m ON m.game_id = g.id
		WHERE g.id = ?`

	var row GameRow
	err := d.db.QueryRow(query, id).Scan(&row.ID, &row.Winner, &row.RoundsPlayed, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	return &row, nil
}

// ListGames retrieves stored games, newest first.
func (d *DB) ListGames(limit, offset int) ([]GameRow, error) {
	query := `SELECT g.id, COALESCE(m.winner, ''), COALESCE(m.rounds_played, 0), g.created_at
		FROM games g LEFT JOIN metrics m ON m.game_id = g.id
		ORDER BY g.created_at DESC, g.id LIMIT ? OFFSET ?`

	rows, err := d.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []GameRow
	for rows.Next() {
		var row GameRow
		if err := rows.Scan(&row.ID, &row.Winner, &row.RoundsPlayed, &row.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, row)
	}

	return games, rows.Err()
}

// GetReport retrieves a finished game's metrics report.
func (d *DB) GetReport(gameID string) (*game.Report, error) {
	var data string
	err := d.db.QueryRow(`SELECT report FROM metrics WHERE game_id = ?`, gameID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}

	var report game.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("sink: decode report: %w", err)
	}

	return &report, nil
}

// GetEvents retrieves a game's events in game order with pagination.
func (d *DB) GetEvents(gameID string, limit, offset int) ([]Event, error) {
	query := `SELECT seq, kind, payload FROM events
		WHERE game_id = ? ORDER BY seq LIMIT ? OFFSET ?`

	rows, err := d.db.Query(query, gameID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var payload sql.NullString
		if err := rows.Scan(&ev.Seq, &ev.Kind, &payload); err != nil {
			return nil, err
		}
		if payload.Valid {
			ev.Payload = json.RawMessage(payload.String)
		}
		events = append(events, ev)
	}

	return events, rows.Err()
}

// GetVotes retrieves a game's votes grouped by round.
func (d *DB) GetVotes(gameID string) ([]VoteRound, error) {
	query := `SELECT round, voter, target FROM votes
		WHERE game_id = ? ORDER BY round, id`

	rows, err := d.db.Query(query, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []VoteRound
	for rows.Next() {
		var round int
		var voter, target string
		if err := rows.Scan(&round, &voter, &target); err != nil {
			return nil, err
		}
		if len(rounds) == 0 || rounds[len(rounds)-1].Round != round {
			rounds = append(rounds, VoteRound{Round: round, Votes: make(map[string]string)})
		}
		rounds[len(rounds)-1].Votes[voter] = target
	}

	return rounds, rows.Err()
}
