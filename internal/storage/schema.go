package storage

import "time"

// MatchRecord represents a row in the matches table
type MatchRecord struct {
	MatchID      string    `db:"match_id"`
	BoardSize    int       `db:"board_size"`
	LightPlayer  string    `db:"light_player"`
	DarkPlayer   string    `db:"dark_player"`
	StartTimeUTC time.Time `db:"start_time_utc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID      int64     `db:"move_id"`
	MatchID     string    `db:"match_id"`
	MoveNumber  int       `db:"move_number"`
	PlayerColor string    `db:"player_color"` // "l" or "d"
	PieceID     int       `db:"piece_id"`
	FromRow     int       `db:"from_row"`
	FromCol     int       `db:"from_col"`
	ToRow       int       `db:"to_row"`
	ToCol       int       `db:"to_col"`
	Capture     bool      `db:"capture"`
	MoveTimeUTC time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS matches (
	match_id TEXT PRIMARY KEY,
	board_size INTEGER NOT NULL,
	light_player TEXT NOT NULL,
	dark_player TEXT NOT NULL,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	match_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('l', 'd')),
	piece_id INTEGER NOT NULL,
	from_row INTEGER NOT NULL,
	from_col INTEGER NOT NULL,
	to_row INTEGER NOT NULL,
	to_col INTEGER NOT NULL,
	capture INTEGER NOT NULL DEFAULT 0,
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (match_id) REFERENCES matches(match_id) ON DELETE CASCADE,
	UNIQUE(match_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_match_id ON moves(match_id);
`
