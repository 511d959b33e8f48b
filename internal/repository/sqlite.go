package repository

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDB wraps the database connection
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection with connection pool settings
func NewSQLiteDB(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Configure connection pool for optimal performance
	// SQLite benefits from limited connections due to write locking
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// InitSchema creates the database tables.
//
// favorites and watch_history are authoritative user data and never expire;
// movie_cache is a non-authoritative tier that may be dropped and rebuilt at
// any time. The unique indexes are what make concurrent favorite adds and
// history upserts safe without application-level locking.
func (s *SQLiteDB) InitSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS movie_cache (
		movie_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		payload_json TEXT NOT NULL,
		fetched_at TIMESTAMP NOT NULL,
		expires_at TIMESTAMP NOT NULL,
		PRIMARY KEY (movie_id, kind)
	);

	CREATE TABLE IF NOT EXISTS favorites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		movie_title TEXT NOT NULL,
		movie_poster TEXT DEFAULT '',
		movie_release_date TEXT DEFAULT '',
		movie_rating REAL DEFAULT 0,
		added_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, movie_id)
	);

	CREATE TABLE IF NOT EXISTS watch_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		movie_id INTEGER NOT NULL,
		progress REAL NOT NULL DEFAULT 0,
		watched_at TIMESTAMP NOT NULL,
		UNIQUE(user_id, movie_id)
	);

	CREATE INDEX IF NOT EXISTS idx_movie_cache_expires ON movie_cache(expires_at);
	CREATE INDEX IF NOT EXISTS idx_favorites_user_added ON favorites(user_id, added_at);
	CREATE INDEX IF NOT EXISTS idx_history_user_watched ON watch_history(user_id, watched_at);
	`

	_, err := s.db.Exec(schema)
	return err
}
