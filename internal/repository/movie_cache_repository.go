package repository

import (
	"database/sql"
	"time"

	"github.com/WasiqP/MovieApp/internal/models"
	"github.com/WasiqP/MovieApp/internal/timeutil"
)

// MovieCacheRepository stores normalized movie detail payloads with an
// explicit expiry. Rows past their expiry are treated as misses; a reaper
// deletes them in the background.
type MovieCacheRepository struct {
	db *sql.DB
}

// NewMovieCacheRepository creates a new MovieCacheRepository.
func NewMovieCacheRepository(sqliteDB *SQLiteDB) *MovieCacheRepository {
	return &MovieCacheRepository{db: sqliteDB.db}
}

// Get returns the cached payload JSON for a movie. An expired row is
// reported as a miss, not a hit.
func (r *MovieCacheRepository) Get(movieID int, kind models.CacheKind) (string, bool, error) {
	var payload string
	var expiresAt time.Time
	err := r.db.QueryRow(`
		SELECT payload_json, expires_at
		FROM movie_cache
		WHERE movie_id = ? AND kind = ?
	`, movieID, string(kind)).Scan(&payload, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if !timeutil.Now().Before(expiresAt) {
		return "", false, nil
	}
	return payload, true, nil
}

// Upsert writes the latest payload JSON for a movie in one atomic statement,
// so two concurrent misses for the same movie never leave conflicting rows.
func (r *MovieCacheRepository) Upsert(movieID int, kind models.CacheKind, payloadJSON string, expiresAt time.Time) error {
	_, err := r.db.Exec(`
		INSERT INTO movie_cache (movie_id, kind, payload_json, fetched_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(movie_id, kind) DO UPDATE SET
			payload_json = excluded.payload_json,
			fetched_at = excluded.fetched_at,
			expires_at = excluded.expires_at
	`, movieID, string(kind), payloadJSON, timeutil.Now(), expiresAt)
	return err
}

// DeleteExpired removes rows past their expiry and reports how many were
// deleted.
func (r *MovieCacheRepository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec(`DELETE FROM movie_cache WHERE expires_at <= ?`, timeutil.Now())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
