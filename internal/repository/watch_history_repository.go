package repository

import (
	"database/sql"

	"github.com/WasiqP/MovieApp/internal/models"
)

// WatchHistoryRepository handles watch history database operations
type WatchHistoryRepository struct {
	db *sql.DB
}

// NewWatchHistoryRepository creates a new WatchHistoryRepository
func NewWatchHistoryRepository(sqliteDB *SQLiteDB) *WatchHistoryRepository {
	return &WatchHistoryRepository{db: sqliteDB.db}
}

// Upsert inserts a history entry or, when the (user, movie) pair already
// exists, replaces its progress and watched_at in place. The single
// ON CONFLICT statement is what keeps concurrent progress updates from
// producing duplicate rows; last write wins.
func (r *WatchHistoryRepository) Upsert(entry *models.WatchHistoryEntry) error {
	_, err := r.db.Exec(`
		INSERT INTO watch_history (user_id, movie_id, progress, watched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, movie_id) DO UPDATE SET
			progress = excluded.progress,
			watched_at = excluded.watched_at
	`, entry.UserID, entry.MovieID, entry.Progress, entry.WatchedAt)
	if err != nil {
		return err
	}

	// LastInsertId is unreliable across the conflict path; read the row id back
	return r.db.QueryRow(`
		SELECT id FROM watch_history WHERE user_id = ? AND movie_id = ?
	`, entry.UserID, entry.MovieID).Scan(&entry.ID)
}

// GetByUserAndMovie retrieves a history entry by its (user, movie) pair
func (r *WatchHistoryRepository) GetByUserAndMovie(userID int64, movieID int) (*models.WatchHistoryEntry, error) {
	entry := &models.WatchHistoryEntry{}
	err := r.db.QueryRow(`
		SELECT id, user_id, movie_id, progress, watched_at
		FROM watch_history WHERE user_id = ? AND movie_id = ?
	`, userID, movieID).Scan(&entry.ID, &entry.UserID, &entry.MovieID, &entry.Progress, &entry.WatchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListByUser returns a user's history ordered by watched_at descending,
// along with the total row count for pagination.
func (r *WatchHistoryRepository) ListByUser(userID int64, page, limit int) ([]models.WatchHistoryEntry, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM watch_history WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.db.Query(`
		SELECT id, user_id, movie_id, progress, watched_at
		FROM watch_history WHERE user_id = ?
		ORDER BY watched_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []models.WatchHistoryEntry
	for rows.Next() {
		var entry models.WatchHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.MovieID, &entry.Progress, &entry.WatchedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, total, rows.Err()
}

// GetAllByUser returns a user's entire history, newest first. Used by the
// stats aggregation.
func (r *WatchHistoryRepository) GetAllByUser(userID int64) ([]models.WatchHistoryEntry, error) {
	rows, err := r.db.Query(`
		SELECT id, user_id, movie_id, progress, watched_at
		FROM watch_history WHERE user_id = ?
		ORDER BY watched_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.WatchHistoryEntry
	for rows.Next() {
		var entry models.WatchHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.MovieID, &entry.Progress, &entry.WatchedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Delete removes a (user, movie) history entry and reports whether a row existed
func (r *WatchHistoryRepository) Delete(userID int64, movieID int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM watch_history WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Clear empties a user's entire history
func (r *WatchHistoryRepository) Clear(userID int64) error {
	_, err := r.db.Exec(`DELETE FROM watch_history WHERE user_id = ?`, userID)
	return err
}
