package repository

import (
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"

	"github.com/WasiqP/MovieApp/internal/models"
	"github.com/WasiqP/MovieApp/internal/timeutil"
)

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("row already exists")

// FavoriteRepository handles Favorite database operations
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new FavoriteRepository
func NewFavoriteRepository(sqliteDB *SQLiteDB) *FavoriteRepository {
	return &FavoriteRepository{db: sqliteDB.db}
}

// Create inserts a new Favorite. The UNIQUE(user_id, movie_id) index makes
// the insert the atomic existence check: a concurrent duplicate add loses
// the race and gets ErrDuplicate.
func (r *FavoriteRepository) Create(fav *models.Favorite) error {
	now := timeutil.Now()
	result, err := r.db.Exec(`
		INSERT INTO favorites (user_id, movie_id, movie_title, movie_poster, movie_release_date, movie_rating, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, fav.UserID, fav.MovieID, fav.MovieTitle, fav.MoviePoster, fav.MovieReleaseDate, fav.MovieRating, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return ErrDuplicate
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	fav.ID = id
	fav.AddedAt = now
	return nil
}

// GetByUserAndMovie retrieves a Favorite by its (user, movie) pair
func (r *FavoriteRepository) GetByUserAndMovie(userID int64, movieID int) (*models.Favorite, error) {
	fav := &models.Favorite{}
	err := r.db.QueryRow(`
		SELECT id, user_id, movie_id, movie_title, movie_poster, movie_release_date, movie_rating, added_at
		FROM favorites WHERE user_id = ? AND movie_id = ?
	`, userID, movieID).Scan(
		&fav.ID, &fav.UserID, &fav.MovieID, &fav.MovieTitle,
		&fav.MoviePoster, &fav.MovieReleaseDate, &fav.MovieRating, &fav.AddedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fav, nil
}

// ListByUser returns a user's favorites ordered by added_at descending,
// along with the total row count for pagination.
func (r *FavoriteRepository) ListByUser(userID int64, page, limit int) ([]models.Favorite, int, error) {
	var total int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.db.Query(`
		SELECT id, user_id, movie_id, movie_title, movie_poster, movie_release_date, movie_rating, added_at
		FROM favorites WHERE user_id = ?
		ORDER BY added_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var favorites []models.Favorite
	for rows.Next() {
		var fav models.Favorite
		err := rows.Scan(
			&fav.ID, &fav.UserID, &fav.MovieID, &fav.MovieTitle,
			&fav.MoviePoster, &fav.MovieReleaseDate, &fav.MovieRating, &fav.AddedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		favorites = append(favorites, fav)
	}
	return favorites, total, rows.Err()
}

// Delete removes a (user, movie) favorite and reports whether a row existed
func (r *FavoriteRepository) Delete(userID int64, movieID int) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM favorites WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Stats aggregates a user's favorites: total count, count added in the last
// 30 days, and the mean of the snapshotted ratings.
func (r *FavoriteRepository) Stats(userID int64) (*models.FavoriteStats, error) {
	thirtyDaysAgo := timeutil.Now().AddDate(0, 0, -30)

	stats := &models.FavoriteStats{}
	err := r.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN added_at >= ? THEN 1 ELSE 0 END), 0),
		       COALESCE(AVG(movie_rating), 0)
		FROM favorites WHERE user_id = ?
	`, thirtyDaysAgo, userID).Scan(&stats.TotalFavorites, &stats.RecentFavorites, &stats.AverageRating)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
