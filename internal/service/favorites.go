package service

import (
	"errors"
	"fmt"
	"math"

	"github.com/WasiqP/MovieApp/internal/models"
	"github.com/WasiqP/MovieApp/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// FavoritesService manages a user's saved movies. At most one favorite
// exists per (user, movie); the repository's unique index is the arbiter
// under concurrent adds.
type FavoritesService struct {
	repo   *repository.FavoriteRepository
	lookup EntityLookup
}

// NewFavoritesService creates a new FavoritesService
func NewFavoritesService(repo *repository.FavoriteRepository, lookup EntityLookup) *FavoritesService {
	return &FavoritesService{repo: repo, lookup: lookup}
}

// Add saves a movie to a user's favorites, snapshotting title, poster,
// release date and rating from the detail record. A second add for the same
// pair fails with ErrAlreadyExists; it is never an overwrite.
func (s *FavoritesService) Add(userID int64, movieID int) (*models.Favorite, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: invalid movie id", ErrInvalidArgument)
	}

	existing, err := s.repo.GetByUserAndMovie(userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing favorite: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: movie is already in favorites", ErrAlreadyExists)
	}

	// Resolve through the catalog so the id is validated and display
	// fields come from the normalized record
	movie, err := s.lookup.GetMovieDetails(movieID)
	if err != nil {
		return nil, err
	}

	poster := ""
	if movie.PosterPath != nil {
		poster = *movie.PosterPath
	}

	fav := &models.Favorite{
		UserID:           userID,
		MovieID:          movie.ID,
		MovieTitle:       movie.Title,
		MoviePoster:      poster,
		MovieReleaseDate: movie.ReleaseDate,
		MovieRating:      movie.VoteAverage,
	}

	if err := s.repo.Create(fav); err != nil {
		// A concurrent add for the same pair won the race
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: movie is already in favorites", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	return fav, nil
}

// Remove deletes a (user, movie) favorite
func (s *FavoritesService) Remove(userID int64, movieID int) error {
	if movieID <= 0 {
		return fmt.Errorf("%w: invalid movie id", ErrInvalidArgument)
	}

	deleted, err := s.repo.Delete(userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: movie not found in favorites", ErrNotFound)
	}
	return nil
}

// List returns a user's favorites, most recently added first
func (s *FavoritesService) List(userID int64, page, limit int) ([]models.Favorite, *models.Pagination, error) {
	page = normalizePage(page)
	limit = normalizeLimit(limit)

	favorites, total, err := s.repo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}

	return favorites, &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pageCount(total, limit),
	}, nil
}

// Exists reports whether a (user, movie) favorite exists
func (s *FavoritesService) Exists(userID int64, movieID int) (bool, error) {
	if movieID <= 0 {
		return false, fmt.Errorf("%w: invalid movie id", ErrInvalidArgument)
	}
	fav, err := s.repo.GetByUserAndMovie(userID, movieID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return fav != nil, nil
}

// Stats returns aggregates over a user's favorites. AverageRating is the
// real mean of the snapshotted ratings.
func (s *FavoritesService) Stats(userID int64) (*models.FavoriteStats, error) {
	stats, err := s.repo.Stats(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate favorites: %w", err)
	}
	stats.AverageRating = round2(stats.AverageRating)
	return stats, nil
}

// normalizeLimit coerces a page size into [1, maxPageSize]
func normalizeLimit(limit int) int {
	if limit < 1 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

// pageCount computes ceil(total/limit)
func pageCount(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// round2 rounds to two decimal places for display
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
