package service

import (
	"fmt"

	"github.com/WasiqP/MovieApp/internal/models"
	"github.com/WasiqP/MovieApp/internal/repository"
	"github.com/WasiqP/MovieApp/internal/timeutil"
)

const completedThreshold = 90.0

// WatchHistoryService tracks per-user watch progress. Each (user, movie)
// pair has at most one entry; recording progress again replaces it.
type WatchHistoryService struct {
	repo   *repository.WatchHistoryRepository
	lookup EntityLookup
}

// NewWatchHistoryService creates a new WatchHistoryService
func NewWatchHistoryService(repo *repository.WatchHistoryRepository, lookup EntityLookup) *WatchHistoryService {
	return &WatchHistoryService{repo: repo, lookup: lookup}
}

// RecordProgress validates the movie exists, clamps progress to [0,100] and
// upserts the user's entry for it. The movie's normalized record is returned
// alongside the entry so callers can render it without a second lookup.
func (s *WatchHistoryService) RecordProgress(userID int64, movieID int, progress float64) (*models.WatchHistoryEntry, *models.Movie, error) {
	if movieID <= 0 {
		return nil, nil, fmt.Errorf("%w: invalid movie id", ErrInvalidArgument)
	}

	movie, err := s.lookup.GetMovieDetails(movieID)
	if err != nil {
		return nil, nil, err
	}

	entry := &models.WatchHistoryEntry{
		UserID:    userID,
		MovieID:   movie.ID,
		Progress:  clampProgress(progress),
		WatchedAt: timeutil.Now(),
	}
	if err := s.repo.Upsert(entry); err != nil {
		return nil, nil, fmt.Errorf("failed to record watch progress: %w", err)
	}

	return entry, movie, nil
}

// List returns a user's history, most recently watched first
func (s *WatchHistoryService) List(userID int64, page, limit int) ([]models.WatchHistoryEntry, *models.Pagination, error) {
	page = normalizePage(page)
	limit = normalizeLimit(limit)

	entries, total, err := s.repo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list watch history: %w", err)
	}
	if entries == nil {
		entries = []models.WatchHistoryEntry{}
	}

	return entries, &models.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pageCount(total, limit),
	}, nil
}

// Remove deletes a (user, movie) history entry
func (s *WatchHistoryService) Remove(userID int64, movieID int) error {
	if movieID <= 0 {
		return fmt.Errorf("%w: invalid movie id", ErrInvalidArgument)
	}

	deleted, err := s.repo.Delete(userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to remove watch history entry: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: movie not found in watch history", ErrNotFound)
	}
	return nil
}

// Clear empties a user's entire history unconditionally
func (s *WatchHistoryService) Clear(userID int64) error {
	if err := s.repo.Clear(userID); err != nil {
		return fmt.Errorf("failed to clear watch history: %w", err)
	}
	return nil
}

// Stats derives aggregates over a user's stored history. Nothing here is
// persisted; the stored sequence is the only input.
func (s *WatchHistoryService) Stats(userID int64) (*models.WatchStats, error) {
	entries, err := s.repo.GetAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}

	stats := &models.WatchStats{TotalWatched: len(entries)}
	if len(entries) == 0 {
		return stats, nil
	}

	weekAgo := timeutil.Now().AddDate(0, 0, -7)
	var progressSum float64
	for _, entry := range entries {
		progressSum += entry.Progress
		if entry.WatchedAt.After(weekAgo) {
			stats.RecentlyWatched++
		}
		if entry.Progress >= completedThreshold {
			stats.CompletedMovies++
		}
	}
	stats.AverageProgress = round2(progressSum / float64(len(entries)))

	return stats, nil
}

// clampProgress clamps a progress percentage to [0,100] on every write,
// regardless of input
func clampProgress(progress float64) float64 {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
