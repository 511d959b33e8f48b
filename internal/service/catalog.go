package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/WasiqP/MovieApp/internal/cache"
	"github.com/WasiqP/MovieApp/internal/models"
	"github.com/WasiqP/MovieApp/internal/repository"
	"github.com/WasiqP/MovieApp/internal/timeutil"
	"github.com/WasiqP/MovieApp/internal/tmdb"
)

// Cache lifetimes per query kind. Lists are cheap to refetch; the genre
// catalog and detail records change rarely and are held for a day.
const (
	listCacheTTL     = 30 * time.Minute
	topRatedCacheTTL = time.Hour
	genreCacheTTL    = 24 * time.Hour
	detailCacheTTL   = 24 * time.Hour
)

const genreCacheKey = "movie_genres"

// CatalogService orchestrates the cache tiers and the TMDB gateway. List
// queries go through the ephemeral tier; detail lookups go through the
// durable movie cache. Neither tier is a source of truth: losing either one
// only costs upstream calls.
type CatalogService struct {
	client     *tmdb.Client
	store      cache.Store
	movieCache *repository.MovieCacheRepository
	normalizer *Normalizer
	log        zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(
	client *tmdb.Client,
	store cache.Store,
	movieCache *repository.MovieCacheRepository,
	normalizer *Normalizer,
	log zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		client:     client,
		store:      store,
		movieCache: movieCache,
		normalizer: normalizer,
		log:        log,
	}
}

// GetPopular returns a page of popular movies
func (s *CatalogService) GetPopular(page int) (*models.MoviePage, error) {
	page = normalizePage(page)
	key := fmt.Sprintf("popular_movies_%d", page)
	return s.cachedPage(key, listCacheTTL, func() (*tmdb.ListResponse, error) {
		return s.client.GetPopular(page)
	})
}

// GetTrending returns a page of trending movies for a time window. Only
// "day" and "week" are meaningful to TMDB; anything else is rejected before
// cache or upstream work since the window is part of the cache key.
func (s *CatalogService) GetTrending(timeWindow string, page int) (*models.MoviePage, error) {
	if timeWindow == "" {
		timeWindow = "week"
	}
	if timeWindow != "day" && timeWindow != "week" {
		return nil, fmt.Errorf("%w: time window must be 'day' or 'week'", ErrInvalidArgument)
	}

	page = normalizePage(page)
	key := fmt.Sprintf("trending_movies_%s_%d", timeWindow, page)
	return s.cachedPage(key, listCacheTTL, func() (*tmdb.ListResponse, error) {
		return s.client.GetTrending(timeWindow, page)
	})
}

// GetTopRated returns a page of top rated movies
func (s *CatalogService) GetTopRated(page int) (*models.MoviePage, error) {
	page = normalizePage(page)
	key := fmt.Sprintf("top_rated_movies_%d", page)
	return s.cachedPage(key, topRatedCacheTTL, func() (*tmdb.ListResponse, error) {
		return s.client.GetTopRated(page)
	})
}

// GetUpcoming returns a page of upcoming movies
func (s *CatalogService) GetUpcoming(page int) (*models.MoviePage, error) {
	page = normalizePage(page)
	key := fmt.Sprintf("upcoming_movies_%d", page)
	return s.cachedPage(key, listCacheTTL, func() (*tmdb.ListResponse, error) {
		return s.client.GetUpcoming(page)
	})
}

// Search returns a page of search results. Queries shorter than 2
// characters after trimming are rejected before any cache or upstream call.
func (s *CatalogService) Search(query string, page int) (*models.MoviePage, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return nil, fmt.Errorf("%w: search query must be at least 2 characters long", ErrInvalidArgument)
	}

	page = normalizePage(page)
	key := fmt.Sprintf("search_movies_%s_%d", strings.ToLower(query), page)
	return s.cachedPage(key, listCacheTTL, func() (*tmdb.ListResponse, error) {
		return s.client.SearchMovies(query, page)
	})
}

// GetByGenre returns a page of movies for a genre, most popular first
func (s *CatalogService) GetByGenre(genreID, page int) (*models.MoviePage, error) {
	if genreID <= 0 {
		return nil, fmt.Errorf("%w: invalid genre id", ErrInvalidArgument)
	}

	page = normalizePage(page)
	key := fmt.Sprintf("movies_by_genre_%d_%d", genreID, page)
	return s.cachedPage(key, listCacheTTL, func() (*tmdb.ListResponse, error) {
		return s.client.DiscoverByGenre(genreID, page)
	})
}

// GetGenres returns the movie genre catalog
func (s *CatalogService) GetGenres() ([]models.Genre, error) {
	if data, ok := s.cacheGet(genreCacheKey); ok {
		var genres []models.Genre
		if err := json.Unmarshal(data, &genres); err == nil {
			return genres, nil
		}
	}

	raw, err := s.client.GetGenres()
	if err != nil {
		return nil, s.upstreamError(err)
	}

	genres := s.normalizer.NormalizeGenres(raw)
	s.cacheSet(genreCacheKey, genres, genreCacheTTL)
	return genres, nil
}

// GetMovieDetails returns the detail record for a movie. A fresh row in the
// durable cache is returned as stored; it was normalized at write time. An
// upstream 404 is surfaced as ErrNotFound and never cached, so a transient
// miss cannot become a permanent negative entry.
func (s *CatalogService) GetMovieDetails(movieID int) (*models.Movie, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("%w: invalid movie id", ErrInvalidArgument)
	}

	payload, ok, err := s.movieCache.Get(movieID, models.CacheKindDetails)
	if err != nil {
		s.log.Warn().Err(err).Int("movie_id", movieID).Msg("movie cache read failed, treating as miss")
	} else if ok {
		var movie models.Movie
		if err := json.Unmarshal([]byte(payload), &movie); err == nil {
			return &movie, nil
		}
		s.log.Warn().Int("movie_id", movieID).Msg("corrupt movie cache payload, refetching")
	}

	raw, err := s.client.GetMovieDetails(movieID)
	if err != nil {
		return nil, s.upstreamError(err)
	}

	movie := s.normalizer.NormalizeDetails(raw)
	if data, err := json.Marshal(movie); err == nil {
		expiresAt := timeutil.Now().Add(detailCacheTTL)
		if err := s.movieCache.Upsert(movieID, models.CacheKindDetails, string(data), expiresAt); err != nil {
			s.log.Warn().Err(err).Int("movie_id", movieID).Msg("movie cache write failed")
		}
	}

	return movie, nil
}

// cachedPage runs the cache-aside flow shared by every list query: check
// the ephemeral tier, on miss fetch, normalize, write back. A failing store
// degrades to an always-miss cache and never fails the request.
func (s *CatalogService) cachedPage(key string, ttl time.Duration, fetch func() (*tmdb.ListResponse, error)) (*models.MoviePage, error) {
	if data, ok := s.cacheGet(key); ok {
		var page models.MoviePage
		if err := json.Unmarshal(data, &page); err == nil {
			return &page, nil
		}
		s.log.Warn().Str("key", key).Msg("corrupt cache payload, refetching")
	}

	raw, err := fetch()
	if err != nil {
		return nil, s.upstreamError(err)
	}

	page := s.normalizer.NormalizePage(raw)
	s.cacheSet(key, page, ttl)
	return page, nil
}

func (s *CatalogService) cacheGet(key string) ([]byte, bool) {
	data, ok, err := s.store.Get(key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed, treating as miss")
		return nil, false
	}
	return data, ok
}

func (s *CatalogService) cacheSet(key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.store.Set(key, data, ttl); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// upstreamError maps gateway failures onto the service taxonomy. Detail 404s
// stay NotFound; everything else, including malformed payloads, is an
// upstream availability problem as far as callers are concerned.
func (s *CatalogService) upstreamError(err error) error {
	if errors.Is(err, tmdb.ErrNotFound) {
		return fmt.Errorf("%w: movie not found", ErrNotFound)
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}

// normalizePage coerces non-positive page numbers to the first page
func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
