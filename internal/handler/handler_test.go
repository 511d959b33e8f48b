package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WasiqP/MovieApp/internal/cache"
	"github.com/WasiqP/MovieApp/internal/handler"
	"github.com/WasiqP/MovieApp/internal/repository"
	"github.com/WasiqP/MovieApp/internal/service"
	"github.com/WasiqP/MovieApp/internal/tmdb"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// envelope is the fixed response shape every endpoint writes
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fixture struct {
	engine *gin.Engine
}

// tmdbStub serves just enough of the TMDB surface for end-to-end handler
// tests: list endpoints, the genre catalog, and a single known movie (550)
func tmdbStub(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		switch {
		case path == "/genre/movie/list":
			json.NewEncoder(w).Encode(map[string]any{
				"genres": []map[string]any{{"id": 28, "name": "Action"}},
			})
		case path == "/movie/popular" || path == "/movie/top_rated" || path == "/movie/upcoming" ||
			path == "/search/movie" || path == "/discover/movie" ||
			strings.HasPrefix(path, "/trending/movie/"):
			json.NewEncoder(w).Encode(map[string]any{
				"page": 1, "total_pages": 1, "total_results": 1,
				"results": []map[string]any{{
					"id": 550, "title": "Fight Club", "poster_path": "/fc.jpg",
					"vote_average": 8.4, "release_date": "1999-10-15",
				}},
			})
		case path == "/movie/550":
			json.NewEncoder(w).Encode(map[string]any{
				"id": 550, "title": "Fight Club", "poster_path": "/fc.jpg",
				"vote_average": 8.4, "release_date": "1999-10-15", "runtime": 139,
			})
		case strings.HasPrefix(path, "/movie/"):
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{
				"status_code":    34,
				"status_message": "The resource you requested could not be found.",
			})
		default:
			t.Errorf("unexpected TMDB path: %s", path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := repository.NewSQLiteDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	client := tmdb.NewClient("test-api-key")
	client.SetBaseURL(tmdbStub(t).URL)

	store := cache.NewMemory()
	t.Cleanup(store.Close)

	log := zerolog.Nop()
	catalog := service.NewCatalogService(client, store, repository.NewMovieCacheRepository(db), service.NewNormalizer(""), log)
	favorites := service.NewFavoritesService(repository.NewFavoriteRepository(db), catalog)
	history := service.NewWatchHistoryService(repository.NewWatchHistoryRepository(db), catalog)
	backupSvc := service.NewBackupService(dbPath, filepath.Join(t.TempDir(), "backups"))

	engine := gin.New()
	handler.NewHandler(catalog, favorites, history, backupSvc, log).RegisterRoutes(engine)
	return &fixture{engine: engine}
}

// do runs a request and decodes the response envelope
func (f *fixture) do(t *testing.T, method, target, userID string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w.Code, env
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListEndpointsEnvelope(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{
		"/api/movies/popular",
		"/api/movies/trending",
		"/api/movies/top-rated",
		"/api/movies/upcoming",
		"/api/movies/genre/28",
	} {
		status, env := f.do(t, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusOK, status, target)
		assert.True(t, env.Success, target)

		var page struct {
			Page    int               `json:"page"`
			Results []json.RawMessage `json:"results"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page), target)
		assert.Equal(t, 1, page.Page, target)
		assert.Len(t, page.Results, 1, target)
	}
}

func TestSearchValidation(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, http.MethodGet, "/api/movies/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Message)

	status, env = f.do(t, http.MethodGet, "/api/movies/search?q=a", "", nil)
	assert.Equal(t, http.StatusBadRequest, status, "single-character query is rejected")
	assert.False(t, env.Success)

	status, env = f.do(t, http.MethodGet, "/api/movies/search?q=fight", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}

func TestTrendingWindowRejected(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, http.MethodGet, "/api/movies/trending?time_window=month", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)
}

func TestMovieDetailsStatusMapping(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, http.MethodGet, "/api/movies/550", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env = f.do(t, http.MethodGet, "/api/movies/999999", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)

	status, _ = f.do(t, http.MethodGet, "/api/movies/notanumber", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	// Point the catalog at a TMDB that always errors
	dbPath := filepath.Join(t.TempDir(), "down.db")
	db, err := repository.NewSQLiteDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.InitSchema())
	t.Cleanup(func() { db.Close() })

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]any{"status_code": 11, "status_message": "down"})
	}))
	t.Cleanup(down.Close)

	client := tmdb.NewClient("test-api-key")
	client.SetBaseURL(down.URL)

	log := zerolog.Nop()
	catalog := service.NewCatalogService(client, cache.Unavailable{}, repository.NewMovieCacheRepository(db), service.NewNormalizer(""), log)
	favorites := service.NewFavoritesService(repository.NewFavoriteRepository(db), catalog)
	history := service.NewWatchHistoryService(repository.NewWatchHistoryRepository(db), catalog)

	engine := gin.New()
	handler.NewHandler(catalog, favorites, history, service.NewBackupService(dbPath, t.TempDir()), log).RegisterRoutes(engine)
	f := &fixture{engine: engine}

	status, env := f.do(t, http.MethodGet, "/api/movies/popular", "", nil)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.False(t, env.Success)
	assert.Equal(t, "catalog provider is unavailable", env.Message, "raw upstream details never leak")
}

func TestUserIdentityRequired(t *testing.T) {
	f := newFixture(t)

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/favorites"},
		{http.MethodPost, "/api/favorites"},
		{http.MethodGet, "/api/users/watch-history"},
		{http.MethodPost, "/api/movies/550/watch"},
	} {
		status, env := f.do(t, tc.method, tc.target, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, "%s %s", tc.method, tc.target)
		assert.False(t, env.Success)
	}

	// Non-numeric and non-positive ids are rejected too
	status, _ := f.do(t, http.MethodGet, "/api/favorites", "abc", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = f.do(t, http.MethodGet, "/api/favorites", "0", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestFavoritesFlow(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, http.MethodPost, "/api/favorites", "7", map[string]any{"movieId": 550})
	require.Equal(t, http.StatusCreated, status, "message: %s", env.Message)
	assert.True(t, env.Success)

	// Duplicate add is rejected, not overwritten
	status, env = f.do(t, http.MethodPost, "/api/favorites", "7", map[string]any{"movieId": 550})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	// Missing body
	status, _ = f.do(t, http.MethodPost, "/api/favorites", "7", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = f.do(t, http.MethodGet, "/api/favorites/check/550", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"isFavorite":true}`, string(env.Data))

	status, env = f.do(t, http.MethodGet, "/api/favorites", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	var listing struct {
		Favorites []struct {
			MovieID    int     `json:"movieId"`
			MovieTitle string  `json:"movieTitle"`
			Rating     float64 `json:"movieRating"`
		} `json:"favorites"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Len(t, listing.Favorites, 1)
	assert.Equal(t, 550, listing.Favorites[0].MovieID)
	assert.Equal(t, "Fight Club", listing.Favorites[0].MovieTitle)
	assert.Equal(t, 1, listing.Pagination.Total)

	// Another user sees nothing
	status, env = f.do(t, http.MethodGet, "/api/favorites/check/550", "8", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"isFavorite":false}`, string(env.Data))

	status, _ = f.do(t, http.MethodDelete, "/api/favorites/550", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodDelete, "/api/favorites/550", "7", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestFavoriteStatsEndpoint(t *testing.T) {
	f := newFixture(t)

	_, _ = f.do(t, http.MethodPost, "/api/favorites", "7", map[string]any{"movieId": 550})

	status, env := f.do(t, http.MethodGet, "/api/favorites/stats", "7", nil)
	assert.Equal(t, http.StatusOK, status)

	var stats struct {
		TotalFavorites int     `json:"totalFavorites"`
		AverageRating  float64 `json:"averageRating"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalFavorites)
	assert.Equal(t, 8.4, stats.AverageRating, "average is computed from snapshotted ratings")
}

func TestWatchFlow(t *testing.T) {
	f := newFixture(t)

	status, env := f.do(t, http.MethodPost, "/api/movies/550/watch", "7", map[string]any{"progress": 150})
	require.Equal(t, http.StatusOK, status, "message: %s", env.Message)

	var watch struct {
		Progress float64 `json:"progress"`
		Movie    struct {
			ID int `json:"id"`
		} `json:"movie"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &watch))
	assert.Equal(t, 100.0, watch.Progress, "progress is clamped on write")
	assert.Equal(t, 550, watch.Movie.ID)

	// Recording for an unknown movie 404s
	status, _ = f.do(t, http.MethodPost, "/api/movies/999999/watch", "7", map[string]any{"progress": 10})
	assert.Equal(t, http.StatusNotFound, status)

	status, env = f.do(t, http.MethodGet, "/api/users/watch-history", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	var listing struct {
		WatchHistory []struct {
			MovieID  int     `json:"movieId"`
			Progress float64 `json:"progress"`
		} `json:"watchHistory"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Len(t, listing.WatchHistory, 1)
	assert.Equal(t, 100.0, listing.WatchHistory[0].Progress)

	status, env = f.do(t, http.MethodGet, "/api/users/stats", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	var stats struct {
		TotalWatched    int `json:"totalWatched"`
		CompletedMovies int `json:"completedMovies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalWatched)
	assert.Equal(t, 1, stats.CompletedMovies)

	status, _ = f.do(t, http.MethodDelete, "/api/users/watch-history", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	status, env = f.do(t, http.MethodGet, "/api/users/watch-history", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Empty(t, listing.WatchHistory)
}

func TestRemoveFromWatchHistory(t *testing.T) {
	f := newFixture(t)

	_, _ = f.do(t, http.MethodPost, "/api/movies/550/watch", "7", map[string]any{"progress": 30})

	status, _ := f.do(t, http.MethodDelete, "/api/users/watch-history/550", "7", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodDelete, "/api/users/watch-history/550", "7", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
