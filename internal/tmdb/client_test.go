package tmdb_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WasiqP/MovieApp/internal/tmdb"
)

// For any TMDB error response, the client returns a descriptive error and a
// nil result, never a panic or a half-decoded value.
func TestAPIErrorHandling(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("API errors return descriptive error messages", prop.ForAll(
		func(statusCode int, statusMessage string) bool {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(statusCode)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status_code":    statusCode,
					"status_message": statusMessage,
				})
			}))
			defer server.Close()

			client := tmdb.NewClient("test-api-key")
			client.SetBaseURL(server.URL)

			results, err := client.SearchMovies("test query", 1)
			if err == nil || results != nil || err.Error() == "" {
				return false
			}

			genres, err := client.GetGenres()
			if err == nil || genres != nil || err.Error() == "" {
				return false
			}

			return true
		},
		gen.OneConstOf(400, 401, 403, 429, 500, 502, 503, 504),
		gen.AnyString().SuchThat(func(s string) bool { return len(s) > 0 }),
	))

	properties.TestingRun(t)
}

func TestRequestParameterInjection(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}})
	}))
	defer server.Close()

	client := tmdb.NewClient("secret-key")
	client.SetBaseURL(server.URL)
	client.SetLanguage("de-DE")

	_, err := client.SearchMovies("blade runner", 3)
	require.NoError(t, err)

	assert.Equal(t, "/search/movie", gotPath)
	assert.Equal(t, "secret-key", gotQuery["api_key"])
	assert.Equal(t, "de-DE", gotQuery["language"])
	assert.Equal(t, "blade runner", gotQuery["query"])
	assert.Equal(t, "3", gotQuery["page"])
	assert.Equal(t, "false", gotQuery["include_adult"])
}

func TestEndpointPaths(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{"results": []interface{}{}, "genres": []interface{}{}})
	}))
	defer server.Close()

	client := tmdb.NewClient("test-api-key")
	client.SetBaseURL(server.URL)

	_, err := client.GetPopular(1)
	require.NoError(t, err)
	assert.Equal(t, "/movie/popular", gotPath)

	_, err = client.GetTopRated(1)
	require.NoError(t, err)
	assert.Equal(t, "/movie/top_rated", gotPath)

	_, err = client.GetUpcoming(1)
	require.NoError(t, err)
	assert.Equal(t, "/movie/upcoming", gotPath)

	_, err = client.GetTrending("day", 1)
	require.NoError(t, err)
	assert.Equal(t, "/trending/movie/day", gotPath)

	_, err = client.DiscoverByGenre(28, 1)
	require.NoError(t, err)
	assert.Equal(t, "/discover/movie", gotPath)
	assert.Equal(t, []string{"28"}, gotQuery["with_genres"])
	assert.Equal(t, []string{"popularity.desc"}, gotQuery["sort_by"])

	_, err = client.GetGenres()
	require.NoError(t, err)
	assert.Equal(t, "/genre/movie/list", gotPath)
}

func TestGetMovieDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status_code":    34,
			"status_message": "The resource you requested could not be found.",
		})
	}))
	defer server.Close()

	client := tmdb.NewClient("test-api-key")
	client.SetBaseURL(server.URL)

	details, err := client.GetMovieDetails(999999)
	assert.Nil(t, details)
	assert.ErrorIs(t, err, tmdb.ErrNotFound)
}

func TestGetMovieDetailsAppendsSubResponses(t *testing.T) {
	var gotAppend string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAppend = r.URL.Query().Get("append_to_response")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      550,
			"title":   "Fight Club",
			"runtime": 139,
			"credits": map[string]interface{}{
				"cast": []map[string]interface{}{{"id": 819, "name": "Edward Norton", "character": "The Narrator"}},
			},
			"similar": map[string]interface{}{
				"results": []map[string]interface{}{{"id": 807, "title": "Se7en"}},
			},
		})
	}))
	defer server.Close()

	client := tmdb.NewClient("test-api-key")
	client.SetBaseURL(server.URL)

	details, err := client.GetMovieDetails(550)
	require.NoError(t, err)

	assert.Equal(t, "credits,videos,reviews,similar", gotAppend)
	assert.Equal(t, 550, details.ID)
	assert.Equal(t, 139, details.Runtime)
	require.NotNil(t, details.Credits)
	require.Len(t, details.Credits.Cast, 1)
	require.NotNil(t, details.Similar)
	require.Len(t, details.Similar.Results, 1)
}

func TestGetMovieDetailsRejectsInvalidID(t *testing.T) {
	client := tmdb.NewClient("test-api-key")

	_, err := client.GetMovieDetails(0)
	assert.Error(t, err)
	_, err = client.GetMovieDetails(-1)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, tmdb.ErrNotFound))
}

func TestListResultsNeverNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"page": 1, "total_pages": 0, "total_results": 0})
	}))
	defer server.Close()

	client := tmdb.NewClient("test-api-key")
	client.SetBaseURL(server.URL)

	resp, err := client.GetPopular(1)
	require.NoError(t, err)
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
}
