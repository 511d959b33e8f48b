package tmdb

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org/3"
	defaultLanguage = "en-US"
	defaultTimeout  = 10 * time.Second
	requestInterval = 100 * time.Millisecond // spacing between requests to stay under TMDB rate limits
)

// ErrNotFound is returned when TMDB reports 404 for an entity lookup.
var ErrNotFound = errors.New("movie not found")

// Client handles all interactions with the TMDB API
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// Movie is the raw list-shape movie record as returned by TMDB
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
	Genres           []Genre `json:"genres"`
}

// Genre is a raw TMDB genre entry
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProductionCompany is a raw production company entry on a detail record
type ProductionCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logo_path"`
	OriginCountry string `json:"origin_country"`
}

// ProductionCountry is a raw production country entry on a detail record
type ProductionCountry struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Name      string `json:"name"`
}

// SpokenLanguage is a raw spoken language entry on a detail record
type SpokenLanguage struct {
	ISO639_1    string `json:"iso_639_1"`
	Name        string `json:"name"`
	EnglishName string `json:"english_name"`
}

// CastMember is a raw cast credit
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
	Order       int    `json:"order"`
}

// CrewMember is a raw crew credit
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits wraps the credits sub-response
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a raw trailer/clip entry
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// VideoList wraps the videos sub-response
type VideoList struct {
	Results []Video `json:"results"`
}

// Review is a raw user review entry
type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// ReviewList wraps the reviews sub-response
type ReviewList struct {
	Results []Review `json:"results"`
}

// MovieDetails is the raw detail-shape record, fetched with
// append_to_response=credits,videos,reviews,similar
type MovieDetails struct {
	Movie

	Runtime             int                 `json:"runtime"`
	Status              string              `json:"status"`
	Tagline             string              `json:"tagline"`
	Budget              int64               `json:"budget"`
	Revenue             int64               `json:"revenue"`
	Homepage            string              `json:"homepage"`
	IMDbID              string              `json:"imdb_id"`
	ProductionCompanies []ProductionCompany `json:"production_companies"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	SpokenLanguages     []SpokenLanguage    `json:"spoken_languages"`
	Credits             *Credits            `json:"credits"`
	Videos              *VideoList          `json:"videos"`
	Reviews             *ReviewList         `json:"reviews"`
	Similar             *ListResponse       `json:"similar"`
}

// ListResponse is the raw paginated list envelope returned by TMDB
type ListResponse struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

// genreListResponse wraps the TMDB genre catalog response
type genreListResponse struct {
	Genres []Genre `json:"genres"`
}

// APIError represents an error returned by the TMDB API
type APIError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	HTTPStatus    int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TMDB API error (code %d): %s", e.StatusCode, e.StatusMessage)
}

// NewClient creates a new TMDB API client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewClientWithHTTP creates a new TMDB API client with a custom HTTP client
func NewClientWithHTTP(apiKey string, httpClient *http.Client) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		language:   defaultLanguage,
		httpClient: httpClient,
	}
}

// SetBaseURL allows overriding the base URL (useful for testing)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetLanguage overrides the locale parameter sent with every request
func (c *Client) SetLanguage(language string) {
	if language != "" {
		c.language = language
	}
}

// GetPopular fetches a page of popular movies from /movie/popular
func (c *Client) GetPopular(page int) (*ListResponse, error) {
	return c.getList("/movie/popular", url.Values{}, page)
}

// GetTrending fetches a page of trending movies from /trending/movie/{window}.
// The time window is part of the URL; callers validate it.
func (c *Client) GetTrending(timeWindow string, page int) (*ListResponse, error) {
	return c.getList("/trending/movie/"+url.PathEscape(timeWindow), url.Values{}, page)
}

// GetTopRated fetches a page of top rated movies from /movie/top_rated
func (c *Client) GetTopRated(page int) (*ListResponse, error) {
	return c.getList("/movie/top_rated", url.Values{}, page)
}

// GetUpcoming fetches a page of upcoming movies from /movie/upcoming
func (c *Client) GetUpcoming(page int) (*ListResponse, error) {
	return c.getList("/movie/upcoming", url.Values{}, page)
}

// SearchMovies searches movies by query via /search/movie
func (c *Client) SearchMovies(query string, page int) (*ListResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	return c.getList("/search/movie", params, page)
}

// DiscoverByGenre fetches movies for a genre via /discover/movie,
// sorted by descending popularity
func (c *Client) DiscoverByGenre(genreID, page int) (*ListResponse, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	return c.getList("/discover/movie", params, page)
}

// GetGenres fetches the movie genre catalog from /genre/movie/list
func (c *Client) GetGenres() ([]Genre, error) {
	var resp genreListResponse
	if err := c.get("/genre/movie/list", url.Values{}, &resp); err != nil {
		return nil, err
	}
	if resp.Genres == nil {
		resp.Genres = []Genre{}
	}
	return resp.Genres, nil
}

// GetMovieDetails fetches the full detail record for a movie, expanding
// credits, videos, reviews and similar in one call. A TMDB 404 is surfaced
// as ErrNotFound.
func (c *Client) GetMovieDetails(movieID int) (*MovieDetails, error) {
	if movieID <= 0 {
		return nil, fmt.Errorf("invalid TMDB ID: %d", movieID)
	}

	params := url.Values{}
	params.Set("append_to_response", "credits,videos,reviews,similar")

	var details MovieDetails
	err := c.get(fmt.Sprintf("/movie/%d", movieID), params, &details)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &details, nil
}

// getList performs a paginated list request
func (c *Client) getList(path string, params url.Values, page int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))

	var resp ListResponse
	if err := c.get(path, params, &resp); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []Movie{}
	}
	return &resp, nil
}

// get performs an authenticated GET against the TMDB API and decodes the
// response into out
func (c *Client) get(path string, params url.Values, out any) error {
	c.rateLimit()

	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	resp, err := c.httpClient.Get(endpoint)
	if err != nil {
		return fmt.Errorf("TMDB request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}

// checkResponse checks the HTTP response for errors
func (c *Client) checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{
			StatusCode:    resp.StatusCode,
			StatusMessage: fmt.Sprintf("HTTP %d: failed to read error response", resp.StatusCode),
			HTTPStatus:    resp.StatusCode,
		}
	}

	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return &APIError{
			StatusCode:    resp.StatusCode,
			StatusMessage: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
			HTTPStatus:    resp.StatusCode,
		}
	}

	apiErr.HTTPStatus = resp.StatusCode
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = resp.StatusCode
	}
	if apiErr.StatusMessage == "" {
		apiErr.StatusMessage = fmt.Sprintf("HTTP %d error", resp.StatusCode)
	}

	return &apiErr
}

// rateLimit ensures requests are spaced out to avoid hitting API limits
func (c *Client) rateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < requestInterval {
		time.Sleep(requestInterval - elapsed)
	}
	c.lastRequest = time.Now()
}
