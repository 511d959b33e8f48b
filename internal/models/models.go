package models

import "time"

// CacheKind identifies what a durable cache row holds
type CacheKind string

const (
	CacheKindDetails CacheKind = "details"
)

// Genre represents a TMDB genre entry
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is the canonical, normalized movie record. List queries populate the
// list-shape fields; detail lookups additionally populate the detail-only
// fields. PosterPath and BackdropPath are fully-qualified image URLs, never
// raw TMDB relative paths.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"originalTitle"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"posterPath"`
	BackdropPath     *string `json:"backdropPath"`
	ReleaseDate      string  `json:"releaseDate"`
	VoteAverage      float64 `json:"voteAverage"`
	VoteCount        int     `json:"voteCount"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"originalLanguage"`
	GenreIDs         []int   `json:"genreIds"`
	Genres           []Genre `json:"genres"`

	// Detail-only fields, present when fetched via the detail path
	Runtime             int                 `json:"runtime,omitempty"`
	Status              string              `json:"status,omitempty"`
	Tagline             string              `json:"tagline,omitempty"`
	Budget              int64               `json:"budget,omitempty"`
	Revenue             int64               `json:"revenue,omitempty"`
	Homepage            string              `json:"homepage,omitempty"`
	IMDbID              string              `json:"imdbId,omitempty"`
	ProductionCompanies []ProductionCompany `json:"productionCompanies,omitempty"`
	ProductionCountries []ProductionCountry `json:"productionCountries,omitempty"`
	SpokenLanguages     []SpokenLanguage    `json:"spokenLanguages,omitempty"`
	Credits             *Credits            `json:"credits,omitempty"`
	Videos              *VideoList          `json:"videos,omitempty"`
	Reviews             *ReviewList         `json:"reviews,omitempty"`
	Similar             []Movie             `json:"similar,omitempty"`
}

// ProductionCompany represents a production company on a detail record
type ProductionCompany struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	LogoPath      string `json:"logoPath,omitempty"`
	OriginCountry string `json:"originCountry,omitempty"`
}

// ProductionCountry represents a production country on a detail record
type ProductionCountry struct {
	ISO3166_1 string `json:"iso31661"`
	Name      string `json:"name"`
}

// SpokenLanguage represents a spoken language on a detail record
type SpokenLanguage struct {
	ISO639_1    string `json:"iso6391"`
	Name        string `json:"name"`
	EnglishName string `json:"englishName,omitempty"`
}

// CastMember is a single cast credit
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profilePath,omitempty"`
	Order       int    `json:"order"`
}

// CrewMember is a single crew credit
type CrewMember struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

// Credits holds cast and crew for a detail record
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a single trailer/clip reference
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

// Review is a single user review
type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

// ReviewList wraps the reviews sub-response
type ReviewList struct {
	Results []Review `json:"results"`
}

// MoviePage is one page of a list query result
type MoviePage struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"totalPages"`
	TotalResults int     `json:"totalResults"`
	Results      []Movie `json:"results"`
}

// Favorite is a user's saved movie reference with display fields snapshotted
// at add time. Display fields are not kept in sync with later TMDB edits.
type Favorite struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	MovieID          int       `json:"movieId"`
	MovieTitle       string    `json:"movieTitle"`
	MoviePoster      string    `json:"moviePoster"`
	MovieReleaseDate string    `json:"movieReleaseDate"`
	MovieRating      float64   `json:"movieRating"`
	AddedAt          time.Time `json:"addedAt"`
}

// FavoriteStats are read-side aggregates over a user's favorites
type FavoriteStats struct {
	TotalFavorites  int     `json:"totalFavorites"`
	RecentFavorites int     `json:"recentFavorites"` // added within the last 30 days
	AverageRating   float64 `json:"averageRating"`
}

// WatchHistoryEntry is one (movie, progress) pair in a user's history.
// At most one entry exists per (user, movie); repeated watches update it.
type WatchHistoryEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	MovieID   int       `json:"movieId"`
	Progress  float64   `json:"progress"` // percent, clamped to [0,100]
	WatchedAt time.Time `json:"watchedAt"`
}

// WatchStats are read-side aggregates over a user's watch history
type WatchStats struct {
	TotalWatched    int     `json:"totalWatched"`
	RecentlyWatched int     `json:"recentlyWatched"` // watched within the last 7 days
	AverageProgress float64 `json:"averageProgress"`
	CompletedMovies int     `json:"completedMovies"` // progress >= 90
}

// Pagination describes the page window of a list response
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
