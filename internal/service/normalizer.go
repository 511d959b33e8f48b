package service

import (
	"github.com/WasiqP/MovieApp/internal/models"
	"github.com/WasiqP/MovieApp/internal/tmdb"
)

const (
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	posterSize          = "w500"
	backdropSize        = "w1280"
)

// Normalizer maps raw TMDB records into canonical movie records. It is a
// pure mapping: no I/O, and identical input always yields identical output.
type Normalizer struct {
	imageBaseURL string
}

// NewNormalizer creates a Normalizer. An empty imageBaseURL selects the
// default TMDB image host.
func NewNormalizer(imageBaseURL string) *Normalizer {
	if imageBaseURL == "" {
		imageBaseURL = defaultImageBaseURL
	}
	return &Normalizer{imageBaseURL: imageBaseURL}
}

// NormalizeMovie maps a raw list-shape record into a canonical Movie.
// Image URLs are built only when a path is present; array fields default to
// empty slices, never nil.
func (n *Normalizer) NormalizeMovie(raw tmdb.Movie) models.Movie {
	movie := models.Movie{
		ID:               raw.ID,
		Title:            raw.Title,
		OriginalTitle:    raw.OriginalTitle,
		Overview:         raw.Overview,
		PosterPath:       n.imageURL(raw.PosterPath, posterSize),
		BackdropPath:     n.imageURL(raw.BackdropPath, backdropSize),
		ReleaseDate:      raw.ReleaseDate,
		VoteAverage:      raw.VoteAverage,
		VoteCount:        raw.VoteCount,
		Popularity:       raw.Popularity,
		Adult:            raw.Adult,
		OriginalLanguage: raw.OriginalLanguage,
		GenreIDs:         []int{},
		Genres:           []models.Genre{},
	}

	if raw.GenreIDs != nil {
		movie.GenreIDs = append(movie.GenreIDs, raw.GenreIDs...)
	}
	for _, g := range raw.Genres {
		movie.Genres = append(movie.Genres, models.Genre{ID: g.ID, Name: g.Name})
	}
	return movie
}

// NormalizeDetails maps a raw detail-shape record into a canonical Movie
// with the detail-only extension fields populated. The nested similar list
// is normalized recursively using the list-shape mapping.
func (n *Normalizer) NormalizeDetails(raw *tmdb.MovieDetails) *models.Movie {
	movie := n.NormalizeMovie(raw.Movie)

	movie.Runtime = raw.Runtime
	movie.Status = raw.Status
	movie.Tagline = raw.Tagline
	movie.Budget = raw.Budget
	movie.Revenue = raw.Revenue
	movie.Homepage = raw.Homepage
	movie.IMDbID = raw.IMDbID

	movie.ProductionCompanies = make([]models.ProductionCompany, 0, len(raw.ProductionCompanies))
	for _, pc := range raw.ProductionCompanies {
		movie.ProductionCompanies = append(movie.ProductionCompanies, models.ProductionCompany{
			ID:            pc.ID,
			Name:          pc.Name,
			LogoPath:      pc.LogoPath,
			OriginCountry: pc.OriginCountry,
		})
	}

	movie.ProductionCountries = make([]models.ProductionCountry, 0, len(raw.ProductionCountries))
	for _, pc := range raw.ProductionCountries {
		movie.ProductionCountries = append(movie.ProductionCountries, models.ProductionCountry{
			ISO3166_1: pc.ISO3166_1,
			Name:      pc.Name,
		})
	}

	movie.SpokenLanguages = make([]models.SpokenLanguage, 0, len(raw.SpokenLanguages))
	for _, sl := range raw.SpokenLanguages {
		movie.SpokenLanguages = append(movie.SpokenLanguages, models.SpokenLanguage{
			ISO639_1:    sl.ISO639_1,
			Name:        sl.Name,
			EnglishName: sl.EnglishName,
		})
	}

	if raw.Credits != nil {
		movie.Credits = n.normalizeCredits(raw.Credits)
	}
	if raw.Videos != nil {
		movie.Videos = n.normalizeVideos(raw.Videos)
	}
	if raw.Reviews != nil {
		movie.Reviews = n.normalizeReviews(raw.Reviews)
	}

	movie.Similar = []models.Movie{}
	if raw.Similar != nil {
		for _, sim := range raw.Similar.Results {
			movie.Similar = append(movie.Similar, n.NormalizeMovie(sim))
		}
	}

	return &movie
}

// NormalizePage maps a raw list response into a MoviePage
func (n *Normalizer) NormalizePage(raw *tmdb.ListResponse) *models.MoviePage {
	page := &models.MoviePage{
		Page:         raw.Page,
		TotalPages:   raw.TotalPages,
		TotalResults: raw.TotalResults,
		Results:      make([]models.Movie, 0, len(raw.Results)),
	}
	for _, m := range raw.Results {
		page.Results = append(page.Results, n.NormalizeMovie(m))
	}
	return page
}

// NormalizeGenres maps raw genre entries into canonical ones
func (n *Normalizer) NormalizeGenres(raw []tmdb.Genre) []models.Genre {
	genres := make([]models.Genre, 0, len(raw))
	for _, g := range raw {
		genres = append(genres, models.Genre{ID: g.ID, Name: g.Name})
	}
	return genres
}

func (n *Normalizer) normalizeCredits(raw *tmdb.Credits) *models.Credits {
	credits := &models.Credits{
		Cast: make([]models.CastMember, 0, len(raw.Cast)),
		Crew: make([]models.CrewMember, 0, len(raw.Crew)),
	}
	for _, c := range raw.Cast {
		credits.Cast = append(credits.Cast, models.CastMember{
			ID:          c.ID,
			Name:        c.Name,
			Character:   c.Character,
			ProfilePath: c.ProfilePath,
			Order:       c.Order,
		})
	}
	for _, c := range raw.Crew {
		credits.Crew = append(credits.Crew, models.CrewMember{
			ID:         c.ID,
			Name:       c.Name,
			Job:        c.Job,
			Department: c.Department,
		})
	}
	return credits
}

func (n *Normalizer) normalizeVideos(raw *tmdb.VideoList) *models.VideoList {
	videos := &models.VideoList{Results: make([]models.Video, 0, len(raw.Results))}
	for _, v := range raw.Results {
		videos.Results = append(videos.Results, models.Video{
			ID:   v.ID,
			Key:  v.Key,
			Name: v.Name,
			Site: v.Site,
			Type: v.Type,
		})
	}
	return videos
}

func (n *Normalizer) normalizeReviews(raw *tmdb.ReviewList) *models.ReviewList {
	reviews := &models.ReviewList{Results: make([]models.Review, 0, len(raw.Results))}
	for _, r := range raw.Results {
		reviews.Results = append(reviews.Results, models.Review{
			ID:      r.ID,
			Author:  r.Author,
			Content: r.Content,
			URL:     r.URL,
		})
	}
	return reviews
}

// imageURL builds a fully-qualified image URL from a relative TMDB path,
// or nil when no path is present
func (n *Normalizer) imageURL(path, size string) *string {
	if path == "" {
		return nil
	}
	full := n.imageBaseURL + "/" + size + path
	return &full
}
