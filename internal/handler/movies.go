package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPopular returns a page of popular movies
// GET /api/movies/popular?page=N
func (h *Handler) GetPopular(c *gin.Context) {
	page, err := h.catalog.GetPopular(h.pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, page)
}

// GetTrending returns a page of trending movies
// GET /api/movies/trending?page=N&time_window=day|week
func (h *Handler) GetTrending(c *gin.Context) {
	timeWindow := c.DefaultQuery("time_window", "week")
	page, err := h.catalog.GetTrending(timeWindow, h.pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, page)
}

// GetTopRated returns a page of top rated movies
// GET /api/movies/top-rated?page=N
func (h *Handler) GetTopRated(c *gin.Context) {
	page, err := h.catalog.GetTopRated(h.pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, page)
}

// GetUpcoming returns a page of upcoming movies
// GET /api/movies/upcoming?page=N
func (h *Handler) GetUpcoming(c *gin.Context) {
	page, err := h.catalog.GetUpcoming(h.pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, page)
}

// SearchMovies searches the catalog
// GET /api/movies/search?q=<query>&page=N
func (h *Handler) SearchMovies(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.respondBadRequest(c, "search query is required")
		return
	}

	page, err := h.catalog.Search(query, h.pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, page)
}

// GetGenres returns the movie genre catalog
// GET /api/movies/genres
func (h *Handler) GetGenres(c *gin.Context) {
	genres, err := h.catalog.GetGenres()
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, genres)
}

// GetByGenre returns a page of movies for a genre
// GET /api/movies/genre/:id?page=N
func (h *Handler) GetByGenre(c *gin.Context) {
	genreID, ok := h.intParam(c, "id")
	if !ok {
		h.respondBadRequest(c, "invalid genre ID")
		return
	}

	page, err := h.catalog.GetByGenre(genreID, h.pageParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, page)
}

// GetMovieDetails returns the full detail record for a movie
// GET /api/movies/:id
func (h *Handler) GetMovieDetails(c *gin.Context) {
	movieID, ok := h.intParam(c, "id")
	if !ok {
		h.respondBadRequest(c, "invalid movie ID")
		return
	}

	movie, err := h.catalog.GetMovieDetails(movieID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, movie)
}

// RecordWatchRequest is the request body for recording watch progress
type RecordWatchRequest struct {
	Progress float64 `json:"progress"`
}

// RecordWatch records watch progress for the authenticated user
// POST /api/movies/:id/watch
func (h *Handler) RecordWatch(c *gin.Context) {
	movieID, ok := h.intParam(c, "id")
	if !ok {
		h.respondBadRequest(c, "invalid movie ID")
		return
	}

	var req RecordWatchRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.respondBadRequest(c, "invalid request body")
		return
	}

	entry, movie, err := h.history.RecordProgress(h.userID(c), movieID, req.Progress)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, gin.H{
		"movie": gin.H{
			"id":         movie.ID,
			"title":      movie.Title,
			"posterPath": movie.PosterPath,
		},
		"progress":  entry.Progress,
		"watchedAt": entry.WatchedAt,
	})
}
