package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListFavorites returns the user's favorites, newest first
// GET /api/favorites?page=N&limit=M
func (h *Handler) ListFavorites(c *gin.Context) {
	favorites, pagination, err := h.favorites.List(h.userID(c), h.pageParam(c), h.limitParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, gin.H{
		"favorites":  favorites,
		"pagination": pagination,
	})
}

// AddFavoriteRequest is the request body for adding a favorite
type AddFavoriteRequest struct {
	MovieID int `json:"movieId" binding:"required"`
}

// AddFavorite saves a movie to the user's favorites
// POST /api/favorites
func (h *Handler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBadRequest(c, "movieId is required")
		return
	}

	favorite, err := h.favorites.Add(h.userID(c), req.MovieID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, http.StatusCreated, gin.H{"favorite": favorite})
}

// RemoveFavorite removes a movie from the user's favorites
// DELETE /api/favorites/:movieId
func (h *Handler) RemoveFavorite(c *gin.Context) {
	movieID, ok := h.intParam(c, "movieId")
	if !ok {
		h.respondBadRequest(c, "invalid movie ID")
		return
	}

	if err := h.favorites.Remove(h.userID(c), movieID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, gin.H{"movieId": movieID})
}

// CheckFavorite reports whether a movie is in the user's favorites
// GET /api/favorites/check/:movieId
func (h *Handler) CheckFavorite(c *gin.Context) {
	movieID, ok := h.intParam(c, "movieId")
	if !ok {
		h.respondBadRequest(c, "invalid movie ID")
		return
	}

	isFavorite, err := h.favorites.Exists(h.userID(c), movieID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, gin.H{"isFavorite": isFavorite})
}

// FavoriteStats returns aggregates over the user's favorites
// GET /api/favorites/stats
func (h *Handler) FavoriteStats(c *gin.Context) {
	stats, err := h.favorites.Stats(h.userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, stats)
}

// GetWatchHistory returns the user's watch history, newest first
// GET /api/users/watch-history?page=N&limit=M
func (h *Handler) GetWatchHistory(c *gin.Context) {
	entries, pagination, err := h.history.List(h.userID(c), h.pageParam(c), h.limitParam(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, gin.H{
		"watchHistory": entries,
		"pagination":   pagination,
	})
}

// RemoveFromWatchHistory removes one movie from the user's history
// DELETE /api/users/watch-history/:movieId
func (h *Handler) RemoveFromWatchHistory(c *gin.Context) {
	movieID, ok := h.intParam(c, "movieId")
	if !ok {
		h.respondBadRequest(c, "invalid movie ID")
		return
	}

	if err := h.history.Remove(h.userID(c), movieID); err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, http.StatusOK, gin.H{"movieId": movieID})
}

// ClearWatchHistory empties the user's entire history
// DELETE /api/users/watch-history
func (h *Handler) ClearWatchHistory(c *gin.Context) {
	if err := h.history.Clear(h.userID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, gin.H{"cleared": true})
}

// WatchStats returns aggregates over the user's watch history
// GET /api/users/stats
func (h *Handler) WatchStats(c *gin.Context) {
	stats, err := h.history.Stats(h.userID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, stats)
}
