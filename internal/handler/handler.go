package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/WasiqP/MovieApp/internal/service"
)

const userIDHeader = "X-User-ID"

// Handler handles all HTTP requests
type Handler struct {
	catalog   *service.CatalogService
	favorites *service.FavoritesService
	history   *service.WatchHistoryService
	backupSvc *service.BackupService
	log       zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(
	catalog *service.CatalogService,
	favorites *service.FavoritesService,
	history *service.WatchHistoryService,
	backupSvc *service.BackupService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		catalog:   catalog,
		favorites: favorites,
		history:   history,
		backupSvc: backupSvc,
		log:       log,
	}
}

// RegisterRoutes registers all API routes. Movie browsing is public;
// favorites and watch history require an authenticated user identity.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/health", h.Health)

	movies := api.Group("/movies")
	{
		movies.GET("/popular", h.GetPopular)
		movies.GET("/trending", h.GetTrending)
		movies.GET("/top-rated", h.GetTopRated)
		movies.GET("/upcoming", h.GetUpcoming)
		movies.GET("/search", h.SearchMovies)
		movies.GET("/genres", h.GetGenres)
		movies.GET("/genre/:id", h.GetByGenre)
		movies.GET("/:id", h.GetMovieDetails)
		movies.POST("/:id/watch", h.userIdentity, h.RecordWatch)
	}

	favorites := api.Group("/favorites", h.userIdentity)
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.AddFavorite)
		favorites.GET("/stats", h.FavoriteStats)
		favorites.GET("/check/:movieId", h.CheckFavorite)
		favorites.DELETE("/:movieId", h.RemoveFavorite)
	}

	users := api.Group("/users", h.userIdentity)
	{
		users.GET("/watch-history", h.GetWatchHistory)
		users.DELETE("/watch-history", h.ClearWatchHistory)
		users.DELETE("/watch-history/:movieId", h.RemoveFromWatchHistory)
		users.GET("/stats", h.WatchStats)
	}

	api.POST("/admin/backup", h.RunBackup)
}

// Health returns health status
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// RunBackup triggers an immediate database backup
func (h *Handler) RunBackup(c *gin.Context) {
	backupPath, err := h.backupSvc.Backup()
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, http.StatusOK, gin.H{"backupPath": backupPath})
}

// userIdentity requires an already-validated user identity on the request.
// Session issuance happens upstream; this boundary only receives the id.
func (h *Handler) userIdentity(c *gin.Context) {
	userID, err := strconv.ParseInt(c.GetHeader(userIDHeader), 10, 64)
	if err != nil || userID <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "valid user identity required",
		})
		c.Abort()
		return
	}

	c.Set("userID", userID)
	c.Next()
}

// Helper functions

func (h *Handler) userID(c *gin.Context) int64 {
	return c.GetInt64("userID")
}

func (h *Handler) pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handler) limitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		return 20
	}
	return limit
}

func (h *Handler) intParam(c *gin.Context, key string) (int, bool) {
	value, err := strconv.Atoi(c.Param(key))
	if err != nil {
		return 0, false
	}
	return value, true
}

// respondOK writes the success envelope
func (h *Handler) respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondError maps a service error onto the failure envelope. Messages are
// stable and human readable; raw upstream bodies never leak through.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrAlreadyExists):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrUpstreamUnavailable):
		status = http.StatusBadGateway
		message = "catalog provider is unavailable"
		h.log.Error().Err(err).Msg("upstream failure")
	default:
		h.log.Error().Err(err).Msg("request failed")
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondBadRequest writes a fixed invalid-input failure
func (h *Handler) respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}
