package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/WasiqP/MovieApp/internal/cache"
	"github.com/WasiqP/MovieApp/internal/config"
	"github.com/WasiqP/MovieApp/internal/handler"
	"github.com/WasiqP/MovieApp/internal/notify"
	"github.com/WasiqP/MovieApp/internal/platform/logger"
	"github.com/WasiqP/MovieApp/internal/repository"
	"github.com/WasiqP/MovieApp/internal/service"
	"github.com/WasiqP/MovieApp/internal/tmdb"
)

func main() {
	// .env is a development convenience; absence is not an error
	_ = godotenv.Load()

	log := logger.New("movie-catalog")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.TMDBAPIKey == "" {
		log.Warn().Msg("MOVIEAPP_TMDB_API_KEY not set, TMDB calls will fail")
	}

	// Storage: one SQLite file holds the durable movie cache and the
	// per-user stores
	db, err := repository.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database schema")
	}

	movieCacheRepo := repository.NewMovieCacheRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	historyRepo := repository.NewWatchHistoryRepository(db)

	// Upstream gateway
	tmdbClient := tmdb.NewClient(cfg.TMDBAPIKey)
	if cfg.TMDBBaseURL != "" {
		tmdbClient.SetBaseURL(cfg.TMDBBaseURL)
	}
	tmdbClient.SetLanguage(cfg.TMDBLanguage)

	// Ephemeral cache tier; losing it only costs upstream calls
	memCache := cache.NewMemory()
	defer memCache.Close()

	normalizer := service.NewNormalizer(cfg.ImageBaseURL)
	catalog := service.NewCatalogService(tmdbClient, memCache, movieCacheRepo, normalizer, log)
	favorites := service.NewFavoritesService(favoriteRepo, catalog)
	history := service.NewWatchHistoryService(historyRepo, catalog)
	backupSvc := service.NewBackupService(cfg.DBPath, cfg.BackupDir)

	scheduler := service.NewScheduler(movieCacheRepo, backupSvc, log)
	scheduler.Start()
	defer scheduler.Stop()

	// Optional Telegram surface
	var bot *notify.TelegramBot
	if cfg.TelegramBotToken != "" {
		bot, err = notify.NewTelegramBot(cfg.TelegramBotToken, catalog, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create telegram bot")
		}
		go bot.Start()
		defer bot.Stop()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	h := handler.NewHandler(catalog, favorites, history, backupSvc, log)
	h.RegisterRoutes(engine)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("movie catalog server started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
