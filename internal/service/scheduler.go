package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/WasiqP/MovieApp/internal/repository"
)

const reapInterval = time.Hour

// Scheduler runs the background maintenance loops: the hourly movie cache
// reaper and the weekly database backup.
type Scheduler struct {
	movieCache *repository.MovieCacheRepository
	backupSvc  *BackupService
	log        zerolog.Logger
	stopChan   chan struct{}
}

// NewScheduler creates a new Scheduler
func NewScheduler(movieCache *repository.MovieCacheRepository, backupSvc *BackupService, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		movieCache: movieCache,
		backupSvc:  backupSvc,
		log:        log,
		stopChan:   make(chan struct{}),
	}
}

// Start starts all scheduled tasks
func (s *Scheduler) Start() {
	go s.runCacheReaper()
	go s.runWeeklyBackupScheduler()
	s.log.Info().Msg("scheduler started: hourly cache reaper, weekly backup on Sundays at 03:00")
}

// Stop stops all scheduled tasks
func (s *Scheduler) Stop() {
	close(s.stopChan)
}

// runCacheReaper periodically removes expired movie cache rows. Expired rows
// are already treated as misses on read; the reaper only reclaims space.
func (s *Scheduler) runCacheReaper() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			deleted, err := s.movieCache.DeleteExpired()
			if err != nil {
				s.log.Warn().Err(err).Msg("cache reaper failed")
				continue
			}
			if deleted > 0 {
				s.log.Debug().Int64("deleted", deleted).Msg("reaped expired movie cache rows")
			}
		case <-s.stopChan:
			return
		}
	}
}

// runWeeklyBackupScheduler runs the weekly backup scheduler
func (s *Scheduler) runWeeklyBackupScheduler() {
	for {
		nextRun := s.calculateNextBackupTime()
		duration := time.Until(nextRun)

		s.log.Info().Time("next_run", nextRun).Msg("next backup scheduled")

		select {
		case <-time.After(duration):
			backupPath, err := s.backupSvc.Backup()
			if err != nil {
				s.log.Error().Err(err).Msg("failed to create backup")
			} else {
				s.log.Info().Str("path", backupPath).Msg("backup created")
			}
		case <-s.stopChan:
			return
		}
	}
}

// calculateNextBackupTime calculates the next Sunday at 03:00
func (s *Scheduler) calculateNextBackupTime() time.Time {
	now := time.Now()

	daysUntilSunday := (7 - int(now.Weekday())) % 7
	if daysUntilSunday == 0 {
		backupTime := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
		if now.After(backupTime) {
			daysUntilSunday = 7
		}
	}

	nextSunday := now.AddDate(0, 0, daysUntilSunday)
	return time.Date(nextSunday.Year(), nextSunday.Month(), nextSunday.Day(), 3, 0, 0, 0, now.Location())
}
