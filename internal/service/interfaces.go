package service

import "github.com/WasiqP/MovieApp/internal/models"

// EntityLookup is the read-only capability the per-user stores need from the
// catalog: resolving a movie id to its detail record so display fields can
// be snapshotted at write time. CatalogService satisfies it.
type EntityLookup interface {
	GetMovieDetails(movieID int) (*models.Movie, error)
}
