package storage

import "rental-analyzer/models"

// ListingSource is the interface any listing backend must satisfy.
type ListingSource interface {
	Load() ([]models.Listing, error)
	Name() string
	Close() error
}
