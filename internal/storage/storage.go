package storage

import (
	"context"
	"errors"

	"bookcatalog/internal/models"
)

// ErrMalformed is returned by Load when persisted data cannot be decoded into books
var ErrMalformed = errors.New("malformed catalog data")

// Storage defines the interface for persisting the whole catalog.
// The catalog is always written and read as one unit, never patched.
type Storage interface {
	// Load returns every persisted book in storage order.
	// A storage location that does not exist yet yields an empty collection.
	Load(ctx context.Context) ([]models.Book, error)

	// Save overwrites the persisted collection with books
	Save(ctx context.Context, books []models.Book) error

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
