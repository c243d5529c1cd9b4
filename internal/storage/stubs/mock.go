package stubs

import (
	"context"
	"sync"

	"bookcatalog/internal/models"
	"bookcatalog/internal/storage"
)

var _ storage.Storage = &MockDB{}

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu    sync.RWMutex
	books []models.Book
	saves int

	// SaveErr, when set, is returned by every Save call
	SaveErr error
	// LoadErr, when set, is returned by every Load call
	LoadErr error
}

// NewMockDB creates a new mock database holding the given books
func NewMockDB(seed ...models.Book) *MockDB {
	return &MockDB{books: cloneBooks(seed)}
}

// Initialize does nothing for mock DB
func (m *MockDB) Initialize(ctx context.Context) error {
	return nil
}

// Load returns a copy of the stored books
func (m *MockDB) Load(ctx context.Context) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return cloneBooks(m.books), nil
}

// Save replaces the stored books
func (m *MockDB) Save(ctx context.Context, books []models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.books = cloneBooks(books)
	m.saves++
	return nil
}

// Books returns what was last saved
func (m *MockDB) Books() []models.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cloneBooks(m.books)
}

// Saves returns how many successful Save calls were made
func (m *MockDB) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.saves
}

// Close does nothing for mock DB
func (m *MockDB) Close() error {
	return nil
}

func cloneBooks(books []models.Book) []models.Book {
	out := make([]models.Book, len(books))
	copy(out, books)
	return out
}
