// Package catalog owns the in-memory book collection and keeps the persisted
// copy in sync with it. Every mutation rewrites the whole collection.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bookcatalog/internal/models"
	"bookcatalog/internal/storage"
)

// ErrStorage is returned when the persisted catalog cannot be read or written
var ErrStorage = errors.New("catalog storage error")

// Catalog is the record store
type Catalog struct {
	db     storage.Storage
	books  []models.Book
	logger *zap.Logger
}

// New creates an empty catalog backed by db. Call Load to read persisted books.
func New(db storage.Storage, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		db:     db,
		books:  []models.Book{},
		logger: logger,
	}
}

// Load replaces the in-memory collection with the persisted one
func (c *Catalog) Load(ctx context.Context) error {
	books, err := c.db.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to load books: %w", ErrStorage, err)
	}
	if err := validate(books); err != nil {
		return fmt.Errorf("%w: %w: %v", ErrStorage, storage.ErrMalformed, err)
	}
	if books == nil {
		books = []models.Book{}
	}

	c.books = books
	c.logger.Debug("Catalog loaded", zap.Int("count", len(books)))
	return nil
}

// Save writes the full collection to storage, overwriting prior contents
func (c *Catalog) Save(ctx context.Context) error {
	if err := c.db.Save(ctx, c.books); err != nil {
		return fmt.Errorf("%w: failed to save books: %w", ErrStorage, err)
	}
	c.logger.Debug("Catalog saved", zap.Int("count", len(c.books)))
	return nil
}

// Add appends a new available book and returns its id.
// Duplicate titles and authors are allowed.
func (c *Catalog) Add(ctx context.Context, title, author string, year int) (int, error) {
	book := models.Book{
		ID:     c.nextID(),
		Title:  title,
		Author: author,
		Year:   year,
		Status: models.StatusAvailable,
	}
	c.books = append(c.books, book)

	if err := c.Save(ctx); err != nil {
		return book.ID, err
	}
	c.logger.Info("Book added", zap.Int("book_id", book.ID), zap.String("title", title))
	return book.ID, nil
}

// Remove deletes the book with id. It reports false, without touching
// storage, when no such book exists.
func (c *Catalog) Remove(ctx context.Context, id int) (bool, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	c.books = append(c.books[:idx], c.books[idx+1:]...)

	if err := c.Save(ctx); err != nil {
		return true, err
	}
	c.logger.Info("Book removed", zap.Int("book_id", id))
	return true, nil
}

// Find returns the books matching every criterion, in storage order.
// Empty criteria return the whole collection.
func (c *Catalog) Find(criteria models.Criteria) []models.Book {
	result := []models.Book{}
	for _, b := range c.books {
		if criteria.Matches(b) {
			result = append(result, b)
		}
	}
	return result
}

// ChangeStatus sets the status of the book with id. Any transition between
// known statuses is allowed, including to the current one.
func (c *Catalog) ChangeStatus(ctx context.Context, id int, status models.Status) (bool, error) {
	status, err := models.ParseStatus(string(status))
	if err != nil {
		return false, err
	}

	idx := c.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	c.books[idx].Status = status

	if err := c.Save(ctx); err != nil {
		return true, err
	}
	c.logger.Info("Book status changed", zap.Int("book_id", id), zap.String("status", string(status)))
	return true, nil
}

// List returns every book in storage order
func (c *Catalog) List() []models.Book {
	books := make([]models.Book, len(c.books))
	copy(books, c.books)
	return books
}

// Len returns the number of books
func (c *Catalog) Len() int {
	return len(c.books)
}

func (c *Catalog) nextID() int {
	maxID := 0
	for _, b := range c.books {
		if b.ID > maxID {
			maxID = b.ID
		}
	}
	return maxID + 1
}

func (c *Catalog) indexOf(id int) int {
	for i, b := range c.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// validate checks the invariants the rest of the catalog relies on
func validate(books []models.Book) error {
	seen := make(map[int]bool, len(books))
	for _, b := range books {
		if b.ID <= 0 {
			return fmt.Errorf("book id %d is not positive", b.ID)
		}
		if seen[b.ID] {
			return fmt.Errorf("duplicate book id %d", b.ID)
		}
		seen[b.ID] = true

		if _, err := models.ParseStatus(string(b.Status)); err != nil {
			return fmt.Errorf("book %d: %w", b.ID, err)
		}
	}
	return nil
}
