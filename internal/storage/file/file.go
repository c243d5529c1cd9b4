package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/kjk/common/atomicfile"
	"github.com/tidwall/pretty"

	"bookcatalog/internal/models"
	"bookcatalog/internal/storage"
)

var (
	// non-ASCII text is written verbatim, never as \u escapes
	codec = jsoniter.Config{
		EscapeHTML:             false,
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}.Froze()

	prettyOptions = &pretty.Options{Width: 80, Indent: "    "}

	defaultFileMode os.FileMode = 0o644

	_ storage.Storage = &FileDB{}
)

// record is the on-disk shape of a book.
// Pointers let Load tell a missing field apart from a zero value.
type record struct {
	ID     *int    `json:"id"`
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Year   *int    `json:"year"`
	Status *string `json:"status"`
}

// FileDB stores the catalog as a single JSON document
type FileDB struct {
	path string
}

// NewFileDB creates a file-backed storage at path
func NewFileDB(path string) (*FileDB, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog file path is required")
	}
	return &FileDB{path: path}, nil
}

// Path returns the catalog file location
func (db *FileDB) Path() string {
	return db.path
}

// Initialize makes sure the directory holding the catalog file exists
func (db *FileDB) Initialize(ctx context.Context) error {
	dir := filepath.Dir(db.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create catalog directory %s: %w", dir, err)
	}
	return nil
}

// Load reads the catalog file. A missing file is an empty catalog.
func (db *FileDB) Load(ctx context.Context) ([]models.Book, error) {
	data, err := os.ReadFile(db.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Book{}, nil
		}
		return nil, fmt.Errorf("failed to read catalog file %s: %w", db.path, err)
	}

	var records []record
	if err := codec.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", storage.ErrMalformed, db.path, err)
	}
	// a literal null decodes to a nil slice, an empty catalog is written as []
	if records == nil {
		return nil, fmt.Errorf("%w: %s: catalog is null", storage.ErrMalformed, db.path)
	}

	books := make([]models.Book, 0, len(records))
	for i, r := range records {
		book, err := r.toBook()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %d: %v", storage.ErrMalformed, db.path, i, err)
		}
		books = append(books, book)
	}
	return books, nil
}

// Save rewrites the whole catalog file. The new content replaces the old one
// only after it has been fully written and synced. Permissions of an existing
// file are kept.
func (db *FileDB) Save(ctx context.Context, books []models.Book) error {
	records := make([]record, 0, len(books))
	for _, b := range books {
		records = append(records, fromBook(b))
	}

	data, err := codec.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	data = pretty.PrettyOptions(data, prettyOptions)

	mode := defaultFileMode
	if fi, err := os.Stat(db.path); err == nil {
		mode = fi.Mode().Perm()
	}

	w, err := atomicfile.New(db.path)
	if err != nil {
		return fmt.Errorf("failed to write catalog file %s: %w", db.path, err)
	}
	defer w.RemoveIfNotClosed()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write catalog file %s: %w", db.path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to write catalog file %s: %w", db.path, err)
	}

	// the temp file is created 0600
	if err := os.Chmod(db.path, mode); err != nil {
		return fmt.Errorf("failed to set mode of catalog file %s: %w", db.path, err)
	}
	return nil
}

// Close does nothing for the file storage
func (db *FileDB) Close() error {
	return nil
}

func (r record) toBook() (models.Book, error) {
	switch {
	case r.ID == nil:
		return models.Book{}, fmt.Errorf("missing field %q", "id")
	case r.Title == nil:
		return models.Book{}, fmt.Errorf("missing field %q", "title")
	case r.Author == nil:
		return models.Book{}, fmt.Errorf("missing field %q", "author")
	case r.Year == nil:
		return models.Book{}, fmt.Errorf("missing field %q", "year")
	case r.Status == nil:
		return models.Book{}, fmt.Errorf("missing field %q", "status")
	}

	status, err := models.ParseStatus(*r.Status)
	if err != nil {
		return models.Book{}, err
	}

	return models.Book{
		ID:     *r.ID,
		Title:  *r.Title,
		Author: *r.Author,
		Year:   *r.Year,
		Status: status,
	}, nil
}

func fromBook(b models.Book) record {
	status := string(b.Status)
	return record{
		ID:     &b.ID,
		Title:  &b.Title,
		Author: &b.Author,
		Year:   &b.Year,
		Status: &status,
	}
}
