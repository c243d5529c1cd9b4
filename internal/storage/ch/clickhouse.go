package ch

import (
	"context"
	"crypto/tls"
	"fmt"

	"bookcatalog/internal/models"
	"bookcatalog/internal/storage"

	"github.com/ClickHouse/clickhouse-go/v2"
)

var _ storage.Storage = &ClickHouseDB{}

// ClickHouseDB stores the catalog in the books table, one row per book with
// its position in the catalog
type ClickHouseDB struct {
	conn clickhouse.Conn
}

// newOptions builds driver options shared by the native connection and migrations
func newOptions(host string, port int, database, user, password string, useTLS bool) *clickhouse.Options {
	options := &clickhouse.Options{
		Addr:     []string{fmt.Sprintf("%s:%d", host, port)},
		Protocol: clickhouse.Native,
		Auth: clickhouse.Auth{
			Database: database,
			Username: user,
			Password: password,
		},
	}

	// Configure TLS if enabled
	if useTLS {
		options.TLS = &tls.Config{
			InsecureSkipVerify: false,
		}
	}
	return options
}

// NewClickHouseDB creates a new ClickHouse database connection
func NewClickHouseDB(host string, port int, database, user, password string, useTLS bool) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(newOptions(host, port, database, user, password, useTLS))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	// Test the connection
	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Initialize checks that the books table exists.
// Tables are managed via migrations (see migrations/ directory).
func (db *ClickHouseDB) Initialize(ctx context.Context) error {
	var exists uint8
	if err := db.conn.QueryRow(ctx, `EXISTS TABLE books`).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check books table: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("books table does not exist, run migrations first")
	}
	return nil
}

// Load returns all books ordered by their position in the catalog
func (db *ClickHouseDB) Load(ctx context.Context) ([]models.Book, error) {
	rows, err := db.conn.Query(ctx, `SELECT id, title, author, year, status FROM books ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var (
			id     int64
			year   int64
			status string
			book   models.Book
		)
		if err := rows.Scan(&id, &book.Title, &book.Author, &year, &status); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		book.ID = int(id)
		book.Year = int(year)
		book.Status, err = models.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: book %d: %v", storage.ErrMalformed, id, err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read books: %w", err)
	}
	return books, nil
}

// Save replaces the contents of the books table with the given collection
func (db *ClickHouseDB) Save(ctx context.Context, books []models.Book) error {
	if err := db.conn.Exec(ctx, `TRUNCATE TABLE books`); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}
	if len(books) == 0 {
		return nil
	}

	batch, err := db.conn.PrepareBatch(ctx, `INSERT INTO books (position, id, title, author, year, status)`)
	if err != nil {
		return fmt.Errorf("failed to prepare books batch: %w", err)
	}
	for i, b := range books {
		if err := batch.Append(uint32(i), int64(b.ID), b.Title, b.Author, int64(b.Year), string(b.Status)); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("failed to append book %d: %w", b.ID, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to save books: %w", err)
	}
	return nil
}

// Close closes the database connection
func (db *ClickHouseDB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}
