package ch

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clickhouseTC "github.com/testcontainers/testcontainers-go/modules/clickhouse"

	"bookcatalog/internal/models"
	"bookcatalog/internal/storage"
)

// runMigrations manually creates the schema
func runMigrations(ctx context.Context, db *ClickHouseDB) error {
	_ = db.conn.Exec(ctx, "DROP TABLE IF EXISTS books")

	return db.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS books (
			position UInt32,
			id Int64,
			title String,
			author String,
			year Int64,
			status String
		) ENGINE = MergeTree()
		ORDER BY position
	`)
}

// setupTestDB creates a test ClickHouse instance using testcontainers
func setupTestDB(t *testing.T, migrate bool) (*ClickHouseDB, func()) {
	if testing.Short() {
		t.Skip("skipping ClickHouse container test in short mode")
	}
	ctx := context.Background()

	clickhouseContainer, err := clickhouseTC.Run(ctx,
		"clickhouse/clickhouse-server:24.3.3.102-alpine",
		clickhouseTC.WithUsername("default"),
		clickhouseTC.WithPassword(""),
		clickhouseTC.WithDatabase("default"),
	)
	require.NoError(t, err, "Failed to start ClickHouse container")

	host, err := clickhouseContainer.Host(ctx)
	require.NoError(t, err)

	port, err := clickhouseContainer.MappedPort(ctx, "9000/tcp")
	require.NoError(t, err)

	db, err := NewClickHouseDB(host, port.Int(), "default", "default", "", false)
	require.NoError(t, err, "Failed to connect to ClickHouse")

	if migrate {
		require.NoError(t, runMigrations(ctx, db), "Failed to run migrations")
	}

	cleanup := func() {
		db.Close()
		clickhouseContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestClickHouseDB_InitializeWithoutSchema(t *testing.T) {
	db, cleanup := setupTestDB(t, false)
	defer cleanup()

	err := db.Initialize(context.Background())
	assert.Error(t, err)
}

func TestClickHouseDB_LoadEmpty(t *testing.T) {
	db, cleanup := setupTestDB(t, true)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, db.Initialize(ctx))

	books, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestClickHouseDB_SaveAndLoad(t *testing.T) {
	db, cleanup := setupTestDB(t, true)
	defer cleanup()

	ctx := context.Background()

	books := []models.Book{
		{ID: 4, Title: "Foundation", Author: "Asimov", Year: 1951, Status: models.StatusCheckedOut},
		{ID: 2, Title: "Мастер и Маргарита", Author: "Булгаков", Year: 1967, Status: models.StatusAvailable},
		{ID: 9, Title: "Dune", Author: "Herbert", Year: 1965, Status: models.StatusAvailable},
	}
	require.NoError(t, db.Save(ctx, books))

	loaded, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, books, loaded, "storage order must be preserved")

	// Saving again replaces everything
	require.NoError(t, db.Save(ctx, books[1:2]))
	loaded, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, books[1:2], loaded)

	require.NoError(t, db.Save(ctx, nil))
	loaded, err = db.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestClickHouseDB_YearOutsideInt32(t *testing.T) {
	db, cleanup := setupTestDB(t, true)
	defer cleanup()

	ctx := context.Background()
	farFuture := int64(math.MaxInt32) + 1

	books := []models.Book{
		{ID: 1, Title: "Far Future", Author: "A", Year: int(farFuture), Status: models.StatusAvailable},
		{ID: 2, Title: "Iliad", Author: "Homer", Year: -750, Status: models.StatusAvailable},
	}
	require.NoError(t, db.Save(ctx, books))

	loaded, err := db.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, books, loaded)
}

func TestClickHouseDB_LoadUnknownStatus(t *testing.T) {
	db, cleanup := setupTestDB(t, true)
	defer cleanup()

	ctx := context.Background()
	err := db.conn.Exec(ctx, `INSERT INTO books (position, id, title, author, year, status) VALUES (0, 1, 'T', 'A', 2000, 'lost')`)
	require.NoError(t, err)

	_, err = db.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrMalformed)
}
