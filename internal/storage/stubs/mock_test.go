package stubs

import (
	"context"
	"errors"
	"testing"

	"bookcatalog/internal/models"
)

func TestMockDB_LoadEmpty(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	if err := db.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}

	books, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load books: %v", err)
	}
	if books == nil || len(books) != 0 {
		t.Errorf("Expected empty non-nil collection, got %v", books)
	}
}

func TestMockDB_SaveAndLoad(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()

	books := []models.Book{
		{ID: 1, Title: "Dune", Author: "Herbert", Year: 1965, Status: models.StatusAvailable},
		{ID: 2, Title: "Foundation", Author: "Asimov", Year: 1951, Status: models.StatusCheckedOut},
	}
	if err := db.Save(ctx, books); err != nil {
		t.Fatalf("Failed to save books: %v", err)
	}

	// Mutating the caller's slice must not leak into storage
	books[0].Title = "Changed"

	loaded, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load books: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 books, got %d", len(loaded))
	}
	if loaded[0].Title != "Dune" {
		t.Errorf("Expected stored title 'Dune', got '%s'", loaded[0].Title)
	}
	if loaded[1].Status != models.StatusCheckedOut {
		t.Errorf("Expected status checked-out, got %s", loaded[1].Status)
	}
	if db.Saves() != 1 {
		t.Errorf("Expected 1 save, got %d", db.Saves())
	}
}

func TestMockDB_Seed(t *testing.T) {
	db := NewMockDB(models.Book{ID: 5, Title: "Seeded", Status: models.StatusAvailable})

	books := db.Books()
	if len(books) != 1 || books[0].ID != 5 {
		t.Errorf("Expected seeded book with ID 5, got %v", books)
	}
	if db.Saves() != 0 {
		t.Errorf("Seeding must not count as a save, got %d", db.Saves())
	}
}

func TestMockDB_Errors(t *testing.T) {
	db := NewMockDB()
	ctx := context.Background()
	boom := errors.New("boom")

	db.SaveErr = boom
	if err := db.Save(ctx, nil); !errors.Is(err, boom) {
		t.Errorf("Expected save error, got %v", err)
	}

	db.LoadErr = boom
	if _, err := db.Load(ctx); !errors.Is(err, boom) {
		t.Errorf("Expected load error, got %v", err)
	}
}
