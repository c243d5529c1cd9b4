package shell

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"bookcatalog/internal/models"
)

// handleAdd asks for title, author and year and adds the book
func (s *Shell) handleAdd(ctx context.Context) {
	title, ok := s.readLine("Enter the book title: ")
	if !ok {
		return
	}
	author, ok := s.readLine("Enter the book author: ")
	if !ok {
		return
	}
	year, ok := s.readInt("Enter the publication year: ")
	if !ok {
		return
	}

	id, err := s.catalog.Add(ctx, title, author, year)
	if err != nil {
		s.reportError("add book", err)
		return
	}
	s.printf("Book '%s' added with ID %d.\n", title, id)
}

// handleRemove asks for an id and removes that book
func (s *Shell) handleRemove(ctx context.Context) {
	id, ok := s.readInt("Enter the ID of the book to remove: ")
	if !ok {
		return
	}

	found, err := s.catalog.Remove(ctx, id)
	if err != nil {
		s.reportError("remove book", err)
		return
	}
	if !found {
		s.printf("Book with ID %d not found.\n", id)
		return
	}
	s.printf("Book with ID %d removed.\n", id)
}

// handleFind asks for a field and a value and prints the matching books
func (s *Shell) handleFind() {
	fieldName, ok := s.readLine("Search by (title/author/year/status): ")
	if !ok {
		return
	}
	field, err := models.ParseField(fieldName)
	if err != nil {
		s.printf("Unknown search field %q. Use title, author, year or status.\n", fieldName)
		return
	}

	value, ok := s.readLine("Enter the value to search by " + field.String() + ": ")
	if !ok {
		return
	}
	criterion, err := models.NewCriterion(field, value)
	if err != nil {
		s.printf("Invalid value: %v\n", err)
		return
	}

	books := s.catalog.Find(models.Criteria{criterion})
	if len(books) == 0 {
		s.printf("No books found.\n")
		return
	}
	s.printBooks(books)
}

// handleList prints every book
func (s *Shell) handleList() {
	if s.catalog.Len() == 0 {
		s.printf("Catalog is empty.\n")
		return
	}
	s.printBooks(s.catalog.List())
}

// handleChangeStatus asks for an id and a new status and applies it
func (s *Shell) handleChangeStatus(ctx context.Context) {
	id, ok := s.readInt("Enter the ID of the book: ")
	if !ok {
		return
	}
	statusText, ok := s.readLine("Enter the new status ('available' or 'checked-out'): ")
	if !ok {
		return
	}

	found, err := s.catalog.ChangeStatus(ctx, id, models.Status(statusText))
	if errors.Is(err, models.ErrInvalidStatus) {
		s.printf("Invalid status %q. Use 'available' or 'checked-out'.\n", statusText)
		return
	}
	if err != nil {
		s.reportError("change book status", err)
		return
	}
	if !found {
		s.printf("Book with ID %d not found.\n", id)
		return
	}

	status, _ := models.ParseStatus(statusText)
	s.printf("Status of book with ID %d changed to '%s'.\n", id, status)
}

func (s *Shell) reportError(action string, err error) {
	s.logger.Error("Failed to "+action, zap.Error(err))
	s.printf("Error: failed to %s: %v\n", action, err)
}
