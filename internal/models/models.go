package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidStatus is returned when a status is not one of the known values
	ErrInvalidStatus = errors.New("invalid status")

	// ErrUnknownField is returned when a search field is not recognized
	ErrUnknownField = errors.New("unknown search field")
)

// Status is the availability of a book
type Status string

const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked-out"
)

// legacy labels written by older catalog files
var statusAliases = map[string]Status{
	"в наличии": StatusAvailable,
	"выдана":    StatusCheckedOut,
}

// ParseStatus converts user or file text into a Status
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	switch Status(strings.ToLower(s)) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusCheckedOut:
		return StatusCheckedOut, nil
	}
	if status, ok := statusAliases[strings.ToLower(s)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrInvalidStatus, s, StatusAvailable, StatusCheckedOut)
}

// Book represents a book in the catalog
type Book struct {
	ID     int
	Title  string
	Author string
	Year   int
	Status Status
}

// String formats the book for display
func (b Book) String() string {
	return fmt.Sprintf("ID: %d, Title: %s, Author: %s, Year: %d, Status: %s",
		b.ID, b.Title, b.Author, b.Year, b.Status)
}

// Field is a searchable book field
type Field int

const (
	FieldTitle Field = iota
	FieldAuthor
	FieldYear
	FieldStatus
)

var fieldNames = map[Field]string{
	FieldTitle:  "title",
	FieldAuthor: "author",
	FieldYear:   "year",
	FieldStatus: "status",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField maps a field name to a Field
func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Criterion is a single field equality constraint
type Criterion struct {
	Field Field
	Value string
}

// Criteria is an ordered set of constraints combined with logical AND.
// An empty Criteria matches every book.
type Criteria []Criterion

// NewCriterion builds a Criterion, normalizing year and status values so that
// matching compares canonical forms.
func NewCriterion(field Field, value string) (Criterion, error) {
	switch field {
	case FieldTitle, FieldAuthor:
		return Criterion{Field: field, Value: value}, nil
	case FieldYear:
		year, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Criterion{}, fmt.Errorf("invalid year %q: %w", value, err)
		}
		return Criterion{Field: field, Value: strconv.Itoa(year)}, nil
	case FieldStatus:
		status, err := ParseStatus(value)
		if err != nil {
			return Criterion{}, err
		}
		return Criterion{Field: field, Value: string(status)}, nil
	}
	return Criterion{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
}

// Matches reports whether the book satisfies the criterion
func (c Criterion) Matches(b Book) bool {
	switch c.Field {
	case FieldTitle:
		return b.Title == c.Value
	case FieldAuthor:
		return b.Author == c.Value
	case FieldYear:
		year, err := strconv.Atoi(strings.TrimSpace(c.Value))
		return err == nil && year == b.Year
	case FieldStatus:
		return string(b.Status) == c.Value
	}
	return false
}

// Matches reports whether the book satisfies every criterion
func (cs Criteria) Matches(b Book) bool {
	for _, c := range cs {
		if !c.Matches(b) {
			return false
		}
	}
	return true
}
