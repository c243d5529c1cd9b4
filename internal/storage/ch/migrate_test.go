package ch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bookcatalog/migrations"
)

func TestZapGooseLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zapGooseLogger{logger: zap.New(core).Sugar()}

	l.Printf("OK   %s (%d ms)", "00001_create_books.sql", 12)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "OK   00001_create_books.sql (12 ms)", entries[0].Message)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	data, err := migrations.FS.ReadFile("00001_create_books.sql")
	assert.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS books")
	// years are stored the width of a Go int
	assert.Contains(t, string(data), "year Int64")
}
