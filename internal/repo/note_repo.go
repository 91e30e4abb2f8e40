// Package repo implements the data persistence layer for the example notes
// service, backed by GORM. This file provides repository functions for the
// Note model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a note is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Slug collisions rely on the database unique index and are returned as
//     a raw DB error; the service layer translates them into a domain error.
//   - On other DB errors (connectivity, corruption, ...), the raw gorm error
//     is propagated.
package repo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-api-core/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateNote inserts a new Note row with the given slug, title, and body.
// The note ID is a randomly generated UUID (string), and CreatedAt is set to UTC.
//
// On success, it returns the persisted Note. On failure (including slug
// collisions, surfaced as the driver's unique-constraint error), it returns
// a DB error.
func CreateNote(ctx context.Context, db *gorm.DB, slug, title, body string) (*domain.Note, error) {
	n := &domain.Note{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// GetNote fetches a single note by its slug. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetNote(ctx context.Context, db *gorm.DB, slug string) (*domain.Note, error) {
	var n domain.Note
	err := db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&n).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// CountNotes returns the total number of notes.
// On DB error, it returns the error.
func CountNotes(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Note{}).
		Count(&total).Error
	return total, err
}

// ListNotesPage returns a paginated slice of notes ordered by creation time
// descending. Use CountNotes to obtain the total for pagination metadata.
// On DB error, it returns the error.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListNotesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Note, error) {
	var out []domain.Note
	err := db.WithContext(ctx).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateNote updates the title and body of the note identified by slug.
// If no rows are affected (note missing), it returns ErrNotFound. On DB
// error, the raw error is returned.
func UpdateNote(ctx context.Context, db *gorm.DB, slug, title, body string) error {
	res := db.WithContext(ctx).
		Model(&domain.Note{}).
		Where("slug = ?", slug).
		Updates(map[string]any{"title": title, "body": body})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteNote soft-deletes the note identified by slug. If no rows are
// affected, it returns ErrNotFound. On DB error, the raw error is returned.
func DeleteNote(ctx context.Context, db *gorm.DB, slug string) error {
	res := db.WithContext(ctx).
		Where("slug = ?", slug).
		Delete(&domain.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsUniqueViolation reports whether err looks like a unique-constraint
// violation from the SQLite driver. The pure Go driver does not expose a
// typed error for this, so the check is textual.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
