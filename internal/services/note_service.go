// Package services – NoteService
//
// This file implements the NoteService, which manages the lifecycle of notes.
// It validates slugs and titles, normalizes input, and coordinates repository
// operations for creating, reading, listing (with pagination), updating, and
// deleting notes.
//
// Service-level errors (e.g., ErrNoteNotFound, ErrDuplicateSlug) are returned
// for predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-api-core/internal/domain"
	"github.com/tbourn/go-api-core/internal/repo"
)

// slugRe matches URL-safe slugs: lowercase alphanumeric runs separated by
// single hyphens (no leading/trailing hyphen).
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// NoteRepo defines the repository contract required by NoteService.
// Implementations are responsible for persistence of note aggregates.
type NoteRepo interface {
	// CreateNote inserts a new note row.
	CreateNote(ctx context.Context, db *gorm.DB, slug, title, body string) (*domain.Note, error)

	// GetNote fetches a note by slug.
	GetNote(ctx context.Context, db *gorm.DB, slug string) (*domain.Note, error)

	// CountNotes returns the total number of notes for pagination.
	CountNotes(ctx context.Context, db *gorm.DB) (int64, error)

	// ListNotesPage returns a page of notes.
	ListNotesPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Note, error)

	// UpdateNote updates a note's title and body.
	UpdateNote(ctx context.Context, db *gorm.DB, slug, title, body string) error

	// DeleteNote soft-deletes a note.
	DeleteNote(ctx context.Context, db *gorm.DB, slug string) error
}

// NoteService provides note-level operations such as creating, fetching,
// listing, updating, and deleting notes. It enforces slug and title rules.
type NoteService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the note repository used by this service.
	Repo NoteRepo

	// TitleMaxLen caps stored titles by rune length.
	TitleMaxLen int
}

// NewNoteService constructs a NoteService with sane defaults for title handling.
func NewNoteService(db *gorm.DB, r NoteRepo) *NoteService {
	return &NoteService{
		DB:          db,
		Repo:        r,
		TitleMaxLen: 255,
	}
}

// Create inserts a new note with the given slug, title, and body.
//
// Validation:
//   - slug must match the slug pattern; otherwise ErrInvalidSlug.
//   - title must be non-blank after trimming; otherwise ErrEmptyTitle.
//   - title must fit TitleMaxLen runes; otherwise ErrTitleTooLong.
//   - slug must be free; otherwise ErrDuplicateSlug.
func (s *NoteService) Create(ctx context.Context, slug, title, body string) (*domain.Note, error) {
	slug = strings.TrimSpace(slug)
	if !slugRe.MatchString(slug) {
		return nil, ErrInvalidSlug
	}
	title, err := s.normalizeTitle(title)
	if err != nil {
		return nil, err
	}

	n, err := s.Repo.CreateNote(ctx, s.DB, slug, title, body)
	if repo.IsUniqueViolation(err) {
		return nil, ErrDuplicateSlug
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Get fetches a single note by slug, or ErrNoteNotFound if it does not exist.
func (s *NoteService) Get(ctx context.Context, slug string) (*domain.Note, error) {
	n, err := s.Repo.GetNote(ctx, s.DB, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListPage returns a page of notes plus the total count.
// It applies defaults for invalid page/pageSize.
func (s *NoteService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Note, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := s.Repo.CountNotes(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Note{}, 0, nil
	}

	items, err := s.Repo.ListNotesPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// Update replaces the title and body of an existing note.
// Returns ErrNoteNotFound when the slug does not resolve to a note.
func (s *NoteService) Update(ctx context.Context, slug, title, body string) error {
	title, err := s.normalizeTitle(title)
	if err != nil {
		return err
	}

	err = s.Repo.UpdateNote(ctx, s.DB, slug, title, body)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}

// Delete removes the note identified by slug.
// Returns ErrNoteNotFound when the slug does not resolve to a note.
func (s *NoteService) Delete(ctx context.Context, slug string) error {
	err := s.Repo.DeleteNote(ctx, s.DB, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}

// normalizeTitle trims whitespace and enforces the title rules.
func (s *NoteService) normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	max := s.TitleMaxLen
	if max <= 0 {
		max = 255
	}
	if utf8.RuneCountInString(title) > max {
		return "", ErrTitleTooLong
	}
	return title, nil
}
