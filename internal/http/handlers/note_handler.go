// Note HTTP handlers.
//
// This file exposes REST endpoints for note resources:
//   - POST   /notes          (create)
//   - GET    /notes          (list, paginated)
//   - GET    /notes/{slug}   (fetch one)
//   - PUT    /notes/{slug}   (update)
//   - DELETE /notes/{slug}   (delete)
//
// Handlers are transport-thin: they validate input, call the application
// service, and return a respond.Result. The respond/apierr packages do the
// rest: success payloads become JSON bodies, failures become plain-text
// (status, body) responses.
package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-api-core/apierr"
	"github.com/tbourn/go-api-core/internal/domain"
	"github.com/tbourn/go-api-core/internal/services"
	"github.com/tbourn/go-api-core/respond"
)

// NoteService defines note lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type NoteService interface {
	// Create inserts a new note.
	Create(ctx context.Context, slug, title, body string) (*domain.Note, error)
	// Get fetches a note by slug.
	Get(ctx context.Context, slug string) (*domain.Note, error)
	// ListPage returns a page of notes and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Note, int64, error)
	// Update replaces a note's title and body.
	Update(ctx context.Context, slug, title, body string) error
	// Delete removes a note.
	Delete(ctx context.Context, slug string) error
}

// Handlers groups the HTTP endpoints for notes. It depends on an abstract
// service interface to keep transport concerns separate from business logic.
type Handlers struct {
	noteSvc NoteService
}

// New constructs and returns a Handlers instance bound to the given service.
func New(noteSvc NoteService) *Handlers {
	return &Handlers{noteSvc: noteSvc}
}

//
// DTOs
//

// CreateNoteRequest is the JSON payload for creating a note.
type CreateNoteRequest struct {
	// Slug is the unique URL-safe identifier (lowercase, hyphen-separated).
	Slug string `json:"slug" binding:"required,min=1,max=80"`
	// Title is the note title (1–255 chars).
	Title string `json:"title" binding:"required,min=1,max=255"`
	// Body is the note content.
	Body string `json:"body"`
}

// UpdateNoteRequest is the JSON payload for updating a note.
type UpdateNoteRequest struct {
	// Title is the new note title (1–255 chars).
	Title string `json:"title" binding:"required,min=1,max=255"`
	// Body is the new note content.
	Body string `json:"body"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListNotesResponse wraps a page of notes and pagination information.
type ListNotesResponse struct {
	Notes      []domain.Note `json:"notes"`
	Pagination Pagination    `json:"pagination"`
}

// DeleteNoteResponse acknowledges a successful deletion.
type DeleteNoteResponse struct {
	Deleted bool   `json:"deleted"`
	Slug    string `json:"slug"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = atoiDefault(c.Query("page"), defaultPage)
	pageSize = atoiDefault(c.Query("page_size"), defaultPageSize)
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// atoiDefault converts s to an int, returning def when s is empty or invalid.
func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// mapServiceError translates service sentinels into the apierr taxonomy.
// Unknown errors deliberately collapse to a bare 500 so internal detail
// never leaks into response bodies.
func mapServiceError(err error) *apierr.Error {
	switch {
	case errors.Is(err, services.ErrNoteNotFound):
		return apierr.NotFound().WithMessage("note not found")
	case errors.Is(err, services.ErrDuplicateSlug):
		return apierr.Conflict().WithMessage("a note with this slug already exists")
	case errors.Is(err, services.ErrInvalidSlug),
		errors.Is(err, services.ErrEmptyTitle),
		errors.Is(err, services.ErrTitleTooLong):
		return apierr.BadRequest().WithMessage(err.Error())
	default:
		return apierr.InternalServerError()
	}
}

//
// Endpoints
//

// CreateNote handles POST /notes.
func (h *Handlers) CreateNote(c *gin.Context) respond.Result[*domain.Note] {
	var req CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return respond.Error[*domain.Note](apierr.BadRequest().WithMessage("invalid request body"))
	}

	n, err := h.noteSvc.Create(c.Request.Context(), req.Slug, req.Title, req.Body)
	if err != nil {
		return respond.Error[*domain.Note](mapServiceError(err))
	}
	return respond.Success(n)
}

// GetNote handles GET /notes/:slug.
func (h *Handlers) GetNote(c *gin.Context) respond.Result[*domain.Note] {
	n, err := h.noteSvc.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		return respond.Error[*domain.Note](mapServiceError(err))
	}
	return respond.Success(n)
}

// ListNotes handles GET /notes with page/page_size query params.
func (h *Handlers) ListNotes(c *gin.Context) respond.Result[ListNotesResponse] {
	page, pageSize := clampPagination(c)

	items, total, err := h.noteSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		return respond.Error[ListNotesResponse](mapServiceError(err))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return respond.Success(ListNotesResponse{
		Notes: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// UpdateNote handles PUT /notes/:slug.
func (h *Handlers) UpdateNote(c *gin.Context) respond.Result[*domain.Note] {
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return respond.Error[*domain.Note](apierr.BadRequest().WithMessage("invalid request body"))
	}

	slug := c.Param("slug")
	if err := h.noteSvc.Update(c.Request.Context(), slug, req.Title, req.Body); err != nil {
		return respond.Error[*domain.Note](mapServiceError(err))
	}

	n, err := h.noteSvc.Get(c.Request.Context(), slug)
	if err != nil {
		return respond.Error[*domain.Note](mapServiceError(err))
	}
	return respond.Success(n)
}

// DeleteNote handles DELETE /notes/:slug.
func (h *Handlers) DeleteNote(c *gin.Context) respond.Result[DeleteNoteResponse] {
	slug := c.Param("slug")
	if err := h.noteSvc.Delete(c.Request.Context(), slug); err != nil {
		return respond.Error[DeleteNoteResponse](mapServiceError(err))
	}
	return respond.Success(DeleteNoteResponse{Deleted: true, Slug: slug})
}
