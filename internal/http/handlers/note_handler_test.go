package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-api-core/internal/domain"
	"github.com/tbourn/go-api-core/internal/services"
	"github.com/tbourn/go-api-core/respond"
)

// ----- Fake service -----

type fakeNoteService struct {
	createNote *domain.Note
	createErr  error

	getNote *domain.Note
	getErr  error

	listItems []domain.Note
	listTotal int64
	listErr   error
	listPage  int
	listSize  int

	updateErr error
	deleteErr error
}

func (s *fakeNoteService) Create(ctx context.Context, slug, title, body string) (*domain.Note, error) {
	return s.createNote, s.createErr
}

func (s *fakeNoteService) Get(ctx context.Context, slug string) (*domain.Note, error) {
	return s.getNote, s.getErr
}

func (s *fakeNoteService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Note, int64, error) {
	s.listPage, s.listSize = page, pageSize
	return s.listItems, s.listTotal, s.listErr
}

func (s *fakeNoteService) Update(ctx context.Context, slug, title, body string) error {
	return s.updateErr
}

func (s *fakeNoteService) Delete(ctx context.Context, slug string) error {
	return s.deleteErr
}

func newRouter(svc NoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc)
	r := gin.New()
	r.POST("/notes", respond.Handler(h.CreateNote))
	r.GET("/notes", respond.Handler(h.ListNotes))
	r.GET("/notes/:slug", respond.Handler(h.GetNote))
	r.PUT("/notes/:slug", respond.Handler(h.UpdateNote))
	r.DELETE("/notes/:slug", respond.Handler(h.DeleteNote))
	return r
}

// ----- Tests -----

func TestCreateNote_Success(t *testing.T) {
	svc := &fakeNoteService{createNote: &domain.Note{ID: "n1", Slug: "hello", Title: "Hello"}}
	r := newRouter(svc)

	body := `{"slug":"hello","title":"Hello","body":"world"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got domain.Note
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.Slug != "hello" {
		t.Fatalf("slug=%q", got.Slug)
	}
}

func TestCreateNote_BadJSON(t *testing.T) {
	r := newRouter(&fakeNoteService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Body.String() != "invalid request body" {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestCreateNote_DuplicateSlugIsConflict(t *testing.T) {
	svc := &fakeNoteService{createErr: services.ErrDuplicateSlug}
	r := newRouter(svc)

	body := `{"slug":"taken","title":"T"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestGetNote_NotFoundIsPlainText404(t *testing.T) {
	svc := &fakeNoteService{getErr: services.ErrNoteNotFound}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content-type=%q", ct)
	}
	if w.Body.String() != "note not found" {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestGetNote_UnknownErrorIsBare500(t *testing.T) {
	svc := &fakeNoteService{getErr: errors.New("pq: ssl handshake failed on 10.0.0.3")}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	// Internal detail must never leak.
	if w.Body.String() != "Internal Server Error" {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestListNotes_PaginationMetadata(t *testing.T) {
	svc := &fakeNoteService{
		listItems: []domain.Note{{ID: "n1"}, {ID: "n2"}},
		listTotal: 45,
	}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes?page=2&page_size=20", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got ListNotesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	p := got.Pagination
	if p.Page != 2 || p.PageSize != 20 || p.Total != 45 || p.TotalPages != 3 || !p.HasNext {
		t.Fatalf("pagination=%+v", p)
	}
}

func TestListNotes_ClampsBogusParams(t *testing.T) {
	svc := &fakeNoteService{}
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notes?page=-3&page_size=9999", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.listPage != 1 {
		t.Fatalf("page=%d, want 1", svc.listPage)
	}
	if svc.listSize != 100 {
		t.Fatalf("page_size=%d, want clamped to 100", svc.listSize)
	}
}

func TestUpdateNote_SuccessReturnsFreshNote(t *testing.T) {
	svc := &fakeNoteService{getNote: &domain.Note{ID: "n1", Slug: "s", Title: "Renamed"}}
	r := newRouter(svc)

	body := `{"title":"Renamed","body":"b"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/notes/s", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got domain.Note
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.Title != "Renamed" {
		t.Fatalf("title=%q", got.Title)
	}
}

func TestUpdateNote_ValidationIsBadRequest(t *testing.T) {
	svc := &fakeNoteService{updateErr: services.ErrTitleTooLong}
	r := newRouter(svc)

	body := `{"title":"T","body":""}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/notes/s", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Body.String() != "title too long" {
		t.Fatalf("body=%q", w.Body.String())
	}
}

func TestDeleteNote_Success(t *testing.T) {
	r := newRouter(&fakeNoteService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/notes/bye", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var got DeleteNoteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !got.Deleted || got.Slug != "bye" {
		t.Fatalf("resp=%+v", got)
	}
}

func TestDeleteNote_NotFound(t *testing.T) {
	r := newRouter(&fakeNoteService{deleteErr: services.ErrNoteNotFound})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/notes/missing", nil))

	if w.Code != http.StatusNotFound || w.Body.String() != "note not found" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}
