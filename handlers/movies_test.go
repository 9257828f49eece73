package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"reelist/handlers"
	"reelist/internal/database"
	"reelist/models"
	"reelist/services/providers"
	"reelist/services/watchlist"
)

type fakeService struct {
	addMovie   models.Movie
	addErr     error
	page       models.Page
	watchedErr error
	ratingErr  error
	removeErr  error
	titles     []string
	similarErr error

	gotTitle   string
	gotID      int64
	gotWatched bool
	gotRating  int
}

func (f *fakeService) Add(ctx context.Context, title string) (models.Movie, error) {
	f.gotTitle = title
	return f.addMovie, f.addErr
}

func (f *fakeService) List(page, size int) (models.Page, error) {
	return f.page, nil
}

func (f *fakeService) SetWatched(id int64, watched bool) error {
	f.gotID, f.gotWatched = id, watched
	return f.watchedErr
}

func (f *fakeService) SetRating(id int64, rating int) error {
	f.gotID, f.gotRating = id, rating
	return f.ratingErr
}

func (f *fakeService) Remove(id int64) error {
	f.gotID = id
	return f.removeErr
}

func (f *fakeService) SimilarTo(ctx context.Context, id int64) ([]string, error) {
	f.gotID = id
	return f.titles, f.similarErr
}

func newTestRouter(svc *fakeService) *mux.Router {
	r := mux.NewRouter()
	handlers.NewMoviesHandler(svc).Register(r)
	return r
}

func TestAddCreated(t *testing.T) {
	svc := &fakeService{addMovie: models.Movie{ID: 1, Title: "Inception"}}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"title":"inception"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.gotTitle != "inception" {
		t.Fatalf("expected title to reach the service, got %q", svc.gotTitle)
	}

	var movie models.Movie
	if err := json.NewDecoder(rec.Body).Decode(&movie); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if movie.ID != 1 || movie.Title != "Inception" {
		t.Fatalf("unexpected body %+v", movie)
	}
}

func TestAddRejectsBadBody(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"name":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestAddNotFoundMapsTo404(t *testing.T) {
	svc := &fakeService{addErr: providers.NotFound("omdb", "ghost")}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"title":"ghost"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAddProviderFailureMapsTo502(t *testing.T) {
	svc := &fakeService{addErr: providers.Wrap("omdb", "lookup", context.DeadlineExceeded)}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/movies", strings.NewReader(`{"title":"x"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestUpdateWatched(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/movies/7/watched?watched=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotID != 7 || !svc.gotWatched {
		t.Fatalf("expected id=7 watched=true, got id=%d watched=%v", svc.gotID, svc.gotWatched)
	}
}

func TestUpdateWatchedBadParam(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodPut, "/movies/7/watched?watched=maybe", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateRatingOutOfRange(t *testing.T) {
	svc := &fakeService{ratingErr: watchlist.ErrRatingOutOfRange}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/movies/7/rating?rating=9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteNoContent(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/movies/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if svc.gotID != 3 {
		t.Fatalf("expected id 3, got %d", svc.gotID)
	}
}

func TestDeleteMissing(t *testing.T) {
	svc := &fakeService{removeErr: database.ErrMovieNotFound}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/movies/3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSimilarEmptyListEncodesAsArray(t *testing.T) {
	svc := &fakeService{titles: nil}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/movies/3/similar", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestInvalidIDRejected(t *testing.T) {
	router := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodDelete, "/movies/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-integer id, got %d", rec.Code)
	}
}
