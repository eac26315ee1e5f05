package ambient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	ambientmodel "github.com/wanyue/mindgarden/backend/internal/model/ambient"
)

type fakeFinder struct {
	tracks []ambientmodel.Track
	err    error
}

func (f *fakeFinder) TracksForCategory(_ context.Context, _ ambientmodel.Category) ([]ambientmodel.Track, error) {
	return f.tracks, f.err
}

func setupRouter(finder TrackFinder) *chi.Mux {
	handler := New(ambientmodel.NewMemoryStore(ambientmodel.Seed()), finder)
	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestListCategories(t *testing.T) {
	r := setupRouter(nil)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/meditation-categories", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var decoded struct {
		Categories []ambientmodel.Category `json:"categories"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(decoded.Categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(decoded.Categories))
	}
}

func TestGetMusicForCategory(t *testing.T) {
	finder := &fakeFinder{tracks: []ambientmodel.Track{{ID: "t1", Name: "Rain Loop"}}}
	r := setupRouter(finder)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/music/rainfall", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var decoded struct {
		Category string               `json:"category"`
		Tracks   []ambientmodel.Track `json:"tracks"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if decoded.Category != "rainfall" || len(decoded.Tracks) != 1 {
		t.Fatalf("unexpected response: %#v", decoded)
	}
}

func TestGetMusicInvalidCategory(t *testing.T) {
	r := setupRouter(&fakeFinder{})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/music/heavy_metal", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetMusicWithoutFinder(t *testing.T) {
	r := setupRouter(nil)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/music/ocean", nil))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestGetMusicLookupFailure(t *testing.T) {
	r := setupRouter(&fakeFinder{err: errors.New("spotify down")})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/music/forest", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
