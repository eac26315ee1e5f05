package session

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	ambientmodel "github.com/wanyue/mindgarden/backend/internal/model/ambient"
	"github.com/wanyue/mindgarden/backend/internal/model/persona"
	sessionmodel "github.com/wanyue/mindgarden/backend/internal/model/session"
	sessionservice "github.com/wanyue/mindgarden/backend/internal/service/session"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	svc, err := sessionservice.NewService(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewService err: %v", err)
	}
	handler := New(svc, persona.NewMemoryStore(persona.Seed()), ambientmodel.NewMemoryStore(ambientmodel.Seed()))

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestCreateSessionAppliesDefaults(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var record sessionmodel.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if record.VoicePersona != persona.DefaultID {
		t.Fatalf("expected default persona, got %s", record.VoicePersona)
	}
	if record.SessionType != "guided_breathing" {
		t.Fatalf("expected default session type, got %s", record.SessionType)
	}
	if record.DurationMinutes != 60 {
		t.Fatalf("expected default duration, got %d", record.DurationMinutes)
	}
}

func TestCreateSessionRejectsUnknownPersona(t *testing.T) {
	r := setupRouter(t)
	payload, _ := json.Marshal(map[string]string{"voice_persona": "nonexistent"})

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCreateSessionRejectsUnknownCategory(t *testing.T) {
	r := setupRouter(t)
	payload, _ := json.Marshal(map[string]string{"ambient_category": "heavy_metal"})

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestGetSessionRoundTrip(t *testing.T) {
	r := setupRouter(t)
	payload, _ := json.Marshal(map[string]any{
		"voice_persona":    "wise_male",
		"session_type":     "mindfulness",
		"duration_minutes": 20,
	})

	req := httptest.NewRequest(http.MethodPost, "/session", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var created sessionmodel.Record
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	getResp := httptest.NewRecorder()
	r.ServeHTTP(getResp, httptest.NewRequest(http.MethodGet, "/session/"+created.ID, nil))

	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
	var fetched sessionmodel.Record
	if err := json.Unmarshal(getResp.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if fetched.VoicePersona != "wise_male" || fetched.DurationMinutes != 20 {
		t.Fatalf("unexpected record: %#v", fetched)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	r := setupRouter(t)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/session/missing", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
