package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/parcel-loader/internal/api"
	"github.com/eugenenazirov/parcel-loader/internal/loader"
	"github.com/eugenenazirov/parcel-loader/internal/storage"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	store, err := storage.NewMemoryStorage(storage.DefaultLimit)
	if err != nil {
		t.Fatalf("create storage: %v", err)
	}
	logger := zaptest.NewLogger(t)
	handler := api.NewHandler(store, loader.DensePacking, api.WithHandlerLogger(logger))
	return api.NewRouter(handler, logger)
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newRouter(t)
	jsonHeaders := map[string]string{"Content-Type": "application/json"}

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	payload, _ := json.Marshal(map[string]any{
		"strategy": "dense",
		"parcels":  "1\n\n22\n22\n\n333\n333\n333\n\n7777777\n",
	})
	rec = performRequest(t, handler, http.MethodPost, "/api/loads", payload, jsonHeaders)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 from create load, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID      string `json:"id"`
		Summary struct {
			Input     int `json:"input"`
			Oversized int `json:"oversized"`
			Placed    int `json:"placed"`
			Machines  int `json:"machines"`
		} `json:"summary"`
		Machines []struct {
			Rows []string `json:"rows"`
		} `json:"machines"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected load id")
	}
	if created.Summary.Input != 4 || created.Summary.Oversized != 1 || created.Summary.Placed != 3 || created.Summary.Machines != 1 {
		t.Fatalf("unexpected summary %+v", created.Summary)
	}
	if len(created.Machines) != 1 || created.Machines[0].Rows[5] != "333221" {
		t.Fatalf("unexpected machines %+v", created.Machines)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/loads", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), created.ID) {
		t.Fatalf("expected listing to include %s, got %d: %s", created.ID, rec.Code, rec.Body.String())
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/loads/"+created.ID+"/report", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Machines used: 1") {
		t.Fatalf("unexpected report %d: %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/loads/"+created.ID+"/export.pdf", nil, nil)
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Fatalf("expected PDF export, got %d", rec.Code)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/loads/"+created.ID+"/export.xlsx", nil, nil)
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("expected Excel export, got %d", rec.Code)
	}
}
