package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"deckgen/internal/content"
	"deckgen/internal/domain"
	"deckgen/internal/http/handlers"
	"deckgen/internal/http/httpapi"
	"deckgen/internal/infra"
	"deckgen/internal/jobs"
)

type countingStore struct {
	jobs.Store
	created int
}

func (c *countingStore) Create() domain.Job {
	c.created++
	return c.Store.Create()
}

type testEnv struct {
	store   *countingStore
	runner  *jobs.Runner
	handler http.Handler
}

// newTestEnv wires the full router in mock mode: no AI credentials, so
// generation always produces the deterministic fallback content.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := &countingStore{Store: jobs.NewMemoryStore()}
	runner := jobs.NewRunner(store, 2, 5*time.Second, zerolog.Nop())
	generator := content.NewGenerator(nil, nil, zerolog.Nop())
	app := handlers.NewApp(store, runner, generator, zerolog.Nop())
	cfg := &infra.Config{RateLimitPerMin: 100}
	return &testEnv{
		store:   store,
		runner:  runner,
		handler: httpapi.NewRouter(app, cfg, zerolog.Nop()),
	}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestGenerateFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/generate",
		`{"title":"Q3 Review","audience":"execs","slides":5,"style":"corporate","language":"en"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusAccepted)
	}

	var accepted struct {
		JobID           string `json:"jobId"`
		Status          string `json:"status"`
		EstimatedSlides int    `json:"estimatedSlides"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if accepted.JobID == "" {
		t.Fatal("response is missing the job id")
	}
	if accepted.Status != "processing" {
		t.Fatalf("status = %q, want %q", accepted.Status, "processing")
	}
	if accepted.EstimatedSlides != 5 {
		t.Fatalf("estimatedSlides = %d, want 5", accepted.EstimatedSlides)
	}

	// Freshly created jobs report processing until the pipeline lands.
	env.runner.Wait()

	rec = env.do(http.MethodGet, "/api/job/"+accepted.JobID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("poll status = %d, want %d", rec.Code, http.StatusOK)
	}
	var polled struct {
		Status string               `json:"status"`
		Result *domain.Presentation `json:"result"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &polled); err != nil {
		t.Fatalf("decode poll response: %v", err)
	}
	if polled.Status != "done" {
		t.Fatalf("polled status = %q, want %q", polled.Status, "done")
	}
	if polled.Result == nil || len(polled.Result.Slides) != 5 {
		t.Fatalf("result = %+v, want 5 slides", polled.Result)
	}
}

func TestGenerateMissingFieldCreatesNoJob(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/generate",
		`{"title":"Q3 Review","slides":5,"style":"corporate","language":"en"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected an error body, got %q", rec.Body.String())
	}
	if env.store.created != 0 {
		t.Fatalf("jobs created = %d, want 0", env.store.created)
	}
}

func TestGenerateRejectsNonPositiveSlideCount(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/generate",
		`{"title":"T","audience":"a","slides":0,"style":"s","language":"en"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGenerateRejectsInvalidJSON(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodPost, "/api/generate", `{"title":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestJobUnknownID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/job/does-not-exist", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.do(http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d, want %d", rec.Code, http.StatusOK)
	}
	rec := env.do(http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("root status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "running") {
		t.Fatalf("root body = %q, want a liveness line", rec.Body.String())
	}
}
