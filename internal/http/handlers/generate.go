package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"deckgen/internal/content"
	"deckgen/internal/domain"
	"deckgen/internal/middleware"
)

type generateRequest struct {
	Title    string `json:"title"`
	Audience string `json:"audience"`
	Slides   int    `json:"slides"`
	Style    string `json:"style"`
	Language string `json:"language"`
}

type generateResponse struct {
	JobID           string           `json:"jobId"`
	Status          domain.JobStatus `json:"status"`
	EstimatedSlides int              `json:"estimatedSlides"`
}

// Generate accepts a generation request, answers 202 with a job id, and
// hands the pipeline to the background runner. Clients poll the job
// endpoint for the outcome.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Title == "" || req.Audience == "" || req.Style == "" || req.Language == "" || req.Slides <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "missing required fields")
		return
	}

	job := a.Store.Create()
	genReq := content.Request{
		Title:      req.Title,
		Audience:   req.Audience,
		SlideCount: req.Slides,
		Style:      req.Style,
		Language:   req.Language,
	}
	a.Logger.Info().
		Str("job_id", job.ID).
		Str("locale", middleware.LocaleFromContext(r.Context())).
		Int("slides", genReq.SlideCount).
		Msg("presentation generation queued")

	a.Runner.Submit(job.ID, func(ctx context.Context) (*domain.Presentation, error) {
		return a.Generator.Generate(ctx, genReq), nil
	})

	a.json(w, http.StatusAccepted, generateResponse{
		JobID:           job.ID,
		Status:          domain.JobStatusProcessing,
		EstimatedSlides: genReq.SlideCount,
	})
}

type jobResponse struct {
	Status domain.JobStatus     `json:"status"`
	Result *domain.Presentation `json:"result,omitempty"`
}

// JobStatus reports the current state of a job, including the result
// once the job is done.
func (a *App) JobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job, ok := a.Store.Get(jobID)
	if !ok {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	a.json(w, http.StatusOK, jobResponse{Status: job.Status, Result: job.Result})
}
