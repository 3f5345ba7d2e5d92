package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"deckgen/internal/content"
	"deckgen/internal/jobs"
)

// App is the handler container: everything the HTTP surface needs,
// injected once at startup.
type App struct {
	Store     jobs.Store
	Runner    *jobs.Runner
	Generator *content.Generator
	Logger    zerolog.Logger
}

func NewApp(store jobs.Store, runner *jobs.Runner, generator *content.Generator, logger zerolog.Logger) *App {
	return &App{
		Store:     store,
		Runner:    runner,
		Generator: generator,
		Logger:    logger,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (a *App) error(w http.ResponseWriter, code int, kind, msg string) {
	a.json(w, code, errorBody{Error: kind, Message: msg})
}
