package handlers

import (
	"encoding/json"
	"net/http"

	"deckgen/internal/domain"
	"deckgen/internal/pptx"
)

type exportRequest struct {
	Slides []domain.Slide `json:"slides"`
}

type exportResponse struct {
	PPTX string `json:"pptx"`
}

// Export renders the posted slides into a base64-encoded .pptx,
// synchronously.
func (a *App) Export(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if len(req.Slides) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid slides data")
		return
	}

	payload, err := pptx.RenderBase64(req.Slides)
	if err != nil {
		a.Logger.Error().Err(err).Msg("pptx rendering failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to generate pptx file")
		return
	}
	a.json(w, http.StatusOK, exportResponse{PPTX: payload})
}
