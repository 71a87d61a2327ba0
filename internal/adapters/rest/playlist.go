package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ewilliams-labs/moodquiz/internal/core/domain"
	"github.com/ewilliams-labs/moodquiz/internal/core/services"
)

// generateRequest defines what the client sends us.
type generateRequest struct {
	Text          string `json:"text"`
	Size          int    `json:"size"`
	AllowExplicit bool   `json:"allowExplicit"`
}

// GeneratePlaylist handles POST /playlists/generate
func (h *Handler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	if !isJSONContentType(r) {
		writeError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playlist, err := h.svc.Generate(r.Context(), services.GenerateRequest{
		Text:          req.Text,
		Size:          req.Size,
		AllowExplicit: req.AllowExplicit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyText) {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, playlist)
}
