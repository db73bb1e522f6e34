package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func (h *CorpusHandler) RegisterReading(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	h.write(w, r, func(eng *service.Engine) {
		result, err := eng.Registration.Register(r.Context(), req)
		if err != nil {
			h.logger.Error("register reading failed", zap.String("reading_id", req.ID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to register reading")
			return
		}
		status := http.StatusCreated
		if result.Replaced {
			status = http.StatusOK
		}
		writeJSON(w, status, result)
	})
}

func (h *CorpusHandler) GetReading(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.read(w, r, func(eng *service.Engine) {
		inspection, err := eng.Inspector.Inspect(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "reading not found")
			return
		}
		writeJSON(w, http.StatusOK, inspection)
	})
}
