package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type listAnchorsResponse struct {
	Anchors []domain.AnchorSummary `json:"anchors"`
	Count   int                    `json:"count"`
}

func (h *CorpusHandler) ListAnchors(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(eng *service.Engine) {
		anchors := eng.Inspector.ListAnchors()
		writeJSON(w, http.StatusOK, listAnchorsResponse{Anchors: anchors, Count: len(anchors)})
	})
}

func (h *CorpusHandler) GetAnchor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.read(w, r, func(eng *service.Engine) {
		a, err := eng.Inspector.Anchor(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "anchor not found")
			return
		}
		writeJSON(w, http.StatusOK, domain.AnchorSummary{
			AnchorID:          a.ID,
			Anchor:            a,
			DependentReadings: len(eng.Graph.DependentReadings(a.ID)),
			SupportedBy:       len(eng.Graph.ReadingsSupporting(a.ID)),
		})
	})
}

type cascadeRequest struct {
	Status string `json:"status"`
	Apply  bool   `json:"apply"`
}

type cascadeResponse struct {
	*domain.CascadeReport
	Applied         bool `json:"applied"`
	ChangedReadings int  `json:"changed_readings,omitempty"`
}

func (h *CorpusHandler) Cascade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req cascadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if v := r.URL.Query().Get("apply"); v != "" {
		apply, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid apply parameter")
			return
		}
		req.Apply = req.Apply || apply
	}

	status, err := domain.ParseAnchorStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !status.IsCascadeStatus() {
		writeError(w, http.StatusBadRequest, service.ErrInvalidCascadeStatus.Error())
		return
	}

	run := h.read
	if req.Apply {
		run = h.write
	}
	run(w, r, func(eng *service.Engine) {
		if _, err := eng.Inspector.Anchor(id); err != nil {
			writeError(w, http.StatusNotFound, "anchor not found")
			return
		}

		report, err := eng.Cascade.Cascade(id, status)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCascadeStatus) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "cascade failed")
			return
		}

		resp := cascadeResponse{CascadeReport: report}
		if req.Apply {
			changed, err := eng.ApplyCascade(r.Context(), report)
			if errors.Is(err, service.ErrAnchorRejected) {
				writeError(w, http.StatusConflict, err.Error())
				return
			}
			if err != nil {
				h.logger.Error("apply cascade failed", zap.String("anchor_id", id), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to apply cascade")
				return
			}
			resp.Applied = true
			resp.ChangedReadings = changed
		}
		writeJSON(w, http.StatusOK, resp)
	})
}
