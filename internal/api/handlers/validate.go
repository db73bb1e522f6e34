package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Harshitk-cp/anchorgraph/internal/service"
)

// Validate answers 422 when the corpus has errors so scripts can gate on status.
func (h *CorpusHandler) Validate(w http.ResponseWriter, r *http.Request) {
	h.read(w, r, func(eng *service.Engine) {
		report := eng.Validator.Validate()
		status := http.StatusOK
		if !report.IsValid {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, report)
	})
}

func (h *CorpusHandler) Graph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = service.FormatText
	}

	h.read(w, r, func(eng *service.Engine) {
		out, err := eng.Inspector.RenderGraph(format)
		if err != nil {
			if errors.Is(err, service.ErrUnknownFormat) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to render graph")
			return
		}

		contentType := "text/plain; charset=utf-8"
		if strings.EqualFold(format, service.FormatDOT) {
			contentType = "text/vnd.graphviz; charset=utf-8"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out))
	})
}
