package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"go.uber.org/zap"
)

// CorpusHandler serves every corpus route. Each request loads its own engine
// from the store; mutating requests hold the write lock across load and save.
type CorpusHandler struct {
	store  domain.CorpusStore
	logger *zap.Logger
	opts   []service.EngineOption
	mu     sync.RWMutex
}

func NewCorpusHandler(store domain.CorpusStore, logger *zap.Logger, opts ...service.EngineOption) *CorpusHandler {
	return &CorpusHandler{
		store:  store,
		logger: logger,
		opts:   opts,
	}
}

func (h *CorpusHandler) load(ctx context.Context, w http.ResponseWriter) (*service.Engine, bool) {
	eng, err := service.LoadEngine(ctx, h.store, h.logger, h.opts...)
	if err != nil {
		h.logger.Error("load corpus failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load corpus")
		return nil, false
	}
	return eng, true
}

// read runs fn against a fresh engine under the shared lock.
func (h *CorpusHandler) read(w http.ResponseWriter, r *http.Request, fn func(*service.Engine)) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if eng, ok := h.load(r.Context(), w); ok {
		fn(eng)
	}
}

func (h *CorpusHandler) write(w http.ResponseWriter, r *http.Request, fn func(*service.Engine)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if eng, ok := h.load(r.Context(), w); ok {
		fn(eng)
	}
}
