package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/graph"
	"go.uber.org/zap"
)

// Engine owns one corpus and the graph built from it. Construct one per
// invocation; nothing is shared between engines.
type Engine struct {
	Corpus *domain.Corpus
	Graph  *graph.Graph

	Cascade      *CascadeService
	Validator    *ValidatorService
	Registration *RegistrationService
	Inspector    *InspectService

	store  domain.CorpusStore
	logger *zap.Logger
	now    func() time.Time
}

type EngineOption func(*Engine)

// WithMajorCascadeThreshold sets how many affected readings trigger the
// MAJOR CASCADE warning.
func WithMajorCascadeThreshold(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.Cascade.MajorCascadeThreshold = n
		}
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
		e.Registration.now = now
	}
}

func NewEngine(corpus *domain.Corpus, store domain.CorpusStore, logger *zap.Logger, opts ...EngineOption) *Engine {
	corpus.Normalize()
	g := graph.New()
	g.Build(corpus.Readings)

	e := &Engine{
		Corpus:       corpus,
		Graph:        g,
		Cascade:      NewCascadeService(corpus, g, logger),
		Validator:    NewValidatorService(corpus, g, logger),
		Registration: NewRegistrationService(corpus, g, store, logger),
		Inspector:    NewInspectService(corpus, g),
		store:        store,
		logger:       logger,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	deps, supports := g.EdgeCount()
	logger.Debug("graph built",
		zap.Int("anchors", len(corpus.Anchors)),
		zap.Int("readings", len(corpus.Readings)),
		zap.Int("depends_on_edges", deps),
		zap.Int("supports_edges", supports))
	return e
}

// LoadEngine reads the corpus from store and builds an engine over it.
func LoadEngine(ctx context.Context, store domain.CorpusStore, logger *zap.Logger, opts ...EngineOption) (*Engine, error) {
	corpus, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	return NewEngine(corpus, store, logger, opts...), nil
}

// ApplyCascade commits report to the corpus and saves it. Edges are untouched,
// so the graph indices stay valid. A REJECTED anchor is terminal; moving it to
// any other status fails with ErrAnchorRejected and nothing is written.
func (e *Engine) ApplyCascade(ctx context.Context, report *domain.CascadeReport) (int, error) {
	if a, ok := e.Corpus.Anchor(report.AnchorID); ok && a.Status.IsTerminal() && report.NewStatus != a.Status {
		return 0, fmt.Errorf("apply cascade for %s: %w", report.AnchorID, ErrAnchorRejected)
	}
	changed := ApplyCascade(e.Corpus, report, e.now())
	RefreshCeilings(e.Corpus)
	if err := e.store.Save(ctx, e.Corpus); err != nil {
		return 0, fmt.Errorf("persist cascade for %s: %w", report.AnchorID, err)
	}
	e.logger.Info("cascade applied",
		zap.String("anchor_id", report.AnchorID),
		zap.String("status", string(report.NewStatus)),
		zap.Int("changed_readings", changed))
	return changed, nil
}
