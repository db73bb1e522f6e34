package service

import (
	"context"
	"errors"
	"time"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"go.uber.org/zap"
)

type memoryCorpusStore struct {
	corpus *domain.Corpus
	saves  int
	err    error
}

func (m *memoryCorpusStore) Load(ctx context.Context) (*domain.Corpus, error) {
	if m.corpus == nil {
		return nil, errors.New("no corpus")
	}
	return m.corpus, nil
}

func (m *memoryCorpusStore) Save(ctx context.Context, c *domain.Corpus) error {
	if m.err != nil {
		return m.err
	}
	m.corpus = c
	m.saves++
	return nil
}

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func anchor(conf domain.Confidence) *domain.Anchor {
	return &domain.Anchor{Name: "anchor", Level: 1, Confidence: conf, Status: domain.StatusConfirmed}
}

func reading(conf domain.Confidence, dependsOn []string, supports ...string) *domain.Reading {
	return &domain.Reading{Meaning: "meaning", Confidence: conf, DependsOn: dependsOn, Supports: supports}
}

func newTestEngine(anchors map[string]*domain.Anchor, readings map[string]*domain.Reading) (*Engine, *memoryCorpusStore) {
	corpus := domain.NewCorpus()
	for id, a := range anchors {
		corpus.Anchors[id] = a
	}
	for id, r := range readings {
		corpus.Readings[id] = r
	}
	store := &memoryCorpusStore{corpus: corpus}
	e := NewEngine(corpus, store, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
	return e, store
}

// scenarioEngine builds the two-anchor corpus with one over-confident reading.
func scenarioEngine() *Engine {
	e, _ := newTestEngine(
		map[string]*domain.Anchor{
			"X": anchor(domain.ConfidenceHigh),
			"Y": anchor(domain.ConfidenceMedium),
		},
		map[string]*domain.Reading{
			"R1": reading(domain.ConfidenceHigh, []string{"X", "Y"}),
		},
	)
	return e
}
