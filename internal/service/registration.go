package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/graph"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	ID                  string   `json:"id"`
	Meaning             string   `json:"meaning"`
	DependsOn           []string `json:"depends_on"`
	Confidence          string   `json:"confidence"`
	Supports            []string `json:"supports,omitempty"`
	SupportedHypotheses []string `json:"supported_hypotheses,omitempty"`
	EvidenceSources     []string `json:"evidence_sources,omitempty"`
}

// RegistrationService admits readings into the corpus. Domain problems such as
// unknown anchors or over-confident submissions become warnings; only a failed
// save is an error.
type RegistrationService struct {
	corpus *domain.Corpus
	graph  *graph.Graph
	store  domain.CorpusStore
	logger *zap.Logger
	now    func() time.Time
}

func NewRegistrationService(corpus *domain.Corpus, g *graph.Graph, store domain.CorpusStore, logger *zap.Logger) *RegistrationService {
	return &RegistrationService{
		corpus: corpus,
		graph:  g,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RegistrationService) Register(ctx context.Context, req RegisterRequest) (*domain.RegistrationResult, error) {
	id := strings.TrimSpace(req.ID)
	requested := domain.ParseConfidence(req.Confidence)
	result := &domain.RegistrationResult{
		Requested: requested,
		Warnings:  []string{},
	}

	if id == "" {
		result.Warnings = append(result.Warnings, "Reading id is blank")
	}
	if existing, ok := s.corpus.FindReading(id); ok {
		id = existing.ID
		result.Replaced = true
		result.Warnings = append(result.Warnings, fmt.Sprintf("Reading %s already registered - replacing", id))
	}

	now := s.now().UTC()
	r := &domain.Reading{
		ID:                  id,
		Meaning:             req.Meaning,
		Confidence:          requested,
		DependsOn:           domain.NormalizeIDs(req.DependsOn),
		Supports:            domain.NormalizeIDs(req.Supports),
		SupportedHypotheses: req.SupportedHypotheses,
		EvidenceSources:     req.EvidenceSources,
		Registered:          now,
	}

	for _, anchorID := range r.DependsOn {
		if _, ok := s.corpus.Anchor(anchorID); !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Anchor %s not found - registering anyway", anchorID))
		}
	}
	for _, anchorID := range r.Supports {
		if _, ok := s.corpus.Anchor(anchorID); !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Supported anchor %s not found", anchorID))
		}
	}

	ceiling := MaxConfidence(r, s.corpus.Anchors)
	r.MaxConfidence = ceiling
	if requested.Exceeds(ceiling) {
		r.Confidence = ceiling
		result.Capped = true
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Confidence %s exceeds max %s - capped to %s", requested, ceiling, ceiling))
	}

	s.corpus.Readings[id] = r
	s.corpus.Metadata.LastUpdated = now
	s.graph.Register(r)
	RefreshCeilings(s.corpus)

	if err := s.store.Save(ctx, s.corpus); err != nil {
		return nil, fmt.Errorf("persist reading %s: %w", id, err)
	}

	s.logger.Info("reading registered",
		zap.String("reading_id", id),
		zap.String("confidence", string(r.Confidence)),
		zap.String("max_confidence", string(ceiling)),
		zap.Bool("capped", result.Capped),
		zap.Int("warnings", len(result.Warnings)))

	result.ReadingID = id
	result.Reading = r
	return result, nil
}
