package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/graph"
)

var (
	ErrReadingNotFound = errors.New("reading not found")
	ErrAnchorNotFound  = errors.New("anchor not found")
	ErrUnknownFormat   = errors.New("unknown graph format")
)

const (
	FormatText = "text"
	FormatDOT  = "dot"
)

type InspectService struct {
	corpus *domain.Corpus
	graph  *graph.Graph
}

func NewInspectService(corpus *domain.Corpus, g *graph.Graph) *InspectService {
	return &InspectService{corpus: corpus, graph: g}
}

func (s *InspectService) Inspect(readingID string) (*domain.ReadingInspection, error) {
	r, ok := s.corpus.FindReading(readingID)
	if !ok {
		return nil, ErrReadingNotFound
	}

	ceiling := MaxConfidence(r, s.corpus.Anchors)
	return &domain.ReadingInspection{
		ReadingID:     r.ID,
		Reading:       r,
		MaxConfidence: ceiling,
		WithinCeiling: r.IsOrphan() || !r.Confidence.Exceeds(ceiling),
		Dependencies:  s.anchorRefs(s.graph.Dependencies(r.ID)),
		Supports:      s.anchorRefs(s.graph.SupportedAnchors(r.ID)),
	}, nil
}

func (s *InspectService) anchorRefs(ids []string) []domain.AnchorRef {
	refs := make([]domain.AnchorRef, 0, len(ids))
	for _, id := range ids {
		a, ok := s.corpus.Anchor(id)
		if !ok {
			refs = append(refs, domain.AnchorRef{AnchorID: id, Missing: true})
			continue
		}
		refs = append(refs, domain.AnchorRef{
			AnchorID:   id,
			Name:       a.Name,
			Confidence: a.Confidence,
			Status:     a.Status,
		})
	}
	return refs
}

// ListAnchors returns every anchor ordered by hierarchy level, then id.
func (s *InspectService) ListAnchors() []domain.AnchorSummary {
	summaries := make([]domain.AnchorSummary, 0, len(s.corpus.Anchors))
	for _, id := range s.corpus.SortedAnchorIDs() {
		summaries = append(summaries, domain.AnchorSummary{
			AnchorID:          id,
			Anchor:            s.corpus.Anchors[id],
			DependentReadings: len(s.graph.DependentReadings(id)),
			SupportedBy:       len(s.graph.ReadingsSupporting(id)),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Anchor.Level < summaries[j].Anchor.Level
	})
	return summaries
}

func (s *InspectService) Anchor(id string) (*domain.Anchor, error) {
	a, ok := s.corpus.Anchor(id)
	if !ok {
		return nil, ErrAnchorNotFound
	}
	return a, nil
}

// RenderGraph draws the dependency graph as an indented text tree or as
// Graphviz DOT.
func (s *InspectService) RenderGraph(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return s.renderText(), nil
	case FormatDOT:
		return s.renderDOT(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

func (s *InspectService) renderText() string {
	var b strings.Builder
	for _, summary := range s.ListAnchors() {
		a := summary.Anchor
		fmt.Fprintf(&b, "[L%d] %s - %s (%s, %s)\n", a.Level, summary.AnchorID, a.Name, a.Confidence, a.Status)
		for _, readingID := range s.graph.DependentReadings(summary.AnchorID) {
			r := s.corpus.Readings[readingID]
			if r == nil {
				continue
			}
			fmt.Fprintf(&b, "    -> %s (%s, max %s)\n", readingID, r.Confidence, MaxConfidence(r, s.corpus.Anchors))
			for _, supported := range s.graph.SupportedAnchors(readingID) {
				fmt.Fprintf(&b, "       supports %s\n", supported)
			}
		}
	}

	var orphans []string
	for _, id := range s.corpus.SortedReadingIDs() {
		if len(s.graph.Dependencies(id)) == 0 {
			orphans = append(orphans, id)
		}
	}
	if len(orphans) > 0 {
		fmt.Fprintf(&b, "orphans: %s\n", strings.Join(orphans, ", "))
	}
	return b.String()
}

func (s *InspectService) renderDOT() string {
	var b strings.Builder
	b.WriteString("digraph anchors {\n")
	b.WriteString("  rankdir=LR;\n")
	for _, id := range s.corpus.SortedAnchorIDs() {
		a := s.corpus.Anchors[id]
		fmt.Fprintf(&b, "  %q [shape=box, label=%q];\n", "anchor:"+id, fmt.Sprintf("%s\n%s %s", id, a.Confidence, a.Status))
	}
	for _, id := range s.corpus.SortedReadingIDs() {
		r := s.corpus.Readings[id]
		fmt.Fprintf(&b, "  %q [shape=ellipse, label=%q];\n", "reading:"+id, fmt.Sprintf("%s\n%s", id, r.Confidence))
	}
	for _, id := range s.corpus.SortedReadingIDs() {
		for _, anchorID := range s.graph.Dependencies(id) {
			fmt.Fprintf(&b, "  %q -> %q;\n", "anchor:"+anchorID, "reading:"+id)
		}
		for _, anchorID := range s.graph.SupportedAnchors(id) {
			fmt.Fprintf(&b, "  %q -> %q [style=dashed, label=\"supports\"];\n", "reading:"+id, "anchor:"+anchorID)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
