package service

import (
	"errors"
	"fmt"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/graph"
	"go.uber.org/zap"
)

var (
	ErrInvalidCascadeStatus = errors.New("cascade status must be QUESTIONED, DEMOTED or REJECTED")
	ErrAnchorRejected       = errors.New("anchor is rejected and cannot change status")
)

const (
	DefaultMajorCascadeThreshold = 5

	weakenedSupportNote   = "supporting evidence weakened - review recommended"
	weakenedSupportReason = "supporting anchor weakened"
)

// visitKind tags BFS queue items. A secondary anchor is reached through a
// reading's supports edge; its dependents are expanded as reading follow-ups.
type visitKind int

const (
	visitAnchor visitKind = iota
	visitAnchorViaReading
	visitReading
)

type cascadeItem struct {
	node  graph.Node
	depth int
	kind  visitKind
	via   string
}

type CascadeService struct {
	corpus *domain.Corpus
	graph  *graph.Graph
	logger *zap.Logger

	MajorCascadeThreshold int
}

func NewCascadeService(corpus *domain.Corpus, g *graph.Graph, logger *zap.Logger) *CascadeService {
	return &CascadeService{
		corpus:                corpus,
		graph:                 g,
		logger:                logger,
		MajorCascadeThreshold: DefaultMajorCascadeThreshold,
	}
}

// Cascade computes every reading and anchor affected by moving anchorID to
// status. It only proposes changes; nothing in the corpus is modified.
func (s *CascadeService) Cascade(anchorID string, status domain.AnchorStatus) (*domain.CascadeReport, error) {
	if !status.IsCascadeStatus() {
		return nil, ErrInvalidCascadeStatus
	}

	report := &domain.CascadeReport{
		AnchorID:         anchorID,
		NewStatus:        status,
		AffectedReadings: []domain.AffectedReading{},
		AffectedAnchors:  []domain.AffectedAnchor{},
		Warnings:         []string{},
	}

	anchor, ok := s.corpus.Anchor(anchorID)
	if !ok {
		s.logger.Warn("cascade requested for unknown anchor", zap.String("anchor_id", anchorID))
		report.Warnings = append(report.Warnings, "Unknown anchor: "+anchorID)
		return report, nil
	}
	report.AnchorName = anchor.Name
	report.PreviousStatus = anchor.Status

	// One visited set for both node kinds: an id is processed at most once,
	// even when an anchor and a reading share it.
	start := graph.Anchor(anchorID)
	visited := map[string]bool{anchorID: true}
	queue := []cascadeItem{{node: start, kind: visitAnchor}}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		switch item.kind {
		case visitAnchor:
			for _, readingID := range s.graph.DependentReadings(item.node.ID) {
				if visited[readingID] {
					continue
				}
				visited[readingID] = true
				r, ok := s.corpus.Readings[readingID]
				if !ok {
					continue
				}
				newConf, action := ProposeConfidence(status, r.Confidence)
				s.record(report, r, newConf, action, item.depth+1, item.node.ID)
				queue = s.enqueueSupported(queue, visited, readingID, item.depth+1)
			}

		case visitAnchorViaReading:
			entry := domain.AffectedAnchor{
				AnchorID:     item.node.ID,
				ViaReading:   item.via,
				CascadeDepth: item.depth,
				Note:         weakenedSupportNote,
			}
			if a, ok := s.corpus.Anchor(item.node.ID); ok {
				entry.Name = a.Name
			}
			report.AffectedAnchors = append(report.AffectedAnchors, entry)
			report.CascadeDepth = max(report.CascadeDepth, item.depth)

			for _, readingID := range s.graph.DependentReadings(item.node.ID) {
				if visited[readingID] {
					continue
				}
				visited[readingID] = true
				queue = append(queue, cascadeItem{node: graph.Reading(readingID), depth: item.depth + 1, kind: visitReading, via: item.node.ID})
			}

		case visitReading:
			r, ok := s.corpus.Readings[item.node.ID]
			if !ok {
				continue
			}
			newConf, action := suggestDowngrade(r.Confidence, weakenedSupportReason)
			s.record(report, r, newConf, action, item.depth, item.via)
			queue = s.enqueueSupported(queue, visited, item.node.ID, item.depth)
		}
	}

	report.TotalAffected = len(report.AffectedReadings) + len(report.AffectedAnchors)
	s.addWarnings(report)

	s.logger.Info("cascade computed",
		zap.String("anchor_id", anchorID),
		zap.String("status", string(status)),
		zap.Int("affected_readings", len(report.AffectedReadings)),
		zap.Int("affected_anchors", len(report.AffectedAnchors)),
		zap.Int("cascade_depth", report.CascadeDepth))

	return report, nil
}

// enqueueSupported schedules the anchors readingID supports as feedback hops.
func (s *CascadeService) enqueueSupported(queue []cascadeItem, visited map[string]bool, readingID string, depth int) []cascadeItem {
	for _, anchorID := range s.graph.SupportedAnchors(readingID) {
		if visited[anchorID] {
			continue
		}
		visited[anchorID] = true
		queue = append(queue, cascadeItem{node: graph.Anchor(anchorID), depth: depth, kind: visitAnchorViaReading, via: readingID})
	}
	return queue
}

func (s *CascadeService) record(report *domain.CascadeReport, r *domain.Reading, newConf domain.Confidence, action string, depth int, via string) {
	report.AffectedReadings = append(report.AffectedReadings, domain.AffectedReading{
		ReadingID:     r.ID,
		Meaning:       r.Meaning,
		OldConfidence: r.Confidence,
		NewConfidence: newConf,
		Action:        action,
		CascadeDepth:  depth,
		ViaAnchor:     via,
	})
	report.CascadeDepth = max(report.CascadeDepth, depth)
}

func (s *CascadeService) addWarnings(report *domain.CascadeReport) {
	if n := len(report.AffectedReadings); n > s.MajorCascadeThreshold {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("MAJOR CASCADE: %d readings affected - board review required before applying", n))
	}
	for _, ar := range report.AffectedReadings {
		if ar.OldConfidence == domain.ConfidenceCertain {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Reading %s was CERTAIN - review the evidence before accepting the change", ar.ReadingID))
		}
	}
	if n := len(report.AffectedAnchors); n > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("FEEDBACK: %d anchor(s) lose supporting evidence - review recommended", n))
	}
}
