package service

import (
	"fmt"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/graph"
	"go.uber.org/zap"
)

type ValidatorService struct {
	corpus *domain.Corpus
	graph  *graph.Graph
	logger *zap.Logger
}

func NewValidatorService(corpus *domain.Corpus, g *graph.Graph, logger *zap.Logger) *ValidatorService {
	return &ValidatorService{corpus: corpus, graph: g, logger: logger}
}

// Validate runs the reference, orphan, lattice and cycle checks. Orphans are
// reported but do not make the corpus invalid.
func (s *ValidatorService) Validate() *domain.ValidationReport {
	report := &domain.ValidationReport{
		IsValid:              true,
		MissingReadings:      []domain.MissingReference{},
		OrphanReadings:       []string{},
		ConfidenceViolations: []domain.ConfidenceViolation{},
		CircularDependencies: [][]string{},
		Warnings:             []string{},
	}

	s.checkReferences(report)
	s.checkOrphans(report)
	s.checkLattice(report)

	report.CircularDependencies = append(report.CircularDependencies, s.FindCycles()...)
	for _, cycle := range report.CircularDependencies {
		report.IsValid = false
		report.Warnings = append(report.Warnings, fmt.Sprintf("Circular dependency: %v", cycle))
	}

	s.logger.Info("validation complete",
		zap.Bool("is_valid", report.IsValid),
		zap.Int("missing", len(report.MissingReadings)),
		zap.Int("orphans", len(report.OrphanReadings)),
		zap.Int("violations", len(report.ConfidenceViolations)),
		zap.Int("cycles", len(report.CircularDependencies)))

	return report
}

func (s *ValidatorService) checkReferences(report *domain.ValidationReport) {
	for _, readingID := range s.corpus.SortedReadingIDs() {
		for _, anchorID := range s.graph.Dependencies(readingID) {
			if _, ok := s.corpus.Anchor(anchorID); ok {
				continue
			}
			report.IsValid = false
			report.MissingReadings = append(report.MissingReadings, domain.MissingReference{
				ReadingID: readingID,
				AnchorID:  anchorID,
			})
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("Reading %s depends on unknown anchor %s", readingID, anchorID))
		}
	}
}

func (s *ValidatorService) checkOrphans(report *domain.ValidationReport) {
	for _, readingID := range s.corpus.SortedReadingIDs() {
		if len(s.graph.Dependencies(readingID)) > 0 {
			continue
		}
		report.OrphanReadings = append(report.OrphanReadings, readingID)
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("Reading %s has no anchor dependencies", readingID))
	}
}

// checkLattice compares stored confidence to the computed ceiling for every
// reading with dependencies. Orphans are skipped on purpose: their ceiling is
// SPECULATIVE by definition, and they are reported under OrphanReadings with a
// warning instead of as lattice violations.
func (s *ValidatorService) checkLattice(report *domain.ValidationReport) {
	for _, readingID := range s.corpus.SortedReadingIDs() {
		r := s.corpus.Readings[readingID]
		if r.IsOrphan() {
			continue
		}
		ceiling := MaxConfidence(r, s.corpus.Anchors)
		overage := domain.Rank(r.Confidence) - domain.Rank(ceiling)
		if overage <= 0 {
			continue
		}
		report.IsValid = false
		report.ConfidenceViolations = append(report.ConfidenceViolations, domain.ConfidenceViolation{
			ReadingID:     readingID,
			Confidence:    r.Confidence,
			MaxConfidence: ceiling,
			Overage:       overage,
			Message:       fmt.Sprintf("%s exceeds max %s by %d %s", r.Confidence, ceiling, overage, plural(overage, "level")),
		})
	}
}

type color int

const (
	white color = iota
	gray
	black
)

type dfsFrame struct {
	node graph.Node
	next []graph.Node
	pos  int
}

// FindCycles runs a three-color DFS rooted at every anchor. The explicit stack
// keeps path in recursion order, so a back edge to a gray node yields the cycle
// from that node's position through the closing edge. Readings that no anchor
// reaches are never visited.
func (s *ValidatorService) FindCycles() [][]string {
	colors := make(map[graph.Node]color)
	var cycles [][]string

	for _, anchorID := range s.corpus.SortedAnchorIDs() {
		root := graph.Anchor(anchorID)
		if colors[root] != white {
			continue
		}

		colors[root] = gray
		path := []graph.Node{root}
		stack := []*dfsFrame{{node: root, next: s.graph.Neighbors(root)}}

		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.pos >= len(top.next) {
				colors[top.node] = black
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}

			child := top.next[top.pos]
			top.pos++

			switch colors[child] {
			case white:
				colors[child] = gray
				path = append(path, child)
				stack = append(stack, &dfsFrame{node: child, next: s.graph.Neighbors(child)})
			case gray:
				cycle := closeCycle(path, child)
				s.logger.Debug("cycle detected", zap.Strings("path", cycle))
				cycles = append(cycles, cycle)
			}
		}
	}
	return cycles
}

func closeCycle(path []graph.Node, back graph.Node) []string {
	start := 0
	for i, n := range path {
		if n == back {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	for _, n := range path[start:] {
		cycle = append(cycle, n.ID)
	}
	return append(cycle, back.ID)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
