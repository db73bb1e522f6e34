package service

import (
	"github.com/Harshitk-cp/anchorgraph/internal/domain"
)

// SingleHypothesisCap is the highest confidence a reading explained by exactly
// one competing hypothesis may hold.
const SingleHypothesisCap = domain.ConfidenceProbable

// MaxConfidence computes the ceiling for r: the confidence of its weakest
// dependency anchor, SPECULATIVE when it has none. A dependency with no matching
// anchor contributes SPECULATIVE.
func MaxConfidence(r *domain.Reading, anchors map[string]*domain.Anchor) domain.Confidence {
	if len(r.DependsOn) == 0 {
		return domain.ConfidenceSpeculative
	}

	levels := make([]domain.Confidence, 0, len(r.DependsOn))
	for _, id := range r.DependsOn {
		a, ok := anchors[id]
		if !ok {
			levels = append(levels, domain.ConfidenceSpeculative)
			continue
		}
		levels = append(levels, a.Confidence)
	}
	ceiling := domain.MinConfidence(levels...)

	if len(r.SupportedHypotheses) == 1 && domain.Rank(ceiling) > domain.Rank(SingleHypothesisCap) {
		ceiling = SingleHypothesisCap
	}
	return ceiling
}

// RefreshCeilings recomputes the derived max confidence of every reading so a
// saved corpus shows current ceilings to human readers.
func RefreshCeilings(c *domain.Corpus) {
	for _, r := range c.Readings {
		r.MaxConfidence = MaxConfidence(r, c.Anchors)
	}
}

// ProposeConfidence applies the status-transition table to a dependent reading's
// recorded confidence and returns the proposal with its action text.
func ProposeConfidence(status domain.AnchorStatus, current domain.Confidence) (domain.Confidence, string) {
	switch status {
	case domain.StatusRejected:
		return domain.ConfidenceSpeculative, "Demote to SPECULATIVE (anchor rejected)"
	case domain.StatusDemoted:
		if current.Exceeds(domain.ConfidencePossible) {
			return domain.ConfidencePossible, "Cap at POSSIBLE"
		}
		return current, "No change"
	case domain.StatusQuestioned:
		return suggestDowngrade(current, "")
	}
	return current, "No change"
}

func suggestDowngrade(current domain.Confidence, reason string) (domain.Confidence, string) {
	if domain.Rank(current) == 0 {
		return current, "Already at minimum confidence"
	}
	lower := domain.StepDown(current)
	action := "Suggest downgrade to " + string(lower)
	if reason != "" {
		action += " (" + reason + ")"
	}
	return lower, action
}
