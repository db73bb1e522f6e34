package domain

import (
	"strings"
	"time"
)

// Reading is a derived claim whose confidence is bounded by the anchors it depends on.
type Reading struct {
	ID                  string     `json:"-" yaml:"-"`
	Meaning             string     `json:"meaning" yaml:"meaning"`
	Confidence          Confidence `json:"confidence" yaml:"confidence"`
	MaxConfidence       Confidence `json:"max_confidence,omitempty" yaml:"max_confidence,omitempty"` // derived; never read back as authoritative
	DependsOn           []string   `json:"depends_on" yaml:"depends_on"`
	Supports            []string   `json:"supports,omitempty" yaml:"supports,omitempty"`
	SupportedHypotheses []string   `json:"supported_hypotheses,omitempty" yaml:"supported_hypotheses,omitempty"`
	EvidenceSources     []string   `json:"evidence_sources,omitempty" yaml:"evidence_sources,omitempty"`
	CascadeNote         string     `json:"cascade_note,omitempty" yaml:"cascade_note,omitempty"`
	Registered          time.Time  `json:"registered" yaml:"registered"`
}

// IsOrphan reports whether the reading declares no anchor dependencies.
func (r *Reading) IsOrphan() bool {
	return len(r.DependsOn) == 0
}

// NormalizeIDs trims ids and drops blanks and repeats, keeping first-seen order.
func NormalizeIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
