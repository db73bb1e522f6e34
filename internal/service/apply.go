package service

import (
	"fmt"
	"time"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
)

// ApplyCascade writes a cascade report's proposals into the corpus: the anchor
// takes the new status and each affected reading takes its proposed confidence
// and a dated cascade note. The caller decides whether the status change is
// warranted and is responsible for saving. Returns the number of readings whose
// confidence changed.
func ApplyCascade(corpus *domain.Corpus, report *domain.CascadeReport, now time.Time) int {
	a, ok := corpus.Anchor(report.AnchorID)
	if !ok {
		return 0
	}
	a.Status = report.NewStatus

	changed := 0
	date := now.UTC().Format("2006-01-02")
	for _, ar := range report.AffectedReadings {
		r, ok := corpus.Readings[ar.ReadingID]
		if !ok {
			continue
		}
		if ar.Changed() {
			changed++
		}
		r.Confidence = ar.NewConfidence
		r.CascadeNote = fmt.Sprintf("%s: %s via %s (%s %s)", date, ar.Action, ar.ViaAnchor, report.AnchorID, report.NewStatus)
	}
	corpus.Metadata.LastUpdated = now.UTC()
	return changed
}
