package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findReading(report *domain.CascadeReport, id string) *domain.AffectedReading {
	for i := range report.AffectedReadings {
		if report.AffectedReadings[i].ReadingID == id {
			return &report.AffectedReadings[i]
		}
	}
	return nil
}

func hasWarning(warnings []string, prefix string) bool {
	for _, w := range warnings {
		if strings.HasPrefix(w, prefix) {
			return true
		}
	}
	return false
}

func TestCascade_Scenario(t *testing.T) {
	e := scenarioEngine()

	report, err := e.Cascade.Cascade("Y", domain.StatusRejected)
	require.NoError(t, err)

	r1 := findReading(report, "R1")
	require.NotNil(t, r1)
	assert.Equal(t, domain.ConfidenceHigh, r1.OldConfidence)
	assert.Equal(t, domain.ConfidenceSpeculative, r1.NewConfidence)
	assert.Equal(t, 1, r1.CascadeDepth)
	assert.Equal(t, "Y", r1.ViaAnchor)
	assert.Equal(t, 1, report.CascadeDepth)
	assert.Equal(t, domain.StatusConfirmed, report.PreviousStatus)

	// The cascade is a pure read.
	assert.Equal(t, domain.ConfidenceHigh, e.Corpus.Readings["R1"].Confidence)
	assert.Equal(t, domain.StatusConfirmed, e.Corpus.Anchors["Y"].Status)
}

func TestCascade_UnknownAnchor(t *testing.T) {
	e := scenarioEngine()

	report, err := e.Cascade.Cascade("nope", domain.StatusRejected)
	require.NoError(t, err)

	assert.Empty(t, report.AffectedReadings)
	assert.Empty(t, report.AffectedAnchors)
	assert.Equal(t, 0, report.TotalAffected)
	assert.Equal(t, []string{"Unknown anchor: nope"}, report.Warnings)
}

func TestCascade_InvalidStatus(t *testing.T) {
	e := scenarioEngine()

	_, err := e.Cascade.Cascade("X", domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidCascadeStatus)
}

func TestCascade_RejectedForcesSpeculative(t *testing.T) {
	readings := map[string]*domain.Reading{}
	for i, c := range domain.Lattice {
		readings[fmt.Sprintf("R%d", i)] = reading(c, []string{"A"})
	}
	e, _ := newTestEngine(map[string]*domain.Anchor{"A": anchor(domain.ConfidenceCertain)}, readings)

	report, err := e.Cascade.Cascade("A", domain.StatusRejected)
	require.NoError(t, err)

	require.Len(t, report.AffectedReadings, len(domain.Lattice))
	for _, ar := range report.AffectedReadings {
		assert.Equal(t, domain.ConfidenceSpeculative, ar.NewConfidence, ar.ReadingID)
	}
	assert.True(t, hasWarning(report.Warnings, "MAJOR CASCADE"))
	assert.True(t, hasWarning(report.Warnings, "Reading R6 was CERTAIN"))
}

func TestCascade_DemotedCaps(t *testing.T) {
	e, _ := newTestEngine(
		map[string]*domain.Anchor{"A": anchor(domain.ConfidenceHigh)},
		map[string]*domain.Reading{
			"high": reading(domain.ConfidenceHigh, []string{"A"}),
			"low":  reading(domain.ConfidenceLow, []string{"A"}),
			"poss": reading(domain.ConfidencePossible, []string{"A"}),
		},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusDemoted)
	require.NoError(t, err)

	assert.Equal(t, domain.ConfidencePossible, findReading(report, "high").NewConfidence)
	assert.Equal(t, "Cap at POSSIBLE", findReading(report, "high").Action)
	assert.Equal(t, domain.ConfidencePossible, findReading(report, "poss").NewConfidence)
	assert.Equal(t, "No change", findReading(report, "poss").Action)
	assert.Equal(t, domain.ConfidenceLow, findReading(report, "low").NewConfidence)
	assert.False(t, hasWarning(report.Warnings, "MAJOR CASCADE"))
}

func TestCascade_QuestionedSoftDowngrade(t *testing.T) {
	e, _ := newTestEngine(
		map[string]*domain.Anchor{"A": anchor(domain.ConfidenceHigh)},
		map[string]*domain.Reading{
			"R1": reading(domain.ConfidenceProbable, []string{"A"}),
			"R2": reading(domain.ConfidenceSpeculative, []string{"A"}),
		},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusQuestioned)
	require.NoError(t, err)

	assert.Equal(t, domain.ConfidenceMedium, findReading(report, "R1").NewConfidence)
	assert.Equal(t, "Suggest downgrade to MEDIUM", findReading(report, "R1").Action)
	assert.Equal(t, domain.ConfidenceSpeculative, findReading(report, "R2").NewConfidence)
	assert.Equal(t, "Already at minimum confidence", findReading(report, "R2").Action)
}

func TestCascade_FeedbackHop(t *testing.T) {
	// A <- R1 -supports-> B <- R2
	e, _ := newTestEngine(
		map[string]*domain.Anchor{
			"A": anchor(domain.ConfidenceHigh),
			"B": anchor(domain.ConfidenceHigh),
		},
		map[string]*domain.Reading{
			"R1": reading(domain.ConfidenceHigh, []string{"A"}, "B"),
			"R2": reading(domain.ConfidenceHigh, []string{"B"}),
		},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusRejected)
	require.NoError(t, err)

	require.Len(t, report.AffectedAnchors, 1)
	aa := report.AffectedAnchors[0]
	assert.Equal(t, "B", aa.AnchorID)
	assert.Equal(t, "R1", aa.ViaReading)
	assert.Equal(t, 1, aa.CascadeDepth)
	assert.Equal(t, "supporting evidence weakened - review recommended", aa.Note)

	r2 := findReading(report, "R2")
	require.NotNil(t, r2)
	assert.Equal(t, 2, r2.CascadeDepth)
	assert.Equal(t, "B", r2.ViaAnchor)
	assert.Equal(t, domain.ConfidenceProbable, r2.NewConfidence)
	assert.Equal(t, "Suggest downgrade to PROBABLE (supporting anchor weakened)", r2.Action)

	assert.Equal(t, 2, report.CascadeDepth)
	assert.Equal(t, 3, report.TotalAffected)
	assert.True(t, hasWarning(report.Warnings, "FEEDBACK"))
}

func TestCascade_CycleBackToStart(t *testing.T) {
	// A <- R1 -supports-> B <- R2 -supports-> A
	e, _ := newTestEngine(
		map[string]*domain.Anchor{
			"A": anchor(domain.ConfidenceHigh),
			"B": anchor(domain.ConfidenceHigh),
		},
		map[string]*domain.Reading{
			"R1": reading(domain.ConfidenceHigh, []string{"A"}, "B"),
			"R2": reading(domain.ConfidenceMedium, []string{"B"}, "A"),
			"R3": reading(domain.ConfidenceMedium, []string{"A", "B"}, "A", "B"),
		},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusQuestioned)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, ar := range report.AffectedReadings {
		assert.False(t, seen[ar.ReadingID], "reading %s reported twice", ar.ReadingID)
		seen[ar.ReadingID] = true
	}
	assert.Len(t, report.AffectedReadings, 3)
	require.Len(t, report.AffectedAnchors, 1)
	assert.Equal(t, "B", report.AffectedAnchors[0].AnchorID)
}

func TestCascade_SelfSupportingReading(t *testing.T) {
	e, _ := newTestEngine(
		map[string]*domain.Anchor{"A": anchor(domain.ConfidenceHigh)},
		map[string]*domain.Reading{"R": reading(domain.ConfidenceHigh, []string{"A"}, "A")},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusRejected)
	require.NoError(t, err)

	assert.Len(t, report.AffectedReadings, 1)
	assert.Empty(t, report.AffectedAnchors)
	assert.False(t, hasWarning(report.Warnings, "FEEDBACK"))
}

func TestCascade_SharedIDAcrossKinds(t *testing.T) {
	// Reading K and anchor K share an id. Once reading K is visited, anchor K
	// must not be entered as a feedback hop.
	e, _ := newTestEngine(
		map[string]*domain.Anchor{
			"A": anchor(domain.ConfidenceHigh),
			"K": anchor(domain.ConfidenceHigh),
		},
		map[string]*domain.Reading{
			"K":  reading(domain.ConfidenceHigh, []string{"A"}, "K"),
			"R2": reading(domain.ConfidenceHigh, []string{"K"}),
		},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusRejected)
	require.NoError(t, err)

	require.Len(t, report.AffectedReadings, 1)
	assert.Equal(t, "K", report.AffectedReadings[0].ReadingID)
	assert.Empty(t, report.AffectedAnchors)
	assert.Nil(t, findReading(report, "R2"))
	assert.False(t, hasWarning(report.Warnings, "FEEDBACK"))
}

func TestCascade_MajorCascadeThreshold(t *testing.T) {
	readings := map[string]*domain.Reading{}
	for i := 0; i < 3; i++ {
		readings[fmt.Sprintf("R%d", i)] = reading(domain.ConfidenceLow, []string{"A"})
	}
	e, _ := newTestEngine(map[string]*domain.Anchor{"A": anchor(domain.ConfidenceHigh)}, readings)
	WithMajorCascadeThreshold(2)(e)

	report, err := e.Cascade.Cascade("A", domain.StatusDemoted)
	require.NoError(t, err)
	assert.True(t, hasWarning(report.Warnings, "MAJOR CASCADE: 3 readings"))
}
