package service

import (
	"context"
	"strings"
	"testing"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	e, _ := newTestEngine(
		map[string]*domain.Anchor{
			"X": anchor(domain.ConfidenceHigh),
			"Y": anchor(domain.ConfidenceMedium),
		},
		map[string]*domain.Reading{
			"R1": reading(domain.ConfidenceHigh, []string{"X", "gone"}, "Y"),
		},
	)

	got, err := e.Inspector.Inspect("r1")
	require.NoError(t, err)

	assert.Equal(t, "R1", got.ReadingID)
	assert.Equal(t, domain.ConfidenceSpeculative, got.MaxConfidence)
	assert.False(t, got.WithinCeiling)
	require.Len(t, got.Dependencies, 2)
	assert.False(t, got.Dependencies[0].Missing)
	assert.True(t, got.Dependencies[1].Missing)
	require.Len(t, got.Supports, 1)
	assert.Equal(t, "Y", got.Supports[0].AnchorID)

	_, err = e.Inspector.Inspect("R9")
	assert.ErrorIs(t, err, ErrReadingNotFound)
}

func TestListAnchors(t *testing.T) {
	top := anchor(domain.ConfidenceCertain)
	top.Level = 0
	e, _ := newTestEngine(
		map[string]*domain.Anchor{
			"B":   anchor(domain.ConfidenceHigh),
			"A":   anchor(domain.ConfidenceHigh),
			"TOP": top,
		},
		map[string]*domain.Reading{
			"R1": reading(domain.ConfidenceHigh, []string{"A", "B"}, "TOP"),
			"R2": reading(domain.ConfidenceHigh, []string{"A"}),
		},
	)

	list := e.Inspector.ListAnchors()
	require.Len(t, list, 3)
	assert.Equal(t, "TOP", list[0].AnchorID)
	assert.Equal(t, 1, list[0].SupportedBy)
	assert.Equal(t, "A", list[1].AnchorID)
	assert.Equal(t, 2, list[1].DependentReadings)
	assert.Equal(t, "B", list[2].AnchorID)
}

func TestRenderGraph(t *testing.T) {
	e, _ := newTestEngine(
		map[string]*domain.Anchor{"A": anchor(domain.ConfidenceHigh)},
		map[string]*domain.Reading{
			"R1":     reading(domain.ConfidenceMedium, []string{"A"}, "A"),
			"orphan": reading(domain.ConfidenceLow, nil),
		},
	)

	text, err := e.Inspector.RenderGraph("text")
	require.NoError(t, err)
	assert.Contains(t, text, "[L1] A - anchor (HIGH, CONFIRMED)")
	assert.Contains(t, text, "-> R1 (MEDIUM, max HIGH)")
	assert.Contains(t, text, "supports A")
	assert.True(t, strings.HasSuffix(text, "orphans: orphan\n"))

	dot, err := e.Inspector.RenderGraph("DOT")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dot, "digraph anchors {"))
	assert.Contains(t, dot, `"anchor:A" -> "reading:R1";`)
	assert.Contains(t, dot, `"reading:R1" -> "anchor:A" [style=dashed`)

	_, err = e.Inspector.RenderGraph("svg")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestApplyCascade(t *testing.T) {
	e, store := newTestEngine(
		map[string]*domain.Anchor{"A": anchor(domain.ConfidenceHigh)},
		map[string]*domain.Reading{
			"R1": reading(domain.ConfidenceHigh, []string{"A"}),
			"R2": reading(domain.ConfidenceSpeculative, []string{"A"}),
		},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusRejected)
	require.NoError(t, err)

	changed, err := e.ApplyCascade(context.Background(), report)
	require.NoError(t, err)

	assert.Equal(t, 1, changed)
	assert.Equal(t, domain.StatusRejected, e.Corpus.Anchors["A"].Status)
	assert.Equal(t, domain.ConfidenceSpeculative, e.Corpus.Readings["R1"].Confidence)
	assert.Equal(t, "2026-03-14: Demote to SPECULATIVE (anchor rejected) via A (A REJECTED)", e.Corpus.Readings["R1"].CascadeNote)
	assert.Equal(t, 1, store.saves)
}

func TestApplyCascade_RejectedAnchorIsTerminal(t *testing.T) {
	a := anchor(domain.ConfidenceHigh)
	a.Status = domain.StatusRejected
	e, store := newTestEngine(
		map[string]*domain.Anchor{"A": a},
		map[string]*domain.Reading{"R1": reading(domain.ConfidenceSpeculative, []string{"A"})},
	)

	report, err := e.Cascade.Cascade("A", domain.StatusQuestioned)
	require.NoError(t, err)

	changed, err := e.ApplyCascade(context.Background(), report)
	assert.ErrorIs(t, err, ErrAnchorRejected)
	assert.Equal(t, 0, changed)
	assert.Equal(t, domain.StatusRejected, e.Corpus.Anchors["A"].Status)
	assert.Empty(t, e.Corpus.Readings["R1"].CascadeNote)
	assert.Equal(t, 0, store.saves)

	// Re-applying REJECTED is not a status change.
	report, err = e.Cascade.Cascade("A", domain.StatusRejected)
	require.NoError(t, err)
	_, err = e.ApplyCascade(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
}
