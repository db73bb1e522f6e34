package graph

import (
	"testing"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/stretchr/testify/assert"
)

func sampleReadings() map[string]*domain.Reading {
	return map[string]*domain.Reading{
		"R2": {ID: "R2", DependsOn: []string{"X"}, Supports: []string{"Y"}},
		"R1": {ID: "R1", DependsOn: []string{"X", "Y"}},
		"R3": {ID: "R3"},
	}
}

func TestBuild(t *testing.T) {
	g := New()
	g.Build(sampleReadings())

	assert.Equal(t, []string{"R1", "R2"}, g.DependentReadings("X"))
	assert.Equal(t, []string{"R1"}, g.DependentReadings("Y"))
	assert.Equal(t, []string{"X", "Y"}, g.Dependencies("R1"))
	assert.Equal(t, []string{"Y"}, g.SupportedAnchors("R2"))
	assert.Nil(t, g.Dependencies("R3"))
	assert.Nil(t, g.DependentReadings("Z"))

	deps, supports := g.EdgeCount()
	assert.Equal(t, 3, deps)
	assert.Equal(t, 1, supports)
}

func TestBuild_Idempotent(t *testing.T) {
	g := New()
	readings := sampleReadings()
	g.Build(readings)
	g.Build(readings)

	assert.Equal(t, []string{"R1", "R2"}, g.DependentReadings("X"))
	deps, _ := g.EdgeCount()
	assert.Equal(t, 3, deps)
}

func TestRegister_Incremental(t *testing.T) {
	g := New()
	g.Build(sampleReadings())

	g.Register(&domain.Reading{ID: "R0", DependsOn: []string{"X"}, Supports: []string{"Z"}})

	assert.Equal(t, []string{"R0", "R1", "R2"}, g.DependentReadings("X"))
	assert.Equal(t, []string{"Z"}, g.SupportedAnchors("R0"))
}

func TestRegister_ReplacesEdges(t *testing.T) {
	g := New()
	g.Build(sampleReadings())

	g.Register(&domain.Reading{ID: "R2", DependsOn: []string{"Y"}})

	assert.Equal(t, []string{"R1"}, g.DependentReadings("X"))
	assert.Equal(t, []string{"R1", "R2"}, g.DependentReadings("Y"))
	assert.Nil(t, g.SupportedAnchors("R2"))
}

func TestNeighbors(t *testing.T) {
	g := New()
	g.Build(sampleReadings())

	assert.Equal(t, []Node{Reading("R1"), Reading("R2")}, g.Neighbors(Anchor("X")))
	assert.Equal(t, []Node{Anchor("Y")}, g.Neighbors(Reading("R2")))
	assert.Empty(t, g.Neighbors(Reading("R1")))
}

func TestReadingsSupporting(t *testing.T) {
	g := New()
	g.Build(sampleReadings())

	assert.Equal(t, []string{"R2"}, g.ReadingsSupporting("Y"))
	assert.Nil(t, g.ReadingsSupporting("X"))
}
