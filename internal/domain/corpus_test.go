package domain

import "testing"

func TestCorpusNormalize(t *testing.T) {
	c := &Corpus{
		Anchors: map[string]*Anchor{
			"X": {Name: "x", Confidence: "high"},
			"Y": {Name: "y", Confidence: "HIGH", Status: "demoted"},
		},
		Readings: map[string]*Reading{
			"R1": {Confidence: "likely", DependsOn: []string{"X", " X", "", "Y"}, Supports: []string{"Y", "Y"}},
		},
	}
	c.Normalize()

	if c.Anchors["X"].ID != "X" || c.Anchors["X"].Status != StatusConfirmed {
		t.Errorf("anchor X not normalized: %+v", c.Anchors["X"])
	}
	if c.Anchors["Y"].Status != StatusDemoted {
		t.Errorf("anchor Y status = %v, want DEMOTED", c.Anchors["Y"].Status)
	}
	r := c.Readings["R1"]
	if r.ID != "R1" || r.Confidence != ConfidenceProbable {
		t.Errorf("reading not normalized: %+v", r)
	}
	if len(r.DependsOn) != 2 || r.DependsOn[0] != "X" || r.DependsOn[1] != "Y" {
		t.Errorf("depends_on = %v, want [X Y]", r.DependsOn)
	}
	if len(r.Supports) != 1 {
		t.Errorf("supports = %v, want [Y]", r.Supports)
	}
}

func TestCorpusFindReading(t *testing.T) {
	c := NewCorpus()
	c.Readings["Reading-7"] = &Reading{ID: "Reading-7"}

	if _, ok := c.FindReading("Reading-7"); !ok {
		t.Error("exact lookup failed")
	}
	r, ok := c.FindReading("reading-7")
	if !ok || r.ID != "Reading-7" {
		t.Errorf("case-insensitive lookup = %v, %v", r, ok)
	}
	if _, ok := c.FindReading("reading-8"); ok {
		t.Error("lookup of absent reading should fail")
	}
}
