package domain

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Confidence is a level of the confidence lattice.
type Confidence string

const (
	ConfidenceSpeculative Confidence = "SPECULATIVE"
	ConfidencePossible    Confidence = "POSSIBLE"
	ConfidenceLow         Confidence = "LOW"
	ConfidenceMedium      Confidence = "MEDIUM"
	ConfidenceProbable    Confidence = "PROBABLE"
	ConfidenceHigh        Confidence = "HIGH"
	ConfidenceCertain     Confidence = "CERTAIN"
)

// Lattice lists every confidence level from weakest to strongest.
var Lattice = []Confidence{
	ConfidenceSpeculative,
	ConfidencePossible,
	ConfidenceLow,
	ConfidenceMedium,
	ConfidenceProbable,
	ConfidenceHigh,
	ConfidenceCertain,
}

var confidenceRanks = func() map[Confidence]int {
	m := make(map[Confidence]int, len(Lattice))
	for i, c := range Lattice {
		m[c] = i
	}
	return m
}()

// confidenceAliases maps legacy spellings found in older corpora to lattice levels.
var confidenceAliases = map[string]Confidence{
	"LIKELY":    ConfidenceProbable,
	"MODERATE":  ConfidenceMedium,
	"UNLIKELY":  ConfidenceLow,
	"CONFIRMED": ConfidenceCertain,
}

// ParseConfidence normalizes raw input to a lattice level.
// Unknown or malformed input becomes SPECULATIVE; it never fails.
func ParseConfidence(s string) Confidence {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	if _, ok := confidenceRanks[Confidence(key)]; ok {
		return Confidence(key)
	}
	if c, ok := confidenceAliases[key]; ok {
		return c
	}
	return ConfidenceSpeculative
}

// Valid reports whether c is one of the lattice levels as written.
func (c Confidence) Valid() bool {
	_, ok := confidenceRanks[c]
	return ok
}

// Rank returns the 0-based lattice index of c. Values outside the lattice rank 0.
func Rank(c Confidence) int {
	return confidenceRanks[c]
}

// Exceeds reports whether c ranks strictly above other.
func (c Confidence) Exceeds(other Confidence) bool {
	return Rank(c) > Rank(other)
}

// StepUp returns the next stronger level, saturating at CERTAIN.
func StepUp(c Confidence) Confidence {
	r := Rank(c)
	if r >= len(Lattice)-1 {
		return ConfidenceCertain
	}
	return Lattice[r+1]
}

// StepDown returns the next weaker level, saturating at SPECULATIVE.
func StepDown(c Confidence) Confidence {
	r := Rank(c)
	if r <= 0 {
		return ConfidenceSpeculative
	}
	return Lattice[r-1]
}

// MinConfidence returns the lowest-ranked level among cs, or SPECULATIVE when cs is empty.
func MinConfidence(cs ...Confidence) Confidence {
	if len(cs) == 0 {
		return ConfidenceSpeculative
	}
	lowest := cs[0]
	for _, c := range cs[1:] {
		if Rank(c) < Rank(lowest) {
			lowest = c
		}
	}
	if !lowest.Valid() {
		return ConfidenceSpeculative
	}
	return lowest
}

func (c *Confidence) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Non-string values are treated like any other malformed level.
		*c = ConfidenceSpeculative
		return nil
	}
	*c = ParseConfidence(raw)
	return nil
}

func (c *Confidence) UnmarshalYAML(value *yaml.Node) error {
	*c = ParseConfidence(value.Value)
	return nil
}
