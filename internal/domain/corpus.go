package domain

import (
	"context"
	"sort"
	"strings"
	"time"
)

type CorpusMetadata struct {
	LastUpdated time.Time `json:"last_updated" yaml:"last_updated"`
	Version     string    `json:"version,omitempty" yaml:"version,omitempty"`
}

// Corpus is everything one invocation loads, mutates in memory, and writes back whole.
type Corpus struct {
	Anchors  map[string]*Anchor
	Readings map[string]*Reading
	Metadata CorpusMetadata
	// CascadeRules is an extension point for pluggable rule tables.
	// It is persisted untouched and not consulted by the cascade.
	CascadeRules map[string]any
}

func NewCorpus() *Corpus {
	return &Corpus{
		Anchors:  make(map[string]*Anchor),
		Readings: make(map[string]*Reading),
	}
}

// CorpusStore loads and saves a whole corpus. Errors from either method are fatal
// to the invocation.
type CorpusStore interface {
	Load(ctx context.Context) (*Corpus, error)
	Save(ctx context.Context, c *Corpus) error
}

func (c *Corpus) Anchor(id string) (*Anchor, bool) {
	a, ok := c.Anchors[id]
	return a, ok
}

// FindReading looks up a reading by exact id first, then case-insensitively.
func (c *Corpus) FindReading(id string) (*Reading, bool) {
	if r, ok := c.Readings[id]; ok {
		return r, true
	}
	for _, key := range c.SortedReadingIDs() {
		if strings.EqualFold(key, id) {
			return c.Readings[key], true
		}
	}
	return nil, false
}

func (c *Corpus) SortedAnchorIDs() []string {
	ids := make([]string, 0, len(c.Anchors))
	for id := range c.Anchors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Corpus) SortedReadingIDs() []string {
	ids := make([]string, 0, len(c.Readings))
	for id := range c.Readings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Normalize makes freshly loaded records safe for the lattice and graph code:
// map keys are copied into records, id sets are deduplicated, confidences are
// re-parsed and missing statuses default to CONFIRMED.
func (c *Corpus) Normalize() {
	if c.Anchors == nil {
		c.Anchors = make(map[string]*Anchor)
	}
	if c.Readings == nil {
		c.Readings = make(map[string]*Reading)
	}
	for id, a := range c.Anchors {
		if a == nil {
			a = &Anchor{}
			c.Anchors[id] = a
		}
		a.ID = id
		a.Confidence = ParseConfidence(string(a.Confidence))
		if st, err := ParseAnchorStatus(string(a.Status)); err == nil {
			a.Status = st
		} else {
			a.Status = StatusConfirmed
		}
	}
	for id, r := range c.Readings {
		if r == nil {
			r = &Reading{}
			c.Readings[id] = r
		}
		r.ID = id
		r.Confidence = ParseConfidence(string(r.Confidence))
		r.DependsOn = NormalizeIDs(r.DependsOn)
		r.Supports = NormalizeIDs(r.Supports)
	}
}
