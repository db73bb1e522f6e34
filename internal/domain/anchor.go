package domain

import (
	"errors"
	"strings"
)

var ErrInvalidStatus = errors.New("invalid anchor status")

type AnchorStatus string

const (
	StatusConfirmed  AnchorStatus = "CONFIRMED"
	StatusQuestioned AnchorStatus = "QUESTIONED"
	StatusDemoted    AnchorStatus = "DEMOTED"
	StatusRejected   AnchorStatus = "REJECTED"
)

// ParseAnchorStatus accepts any casing of the four statuses.
func ParseAnchorStatus(s string) (AnchorStatus, error) {
	switch st := AnchorStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusConfirmed, StatusQuestioned, StatusDemoted, StatusRejected:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// IsCascadeStatus reports whether moving an anchor to s triggers a cascade.
func (s AnchorStatus) IsCascadeStatus() bool {
	switch s {
	case StatusQuestioned, StatusDemoted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal is true for REJECTED, which an anchor never leaves.
func (s AnchorStatus) IsTerminal() bool {
	return s == StatusRejected
}

// Anchor is a foundational claim. The core only reads anchors.
type Anchor struct {
	ID                     string       `json:"-" yaml:"-"`
	Name                   string       `json:"name" yaml:"name"`
	Level                  int          `json:"level" yaml:"level"`
	Confidence             Confidence   `json:"confidence" yaml:"confidence"`
	Status                 AnchorStatus `json:"status" yaml:"status"`
	Limitations            []string     `json:"limitations,omitempty" yaml:"limitations,omitempty"`
	FalsificationCondition string       `json:"falsification_condition,omitempty" yaml:"falsification_condition,omitempty"`
}
