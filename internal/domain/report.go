package domain

// AffectedReading is one reading touched by a cascade, with the proposed change.
type AffectedReading struct {
	ReadingID     string     `json:"reading_id"`
	Meaning       string     `json:"meaning,omitempty"`
	OldConfidence Confidence `json:"old_confidence"`
	NewConfidence Confidence `json:"new_confidence"`
	Action        string     `json:"action"`
	CascadeDepth  int        `json:"cascade_depth"`
	ViaAnchor     string     `json:"via_anchor"`
}

// Changed reports whether the proposal differs from the recorded confidence.
func (a AffectedReading) Changed() bool {
	return a.OldConfidence != a.NewConfidence
}

// AffectedAnchor is an anchor whose supporting evidence was weakened by a cascade.
type AffectedAnchor struct {
	AnchorID     string `json:"anchor_id"`
	Name         string `json:"name,omitempty"`
	ViaReading   string `json:"via_reading"`
	CascadeDepth int    `json:"cascade_depth"`
	Note         string `json:"note"`
}

type CascadeReport struct {
	AnchorID         string            `json:"anchor_id"`
	AnchorName       string            `json:"anchor_name,omitempty"`
	PreviousStatus   AnchorStatus      `json:"previous_status,omitempty"`
	NewStatus        AnchorStatus      `json:"new_status"`
	AffectedReadings []AffectedReading `json:"affected_readings"`
	AffectedAnchors  []AffectedAnchor  `json:"affected_anchors"`
	TotalAffected    int               `json:"total_affected"`
	CascadeDepth     int               `json:"cascade_depth"`
	Warnings         []string          `json:"warnings"`
}

// MissingReference is a depends_on id with no matching anchor.
type MissingReference struct {
	ReadingID string `json:"reading_id"`
	AnchorID  string `json:"anchor_id"`
}

type ConfidenceViolation struct {
	ReadingID     string     `json:"reading_id"`
	Confidence    Confidence `json:"confidence"`
	MaxConfidence Confidence `json:"max_confidence"`
	Overage       int        `json:"overage"`
	Message       string     `json:"message"`
}

type ValidationReport struct {
	IsValid              bool                  `json:"is_valid"`
	MissingReadings      []MissingReference    `json:"missing_readings"`
	OrphanReadings       []string              `json:"orphan_readings"`
	ConfidenceViolations []ConfidenceViolation `json:"confidence_violations"`
	CircularDependencies [][]string            `json:"circular_dependencies"`
	Warnings             []string              `json:"warnings"`
}

type RegistrationResult struct {
	ReadingID string     `json:"reading_id"`
	Reading   *Reading   `json:"reading"`
	Requested Confidence `json:"requested_confidence"`
	Capped    bool       `json:"capped"`
	Replaced  bool       `json:"replaced"`
	Warnings  []string   `json:"warnings"`
}

// AnchorRef describes one end of an edge from a reading, flagging ids with no anchor.
type AnchorRef struct {
	AnchorID   string       `json:"anchor_id"`
	Name       string       `json:"name,omitempty"`
	Confidence Confidence   `json:"confidence,omitempty"`
	Status     AnchorStatus `json:"status,omitempty"`
	Missing    bool         `json:"missing,omitempty"`
}

type ReadingInspection struct {
	ReadingID     string      `json:"reading_id"`
	Reading       *Reading    `json:"reading"`
	MaxConfidence Confidence  `json:"max_confidence"`
	WithinCeiling bool        `json:"within_ceiling"`
	Dependencies  []AnchorRef `json:"dependencies"`
	Supports      []AnchorRef `json:"supports"`
}

type AnchorSummary struct {
	AnchorID          string  `json:"anchor_id"`
	Anchor            *Anchor `json:"anchor"`
	DependentReadings int     `json:"dependent_readings"`
	SupportedBy       int     `json:"supported_by"`
}
