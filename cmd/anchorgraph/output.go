package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintf(w, "  ! %s\n", msg)
	}
}

func printCascade(w io.Writer, report *domain.CascadeReport) {
	fmt.Fprintf(w, "Cascade: %s (%s) %s -> %s\n", report.AnchorID, report.AnchorName, report.PreviousStatus, report.NewStatus)
	fmt.Fprintf(w, "Affected: %d (depth %d)\n", report.TotalAffected, report.CascadeDepth)

	if len(report.AffectedReadings) > 0 {
		fmt.Fprintln(w, "\nReadings:")
		for _, ar := range report.AffectedReadings {
			fmt.Fprintf(w, "  %s%s %s -> %s  %s (via %s)\n",
				strings.Repeat("  ", max(ar.CascadeDepth-1, 0)), ar.ReadingID,
				ar.OldConfidence, ar.NewConfidence, ar.Action, ar.ViaAnchor)
		}
	}
	if len(report.AffectedAnchors) > 0 {
		fmt.Fprintln(w, "\nAnchors:")
		for _, aa := range report.AffectedAnchors {
			fmt.Fprintf(w, "  %s via %s: %s\n", aa.AnchorID, aa.ViaReading, aa.Note)
		}
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		printWarnings(w, report.Warnings)
	}
}

func printValidation(w io.Writer, report *domain.ValidationReport) {
	if report.IsValid {
		fmt.Fprintln(w, "Corpus is valid")
	} else {
		fmt.Fprintln(w, "Corpus is INVALID")
	}
	for _, m := range report.MissingReadings {
		fmt.Fprintf(w, "  missing anchor: %s depends on %s\n", m.ReadingID, m.AnchorID)
	}
	for _, v := range report.ConfidenceViolations {
		fmt.Fprintf(w, "  lattice: %s\n", v.Message)
	}
	for _, cycle := range report.CircularDependencies {
		fmt.Fprintf(w, "  cycle: %s\n", strings.Join(cycle, " -> "))
	}
	if len(report.OrphanReadings) > 0 {
		fmt.Fprintf(w, "  orphans: %s\n", strings.Join(report.OrphanReadings, ", "))
	}
	if len(report.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		printWarnings(w, report.Warnings)
	}
}

func printRegistration(w io.Writer, result *domain.RegistrationResult) {
	verb := "Registered"
	if result.Replaced {
		verb = "Replaced"
	}
	r := result.Reading
	fmt.Fprintf(w, "%s %s at %s (max %s)\n", verb, result.ReadingID, r.Confidence, r.MaxConfidence)
	if len(result.Warnings) > 0 {
		printWarnings(w, result.Warnings)
	}
}

func printInspection(w io.Writer, in *domain.ReadingInspection) {
	r := in.Reading
	fmt.Fprintf(w, "%s: %s\n", in.ReadingID, r.Meaning)
	fmt.Fprintf(w, "  confidence: %s (max %s)", r.Confidence, in.MaxConfidence)
	if !in.WithinCeiling {
		fmt.Fprint(w, "  EXCEEDS CEILING")
	}
	fmt.Fprintln(w)
	printRefs(w, "depends on", in.Dependencies)
	printRefs(w, "supports", in.Supports)
	if len(r.SupportedHypotheses) > 0 {
		fmt.Fprintf(w, "  hypotheses: %s\n", strings.Join(r.SupportedHypotheses, ", "))
	}
	if len(r.EvidenceSources) > 0 {
		fmt.Fprintf(w, "  evidence: %s\n", strings.Join(r.EvidenceSources, ", "))
	}
	if r.CascadeNote != "" {
		fmt.Fprintf(w, "  note: %s\n", r.CascadeNote)
	}
}

func printRefs(w io.Writer, label string, refs []domain.AnchorRef) {
	for _, ref := range refs {
		if ref.Missing {
			fmt.Fprintf(w, "  %s: %s (missing)\n", label, ref.AnchorID)
			continue
		}
		fmt.Fprintf(w, "  %s: %s %s (%s, %s)\n", label, ref.AnchorID, ref.Name, ref.Confidence, ref.Status)
	}
}

func printAnchors(w io.Writer, anchors []domain.AnchorSummary) {
	for _, s := range anchors {
		a := s.Anchor
		fmt.Fprintf(w, "[L%d] %-12s %-10s %-10s readings=%d supported_by=%d  %s\n",
			a.Level, s.AnchorID, a.Confidence, a.Status, s.DependentReadings, s.SupportedBy, a.Name)
	}
}
