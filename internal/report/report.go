package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"depsiren/internal/model"
)

type Meta struct {
	ScannedPath string   `json:"scanned_path"`
	Timestamp   string   `json:"timestamp"`
	Manifests   []string `json:"manifests"`
}

var (
	highStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	medStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	lowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// SortByScore orders assessments by descending score, then by slug so equal
// scores render deterministically.
func SortByScore(assessments []model.PackageAssessment) {
	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].Score != assessments[j].Score {
			return assessments[i].Score > assessments[j].Score
		}
		return assessments[i].Dependency.Slug() < assessments[j].Dependency.Slug()
	})
}

// RenderTable writes a terminal table of the assessments. Callers sort first.
func RenderTable(w io.Writer, assessments []model.PackageAssessment) {
	if len(assessments) == 0 {
		fmt.Fprintln(w, "No dependencies evaluated.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PACKAGE\tVERSION\tSCORE\tSIGNALS")
	fmt.Fprintln(tw, "-------\t-------\t-----\t-------")

	for _, a := range assessments {
		spec := a.Dependency
		version := spec.Version
		if version == "" && a.Metadata != nil {
			version = a.Metadata.LatestVersion
		}
		if version == "" {
			version = "-"
		}

		reasons := make([]string, 0, len(a.Signals))
		for _, sig := range a.Signals {
			reasons = append(reasons, sig.Reason)
		}
		summary := strings.Join(reasons, " ")
		if summary == "" {
			summary = "No obvious risks"
		}

		fmt.Fprintf(tw, "%s (%s)\t%s\t%s\t%s\n",
			spec.Name, spec.Ecosystem, version, scoreStyle(a.Score).Render(fmt.Sprintf("%d", a.Score)), summary)
	}
	tw.Flush()
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 70:
		return highStyle
	case score >= 40:
		return medStyle
	default:
		return lowStyle
	}
}

// Export writes the assessment list as an indented JSON document. The format
// round-trips through Import without loss.
func Export(path string, assessments []model.PackageAssessment) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(assessments, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// Import reads an assessment list previously written by Export.
func Import(path string) ([]model.PackageAssessment, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var assessments []model.PackageAssessment
	if err := json.Unmarshal(b, &assessments); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return assessments, nil
}

// WriteMarkdown renders a Markdown summary of the scan.
func WriteMarkdown(path string, meta Meta, assessments []model.PackageAssessment) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(generateMarkdown(meta, assessments)), 0644)
}

func generateMarkdown(meta Meta, assessments []model.PackageAssessment) string {
	var sb strings.Builder

	sb.WriteString("# DepSiren Report\n\n")
	sb.WriteString(fmt.Sprintf("**Target:** `%s`\n", meta.ScannedPath))
	sb.WriteString(fmt.Sprintf("**Timestamp:** %s\n", meta.Timestamp))
	sb.WriteString(fmt.Sprintf("**Manifests:** %d\n\n", len(meta.Manifests)))

	var high, medium, low int
	for _, a := range assessments {
		switch {
		case a.Score >= 70:
			high++
		case a.Score >= 40:
			medium++
		default:
			low++
		}
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Risk | Count |\n")
	sb.WriteString("| :--- | :--- |\n")
	sb.WriteString(fmt.Sprintf("| High (>= 70) | %d |\n", high))
	sb.WriteString(fmt.Sprintf("| Medium (40-69) | %d |\n", medium))
	sb.WriteString(fmt.Sprintf("| Low (< 40) | %d |\n", low))
	sb.WriteString("\n")

	sb.WriteString("## Top Packages\n\n")
	if len(assessments) == 0 {
		sb.WriteString("_No dependencies evaluated._\n")
		return sb.String()
	}

	sb.WriteString("| Score | Package | Version | Signals |\n")
	sb.WriteString("| :--- | :--- | :--- | :--- |\n")

	limit := 30
	if len(assessments) < limit {
		limit = len(assessments)
	}
	for _, a := range assessments[:limit] {
		version := a.Dependency.Version
		if version == "" && a.Metadata != nil {
			version = a.Metadata.LatestVersion
		}
		reasons := make([]string, 0, len(a.Signals))
		for _, sig := range a.Signals {
			reasons = append(reasons, strings.ReplaceAll(sig.Reason, "|", "\\|"))
		}
		sb.WriteString(fmt.Sprintf("| %d | %s (%s) | %s | %s |\n",
			a.Score, a.Dependency.Name, a.Dependency.Ecosystem, version, strings.Join(reasons, "<br>")))
	}
	if len(assessments) > limit {
		sb.WriteString(fmt.Sprintf("\n*...and %d more packages inside the JSON report*\n", len(assessments)-limit))
	}

	return sb.String()
}
