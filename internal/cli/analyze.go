package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/buildvista/lookahead/internal/core"
	"github.com/buildvista/lookahead/pkg/models"
)

var (
	analyzeProject     string
	analyzeDays        int
	analyzeJSON        bool
	analyzeNoWeather   bool
	analyzeNoConflicts bool
)

// Report rendering styles.
var (
	reportTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	sevCritical = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	sevHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	sevMedium   = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	sevLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a look-ahead schedule risk analysis",
	Long: `Run one schedule risk analysis over the look-ahead window and print the
report: resource conflicts, ranked risk items, the aggregate risk score,
and the resource utilization series.

The project snapshot is read from a YAML file; analysis assumptions can be
overridden with a .lookaheadrc file in the working directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, projectID, err := buildAnalyzer(analyzeProject)
		if err != nil {
			return err
		}

		opts := core.Options{
			LookAheadDays:            analyzeDays,
			IncludeWeather:           !analyzeNoWeather,
			IncludeResourceConflicts: !analyzeNoConflicts,
		}

		report, err := analyzer.Analyze(context.Background(), projectID, opts)
		if err != nil {
			return fmt.Errorf("analyzing schedule: %w", err)
		}

		if analyzeJSON {
			raw, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding report: %w", err)
			}
			fmt.Println(string(raw))
			return nil
		}

		fmt.Println(renderReport(report))
		return nil
	},
}

// renderReport formats the report as a human-scannable terminal digest.
func renderReport(r *models.Report) string {
	var b strings.Builder

	b.WriteString(reportTitleStyle.Render(fmt.Sprintf(" %s — %d-day look-ahead (%s) ", r.ProjectID, r.WindowDays, r.Today)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Risk score: %d/100", r.RiskScore)))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Resource conflicts (%d)", len(r.Conflicts))))
	b.WriteString("\n")
	if len(r.Conflicts) == 0 {
		b.WriteString(dimStyle.Render("  none detected"))
		b.WriteString("\n")
	}
	for i := range r.Conflicts {
		c := &r.Conflicts[i]
		b.WriteString(fmt.Sprintf("  %s %s on %s — %d activities\n",
			severityBadge(c.Severity), c.ResourceKey, c.Date, len(c.ActivitiesAffected)))
		b.WriteString(dimStyle.Render("      " + c.Description))
		b.WriteString("\n")
		if len(c.Mitigations) > 0 {
			b.WriteString(dimStyle.Render("      mitigate: " + c.Mitigations[0]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render(fmt.Sprintf("Risks (%d)", len(r.Risks))))
	b.WriteString("\n")
	if len(r.Risks) == 0 {
		b.WriteString(dimStyle.Render("  none detected"))
		b.WriteString("\n")
	}
	for i := range r.Risks {
		risk := &r.Risks[i]
		b.WriteString(fmt.Sprintf("  %s [%s] %s — ~%d day(s) at risk\n",
			severityBadge(risk.Severity), risk.Kind, risk.SubjectName, risk.ImpactDays))
		b.WriteString(dimStyle.Render("      " + risk.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(r.Utilization) > 0 {
		b.WriteString(sectionStyle.Render("Resource utilization"))
		b.WriteString("\n")
		for _, u := range r.Utilization {
			b.WriteString(fmt.Sprintf("  %s  %-22s %s %d%%\n",
				u.Date, u.ResourceKey, utilizationBar(u.Percent), u.Percent))
		}
		b.WriteString("\n")
	}

	if len(r.SkippedCategories) > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("skipped categories (no data): %s", strings.Join(r.SkippedCategories, ", "))))
		b.WriteString("\n")
	}

	return b.String()
}

// severityBadge renders a colored fixed-width severity tag.
func severityBadge(s models.Severity) string {
	label := fmt.Sprintf("%-8s", strings.ToUpper(string(s)))
	switch s {
	case models.SeverityCritical:
		return sevCritical.Render(label)
	case models.SeverityHigh:
		return sevHigh.Render(label)
	case models.SeverityMedium:
		return sevMedium.Render(label)
	case models.SeverityLow:
		return sevLow.Render(label)
	default:
		return label
	}
}

// utilizationBar draws a 20-cell bar, saturating at 200%.
func utilizationBar(percent int) string {
	const cells = 20
	filled := percent * cells / 200
	if filled > cells {
		filled = cells
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", cells-filled)
	if percent > 100 {
		return sevHigh.Render(bar)
	}
	return dimStyle.Render(bar)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeProject, "project", "", "path to the project snapshot YAML file")
	analyzeCmd.Flags().IntVar(&analyzeDays, "days", 0, "look-ahead window in days (1-28, default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "emit the report as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeNoWeather, "no-weather", false, "skip weather risk evaluation")
	analyzeCmd.Flags().BoolVar(&analyzeNoConflicts, "no-resource-conflicts", false, "skip resource conflict detection")
	rootCmd.AddCommand(analyzeCmd)
}
