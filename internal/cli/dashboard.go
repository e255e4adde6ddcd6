package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/buildvista/lookahead/internal/core"
	"github.com/buildvista/lookahead/pkg/models"
)

// Dashboard panel indices.
const (
	panelConflicts = iota
	panelRisks
	panelUtilization
	panelCount
)

var dashboardProject string

type dashboardModel struct {
	analyzer  *core.Analyzer
	projectID string

	activePanel int
	width       int
	height      int

	report  *models.Report
	loading bool
	err     error
}

// reportLoadedMsg carries a fresh analysis back to the model.
type reportLoadedMsg struct {
	report *models.Report
	err    error
}

// Dashboard styles.
var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func newDashboardModel(analyzer *core.Analyzer, projectID string) dashboardModel {
	return dashboardModel{
		analyzer:    analyzer,
		projectID:   projectID,
		activePanel: panelConflicts,
		loading:     true,
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadReport
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.activePanel = (m.activePanel + 1) % panelCount
			return m, nil
		case "shift+tab":
			m.activePanel = (m.activePanel - 1 + panelCount) % panelCount
			return m, nil
		case "r":
			m.loading = true
			return m, m.loadReport
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reportLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.report = msg.report
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	title := dashTitleStyle.Render(fmt.Sprintf(" Lookahead — %s ", m.projectID))
	help := helpStyle.Render("tab: switch panel | r: refresh | q: quit")

	if m.loading {
		return fmt.Sprintf("%s\n\n  Running analysis...\n\n%s", title, help)
	}

	if m.err != nil {
		return fmt.Sprintf("%s\n\n  Error: %s\n\n%s", title, m.err, help)
	}

	conflictsPanel := m.renderConflictsPanel()
	risksPanel := m.renderRisksPanel()
	utilizationPanel := m.renderUtilizationPanel()

	availableWidth := m.width - 2

	var body string
	if availableWidth > 120 {
		colWidth := availableWidth / 3
		conflictsPanel = m.applyPanelStyle(panelConflicts, conflictsPanel, colWidth-4)
		risksPanel = m.applyPanelStyle(panelRisks, risksPanel, colWidth-4)
		utilizationPanel = m.applyPanelStyle(panelUtilization, utilizationPanel, colWidth-4)
		body = lipgloss.JoinHorizontal(lipgloss.Top, conflictsPanel, risksPanel, utilizationPanel)
	} else {
		panelWidth := availableWidth - 4
		if panelWidth < 20 {
			panelWidth = 20
		}
		conflictsPanel = m.applyPanelStyle(panelConflicts, conflictsPanel, panelWidth)
		risksPanel = m.applyPanelStyle(panelRisks, risksPanel, panelWidth)
		utilizationPanel = m.applyPanelStyle(panelUtilization, utilizationPanel, panelWidth)
		body = lipgloss.JoinVertical(lipgloss.Left, conflictsPanel, risksPanel, utilizationPanel)
	}

	score := ""
	if m.report != nil {
		score = headerStyle.Render(fmt.Sprintf("Risk score: %d/100", m.report.RiskScore))
	}

	return fmt.Sprintf("%s\n%s\n%s\n\n%s", title, score, body, help)
}

func (m dashboardModel) applyPanelStyle(panel int, content string, width int) string {
	style := panelStyle
	if m.activePanel == panel {
		style = activePanelStyle
	}
	return style.Width(width).Render(content)
}

func (m dashboardModel) renderConflictsPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Conflicts"))
	b.WriteString("\n")

	if m.report == nil || len(m.report.Conflicts) == 0 {
		b.WriteString("  No resource conflicts.")
		return b.String()
	}

	for i := range m.report.Conflicts {
		c := &m.report.Conflicts[i]
		b.WriteString(fmt.Sprintf("  %s %s %s (%d)\n",
			severityBadge(c.Severity), c.Date, c.ResourceKey, len(c.ActivitiesAffected)))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d conflict(s)", len(m.report.Conflicts)))

	return b.String()
}

func (m dashboardModel) renderRisksPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Risks"))
	b.WriteString("\n")

	if m.report == nil || len(m.report.Risks) == 0 {
		b.WriteString("  No risks detected.")
		return b.String()
	}

	for i := range m.report.Risks {
		r := &m.report.Risks[i]
		b.WriteString(fmt.Sprintf("  %s [%s] %s\n", severityBadge(r.Severity), r.Kind, r.SubjectName))
	}

	b.WriteString(fmt.Sprintf("\n  Total: %d risk(s)", len(m.report.Risks)))

	return b.String()
}

func (m dashboardModel) renderUtilizationPanel() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Utilization"))
	b.WriteString("\n")

	if m.report == nil || len(m.report.Utilization) == 0 {
		b.WriteString("  No resource demand in window.")
		return b.String()
	}

	for _, u := range m.report.Utilization {
		b.WriteString(fmt.Sprintf("  %s %-18s %3d%%\n", u.Date, u.ResourceKey, u.Percent))
	}

	return b.String()
}

func (m dashboardModel) loadReport() tea.Msg {
	report, err := m.analyzer.Analyze(context.Background(), m.projectID, core.DefaultOptions())
	if err != nil {
		return reportLoadedMsg{err: fmt.Errorf("running analysis: %w", err)}
	}
	return reportLoadedMsg{report: report}
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Interactive TUI dashboard for schedule risk",
	Long: `Launch an interactive terminal dashboard showing resource conflicts,
ranked risks, and resource utilization for the look-ahead window.

Navigate between panels with Tab, refresh with r, quit with q.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, projectID, err := buildAnalyzer(dashboardProject)
		if err != nil {
			return err
		}

		p := tea.NewProgram(newDashboardModel(analyzer, projectID), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardProject, "project", "", "path to the project snapshot YAML file")
	rootCmd.AddCommand(dashboardCmd)
}
