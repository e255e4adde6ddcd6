// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the schedule risk analysis engine as tools for AI assistants.
package mcp

import (
	"context"
	"fmt"

	"github.com/buildvista/lookahead/internal/core"
	"github.com/buildvista/lookahead/pkg/models"
	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps an Analyzer and exposes analysis tools over MCP.
type Server struct {
	server    *gomcp.Server
	analyzer  *core.Analyzer
	projectID string
}

// NewServer creates an MCP server bound to one project's analyzer.
func NewServer(analyzer *core.Analyzer, projectID, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		analyzer:  analyzer,
		projectID: projectID,
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "lookahead", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type analyzeInput struct {
	LookAheadDays    int  `json:"look_ahead_days,omitempty" jsonschema:"look-ahead window in days (1-28). Defaults to the configured window."`
	ExcludeWeather   bool `json:"exclude_weather,omitempty" jsonschema:"skip weather risk evaluation"`
	ExcludeConflicts bool `json:"exclude_conflicts,omitempty" jsonschema:"skip resource conflict detection"`
}

type conflictOutput struct {
	ResourceKey        string   `json:"resource_key"`
	Date               string   `json:"date"`
	Severity           string   `json:"severity"`
	Description        string   `json:"description"`
	ActivitiesAffected []string `json:"activities_affected"`
	Mitigations        []string `json:"mitigations"`
}

type riskOutput struct {
	SubjectID   string   `json:"subject_id"`
	SubjectName string   `json:"subject_name"`
	Kind        string   `json:"kind"`
	Severity    string   `json:"severity"`
	Probability float64  `json:"probability"`
	ImpactDays  int      `json:"impact_days"`
	Description string   `json:"description"`
	Mitigations []string `json:"mitigations"`
}

type utilizationOutput struct {
	ResourceKey string `json:"resource_key"`
	Date        string `json:"date"`
	Allocated   int    `json:"allocated"`
	Available   int    `json:"available"`
	Percent     int    `json:"percent"`
}

type analyzeOutput struct {
	ProjectID         string              `json:"project_id"`
	Today             string              `json:"today"`
	WindowDays        int                 `json:"window_days"`
	RiskScore         int                 `json:"risk_score"`
	Conflicts         []conflictOutput    `json:"conflicts"`
	Risks             []riskOutput        `json:"risks"`
	Utilization       []utilizationOutput `json:"utilization"`
	SkippedCategories []string            `json:"skipped_categories,omitempty"`
}

type getConflictsInput struct {
	LookAheadDays int `json:"look_ahead_days,omitempty" jsonschema:"look-ahead window in days (1-28). Defaults to the configured window."`
}

type getConflictsOutput struct {
	Conflicts []conflictOutput `json:"conflicts"`
	Count     int              `json:"count"`
}

type getRisksInput struct {
	LookAheadDays int    `json:"look_ahead_days,omitempty" jsonschema:"look-ahead window in days (1-28). Defaults to the configured window."`
	Kind          string `json:"kind,omitempty" jsonschema:"filter risks by kind (predecessor_delay, resource_conflict, weather, inspection, submittal, procurement)"`
}

type getRisksOutput struct {
	Risks []riskOutput `json:"risks"`
	Count int          `json:"count"`
}

type getUtilizationInput struct {
	LookAheadDays int `json:"look_ahead_days,omitempty" jsonschema:"look-ahead window in days (1-28). Defaults to the configured window."`
}

type getUtilizationOutput struct {
	Utilization []utilizationOutput `json:"utilization"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "analyze_schedule",
		Description: "Run a full look-ahead schedule risk analysis: resource conflicts, predecessor delays, weather exposure, submittal/RFI deadlines, and inspections, with an aggregate 0-100 risk score.",
	}, s.handleAnalyze)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_conflicts",
		Description: "Detect resource conflicts in the look-ahead window: days where competing activities exceed assumed trade or equipment capacity.",
	}, s.handleGetConflicts)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_risks",
		Description: "List detected schedule risks ordered by severity, optionally filtered by kind.",
	}, s.handleGetRisks)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_utilization",
		Description: "Get the per-resource, per-day utilization series: allocated headcount against assumed availability.",
	}, s.handleGetUtilization)
}

// --- Tool handlers ---

func (s *Server) handleAnalyze(ctx context.Context, _ *gomcp.CallToolRequest, input analyzeInput) (*gomcp.CallToolResult, analyzeOutput, error) {
	opts := core.DefaultOptions()
	opts.LookAheadDays = input.LookAheadDays
	opts.IncludeWeather = !input.ExcludeWeather
	opts.IncludeResourceConflicts = !input.ExcludeConflicts

	report, err := s.analyzer.Analyze(ctx, s.projectID, opts)
	if err != nil {
		return errorResult(fmt.Sprintf("analyzing schedule: %s", err)), analyzeOutput{}, nil
	}

	return nil, reportToOutput(report), nil
}

func (s *Server) handleGetConflicts(ctx context.Context, _ *gomcp.CallToolRequest, input getConflictsInput) (*gomcp.CallToolResult, getConflictsOutput, error) {
	opts := core.DefaultOptions()
	opts.LookAheadDays = input.LookAheadDays

	report, err := s.analyzer.Analyze(ctx, s.projectID, opts)
	if err != nil {
		return errorResult(fmt.Sprintf("detecting conflicts: %s", err)), getConflictsOutput{}, nil
	}

	out := getConflictsOutput{
		Conflicts: conflictsToOutput(report.Conflicts),
		Count:     len(report.Conflicts),
	}
	return nil, out, nil
}

func (s *Server) handleGetRisks(ctx context.Context, _ *gomcp.CallToolRequest, input getRisksInput) (*gomcp.CallToolResult, getRisksOutput, error) {
	if input.Kind != "" && !models.RiskKind(input.Kind).IsValid() {
		return errorResult(fmt.Sprintf("invalid risk kind %q", input.Kind)), getRisksOutput{}, nil
	}

	opts := core.DefaultOptions()
	opts.LookAheadDays = input.LookAheadDays

	report, err := s.analyzer.Analyze(ctx, s.projectID, opts)
	if err != nil {
		return errorResult(fmt.Sprintf("listing risks: %s", err)), getRisksOutput{}, nil
	}

	out := getRisksOutput{Risks: []riskOutput{}}
	for i := range report.Risks {
		r := &report.Risks[i]
		if input.Kind != "" && string(r.Kind) != input.Kind {
			continue
		}
		out.Risks = append(out.Risks, riskToOutput(r))
	}
	out.Count = len(out.Risks)

	return nil, out, nil
}

func (s *Server) handleGetUtilization(ctx context.Context, _ *gomcp.CallToolRequest, input getUtilizationInput) (*gomcp.CallToolResult, getUtilizationOutput, error) {
	opts := core.DefaultOptions()
	opts.LookAheadDays = input.LookAheadDays

	report, err := s.analyzer.Analyze(ctx, s.projectID, opts)
	if err != nil {
		return errorResult(fmt.Sprintf("computing utilization: %s", err)), getUtilizationOutput{}, nil
	}

	out := getUtilizationOutput{Utilization: make([]utilizationOutput, len(report.Utilization))}
	for i, u := range report.Utilization {
		out.Utilization[i] = utilizationOutput(u)
	}

	return nil, out, nil
}

// --- Helpers ---

func reportToOutput(r *models.Report) analyzeOutput {
	out := analyzeOutput{
		ProjectID:         r.ProjectID,
		Today:             r.Today,
		WindowDays:        r.WindowDays,
		RiskScore:         r.RiskScore,
		Conflicts:         conflictsToOutput(r.Conflicts),
		Risks:             make([]riskOutput, len(r.Risks)),
		Utilization:       make([]utilizationOutput, len(r.Utilization)),
		SkippedCategories: r.SkippedCategories,
	}
	for i := range r.Risks {
		out.Risks[i] = riskToOutput(&r.Risks[i])
	}
	for i, u := range r.Utilization {
		out.Utilization[i] = utilizationOutput(u)
	}
	return out
}

func conflictsToOutput(conflicts []models.Conflict) []conflictOutput {
	out := make([]conflictOutput, len(conflicts))
	for i := range conflicts {
		c := &conflicts[i]
		names := make([]string, len(c.ActivitiesAffected))
		for j, ref := range c.ActivitiesAffected {
			names[j] = ref.Name
		}
		out[i] = conflictOutput{
			ResourceKey:        c.ResourceKey,
			Date:               c.Date,
			Severity:           string(c.Severity),
			Description:        c.Description,
			ActivitiesAffected: names,
			Mitigations:        c.Mitigations,
		}
	}
	return out
}

func riskToOutput(r *models.RiskItem) riskOutput {
	return riskOutput{
		SubjectID:   r.SubjectID,
		SubjectName: r.SubjectName,
		Kind:        string(r.Kind),
		Severity:    string(r.Severity),
		Probability: r.Probability,
		ImpactDays:  r.ImpactDays,
		Description: r.Description,
		Mitigations: r.Mitigations,
	}
}

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
