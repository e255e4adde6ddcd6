package cli

import (
	"fmt"
	"os"

	"github.com/buildvista/lookahead/internal/core"
	"github.com/buildvista/lookahead/internal/source"
)

// buildAnalyzer loads the analysis config from the working directory and
// wires an analyzer over the given project snapshot file. Shared by the
// analyze, dashboard, and mcp commands.
func buildAnalyzer(projectPath string) (*core.Analyzer, string, error) {
	if projectPath == "" {
		return nil, "", fmt.Errorf("--project is required")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := core.LoadAnalysisConfig(cwd)
	if err != nil {
		return nil, "", fmt.Errorf("loading analysis config: %w", err)
	}

	fs, err := source.NewFileSource(projectPath)
	if err != nil {
		return nil, "", err
	}

	return core.NewAnalyzer(cfg, fs.Bundle()), fs.ProjectID(), nil
}
