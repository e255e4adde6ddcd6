package source

import (
	"context"
	"fmt"
	"os"

	"github.com/buildvista/lookahead/pkg/models"
	"gopkg.in/yaml.v3"
)

// projectFile is the on-disk YAML layout of a project snapshot, the CLI's
// offline input format.
type projectFile struct {
	Project struct {
		ID       string `yaml:"id"`
		Name     string `yaml:"name"`
		Location string `yaml:"location"`
	} `yaml:"project"`
	Activities   []models.Activity         `yaml:"activities"`
	Dependencies []models.Dependency       `yaml:"dependencies"`
	Weather      *models.WeatherConditions `yaml:"weather"`
	Submittals   []models.Submittal        `yaml:"submittals"`
	Inspections  []models.Inspection       `yaml:"inspections"`
}

// pendingSubmittalStatuses are the statuses that still need a review
// response.
var pendingSubmittalStatuses = map[string]bool{
	"pending":   true,
	"open":      true,
	"in_review": true,
	"submitted": true,
}

// upcomingInspectionStatuses are the statuses of inspections that have not
// happened yet.
var upcomingInspectionStatuses = map[string]bool{
	"scheduled": true,
	"pending":   true,
}

// FileSource serves every collaborator contract from a single YAML project
// snapshot file. It is the backing store for offline analysis runs and for
// tests.
type FileSource struct {
	path string
	data projectFile
}

// NewFileSource loads and parses a project snapshot file.
func NewFileSource(path string) (*FileSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}

	fs := &FileSource{path: path}
	if err := yaml.Unmarshal(raw, &fs.data); err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}

	return fs, nil
}

// ProjectID returns the snapshot's project identifier, falling back to the
// file path when the snapshot does not name one.
func (fs *FileSource) ProjectID() string {
	if fs.data.Project.ID != "" {
		return fs.data.Project.ID
	}
	return fs.path
}

// ProjectName returns the human-readable project name, if any.
func (fs *FileSource) ProjectName() string {
	return fs.data.Project.Name
}

// Activities returns the snapshot's schedule activities.
func (fs *FileSource) Activities(ctx context.Context, _ string) ([]models.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.data.Activities, nil
}

// Dependencies returns the snapshot's dependency edges.
func (fs *FileSource) Dependencies(ctx context.Context, _ string) ([]models.Dependency, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.data.Dependencies, nil
}

// Current returns the snapshot's weather conditions; nil when the snapshot
// carries none.
func (fs *FileSource) Current(ctx context.Context, _ string) (*models.WeatherConditions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.data.Weather, nil
}

// PendingSubmittals returns the snapshot's submittals and RFIs still awaiting
// a response.
func (fs *FileSource) PendingSubmittals(ctx context.Context, _ string) ([]models.Submittal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var pending []models.Submittal
	for _, s := range fs.data.Submittals {
		if pendingSubmittalStatuses[s.Status] {
			if s.Kind == "" {
				s.Kind = models.SubmittalDocument
			}
			pending = append(pending, s)
		}
	}
	return pending, nil
}

// UpcomingInspections returns the snapshot's inspections that have not yet
// occurred.
func (fs *FileSource) UpcomingInspections(ctx context.Context, _ string) ([]models.Inspection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var upcoming []models.Inspection
	for _, insp := range fs.data.Inspections {
		if upcomingInspectionStatuses[insp.Status] {
			upcoming = append(upcoming, insp)
		}
	}
	return upcoming, nil
}

// Bundle wires the file source into every collaborator slot.
func (fs *FileSource) Bundle() Bundle {
	return Bundle{
		Activities:   fs,
		Dependencies: fs,
		Weather:      fs,
		Submittals:   fs,
		Inspections:  fs,
	}
}
