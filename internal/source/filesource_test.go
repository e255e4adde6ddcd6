package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/buildvista/lookahead/pkg/models"
)

const sampleProject = `
project:
  id: proj-tower
  name: Tower Phase 2
  location: Denver, CO

activities:
  - id: A1
    name: Pour slab level 3
    start: 2024-06-10T00:00:00Z
    end: 2024-06-12T00:00:00Z
    status: in_progress
    percent_complete: 30
  - id: A2
    name: Electrical rough-in level 2
    start: 2024-06-11T00:00:00Z
    end: 2024-06-14T00:00:00Z
    status: not_started
    is_critical: true

dependencies:
  - predecessor_id: A1
    successor_id: A2
    lag_days: 1

weather:
  description: Light rain
  temperature_f: 55
  wind_mph: 12

submittals:
  - id: S1
    title: Rebar shop drawings
    kind: submittal
    status: pending
    required_date: 2024-06-13T00:00:00Z
  - id: S2
    title: Approved mix design
    status: approved
    required_date: 2024-06-20T00:00:00Z
  - id: S3
    title: Penetration detail RFI
    kind: rfi
    status: open
    required_date: 2024-06-15T00:00:00Z

inspections:
  - id: I1
    type: Structural
    scheduled_date: 2024-06-11T00:00:00Z
    status: scheduled
  - id: I2
    type: Electrical
    scheduled_date: 2024-06-05T00:00:00Z
    status: passed
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_LoadsSnapshot(t *testing.T) {
	fs, err := NewFileSource(writeProject(t, sampleProject))
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	if fs.ProjectID() != "proj-tower" {
		t.Errorf("project ID = %q, want proj-tower", fs.ProjectID())
	}
	if fs.ProjectName() != "Tower Phase 2" {
		t.Errorf("project name = %q, want Tower Phase 2", fs.ProjectName())
	}

	ctx := context.Background()

	activities, err := fs.Activities(ctx, "proj-tower")
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(activities))
	}
	if activities[0].ID != "A1" || activities[0].PercentComplete != 30 {
		t.Errorf("unexpected first activity %+v", activities[0])
	}
	if !activities[1].IsCritical {
		t.Error("A2 should parse as critical")
	}

	deps, err := fs.Dependencies(ctx, "proj-tower")
	if err != nil {
		t.Fatalf("Dependencies: %v", err)
	}
	if len(deps) != 1 || deps[0].PredecessorID != "A1" || deps[0].LagDays != 1 {
		t.Errorf("unexpected dependencies %+v", deps)
	}

	weather, err := fs.Current(ctx, "proj-tower")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if weather == nil || weather.Description != "Light rain" || weather.WindMph != 12 {
		t.Errorf("unexpected weather %+v", weather)
	}
}

func TestFileSource_FiltersPendingSubmittals(t *testing.T) {
	fs, err := NewFileSource(writeProject(t, sampleProject))
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	pending, err := fs.PendingSubmittals(context.Background(), "proj-tower")
	if err != nil {
		t.Fatalf("PendingSubmittals: %v", err)
	}

	if len(pending) != 2 {
		t.Fatalf("expected 2 pending items, got %d", len(pending))
	}
	if pending[0].ID != "S1" || pending[1].ID != "S3" {
		t.Errorf("approved submittal must be filtered out, got %+v", pending)
	}
	if pending[1].Kind != models.SubmittalRFI {
		t.Errorf("S3 kind = %s, want rfi", pending[1].Kind)
	}
}

func TestFileSource_DefaultsSubmittalKind(t *testing.T) {
	snapshot := `
submittals:
  - id: S1
    title: No kind set
    status: pending
    required_date: 2024-06-13T00:00:00Z
`
	fs, err := NewFileSource(writeProject(t, snapshot))
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	pending, err := fs.PendingSubmittals(context.Background(), "x")
	if err != nil {
		t.Fatalf("PendingSubmittals: %v", err)
	}
	if len(pending) != 1 || pending[0].Kind != models.SubmittalDocument {
		t.Errorf("missing kind must default to submittal, got %+v", pending)
	}
}

func TestFileSource_FiltersUpcomingInspections(t *testing.T) {
	fs, err := NewFileSource(writeProject(t, sampleProject))
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	upcoming, err := fs.UpcomingInspections(context.Background(), "proj-tower")
	if err != nil {
		t.Fatalf("UpcomingInspections: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != "I1" {
		t.Errorf("passed inspections must be filtered out, got %+v", upcoming)
	}
}

func TestFileSource_ProjectIDFallsBackToPath(t *testing.T) {
	path := writeProject(t, "activities: []\n")
	fs, err := NewFileSource(path)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	if fs.ProjectID() != path {
		t.Errorf("project ID = %q, want the file path", fs.ProjectID())
	}
}

func TestFileSource_MissingWeatherIsNil(t *testing.T) {
	fs, err := NewFileSource(writeProject(t, "activities: []\n"))
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	weather, err := fs.Current(context.Background(), "x")
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if weather != nil {
		t.Errorf("absent weather must be nil, got %+v", weather)
	}
}

func TestFileSource_Errors(t *testing.T) {
	if _, err := NewFileSource(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("missing file must error")
	}

	if _, err := NewFileSource(writeProject(t, "{not yaml")); err == nil {
		t.Error("malformed YAML must error")
	}
}

func TestFileSource_BundleFillsEverySlot(t *testing.T) {
	fs, err := NewFileSource(writeProject(t, sampleProject))
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	b := fs.Bundle()
	if b.Activities == nil || b.Dependencies == nil || b.Weather == nil || b.Submittals == nil || b.Inspections == nil {
		t.Error("bundle must wire the file source into every slot")
	}
}
