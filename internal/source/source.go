// Package source defines the read-only contracts for the external
// collaborators feeding one analysis run: the schedule, dependency edges,
// weather, submittals/RFIs, and inspections. The engine fetches each snapshot
// once per run and treats it as immutable.
package source

import (
	"context"

	"github.com/buildvista/lookahead/pkg/models"
)

// ActivitySource supplies the schedule activities overlapping the look-ahead
// window.
type ActivitySource interface {
	Activities(ctx context.Context, projectID string) ([]models.Activity, error)
}

// DependencySource supplies the predecessor -> successor edges for a project.
type DependencySource interface {
	Dependencies(ctx context.Context, projectID string) ([]models.Dependency, error)
}

// WeatherSource supplies current site conditions. A nil result with a nil
// error means no data, which is a valid response rather than a failure.
type WeatherSource interface {
	Current(ctx context.Context, projectID string) (*models.WeatherConditions, error)
}

// SubmittalSource supplies pending submittals and RFIs, pre-filtered to
// pending-like statuses.
type SubmittalSource interface {
	PendingSubmittals(ctx context.Context, projectID string) ([]models.Submittal, error)
}

// InspectionSource supplies upcoming inspections, pre-filtered to scheduled
// or pending status.
type InspectionSource interface {
	UpcomingInspections(ctx context.Context, projectID string) ([]models.Inspection, error)
}

// Bundle groups one implementation of every source for wiring convenience.
// Any field may be nil; the analyzer treats a nil source as an empty
// category.
type Bundle struct {
	Activities   ActivitySource
	Dependencies DependencySource
	Weather      WeatherSource
	Submittals   SubmittalSource
	Inspections  InspectionSource
}
