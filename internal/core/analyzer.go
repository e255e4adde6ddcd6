package core

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/buildvista/lookahead/internal/source"
	"github.com/buildvista/lookahead/pkg/models"
)

// Options selects which risk categories one analysis run evaluates and how
// far ahead it looks. A zero LookAheadDays uses the configured default.
type Options struct {
	LookAheadDays            int
	IncludeWeather           bool
	IncludeResourceConflicts bool
}

// DefaultOptions enables every category over the configured default window.
func DefaultOptions() Options {
	return Options{
		IncludeWeather:           true,
		IncludeResourceConflicts: true,
	}
}

// Analyzer runs one full schedule risk analysis per invocation. Each run
// fetches its input snapshots once, concurrently, then computes the report in
// a single pure pass. Runs share no mutable state, so concurrent analyses
// need no coordination.
type Analyzer struct {
	cfg     AnalysisConfig
	sources source.Bundle

	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewAnalyzer creates an Analyzer over the given collaborator sources.
func NewAnalyzer(cfg AnalysisConfig, sources source.Bundle) *Analyzer {
	return &Analyzer{
		cfg:     cfg,
		sources: sources,
		now:     time.Now,
	}
}

// WithClock overrides the analyzer's notion of "today". Intended for tests.
func (an *Analyzer) WithClock(now func() time.Time) *Analyzer {
	an.now = now
	return an
}

// snapshot holds the immutable inputs of one run plus the categories that
// could not be fetched.
type snapshot struct {
	activities   []models.Activity
	dependencies []models.Dependency
	weather      *models.WeatherConditions
	submittals   []models.Submittal
	inspections  []models.Inspection

	mu      sync.Mutex
	skipped []string
}

func (s *snapshot) skip(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped = append(s.skipped, category)
}

// Analyze computes one Report. A collaborator failure degrades that category
// to empty and is recorded on the report; it never aborts the run. The only
// returned error is context cancellation during the fetch phase.
func (an *Analyzer) Analyze(ctx context.Context, projectID string, opts Options) (*models.Report, error) {
	days := an.cfg.ClampLookAhead(opts.LookAheadDays)
	today := truncateToDay(an.now())

	snap := an.fetch(ctx, projectID, opts)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Everything past this point is pure and synchronous.
	tl := BuildTimeline(snap.activities, today, days)
	demands := AggregateDemand(tl, an.cfg)
	detector := NewDetector(an.cfg)

	var conflicts []models.Conflict
	if opts.IncludeResourceConflicts {
		conflicts = detector.DetectResourceConflicts(demands)
	}

	depIndex := NewDependencyIndex(snap.dependencies, snap.activities)
	risks := detector.DetectPredecessorDelays(depIndex, snap.activities, today)

	if opts.IncludeWeather {
		risks = append(risks, detector.DetectWeatherRisks(snap.weather, tl)...)
	}
	risks = append(risks, detector.DetectSubmittalRisks(snap.submittals, today)...)
	risks = append(risks, detector.DetectInspectionRisks(snap.inspections, today)...)

	sort.Strings(snap.skipped)

	return BuildReport(projectID, today, days, conflicts, risks, demands, an.cfg, snap.skipped), nil
}

// fetch pulls every input snapshot concurrently. The fetches are independent
// of one another, so order does not matter; a failed or missing source marks
// its category skipped and leaves it empty.
func (an *Analyzer) fetch(ctx context.Context, projectID string, opts Options) *snapshot {
	snap := &snapshot{}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if an.sources.Activities == nil {
			snap.skip("activities")
			return
		}
		activities, err := an.sources.Activities.Activities(ctx, projectID)
		if err != nil {
			snap.skip("activities")
			return
		}
		snap.activities = activities
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if an.sources.Dependencies == nil {
			snap.skip("dependencies")
			return
		}
		deps, err := an.sources.Dependencies.Dependencies(ctx, projectID)
		if err != nil {
			snap.skip("dependencies")
			return
		}
		snap.dependencies = deps
	}()

	if opts.IncludeWeather {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if an.sources.Weather == nil {
				snap.skip("weather")
				return
			}
			conditions, err := an.sources.Weather.Current(ctx, projectID)
			if err != nil {
				snap.skip("weather")
				return
			}
			snap.weather = conditions
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if an.sources.Submittals == nil {
			snap.skip("submittals")
			return
		}
		submittals, err := an.sources.Submittals.PendingSubmittals(ctx, projectID)
		if err != nil {
			snap.skip("submittals")
			return
		}
		snap.submittals = submittals
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if an.sources.Inspections == nil {
			snap.skip("inspections")
			return
		}
		inspections, err := an.sources.Inspections.UpcomingInspections(ctx, projectID)
		if err != nil {
			snap.skip("inspections")
			return
		}
		snap.inspections = inspections
	}()

	wg.Wait()
	return snap
}
