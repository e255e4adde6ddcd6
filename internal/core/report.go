package core

import (
	"math"
	"time"

	"github.com/buildvista/lookahead/pkg/models"
)

// riskScoreWeights are the per-severity contributions to the 0-100 aggregate
// score; conflicts add a flat weight each on top.
const (
	criticalWeight = 25
	highWeight     = 15
	mediumWeight   = 5
	conflictWeight = 5
	maxRiskScore   = 100
)

// BuildReport assembles the final report from detector output: attaches
// mitigations, orders and caps the lists, computes the aggregate risk score,
// and derives the utilization series. It is a pure transform with no I/O.
func BuildReport(projectID string, today time.Time, windowDays int, conflicts []models.Conflict, risks []models.RiskItem, demands []Demand, cfg AnalysisConfig, skipped []string) *models.Report {
	for i := range conflicts {
		conflicts[i].Mitigations = MitigationsFor(&conflicts[i].RiskItem)
	}
	for i := range risks {
		risks[i].Mitigations = MitigationsFor(&risks[i])
	}

	SortConflicts(conflicts)
	SortRisks(risks)

	score := riskScore(risks, len(conflicts))

	if len(conflicts) > cfg.MaxConflicts {
		conflicts = conflicts[:cfg.MaxConflicts]
	}
	if len(risks) > cfg.MaxRisks {
		risks = risks[:cfg.MaxRisks]
	}

	// Keep the JSON shape stable: empty lists, never null.
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	if risks == nil {
		risks = []models.RiskItem{}
	}

	return &models.Report{
		ProjectID:         projectID,
		Today:             DateKey(today),
		WindowDays:        windowDays,
		Conflicts:         conflicts,
		Risks:             risks,
		RiskScore:         score,
		Utilization:       utilizationSeries(demands, cfg),
		SkippedCategories: skipped,
	}
}

// riskScore folds severity counts and the conflict count into a single capped
// 0-100 number.
func riskScore(risks []models.RiskItem, conflictCount int) int {
	score := conflictCount * conflictWeight
	for i := range risks {
		switch risks[i].Severity {
		case models.SeverityCritical:
			score += criticalWeight
		case models.SeverityHigh:
			score += highWeight
		case models.SeverityMedium:
			score += mediumWeight
		}
	}

	if score > maxRiskScore {
		return maxRiskScore
	}
	return score
}

// utilizationSeries converts demand records into allocated-vs-available
// percentages for the first populated days of the window. Demands arrive
// sorted by date then resource key, so the series is deterministic.
func utilizationSeries(demands []Demand, cfg AnalysisConfig) []models.ResourceUtilization {
	series := []models.ResourceUtilization{}
	seenDates := map[string]bool{}

	for _, d := range demands {
		if !seenDates[d.Date] {
			if len(seenDates) >= cfg.UtilizationDays {
				break
			}
			seenDates[d.Date] = true
		}

		percent := 0
		if d.Capacity > 0 {
			percent = int(math.Round(float64(d.Headcount) / float64(d.Capacity) * 100))
		}

		series = append(series, models.ResourceUtilization{
			ResourceKey: d.ResourceKey,
			Date:        d.Date,
			Allocated:   d.Headcount,
			Available:   d.Capacity,
			Percent:     percent,
		})
	}

	return series
}
