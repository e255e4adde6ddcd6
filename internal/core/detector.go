package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/buildvista/lookahead/pkg/models"
)

// Detector applies the independent risk rules and emits typed risk and
// conflict records. Each rule is a union member: any rule that fires adds to
// the output, none suppresses another.
type Detector struct {
	cfg AnalysisConfig
}

// NewDetector creates a Detector with the given assumptions.
func NewDetector(cfg AnalysisConfig) *Detector {
	return &Detector{cfg: cfg}
}

// severityFor is the single source of truth mapping probability x impact to a
// severity level. Rules that hard-code severity bypass it deliberately; all
// cross-rule ranking depends on this function staying consistent.
func (d *Detector) severityFor(probability float64, impactDays int) models.Severity {
	score := probability * float64(impactDays)
	switch {
	case score >= 15 || impactDays >= 10:
		return models.SeverityCritical
	case score >= 8 || impactDays >= 5:
		return models.SeverityHigh
	case score >= 3 || impactDays >= 2:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}

// DetectResourceConflicts compares each demand record against its assumed
// capacity. Labor overloads are high severity once the competing activity
// count reaches the configured threshold; crane-class equipment conflicts are
// always at least high.
func (d *Detector) DetectResourceConflicts(demands []Demand) []models.Conflict {
	var conflicts []models.Conflict

	for _, dm := range demands {
		if dm.Headcount <= dm.Capacity {
			continue
		}

		severity := models.SeverityMedium
		if dm.Count >= d.cfg.HighCompetitionThreshold {
			severity = models.SeverityHigh
		}
		if dm.Equipment && IsCraneClass(dm.ResourceKey) && severity.Rank() < models.SeverityHigh.Rank() {
			severity = models.SeverityHigh
		}

		refs := make([]models.ActivityRef, len(dm.Activities))
		names := make([]string, len(dm.Activities))
		impact := 1
		for i, a := range dm.Activities {
			refs[i] = a.Ref()
			names[i] = a.Name
			if a.IsCritical {
				impact = 2
			}
		}

		noun := "workers"
		if dm.Equipment {
			noun = "units"
		}

		conflicts = append(conflicts, models.Conflict{
			RiskItem: models.RiskItem{
				SubjectID:   dm.ResourceKey,
				SubjectName: dm.ResourceKey,
				Kind:        models.RiskResourceConflict,
				Severity:    severity,
				Probability: 0.7,
				ImpactDays:  impact,
				Description: fmt.Sprintf("%d activities compete for %s on %s (%d %s needed, %d assumed available): %s",
					dm.Count, dm.ResourceKey, dm.Date, dm.Headcount, noun, dm.Capacity, strings.Join(names, ", ")),
			},
			ResourceKey:        dm.ResourceKey,
			Date:               dm.Date,
			ActivitiesAffected: refs,
		})
	}

	return conflicts
}

// DetectPredecessorDelays emits a risk for every activity whose direct
// predecessor has not cleared before the activity must start. Risk is pinned
// to the immediate blocking edge only.
func (d *Detector) DetectPredecessorDelays(idx *DependencyIndex, activities []models.Activity, today time.Time) []models.RiskItem {
	var risks []models.RiskItem

	for i := range activities {
		a := &activities[i]
		if a.Status == models.StatusCompleted {
			continue
		}

		for _, link := range idx.PredecessorsOf(a.ID) {
			pred := link.Activity
			if pred.Status == models.StatusCompleted {
				continue
			}

			// Planned finish, shifted by the edge lag, must clear before the
			// successor starts.
			effectiveEnd := truncateToDay(pred.End).AddDate(0, 0, link.LagDays)
			if effectiveEnd.Before(truncateToDay(a.Start)) {
				continue
			}

			probability := predecessorDelayProbability(pred)
			impact := predecessorDelayImpact(pred, a, today)

			// Unfinished predecessor work directly stalls the successor, so
			// the rule floors severity at high, critical when the successor
			// is on the critical path.
			severity := d.severityFor(probability, impact)
			if severity.Rank() < models.SeverityHigh.Rank() {
				severity = models.SeverityHigh
			}
			if a.IsCritical && severity.Rank() < models.SeverityCritical.Rank() {
				severity = models.SeverityCritical
			}

			risks = append(risks, models.RiskItem{
				SubjectID:   a.ID,
				SubjectName: a.Name,
				Kind:        models.RiskPredecessorDelay,
				Severity:    severity,
				Probability: probability,
				ImpactDays:  impact,
				Description: fmt.Sprintf("%q cannot start %s: predecessor %q is %d%% complete with planned finish %s",
					a.Name, DateKey(a.Start), pred.Name, pred.PercentComplete, DateKey(pred.End)),
			})
		}
	}

	return risks
}

// precipitationTerms flag a weather description as inclement.
var precipitationTerms = []string{"rain", "snow", "sleet", "hail", "storm", "shower", "drizzle", "thunder"}

// severeWeatherTerms escalate a weather risk to critical.
var severeWeatherTerms = []string{"storm", "lightning", "thunder", "tornado", "hurricane"}

// DetectWeatherRisks flags weather-sensitive activities in the window when
// current conditions are inclement. A nil conditions value means no data and
// produces no risks.
func (d *Detector) DetectWeatherRisks(conditions *models.WeatherConditions, tl *Timeline) []models.RiskItem {
	if conditions == nil {
		return nil
	}

	desc := strings.ToLower(conditions.Description)
	inclement := containsAny(desc, precipitationTerms) ||
		conditions.WindMph > d.cfg.WindLimitMph ||
		conditions.TemperatureF < d.cfg.MinWorkableTempF ||
		conditions.TemperatureF > d.cfg.MaxWorkableTempF
	if !inclement {
		return nil
	}

	severity := models.SeverityMedium
	if containsAny(desc, severeWeatherTerms) {
		severity = models.SeverityCritical
	}

	// The primary cause drives mitigation dispatch downstream; wind takes
	// precedence because it suspends crane work outright.
	cause := "temperature extremes"
	switch {
	case conditions.WindMph > d.cfg.WindLimitMph:
		cause = "high wind"
	case containsAny(desc, precipitationTerms):
		cause = "precipitation"
	}

	var risks []models.RiskItem
	for _, a := range tl.Activities() {
		trade := ClassifyTrade(a.Name, a.Trade)
		if !IsWeatherSensitive(trade) {
			continue
		}

		risks = append(risks, models.RiskItem{
			SubjectID:   a.ID,
			SubjectName: a.Name,
			Kind:        models.RiskWeather,
			Severity:    severity,
			Probability: d.cfg.WeatherProbability,
			ImpactDays:  1,
			Description: fmt.Sprintf("%s work %q exposed to %s: %s (%.0f°F, %.0f mph)",
				trade, a.Name, cause, conditions.Description, conditions.TemperatureF, conditions.WindMph),
		})
	}

	return risks
}

// DetectSubmittalRisks flags pending submittals and RFIs whose required date
// falls within the due-soon window, including items already overdue. Impact
// is the remaining days plus the fixed review buffer for the item kind.
func (d *Detector) DetectSubmittalRisks(submittals []models.Submittal, today time.Time) []models.RiskItem {
	var risks []models.RiskItem

	for i := range submittals {
		s := &submittals[i]
		daysRemaining := daysBetween(today, s.RequiredDate)
		if daysRemaining > d.cfg.DueSoonDays {
			continue
		}

		severity := models.SeverityHigh
		if daysRemaining <= d.cfg.CriticalDueDays {
			severity = models.SeverityCritical
		}

		buffer := d.cfg.SubmittalReviewBufferDays
		label := "submittal"
		if s.Kind == models.SubmittalRFI {
			buffer = d.cfg.RFIReviewBufferDays
			label = "RFI"
		}

		impact := daysRemaining + buffer
		if impact < 1 {
			impact = 1
		}

		var due string
		switch {
		case daysRemaining < 0:
			due = fmt.Sprintf("overdue by %d day(s)", -daysRemaining)
		case daysRemaining == 0:
			due = "due today"
		default:
			due = fmt.Sprintf("due in %d day(s)", daysRemaining)
		}

		risks = append(risks, models.RiskItem{
			SubjectID:   s.ID,
			SubjectName: s.Title,
			Kind:        models.RiskSubmittal,
			Severity:    severity,
			Probability: 0.6,
			ImpactDays:  impact,
			Description: fmt.Sprintf("%s %q is %s (required %s)", label, s.Title, due, DateKey(s.RequiredDate)),
		})
	}

	return risks
}

// DetectInspectionRisks flags inspections scheduled within the proximity
// window. Probability models the chance of a failed inspection forcing
// rework and re-inspection; severity comes from the shared function.
func (d *Detector) DetectInspectionRisks(inspections []models.Inspection, today time.Time) []models.RiskItem {
	var risks []models.RiskItem

	for i := range inspections {
		insp := &inspections[i]
		daysUntil := daysBetween(today, insp.ScheduledDate)
		if daysUntil < 0 || daysUntil > d.cfg.InspectionWindowDays {
			continue
		}

		probability := d.cfg.InspectionFailureProbability
		impact := d.cfg.InspectionImpactDays

		risks = append(risks, models.RiskItem{
			SubjectID:   insp.ID,
			SubjectName: insp.Type,
			Kind:        models.RiskInspection,
			Severity:    d.severityFor(probability, impact),
			Probability: probability,
			ImpactDays:  impact,
			Description: fmt.Sprintf("%s inspection scheduled %s; a failure would trigger rework and re-inspection",
				insp.Type, DateKey(insp.ScheduledDate)),
		})
	}

	return risks
}

// SortRisks orders risks by severity (critical first) then impact descending.
// The sort is stable so equal items keep input order and output stays
// deterministic.
func SortRisks(risks []models.RiskItem) {
	sort.SliceStable(risks, func(i, j int) bool {
		if risks[i].Severity.Rank() != risks[j].Severity.Rank() {
			return risks[i].Severity.Rank() > risks[j].Severity.Rank()
		}
		return risks[i].ImpactDays > risks[j].ImpactDays
	})
}

// SortConflicts applies the same ordering to conflict records.
func SortConflicts(conflicts []models.Conflict) {
	sort.SliceStable(conflicts, func(i, j int) bool {
		if conflicts[i].Severity.Rank() != conflicts[j].Severity.Rank() {
			return conflicts[i].Severity.Rank() > conflicts[j].Severity.Rank()
		}
		return conflicts[i].ImpactDays > conflicts[j].ImpactDays
	})
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
