package core

import (
	"strings"

	"github.com/buildvista/lookahead/pkg/models"
)

// MitigationsFor returns the candidate actions for a risk, dispatched on its
// kind. The switch is exhaustive over models.RiskKind; adding a kind without
// a case here returns the escalation fallback, which the tests guard against.
func MitigationsFor(item *models.RiskItem) []string {
	switch item.Kind {
	case models.RiskResourceConflict:
		return []string{
			"Stagger start times across the competing activities",
			"Request an additional crew from the subcontractor",
			"Resequence non-critical work out of the conflicted day",
		}
	case models.RiskPredecessorDelay:
		return []string{
			"Expedite the predecessor with added labor or extended hours",
			"Fast-track the successor by overlapping compatible scopes",
			"Resequence the successor behind unblocked work",
		}
	case models.RiskWeather:
		return weatherMitigations(item.Description)
	case models.RiskSubmittal:
		return []string{
			"Escalate the review with the design team",
			"Request a conditional or partial approval to release procurement",
			"Identify pre-approved equivalent products",
		}
	case models.RiskInspection:
		return []string{
			"Run a pre-inspection walkthrough with the foreman",
			"Stage required documentation and test reports in advance",
			"Hold the follow-on trade until the inspection clears",
		}
	case models.RiskProcurement:
		return []string{
			"Confirm delivery dates with the supplier in writing",
			"Source an alternate supplier for long-lead items",
			"Resequence work around the late material",
		}
	default:
		return []string{"Escalate to the project manager for review"}
	}
}

// weatherMitigations picks contingency actions matching the triggering
// condition named in the risk description. The detector states the primary
// cause as "high wind", "precipitation", or "temperature extremes"; matching
// on the cause phrase keeps the numeric wind reading in the description from
// hijacking the dispatch.
func weatherMitigations(description string) []string {
	desc := strings.ToLower(description)

	actions := []string{"Monitor the forecast and hold a go/no-go call each morning"}
	switch {
	case strings.Contains(desc, "high wind"):
		actions = append(actions,
			"Suspend crane picks and secure loose materials",
			"Shift crews to interior or ground-level work")
	case containsAny(desc, precipitationTerms):
		actions = append(actions,
			"Protect open work with temporary covers and pumps",
			"Shift crews to interior scopes until conditions clear")
	default:
		actions = append(actions,
			"Adjust work hours around temperature extremes",
			"Add curing blankets or cooling measures as appropriate")
	}

	return actions
}
