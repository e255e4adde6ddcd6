package core

import (
	"time"

	"github.com/buildvista/lookahead/pkg/models"
)

// PredecessorLink pairs a direct predecessor activity with the planned lag of
// its dependency edge.
type PredecessorLink struct {
	Activity *models.Activity
	LagDays  int
}

// DependencyIndex resolves an activity's direct predecessors in O(1) average
// time. Only direct edges are inspected; no transitive closure is computed,
// because delay risk is attributed to the immediate blocking activity. Cycles
// therefore cannot cause traversal loops, they just show up as independent
// risk items on each edge.
type DependencyIndex struct {
	bySuccessor map[string][]PredecessorLink
}

// NewDependencyIndex builds the successor-keyed index in a single pass.
// Edges referencing unknown activities are dropped.
func NewDependencyIndex(deps []models.Dependency, activities []models.Activity) *DependencyIndex {
	byID := make(map[string]*models.Activity, len(activities))
	for i := range activities {
		byID[activities[i].ID] = &activities[i]
	}

	idx := &DependencyIndex{
		bySuccessor: make(map[string][]PredecessorLink),
	}
	for _, d := range deps {
		pred, ok := byID[d.PredecessorID]
		if !ok {
			continue
		}
		if _, ok := byID[d.SuccessorID]; !ok {
			continue
		}
		idx.bySuccessor[d.SuccessorID] = append(idx.bySuccessor[d.SuccessorID], PredecessorLink{
			Activity: pred,
			LagDays:  d.LagDays,
		})
	}

	return idx
}

// PredecessorsOf returns the direct predecessors of an activity, in edge
// input order.
func (idx *DependencyIndex) PredecessorsOf(activityID string) []PredecessorLink {
	return idx.bySuccessor[activityID]
}

// predecessorDelayProbability estimates how likely a predecessor is to block
// its successor: the fraction of its work still outstanding.
func predecessorDelayProbability(pred *models.Activity) float64 {
	remaining := 100 - pred.PercentComplete
	if remaining < 0 {
		remaining = 0
	}
	if remaining > 100 {
		remaining = 100
	}
	return float64(remaining) / 100
}

// predecessorDelayImpact estimates the schedule slip in days if the
// predecessor does not clear: the planned gap it consumes plus any days it is
// already late relative to today. Always at least one day.
func predecessorDelayImpact(pred, succ *models.Activity, today time.Time) int {
	gap := daysBetween(pred.End, succ.Start)
	late := daysBetween(pred.End, today)
	if late < 0 {
		late = 0
	}

	impact := gap + late
	if impact < 1 {
		impact = 1
	}
	return impact
}
