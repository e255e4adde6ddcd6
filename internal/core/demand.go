package core

import (
	"sort"

	"github.com/buildvista/lookahead/pkg/models"
)

// Demand is the aggregate pull on one resource for one calendar day.
// Headcount is the estimated workers required (labor) or units required
// (equipment); Capacity is the assumed availability the detector compares
// against.
type Demand struct {
	Date        string
	ResourceKey string
	Count       int
	Headcount   int
	Capacity    int
	Equipment   bool
	Activities  []*models.Activity
}

// AggregateDemand buckets the timeline's per-day membership by resource key.
// Every activity contributes to its labor trade's bucket and to the bucket of
// each equipment category its name implies. Records come back sorted by date
// then resource key so downstream output is deterministic.
func AggregateDemand(tl *Timeline, cfg AnalysisConfig) []Demand {
	type bucketKey struct {
		date string
		key  string
	}
	buckets := make(map[bucketKey]*Demand)

	add := func(date, key string, a *models.Activity, isEquipment bool) {
		bk := bucketKey{date: date, key: key}
		d, ok := buckets[bk]
		if !ok {
			d = &Demand{Date: date, ResourceKey: key, Equipment: isEquipment}
			buckets[bk] = d
		}
		d.Count++
		d.Activities = append(d.Activities, a)
	}

	for _, date := range tl.Dates() {
		for _, a := range tl.ActivitiesOn(date) {
			add(date, ClassifyTrade(a.Name, a.Trade), a, false)
			for _, key := range EquipmentKeys(a.Name) {
				add(date, key, a, true)
			}
		}
	}

	demands := make([]Demand, 0, len(buckets))
	for _, d := range buckets {
		if d.Equipment {
			d.Headcount = d.Count
			d.Capacity = 1
		} else {
			d.Headcount = d.Count * cfg.CrewSize(d.ResourceKey)
			d.Capacity = cfg.LaborCapacity(d.ResourceKey)
		}
		demands = append(demands, *d)
	}

	sort.Slice(demands, func(i, j int) bool {
		if demands[i].Date != demands[j].Date {
			return demands[i].Date < demands[j].Date
		}
		return demands[i].ResourceKey < demands[j].ResourceKey
	})

	return demands
}
