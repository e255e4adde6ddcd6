package core

import (
	"testing"

	"github.com/buildvista/lookahead/pkg/models"
)

func TestRiskScore(t *testing.T) {
	tests := []struct {
		name          string
		risks         []models.RiskItem
		conflictCount int
		want          int
	}{
		{"empty", nil, 0, 0},
		{"one critical", []models.RiskItem{{Severity: models.SeverityCritical}}, 0, 25},
		{"one high", []models.RiskItem{{Severity: models.SeverityHigh}}, 0, 15},
		{"one medium", []models.RiskItem{{Severity: models.SeverityMedium}}, 0, 5},
		{"low does not count", []models.RiskItem{{Severity: models.SeverityLow}}, 0, 0},
		{"conflicts only", nil, 3, 15},
		{
			"mixed",
			[]models.RiskItem{
				{Severity: models.SeverityCritical},
				{Severity: models.SeverityHigh},
				{Severity: models.SeverityMedium},
			},
			2,
			55,
		},
		{
			"capped at hundred",
			[]models.RiskItem{
				{Severity: models.SeverityCritical},
				{Severity: models.SeverityCritical},
				{Severity: models.SeverityCritical},
				{Severity: models.SeverityCritical},
				{Severity: models.SeverityCritical},
			},
			0,
			100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := riskScore(tt.risks, tt.conflictCount); got != tt.want {
				t.Errorf("riskScore = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildReport_ScoreCountsBeyondCaps(t *testing.T) {
	// Ten high risks overflow the report cap, but every one of them counts
	// toward the score.
	cfg := DefaultAnalysisConfig()
	risks := make([]models.RiskItem, 10)
	for i := range risks {
		risks[i] = models.RiskItem{
			SubjectID: "R",
			Kind:      models.RiskWeather,
			Severity:  models.SeverityHigh,
		}
	}

	report := BuildReport("proj", day(2024, 6, 10), 14, nil, risks, nil, cfg, nil)

	if len(report.Risks) != cfg.MaxRisks {
		t.Errorf("report carries %d risks, want cap of %d", len(report.Risks), cfg.MaxRisks)
	}
	if report.RiskScore != 100 {
		t.Errorf("risk score = %d, want 100 from all ten high risks", report.RiskScore)
	}
}

func TestBuildReport_CapsConflicts(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	conflicts := make([]models.Conflict, 15)
	for i := range conflicts {
		conflicts[i] = models.Conflict{
			RiskItem:    models.RiskItem{Kind: models.RiskResourceConflict, Severity: models.SeverityMedium},
			ResourceKey: "Concrete",
		}
	}

	report := BuildReport("proj", day(2024, 6, 10), 14, conflicts, nil, nil, cfg, nil)

	if len(report.Conflicts) != cfg.MaxConflicts {
		t.Errorf("report carries %d conflicts, want cap of %d", len(report.Conflicts), cfg.MaxConflicts)
	}
	// 15 conflicts x 5 = 75, counted before the cap.
	if report.RiskScore != 75 {
		t.Errorf("risk score = %d, want 75", report.RiskScore)
	}
}

func TestBuildReport_OrdersBySeverity(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	risks := []models.RiskItem{
		{SubjectID: "med", Kind: models.RiskInspection, Severity: models.SeverityMedium, ImpactDays: 3},
		{SubjectID: "crit", Kind: models.RiskSubmittal, Severity: models.SeverityCritical, ImpactDays: 2},
		{SubjectID: "high", Kind: models.RiskPredecessorDelay, Severity: models.SeverityHigh, ImpactDays: 5},
	}

	report := BuildReport("proj", day(2024, 6, 10), 14, nil, risks, nil, cfg, nil)

	want := []string{"crit", "high", "med"}
	for i, id := range want {
		if report.Risks[i].SubjectID != id {
			t.Errorf("risks[%d] = %s, want %s", i, report.Risks[i].SubjectID, id)
		}
	}
}

func TestBuildReport_AttachesMitigations(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	risks := []models.RiskItem{
		{SubjectID: "A", Kind: models.RiskPredecessorDelay, Severity: models.SeverityHigh},
	}
	conflicts := []models.Conflict{
		{RiskItem: models.RiskItem{Kind: models.RiskResourceConflict, Severity: models.SeverityMedium}, ResourceKey: "Crane"},
	}

	report := BuildReport("proj", day(2024, 6, 10), 14, conflicts, risks, nil, cfg, nil)

	if len(report.Risks[0].Mitigations) == 0 {
		t.Error("every reported risk must carry mitigations")
	}
	if len(report.Conflicts[0].Mitigations) == 0 {
		t.Error("every reported conflict must carry mitigations")
	}
}

func TestBuildReport_EmptyInputs(t *testing.T) {
	cfg := DefaultAnalysisConfig()

	report := BuildReport("proj", day(2024, 6, 10), 14, nil, nil, nil, cfg, nil)

	if report.RiskScore != 0 {
		t.Errorf("risk score = %d, want 0 for a clean schedule", report.RiskScore)
	}
	if report.Conflicts == nil || report.Risks == nil {
		t.Error("lists must be empty, never nil, for stable JSON")
	}
	if len(report.Conflicts) != 0 || len(report.Risks) != 0 {
		t.Error("expected empty lists")
	}
	if report.Today != "2024-06-10" {
		t.Errorf("today = %q, want 2024-06-10", report.Today)
	}
	if report.WindowDays != 14 {
		t.Errorf("window days = %d, want 14", report.WindowDays)
	}
}

func TestUtilizationSeries(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	demands := []Demand{
		{Date: "2024-06-10", ResourceKey: "Concrete", Headcount: 8, Capacity: 6},
		{Date: "2024-06-10", ResourceKey: "Electrical", Headcount: 4, Capacity: 6},
		{Date: "2024-06-11", ResourceKey: "Concrete", Headcount: 4, Capacity: 6},
	}

	series := utilizationSeries(demands, cfg)

	if len(series) != 3 {
		t.Fatalf("expected 3 utilization records, got %d", len(series))
	}
	// 8 of 6 rounds to 133 percent.
	if series[0].Percent != 133 {
		t.Errorf("percent = %d, want 133", series[0].Percent)
	}
	if series[1].Percent != 67 {
		t.Errorf("percent = %d, want 67", series[1].Percent)
	}
	if series[0].ResourceKey != "Concrete" || series[0].Date != "2024-06-10" {
		t.Errorf("unexpected first record %+v", series[0])
	}
}

func TestUtilizationSeries_LimitsDays(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	cfg.UtilizationDays = 2

	demands := []Demand{
		{Date: "2024-06-10", ResourceKey: "Concrete", Headcount: 4, Capacity: 6},
		{Date: "2024-06-11", ResourceKey: "Concrete", Headcount: 4, Capacity: 6},
		{Date: "2024-06-12", ResourceKey: "Concrete", Headcount: 4, Capacity: 6},
	}

	series := utilizationSeries(demands, cfg)

	if len(series) != 2 {
		t.Fatalf("expected series limited to 2 days, got %d records", len(series))
	}
	for _, u := range series {
		if u.Date == "2024-06-12" {
			t.Error("third day must be excluded from the series")
		}
	}
}

func TestUtilizationSeries_ZeroCapacity(t *testing.T) {
	series := utilizationSeries([]Demand{
		{Date: "2024-06-10", ResourceKey: "Concrete", Headcount: 4, Capacity: 0},
	}, DefaultAnalysisConfig())

	if len(series) != 1 || series[0].Percent != 0 {
		t.Errorf("zero capacity must yield 0 percent, got %+v", series)
	}
}
