package models

// RiskKind identifies the source of a detected schedule risk.
type RiskKind string

const (
	RiskPredecessorDelay RiskKind = "predecessor_delay"
	RiskResourceConflict RiskKind = "resource_conflict"
	RiskWeather          RiskKind = "weather"
	RiskInspection       RiskKind = "inspection"
	RiskSubmittal        RiskKind = "submittal"
	RiskProcurement      RiskKind = "procurement"
)

// String returns the string representation of the risk kind.
func (k RiskKind) String() string {
	return string(k)
}

// IsValid returns true if the risk kind is a known value.
func (k RiskKind) IsValid() bool {
	switch k {
	case RiskPredecessorDelay, RiskResourceConflict, RiskWeather,
		RiskInspection, RiskSubmittal, RiskProcurement:
		return true
	default:
		return false
	}
}

// Severity is the four-level classification of a risk, always derived from
// probability and impact, never supplied by callers.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid returns true if the severity is a known value.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// Rank returns a numeric rank for ordering, critical highest.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 0
	default:
		return -1
	}
}

// RiskItem is one detected threat to the schedule.
type RiskItem struct {
	SubjectID   string   `yaml:"subject_id" json:"subject_id"`
	SubjectName string   `yaml:"subject_name" json:"subject_name"`
	Kind        RiskKind `yaml:"kind" json:"kind"`
	Severity    Severity `yaml:"severity" json:"severity"`
	Probability float64  `yaml:"probability" json:"probability"`
	ImpactDays  int      `yaml:"impact_days" json:"impact_days"`
	Description string   `yaml:"description" json:"description"`
	Mitigations []string `yaml:"mitigations" json:"mitigations"`
}

// Conflict is a RiskItem arising from demand exceeding assumed capacity for
// one resource on one calendar day.
type Conflict struct {
	RiskItem           `yaml:",inline" json:",inline"`
	ResourceKey        string        `yaml:"resource_key" json:"resource_key"`
	Date               string        `yaml:"date" json:"date"`
	ActivitiesAffected []ActivityRef `yaml:"activities_affected" json:"activities_affected"`
}

// ResourceUtilization is one point of the per-resource, per-day allocation
// series: estimated headcount allocated against assumed availability.
type ResourceUtilization struct {
	ResourceKey string `yaml:"resource_key" json:"resource_key"`
	Date        string `yaml:"date" json:"date"`
	Allocated   int    `yaml:"allocated" json:"allocated"`
	Available   int    `yaml:"available" json:"available"`
	Percent     int    `yaml:"percent" json:"percent"`
}

// Report is the full output of one analysis run. It is a stateless value,
// rebuilt from scratch on every invocation and never persisted by the engine.
type Report struct {
	ProjectID         string                `yaml:"project_id" json:"project_id"`
	Today             string                `yaml:"today" json:"today"`
	WindowDays        int                   `yaml:"window_days" json:"window_days"`
	Conflicts         []Conflict            `yaml:"conflicts" json:"conflicts"`
	Risks             []RiskItem            `yaml:"risks" json:"risks"`
	RiskScore         int                   `yaml:"risk_score" json:"risk_score"`
	Utilization       []ResourceUtilization `yaml:"utilization" json:"utilization"`
	SkippedCategories []string              `yaml:"skipped_categories,omitempty" json:"skipped_categories,omitempty"`
}
