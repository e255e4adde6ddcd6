// Package core contains the schedule analysis engine for Lookahead:
// timeline indexing, resource demand aggregation, conflict and risk
// detection, and report assembly.
package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// AnalysisConfig consolidates every heuristic the engine relies on. The crew
// size and capacity numbers are working assumptions carried over from field
// practice, not observed data; callers can override any of them.
type AnalysisConfig struct {
	// Look-ahead window length in days. Clamped to [1, MaxLookAheadDays].
	LookAheadDays int `yaml:"look_ahead_days" json:"look_ahead_days"`

	// Crew sizing and capacity assumptions.
	DefaultCrewSize          int            `yaml:"default_crew_size" json:"default_crew_size"`
	CrewSizes                map[string]int `yaml:"crew_sizes" json:"crew_sizes"`
	CapacityFactor           float64        `yaml:"capacity_factor" json:"capacity_factor"`
	HighCompetitionThreshold int            `yaml:"high_competition_threshold" json:"high_competition_threshold"`

	// Submittal / RFI review windows.
	DueSoonDays               int `yaml:"due_soon_days" json:"due_soon_days"`
	CriticalDueDays           int `yaml:"critical_due_days" json:"critical_due_days"`
	SubmittalReviewBufferDays int `yaml:"submittal_review_buffer_days" json:"submittal_review_buffer_days"`
	RFIReviewBufferDays       int `yaml:"rfi_review_buffer_days" json:"rfi_review_buffer_days"`

	// Inspection proximity.
	InspectionWindowDays         int     `yaml:"inspection_window_days" json:"inspection_window_days"`
	InspectionFailureProbability float64 `yaml:"inspection_failure_probability" json:"inspection_failure_probability"`
	InspectionImpactDays         int     `yaml:"inspection_impact_days" json:"inspection_impact_days"`

	// Weather thresholds.
	WeatherProbability float64 `yaml:"weather_probability" json:"weather_probability"`
	WindLimitMph       float64 `yaml:"wind_limit_mph" json:"wind_limit_mph"`
	MinWorkableTempF   float64 `yaml:"min_workable_temp_f" json:"min_workable_temp_f"`
	MaxWorkableTempF   float64 `yaml:"max_workable_temp_f" json:"max_workable_temp_f"`

	// Report shaping.
	MaxConflicts    int `yaml:"max_conflicts" json:"max_conflicts"`
	MaxRisks        int `yaml:"max_risks" json:"max_risks"`
	UtilizationDays int `yaml:"utilization_days" json:"utilization_days"`
}

// MaxLookAheadDays bounds the analysis window; beyond four weeks the schedule
// data is too speculative to score.
const MaxLookAheadDays = 28

// DefaultAnalysisConfig returns the engine's standard assumptions.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		LookAheadDays:            14,
		DefaultCrewSize:          4,
		CrewSizes:                map[string]int{},
		CapacityFactor:           1.5,
		HighCompetitionThreshold: 3,

		DueSoonDays:               7,
		CriticalDueDays:           3,
		SubmittalReviewBufferDays: 7,
		RFIReviewBufferDays:       5,

		InspectionWindowDays:         3,
		InspectionFailureProbability: 0.3,
		InspectionImpactDays:         3,

		WeatherProbability: 0.8,
		WindLimitMph:       25,
		MinWorkableTempF:   35,
		MaxWorkableTempF:   95,

		MaxConflicts:    10,
		MaxRisks:        8,
		UtilizationDays: 7,
	}
}

// LoadAnalysisConfig reads an optional .lookaheadrc YAML file from basePath
// and overlays it on the defaults. A missing file returns defaults.
func LoadAnalysisConfig(basePath string) (AnalysisConfig, error) {
	cfg := DefaultAnalysisConfig()

	v := viper.New()
	v.SetConfigName(".lookaheadrc")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetDefault("look_ahead_days", cfg.LookAheadDays)
	v.SetDefault("default_crew_size", cfg.DefaultCrewSize)
	v.SetDefault("capacity_factor", cfg.CapacityFactor)
	v.SetDefault("high_competition_threshold", cfg.HighCompetitionThreshold)
	v.SetDefault("due_soon_days", cfg.DueSoonDays)
	v.SetDefault("critical_due_days", cfg.CriticalDueDays)
	v.SetDefault("submittal_review_buffer_days", cfg.SubmittalReviewBufferDays)
	v.SetDefault("rfi_review_buffer_days", cfg.RFIReviewBufferDays)
	v.SetDefault("inspection_window_days", cfg.InspectionWindowDays)
	v.SetDefault("inspection_failure_probability", cfg.InspectionFailureProbability)
	v.SetDefault("inspection_impact_days", cfg.InspectionImpactDays)
	v.SetDefault("weather_probability", cfg.WeatherProbability)
	v.SetDefault("wind_limit_mph", cfg.WindLimitMph)
	v.SetDefault("min_workable_temp_f", cfg.MinWorkableTempF)
	v.SetDefault("max_workable_temp_f", cfg.MaxWorkableTempF)
	v.SetDefault("max_conflicts", cfg.MaxConflicts)
	v.SetDefault("max_risks", cfg.MaxRisks)
	v.SetDefault("utilization_days", cfg.UtilizationDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading .lookaheadrc: %w", err)
	}

	cfg.LookAheadDays = v.GetInt("look_ahead_days")
	cfg.DefaultCrewSize = v.GetInt("default_crew_size")
	cfg.CapacityFactor = v.GetFloat64("capacity_factor")
	cfg.HighCompetitionThreshold = v.GetInt("high_competition_threshold")
	cfg.DueSoonDays = v.GetInt("due_soon_days")
	cfg.CriticalDueDays = v.GetInt("critical_due_days")
	cfg.SubmittalReviewBufferDays = v.GetInt("submittal_review_buffer_days")
	cfg.RFIReviewBufferDays = v.GetInt("rfi_review_buffer_days")
	cfg.InspectionWindowDays = v.GetInt("inspection_window_days")
	cfg.InspectionFailureProbability = v.GetFloat64("inspection_failure_probability")
	cfg.InspectionImpactDays = v.GetInt("inspection_impact_days")
	cfg.WeatherProbability = v.GetFloat64("weather_probability")
	cfg.WindLimitMph = v.GetFloat64("wind_limit_mph")
	cfg.MinWorkableTempF = v.GetFloat64("min_workable_temp_f")
	cfg.MaxWorkableTempF = v.GetFloat64("max_workable_temp_f")
	cfg.MaxConflicts = v.GetInt("max_conflicts")
	cfg.MaxRisks = v.GetInt("max_risks")
	cfg.UtilizationDays = v.GetInt("utilization_days")

	// Per-trade crew size overrides.
	rawCrews := v.GetStringMap("crew_sizes")
	if len(rawCrews) > 0 {
		cfg.CrewSizes = make(map[string]int, len(rawCrews))
		for trade := range rawCrews {
			cfg.CrewSizes[canonicalTradeName(trade)] = v.GetInt("crew_sizes." + trade)
		}
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the engine cannot work with.
func (c AnalysisConfig) Validate() error {
	var errs []string

	if c.LookAheadDays < 1 || c.LookAheadDays > MaxLookAheadDays {
		errs = append(errs, fmt.Sprintf("look_ahead_days %d is invalid, must be between 1 and %d", c.LookAheadDays, MaxLookAheadDays))
	}
	if c.DefaultCrewSize < 1 {
		errs = append(errs, fmt.Sprintf("default_crew_size must be positive, got %d", c.DefaultCrewSize))
	}
	for trade, size := range c.CrewSizes {
		if size < 1 {
			errs = append(errs, fmt.Sprintf("crew_sizes[%q] must be positive, got %d", trade, size))
		}
	}
	if c.CapacityFactor <= 0 {
		errs = append(errs, fmt.Sprintf("capacity_factor must be positive, got %g", c.CapacityFactor))
	}
	if c.HighCompetitionThreshold < 2 {
		errs = append(errs, fmt.Sprintf("high_competition_threshold must be at least 2, got %d", c.HighCompetitionThreshold))
	}
	if c.DueSoonDays < 1 {
		errs = append(errs, fmt.Sprintf("due_soon_days must be positive, got %d", c.DueSoonDays))
	}
	if c.CriticalDueDays < 0 || c.CriticalDueDays > c.DueSoonDays {
		errs = append(errs, fmt.Sprintf("critical_due_days %d is invalid, must be between 0 and due_soon_days (%d)", c.CriticalDueDays, c.DueSoonDays))
	}
	if c.InspectionFailureProbability < 0 || c.InspectionFailureProbability > 1 {
		errs = append(errs, fmt.Sprintf("inspection_failure_probability %g is invalid, must be in [0, 1]", c.InspectionFailureProbability))
	}
	if c.WeatherProbability < 0 || c.WeatherProbability > 1 {
		errs = append(errs, fmt.Sprintf("weather_probability %g is invalid, must be in [0, 1]", c.WeatherProbability))
	}
	if c.MinWorkableTempF >= c.MaxWorkableTempF {
		errs = append(errs, fmt.Sprintf("min_workable_temp_f (%g) must be below max_workable_temp_f (%g)", c.MinWorkableTempF, c.MaxWorkableTempF))
	}
	if c.MaxConflicts < 1 || c.MaxRisks < 1 || c.UtilizationDays < 1 {
		errs = append(errs, "max_conflicts, max_risks, and utilization_days must all be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("analysis config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// CrewSize returns the assumed crew headcount for a resource key.
func (c AnalysisConfig) CrewSize(resourceKey string) int {
	if size, ok := c.CrewSizes[resourceKey]; ok {
		return size
	}
	return c.DefaultCrewSize
}

// LaborCapacity returns the assumed number of activities a labor resource can
// staff concurrently: crew size scaled by the capacity factor, floor 1.
func (c AnalysisConfig) LaborCapacity(resourceKey string) int {
	capacity := int(float64(c.CrewSize(resourceKey)) * c.CapacityFactor)
	if capacity < 1 {
		return 1
	}
	return capacity
}

// ClampLookAhead bounds a requested window length to the supported range,
// falling back to the configured default when the request is zero or negative.
func (c AnalysisConfig) ClampLookAhead(days int) int {
	if days <= 0 {
		days = c.LookAheadDays
	}
	if days > MaxLookAheadDays {
		return MaxLookAheadDays
	}
	if days < 1 {
		return 1
	}
	return days
}
