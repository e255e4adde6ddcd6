package models

import "time"

// WeatherConditions is a snapshot of current site conditions from the
// external weather provider. A nil value means "no data", which is a valid
// response rather than an error.
type WeatherConditions struct {
	Description  string  `yaml:"description" json:"description"`
	TemperatureF float64 `yaml:"temperature_f" json:"temperature_f"`
	WindMph      float64 `yaml:"wind_mph" json:"wind_mph"`
}

// SubmittalKind distinguishes submittals from RFIs; the two share a review
// pipeline but carry different review buffers.
type SubmittalKind string

const (
	SubmittalDocument SubmittalKind = "submittal"
	SubmittalRFI      SubmittalKind = "rfi"
)

// Submittal is a pending submittal or RFI with a required response date.
type Submittal struct {
	ID           string        `yaml:"id" json:"id"`
	Title        string        `yaml:"title" json:"title"`
	Kind         SubmittalKind `yaml:"kind" json:"kind"`
	Status       string        `yaml:"status" json:"status"`
	RequiredDate time.Time     `yaml:"required_date" json:"required_date"`
}

// Inspection is a scheduled or pending site inspection.
type Inspection struct {
	ID            string    `yaml:"id" json:"id"`
	Type          string    `yaml:"type" json:"type"`
	ScheduledDate time.Time `yaml:"scheduled_date" json:"scheduled_date"`
	Status        string    `yaml:"status" json:"status"`
}
