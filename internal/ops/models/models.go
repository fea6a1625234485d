// Package models defines the operations records: mines, the resource types
// they extract and their daily production readings.
package models

import "time"

// Mine extracts one resource type and is optionally overseen by an employee.
// Names are unique case-insensitively.
type Mine struct {
	ID           int64
	Name         string
	ResourceType string
	Latitude     float64
	Longitude    float64
	OverseerID   *int64
}

// Resource is keyed by its type name ("gold", "coal", ...). Value is the unit
// value per Metric unit, which defaults to "ton".
type Resource struct {
	Type   string
	Value  float64
	Metric string
}

// DefaultMetric is applied when a resource is created without one.
const DefaultMetric = "ton"

// Production is a single day's reading for a mine. At most one row exists per
// (mine, date).
type Production struct {
	ID         int64
	MineID     int64
	Amount     float64
	DateLogged time.Time
}

// DateOnly truncates t to date granularity in UTC, the precision production
// readings are keyed on.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
