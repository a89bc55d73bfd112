package domain

import (
	"time"
)

// Metric keys, in the fixed order the summary reports them.
const (
	MetricRestingHR       = "resting_hr"
	MetricHRV             = "hrv"
	MetricRespiratoryRate = "respiratory_rate"
	MetricBodyTemp        = "body_temp"
	MetricSpO2            = "spo2"
)

// MetricKeys lists all tracked metrics in report order.
var MetricKeys = []string{
	MetricRestingHR,
	MetricHRV,
	MetricRespiratoryRate,
	MetricBodyTemp,
	MetricSpO2,
}

// Measurement is one timestamped vitals reading. Numeric fields are
// pointers: nil means the field was absent on entry. Records are
// immutable once created.
type Measurement struct {
	ID              uint      `json:"id"`
	MeasuredAt      time.Time `json:"measured_at"`
	RestingHR       *int      `json:"resting_hr"`
	HRV             *float64  `json:"hrv"`
	RespiratoryRate *float64  `json:"respiratory_rate"`
	BodyTemp        *float64  `json:"body_temp"`
	SpO2            *float64  `json:"spo2"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// MetricStats holds the per-metric statistics over a summary window.
// A nil field means the statistic could not be computed (no data, or a
// zero first value for change_pct).
type MetricStats struct {
	First     *float64 `json:"first"`
	Last      *float64 `json:"last"`
	Avg       *float64 `json:"avg"`
	ChangePct *float64 `json:"change_pct"`
	Slope     *float64 `json:"slope"`
}

// Summary is the derived rolling view over the trailing N-day window:
// one slot per calendar day (last reading of each day wins), per-metric
// statistics and threshold anomaly flags.
type Summary struct {
	Days      int                    `json:"days"`
	Dates     []string               `json:"dates"`
	Series    map[string][]*float64  `json:"series"`
	Stats     map[string]MetricStats `json:"stats"`
	Anomalies []string               `json:"anomalies"`
}

// Insights pairs the deterministic narrative with the optional AI
// rewrite and the structured summary it was derived from.
type Insights struct {
	Deterministic string   `json:"deterministic"`
	AI            *string  `json:"ai"`
	Summary       *Summary `json:"summary"`
}
