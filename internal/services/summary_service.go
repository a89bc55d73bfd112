package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/domain"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
	"github.com/theroslabs/vitals-tracker/internal/utils"
)

// Anomaly thresholds.
const (
	highTempThreshold = 38.0 // °C
	lowSpO2Threshold  = 94.0 // percent
)

// SummaryService derives the rolling N-day summary from the
// measurement log.
type SummaryService struct {
	repo domain.MeasurementRepository
	now  func() time.Time
}

func NewSummaryService(repo domain.MeasurementRepository) *SummaryService {
	return &SummaryService{repo: repo, now: time.Now}
}

// Compute builds the summary over the trailing days-long window ending
// today (UTC). Exactly one slot per calendar day; when several records
// share a day the last one in ascending timestamp order wins, with
// insertion order breaking timestamp ties.
func (s *SummaryService) Compute(ctx context.Context, days int) (*domain.Summary, error) {
	if days < 1 {
		return nil, apperrors.NewValidationError("days must be at least 1")
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, -(days - 1))

	records, err := s.repo.List(ctx, &cutoff, nil)
	if err != nil {
		return nil, err
	}

	// Ascending iteration overwrites on collision: last record of each
	// day wins.
	byDay := make(map[string]domain.Measurement, len(records))
	for _, m := range records {
		byDay[utils.DateOf(m.MeasuredAt)] = m
	}

	dates := make([]string, 0, days)
	series := make(map[string][]*float64, len(domain.MetricKeys))
	for _, key := range domain.MetricKeys {
		series[key] = make([]*float64, 0, days)
	}

	for i := 0; i < days; i++ {
		date := cutoff.AddDate(0, 0, i).Format(utils.DateLayout)
		dates = append(dates, date)

		m, ok := byDay[date]
		if !ok {
			for _, key := range domain.MetricKeys {
				series[key] = append(series[key], nil)
			}
			continue
		}
		series[domain.MetricRestingHR] = append(series[domain.MetricRestingHR], intToFloat(m.RestingHR))
		series[domain.MetricHRV] = append(series[domain.MetricHRV], m.HRV)
		series[domain.MetricRespiratoryRate] = append(series[domain.MetricRespiratoryRate], m.RespiratoryRate)
		series[domain.MetricBodyTemp] = append(series[domain.MetricBodyTemp], m.BodyTemp)
		series[domain.MetricSpO2] = append(series[domain.MetricSpO2], m.SpO2)
	}

	stats := make(map[string]domain.MetricStats, len(domain.MetricKeys))
	for _, key := range domain.MetricKeys {
		stats[key] = computeStats(series[key])
	}

	return &domain.Summary{
		Days:      days,
		Dates:     dates,
		Series:    series,
		Stats:     stats,
		Anomalies: detectAnomalies(dates, series),
	}, nil
}

// computeStats derives first/last/avg/change_pct/slope over one
// gap-containing metric sequence.
func computeStats(vals []*float64) domain.MetricStats {
	var stats domain.MetricStats

	for _, v := range vals {
		if v != nil {
			stats.First = ptr(*v)
			break
		}
	}
	for i := len(vals) - 1; i >= 0; i-- {
		if vals[i] != nil {
			stats.Last = ptr(*vals[i])
			break
		}
	}

	var sum float64
	var count int
	for _, v := range vals {
		if v != nil {
			sum += *v
			count++
		}
	}
	if count > 0 {
		stats.Avg = ptr(sum / float64(count))
	}

	if stats.First != nil && stats.Last != nil && *stats.First != 0 {
		stats.ChangePct = ptr((*stats.Last - *stats.First) / abs(*stats.First) * 100.0)
	}

	stats.Slope = slope(vals)
	return stats
}

// slope is the ordinary least-squares slope of value against zero-based
// day index. Gaps count as 0 in the regression, which biases the slope
// toward zero rather than imputing values. Needs at least two present
// values to mean anything; otherwise absent.
func slope(vals []*float64) *float64 {
	present := 0
	for _, v := range vals {
		if v != nil {
			present++
		}
	}
	if present < 2 {
		return nil
	}

	n := len(vals)
	var xMean, yMean float64
	for i, v := range vals {
		xMean += float64(i)
		if v != nil {
			yMean += *v
		}
	}
	xMean /= float64(n)
	yMean /= float64(n)

	var num, den float64
	for i, v := range vals {
		y := 0.0
		if v != nil {
			y = *v
		}
		num += (float64(i) - xMean) * (y - yMean)
		den += (float64(i) - xMean) * (float64(i) - xMean)
	}
	if den == 0 {
		return ptr(0.0)
	}
	return ptr(num / den)
}

// detectAnomalies evaluates the fixed clinical-style thresholds per
// day, in chronological order, temperature before oxygen.
func detectAnomalies(dates []string, series map[string][]*float64) []string {
	anomalies := []string{}
	for i, date := range dates {
		if t := series[domain.MetricBodyTemp][i]; t != nil && *t >= highTempThreshold {
			anomalies = append(anomalies, fmt.Sprintf("%s: high temp %s°C", date, formatValue(*t)))
		}
		if o := series[domain.MetricSpO2][i]; o != nil && *o < lowSpO2Threshold {
			anomalies = append(anomalies, fmt.Sprintf("%s: low SpO₂ %s%%", date, formatValue(*o)))
		}
	}
	return anomalies
}

// formatValue renders a reading with the shortest exact decimal form,
// keeping a trailing .0 on whole numbers (38.0, not 38).
func formatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}

func ptr(v float64) *float64 {
	return &v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
