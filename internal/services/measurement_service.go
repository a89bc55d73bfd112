package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/domain"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
	"github.com/theroslabs/vitals-tracker/internal/utils"
)

// MeasurementInput is the loosely-typed field set accepted on insert.
// Numeric fields may arrive as JSON numbers, strings or null; anything
// that does not coerce cleanly becomes absent, never an error.
type MeasurementInput struct {
	MeasuredAt      string `json:"measured_at"`
	RestingHR       any    `json:"resting_hr"`
	HRV             any    `json:"hrv"`
	RespiratoryRate any    `json:"respiratory_rate"`
	BodyTemp        any    `json:"body_temp"`
	SpO2            any    `json:"spo2"`
	Notes           string `json:"notes"`
}

type MeasurementService struct {
	repo domain.MeasurementRepository
	now  func() time.Time
}

func NewMeasurementService(repo domain.MeasurementRepository) *MeasurementService {
	return &MeasurementService{repo: repo, now: time.Now}
}

// Add coerces the input fields and appends a measurement. measured_at
// defaults to the current UTC instant; a non-empty but unparseable
// measured_at is a validation error.
func (s *MeasurementService) Add(ctx context.Context, in MeasurementInput) (*domain.Measurement, error) {
	measuredAt := s.now().UTC()
	if in.MeasuredAt != "" {
		t, err := utils.ParseTimestamp(in.MeasuredAt)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid measured_at timestamp")
		}
		measuredAt = t
	}

	m := &domain.Measurement{
		MeasuredAt:      measuredAt,
		RestingHR:       coerceInt(in.RestingHR),
		HRV:             coerceFloat(in.HRV),
		RespiratoryRate: coerceFloat(in.RespiratoryRate),
		BodyTemp:        coerceFloat(in.BodyTemp),
		SpO2:            coerceFloat(in.SpO2),
		Notes:           in.Notes,
	}

	if err := s.repo.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns measurements whose measured_at date falls within the
// optional [since, until] calendar-date bounds, ascending.
func (s *MeasurementService) List(ctx context.Context, since, until string) ([]domain.Measurement, error) {
	var sincePtr, untilPtr *time.Time
	if since != "" {
		t, err := utils.ParseDate(since)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid since date, expected YYYY-MM-DD")
		}
		sincePtr = &t
	}
	if until != "" {
		t, err := utils.ParseDate(until)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid until date, expected YYYY-MM-DD")
		}
		untilPtr = &t
	}
	records, err := s.repo.List(ctx, sincePtr, untilPtr)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.Measurement{}
	}
	return records, nil
}

// coerceFloat turns a JSON value into an optional float. Empty
// strings, "null", nil and unparseable values all coerce to absent.
func coerceFloat(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return &x
	case int:
		f := float64(x)
		return &f
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return &f
		}
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" || trimmed == "null" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &f
		}
	}
	return nil
}

// coerceInt is coerceFloat's integer counterpart; fractional strings
// do not coerce.
func coerceInt(v any) *int {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		n := int(x)
		return &n
	case int:
		return &x
	case json.Number:
		if i, err := x.Int64(); err == nil {
			n := int(i)
			return &n
		}
	case string:
		trimmed := strings.TrimSpace(x)
		if trimmed == "" || trimmed == "null" {
			return nil
		}
		if n, err := strconv.Atoi(trimmed); err == nil {
			return &n
		}
	}
	return nil
}
