package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
)

func newTestMeasurementService(repo *memRepo) *MeasurementService {
	svc := NewMeasurementService(repo)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"Nil", nil, nil},
		{"Number", 36.6, fp(36.6)},
		{"NumericString", "48.5", fp(48.5)},
		{"IntString", "14", fp(14)},
		{"EmptyString", "", nil},
		{"NullString", "null", nil},
		{"Garbage", "abc", nil},
		{"PaddedString", " 97.5 ", fp(97.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coerceFloat(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *int
	}{
		{"Nil", nil, nil},
		{"Number", float64(62), ip(62)},
		{"TruncatesFraction", 62.7, ip(62)},
		{"NumericString", "62", ip(62)},
		{"FractionalStringMisses", "62.5", nil},
		{"EmptyString", "", nil},
		{"NullString", "null", nil},
		{"Garbage", "sixty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coerceInt(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestAddAllNumericFieldsAbsent(t *testing.T) {
	repo := newMemRepo()
	svc := newTestMeasurementService(repo)

	m, err := svc.Add(context.Background(), MeasurementInput{MeasuredAt: "2025-03-18"})
	require.NoError(t, err)

	assert.NotZero(t, m.ID)
	assert.Nil(t, m.RestingHR)
	assert.Nil(t, m.HRV)
	assert.Nil(t, m.RespiratoryRate)
	assert.Nil(t, m.BodyTemp)
	assert.Nil(t, m.SpO2)

	// Retrieval returns an identical record.
	records, err := svc.List(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, *m, records[0])
}

func TestAddCoercesMixedPayload(t *testing.T) {
	repo := newMemRepo()
	svc := newTestMeasurementService(repo)

	m, err := svc.Add(context.Background(), MeasurementInput{
		MeasuredAt:      "2025-03-18T08:30",
		RestingHR:       "62",
		HRV:             48.5,
		RespiratoryRate: "not-a-number",
		BodyTemp:        "",
		SpO2:            "97.5",
		Notes:           "slept badly",
	})
	require.NoError(t, err)

	require.NotNil(t, m.RestingHR)
	assert.Equal(t, 62, *m.RestingHR)
	require.NotNil(t, m.HRV)
	assert.Equal(t, 48.5, *m.HRV)
	assert.Nil(t, m.RespiratoryRate)
	assert.Nil(t, m.BodyTemp)
	require.NotNil(t, m.SpO2)
	assert.Equal(t, 97.5, *m.SpO2)
	assert.Equal(t, "slept badly", m.Notes)
	assert.Equal(t, time.Date(2025, 3, 18, 8, 30, 0, 0, time.UTC), m.MeasuredAt)
}

func TestAddDefaultsMeasuredAtToNowUTC(t *testing.T) {
	repo := newMemRepo()
	svc := newTestMeasurementService(repo)

	m, err := svc.Add(context.Background(), MeasurementInput{})
	require.NoError(t, err)
	assert.Equal(t, testNow, m.MeasuredAt)
}

func TestAddRejectsMalformedTimestamp(t *testing.T) {
	svc := newTestMeasurementService(newMemRepo())

	_, err := svc.Add(context.Background(), MeasurementInput{MeasuredAt: "yesterday"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestListFiltersByCalendarDate(t *testing.T) {
	repo := newMemRepo()
	svc := newTestMeasurementService(repo)

	for _, day := range []string{"2025-03-14", "2025-03-16", "2025-03-18"} {
		_, err := svc.Add(context.Background(), MeasurementInput{MeasuredAt: day, HRV: "40"})
		require.NoError(t, err)
	}

	records, err := svc.List(context.Background(), "2025-03-15", "2025-03-17")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-03-16", records[0].MeasuredAt.Format("2006-01-02"))

	records, err = svc.List(context.Background(), "2025-03-16", "")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestListRejectsMalformedDateFilters(t *testing.T) {
	svc := newTestMeasurementService(newMemRepo())

	_, err := svc.List(context.Background(), "15-03-2025", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.List(context.Background(), "", "soon")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}
