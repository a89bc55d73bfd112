package repository

import (
	"context"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/database"
	"github.com/theroslabs/vitals-tracker/internal/domain"
	apperrors "github.com/theroslabs/vitals-tracker/internal/errors"
	"github.com/theroslabs/vitals-tracker/internal/utils"
	"gorm.io/gorm"
)

// MeasurementRepository persists measurements in the append-only
// measurements table.
type MeasurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// Insert stores a new measurement and fills in the assigned ID and
// server-side created_at. The insert is a single statement, so a
// failure persists nothing.
func (r *MeasurementRepository) Insert(ctx context.Context, m *domain.Measurement) error {
	row := toRow(m)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return apperrors.NewDatabaseError(err)
	}
	*m = fromRow(row)
	return nil
}

// List returns measurements whose UTC calendar date falls within
// [since, until], ascending by measured_at. Rows sharing a timestamp
// are ordered by ID, which makes the documented tie-break insertion
// order. The AT TIME ZONE expression matches the functional index and
// keeps day bucketing on UTC regardless of the session TimeZone.
func (r *MeasurementRepository) List(ctx context.Context, since, until *time.Time) ([]domain.Measurement, error) {
	q := r.db.WithContext(ctx).Model(&database.Measurement{})
	if since != nil {
		q = q.Where("(measured_at AT TIME ZONE 'UTC')::date >= ?", since.Format(utils.DateLayout))
	}
	if until != nil {
		q = q.Where("(measured_at AT TIME ZONE 'UTC')::date <= ?", until.Format(utils.DateLayout))
	}

	var rows []database.Measurement
	if err := q.Order("measured_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	out := make([]domain.Measurement, len(rows))
	for i := range rows {
		out[i] = fromRow(&rows[i])
	}
	return out, nil
}

func toRow(m *domain.Measurement) *database.Measurement {
	return &database.Measurement{
		ID:              m.ID,
		MeasuredAt:      m.MeasuredAt,
		RestingHR:       m.RestingHR,
		HRV:             m.HRV,
		RespiratoryRate: m.RespiratoryRate,
		BodyTemp:        m.BodyTemp,
		SpO2:            m.SpO2,
		Notes:           m.Notes,
	}
}

func fromRow(row *database.Measurement) domain.Measurement {
	return domain.Measurement{
		ID:              row.ID,
		MeasuredAt:      row.MeasuredAt,
		RestingHR:       row.RestingHR,
		HRV:             row.HRV,
		RespiratoryRate: row.RespiratoryRate,
		BodyTemp:        row.BodyTemp,
		SpO2:            row.SpO2,
		Notes:           row.Notes,
		CreatedAt:       row.CreatedAt,
	}
}
