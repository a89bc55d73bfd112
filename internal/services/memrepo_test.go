package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/theroslabs/vitals-tracker/internal/domain"
	"github.com/theroslabs/vitals-tracker/internal/utils"
)

// memRepo is an in-memory MeasurementRepository with the same ordering
// contract as the postgres repository: measured_at ascending, insertion
// order breaking ties.
type memRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   []domain.Measurement
}

func newMemRepo() *memRepo {
	return &memRepo{}
}

func (r *memRepo) Insert(_ context.Context, m *domain.Measurement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	m.CreatedAt = time.Now().UTC()
	r.rows = append(r.rows, *m)
	return nil
}

func (r *memRepo) List(_ context.Context, since, until *time.Time) ([]domain.Measurement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Measurement
	for _, m := range r.rows {
		date := utils.DateOf(m.MeasuredAt)
		if since != nil && date < since.Format(utils.DateLayout) {
			continue
		}
		if until != nil && date > until.Format(utils.DateLayout) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MeasuredAt.Before(out[j].MeasuredAt)
	})
	return out, nil
}
