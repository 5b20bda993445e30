package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type CaseRepository struct {
	baseRepository
}

// Create assigns the next C-#### ID and stores the case.
func (r *CaseRepository) Create(ctx context.Context, record *models.CaseRecord) error {
	record.ID = r.db.NextID("C", 4)
	if err := r.db.Cases.Insert(record.ID, *record); err != nil {
		return errors.Wrap(err, "failed to create case")
	}
	r.invalidate(ctx)
	return nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*models.CaseRecord, error) {
	record, err := r.db.Cases.Get(id)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Update runs fn under the table lock; nothing is stored when fn fails.
func (r *CaseRepository) Update(ctx context.Context, id string, fn func(*models.CaseRecord) error) (*models.CaseRecord, error) {
	record, err := r.db.Cases.Update(id, fn)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &record, nil
}

func (r *CaseRepository) List(ctx context.Context) []models.CaseRecord {
	return r.db.Cases.List()
}

func (r *CaseRepository) Find(ctx context.Context, pred func(models.CaseRecord) bool) []models.CaseRecord {
	return r.db.Cases.Find(pred)
}

// FindByStage returns the open cases currently in stage.
func (r *CaseRepository) FindByStage(ctx context.Context, stage models.Stage) []models.CaseRecord {
	return r.db.Cases.Find(func(c models.CaseRecord) bool {
		return c.Stage == stage && c.Status != models.StatusCancelled
	})
}
