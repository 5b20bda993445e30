package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type PrescriptionRepository struct {
	baseRepository
}

func (r *PrescriptionRepository) Create(ctx context.Context, prescription *models.Prescription) error {
	prescription.ID = r.db.NextID("RX", 4)
	if err := r.db.Prescriptions.Insert(prescription.ID, *prescription); err != nil {
		return errors.Wrap(err, "failed to create prescription")
	}
	r.invalidate(ctx)
	return nil
}

func (r *PrescriptionRepository) GetByID(ctx context.Context, id string) (*models.Prescription, error) {
	prescription, err := r.db.Prescriptions.Get(id)
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *PrescriptionRepository) Update(ctx context.Context, id string, fn func(*models.Prescription) error) (*models.Prescription, error) {
	prescription, err := r.db.Prescriptions.Update(id, fn)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &prescription, nil
}

func (r *PrescriptionRepository) List(ctx context.Context) []models.Prescription {
	return r.db.Prescriptions.List()
}
