package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type ConsultationRepository struct {
	baseRepository
}

func (r *ConsultationRepository) Create(ctx context.Context, consultation *models.Consultation) error {
	consultation.ID = r.db.NextID("CON", 4)
	if err := r.db.Consultations.Insert(consultation.ID, *consultation); err != nil {
		return errors.Wrap(err, "failed to create consultation")
	}
	r.invalidate(ctx)
	return nil
}

func (r *ConsultationRepository) GetByID(ctx context.Context, id string) (*models.Consultation, error) {
	consultation, err := r.db.Consultations.Get(id)
	if err != nil {
		return nil, err
	}
	return &consultation, nil
}

func (r *ConsultationRepository) Update(ctx context.Context, id string, fn func(*models.Consultation) error) (*models.Consultation, error) {
	consultation, err := r.db.Consultations.Update(id, fn)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &consultation, nil
}
