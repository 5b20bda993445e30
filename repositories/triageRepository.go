package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type TriageRepository struct {
	baseRepository
}

func (r *TriageRepository) Create(ctx context.Context, assessment *models.TriageAssessment) error {
	assessment.ID = r.db.NextID("TR", 4)
	if err := r.db.Triages.Insert(assessment.ID, *assessment); err != nil {
		return errors.Wrap(err, "failed to create triage assessment")
	}
	r.invalidate(ctx)
	return nil
}

func (r *TriageRepository) GetByID(ctx context.Context, id string) (*models.TriageAssessment, error) {
	assessment, err := r.db.Triages.Get(id)
	if err != nil {
		return nil, err
	}
	return &assessment, nil
}
