package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type PatientRepository struct {
	baseRepository
}

// Create assigns the next P-#### ID and stores the patient.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	patient.ID = r.db.NextID("P", 4)
	if err := r.db.Patients.Insert(patient.ID, *patient); err != nil {
		return errors.Wrap(err, "failed to create patient")
	}
	r.invalidate(ctx)
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	patient, err := r.db.Patients.Get(id)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *PatientRepository) Update(ctx context.Context, id string, fn func(*models.Patient) error) (*models.Patient, error) {
	patient, err := r.db.Patients.Update(id, fn)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &patient, nil
}

func (r *PatientRepository) List(ctx context.Context) []models.Patient {
	return r.db.Patients.List()
}

// FindByPalmDigest returns the enrolled patient whose template equals digest.
func (r *PatientRepository) FindByPalmDigest(ctx context.Context, digest string) (*models.Patient, error) {
	matches := r.db.Patients.Find(func(p models.Patient) bool {
		return p.PalmEnrolled && p.PalmDigest == digest
	})
	if len(matches) == 0 {
		return nil, errors.Wrap(models.ErrRecordNotFound, "no patient matches the palm sample")
	}
	return &matches[0], nil
}

func (r *PatientRepository) Count(ctx context.Context) int {
	return r.db.Patients.Len()
}
