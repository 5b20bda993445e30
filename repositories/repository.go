package repositories

import (
	"context"

	"PalmCare/cache"
	"PalmCare/database"

	"github.com/rs/zerolog"
)

// Repositories bundles every table repository over one store.
type Repositories struct {
	Patients      *PatientRepository
	Cases         *CaseRepository
	Triages       *TriageRepository
	Consultations *ConsultationRepository
	LabOrders     *LabOrderRepository
	Prescriptions *PrescriptionRepository
	Inventory     *InventoryRepository
	Billing       *BillingRepository
	Notifications *NotificationRepository
}

func NewRepositories(db *database.DB, cache *cache.Cache, log zerolog.Logger) *Repositories {
	base := baseRepository{db: db, cache: cache, log: log}
	return &Repositories{
		Patients:      &PatientRepository{base},
		Cases:         &CaseRepository{base},
		Triages:       &TriageRepository{base},
		Consultations: &ConsultationRepository{base},
		LabOrders:     &LabOrderRepository{base},
		Prescriptions: &PrescriptionRepository{base},
		Inventory:     &InventoryRepository{base},
		Billing:       &BillingRepository{base},
		Notifications: &NotificationRepository{base},
	}
}

type baseRepository struct {
	db    *database.DB
	cache *cache.Cache
	log   zerolog.Logger
}

// invalidate drops the cached aggregates after a write. A cache failure
// never fails the write; stale entries expire with their TTL.
func (r baseRepository) invalidate(ctx context.Context) {
	if err := r.cache.InvalidateAggregates(ctx); err != nil {
		r.log.Warn().Err(err).Msg("Failed to invalidate aggregate cache")
	}
}
