package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type LabOrderRepository struct {
	baseRepository
}

func (r *LabOrderRepository) Create(ctx context.Context, order *models.LabOrder) error {
	order.ID = r.db.NextID("LAB", 4)
	if err := r.db.LabOrders.Insert(order.ID, *order); err != nil {
		return errors.Wrap(err, "failed to create lab order")
	}
	r.invalidate(ctx)
	return nil
}

func (r *LabOrderRepository) GetByID(ctx context.Context, id string) (*models.LabOrder, error) {
	order, err := r.db.LabOrders.Get(id)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *LabOrderRepository) Update(ctx context.Context, id string, fn func(*models.LabOrder) error) (*models.LabOrder, error) {
	order, err := r.db.LabOrders.Update(id, fn)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &order, nil
}

func (r *LabOrderRepository) List(ctx context.Context) []models.LabOrder {
	return r.db.LabOrders.List()
}

func (r *LabOrderRepository) FindByCase(ctx context.Context, caseID string) []models.LabOrder {
	return r.db.LabOrders.Find(func(o models.LabOrder) bool { return o.CaseID == caseID })
}
