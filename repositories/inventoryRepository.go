package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type InventoryRepository struct {
	baseRepository
}

func (r *InventoryRepository) Create(ctx context.Context, item *models.InventoryItem) error {
	item.ID = r.db.NextID("MED", 3)
	if err := r.db.Inventory.Insert(item.ID, *item); err != nil {
		return errors.Wrap(err, "failed to create inventory item")
	}
	r.invalidate(ctx)
	return nil
}

func (r *InventoryRepository) GetByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, err := r.db.Inventory.Get(id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *InventoryRepository) Update(ctx context.Context, id string, fn func(*models.InventoryItem) error) (*models.InventoryItem, error) {
	item, err := r.db.Inventory.Update(id, fn)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &item, nil
}

func (r *InventoryRepository) List(ctx context.Context) []models.InventoryItem {
	return r.db.Inventory.List()
}
