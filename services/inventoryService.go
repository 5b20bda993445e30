package services

import (
	"context"
	"fmt"

	"PalmCare/models"
	"PalmCare/repositories"
	"PalmCare/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type InventoryFilter struct {
	Search string
	Status models.StockStatus
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}

func (r RestockRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

type InventoryService struct {
	repository    *repositories.InventoryRepository
	notifications *NotificationService
	log           zerolog.Logger
}

func NewInventoryService(repository *repositories.InventoryRepository, notifications *NotificationService, log zerolog.Logger) *InventoryService {
	return &InventoryService{repository: repository, notifications: notifications, log: log}
}

func view(item models.InventoryItem) models.InventoryView {
	return models.InventoryView{InventoryItem: item, Status: item.StockStatus()}
}

func (s *InventoryService) Create(ctx context.Context, item *models.InventoryItem) error {
	return s.repository.Create(ctx, item)
}

func (s *InventoryService) Get(ctx context.Context, id string) (*models.InventoryView, error) {
	item, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := view(*item)
	return &v, nil
}

func (s *InventoryService) List(ctx context.Context, filter InventoryFilter) []models.InventoryView {
	items := utils.FilterBySearch(s.repository.List(ctx), filter.Search, func(i models.InventoryItem) []string {
		return []string{i.ID, i.Name, i.Category}
	})
	views := make([]models.InventoryView, 0, len(items))
	for _, item := range items {
		if v := view(item); filter.Status == "" || v.Status == filter.Status {
			views = append(views, v)
		}
	}
	return views
}

// Restock adds stock to an item.
func (s *InventoryService) Restock(ctx context.Context, id string, req RestockRequest) (*models.InventoryView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	item, err := s.repository.Update(ctx, id, func(i *models.InventoryItem) error {
		i.Stock += req.Quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("item_id", id).Int("quantity", req.Quantity).Int("stock", item.Stock).Msg("Item restocked")
	v := view(*item)
	return &v, nil
}

// requestedStock sums the line quantities per medication, in first-seen
// order. A prescription may list the same medication more than once.
func requestedStock(lines []models.PrescriptionLine) ([]string, map[string]int) {
	order := make([]string, 0, len(lines))
	totals := make(map[string]int, len(lines))
	for _, line := range lines {
		if _, seen := totals[line.MedicationID]; !seen {
			order = append(order, line.MedicationID)
		}
		totals[line.MedicationID] += line.Quantity
	}
	return order, totals
}

// CheckStock fails with ErrInsufficientStock when the lines together ask for
// more of any item than is on hand.
func (s *InventoryService) CheckStock(ctx context.Context, lines []models.PrescriptionLine) error {
	order, totals := requestedStock(lines)
	for _, id := range order {
		item, err := s.repository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if item.Stock < totals[id] {
			return errors.Wrapf(models.ErrInsufficientStock, "%s: %d requested, %d in stock", item.Name, totals[id], item.Stock)
		}
	}
	return nil
}

// ConsumeLines takes every line out of stock or none of them. When an item
// runs short part way through, the items already taken are put back.
func (s *InventoryService) ConsumeLines(ctx context.Context, lines []models.PrescriptionLine) error {
	order, totals := requestedStock(lines)
	taken := make([]string, 0, len(order))
	for _, id := range order {
		if _, err := s.Consume(ctx, id, totals[id]); err != nil {
			for _, done := range taken {
				s.putBack(ctx, done, totals[done])
			}
			return err
		}
		taken = append(taken, id)
	}
	return nil
}

func (s *InventoryService) putBack(ctx context.Context, id string, quantity int) {
	_, err := s.repository.Update(ctx, id, func(i *models.InventoryItem) error {
		i.Stock += quantity
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("item_id", id).Int("quantity", quantity).Msg("Failed to return stock")
	}
}

// Consume takes quantity out of stock and warns when the item drops into a
// worse stock status.
func (s *InventoryService) Consume(ctx context.Context, id string, quantity int) (*models.InventoryItem, error) {
	var before models.StockStatus
	item, err := s.repository.Update(ctx, id, func(i *models.InventoryItem) error {
		if i.Stock < quantity {
			return errors.Wrapf(models.ErrInsufficientStock, "%s: %d requested, %d in stock", i.Name, quantity, i.Stock)
		}
		before = i.StockStatus()
		i.Stock -= quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	if after := item.StockStatus(); after != before && after != models.StockInStock {
		s.notifications.Notify(ctx, models.NotificationWarning, fmt.Sprintf("%s stock: %s", after, item.Name),
			fmt.Sprintf("%s is down to %d %s (reorder level %d)", item.Name, item.Stock, item.Unit, item.ReorderLevel))
		s.log.Warn().Str("item_id", item.ID).Str("status", string(after)).Int("stock", item.Stock).Msg("Stock below reorder level")
	}
	return item, nil
}
