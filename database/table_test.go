package database

import (
	"context"
	"sync"
	"testing"

	"PalmCare/models"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_InsertGetUpdate(t *testing.T) {
	table := NewTable[models.CaseRecord]("case")

	require.NoError(t, table.Insert("C-0001", models.CaseRecord{ID: "C-0001", LabOrderIDs: []string{"LAB-0001"}}))
	err := table.Insert("C-0001", models.CaseRecord{ID: "C-0001"})
	assert.True(t, errors.Is(err, models.ErrDuplicateKey))

	row, err := table.Get("C-0001")
	require.NoError(t, err)
	row.LabOrderIDs[0] = "mutated"

	stored, err := table.Get("C-0001")
	require.NoError(t, err)
	assert.Equal(t, "LAB-0001", stored.LabOrderIDs[0], "rows are cloned on the way out")

	updated, err := table.Update("C-0001", func(c *models.CaseRecord) error {
		c.Status = models.StatusInProgress
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)

	_, err = table.Get("C-9999")
	assert.True(t, errors.Is(err, models.ErrRecordNotFound))
}

func TestTable_UpdateErrorLeavesRowUntouched(t *testing.T) {
	table := NewTable[models.InventoryItem]("inventory item")
	require.NoError(t, table.Insert("MED-001", models.InventoryItem{ID: "MED-001", Stock: 5}))

	_, err := table.Update("MED-001", func(item *models.InventoryItem) error {
		item.Stock = -1
		return models.ErrInsufficientStock
	})
	assert.True(t, errors.Is(err, models.ErrInsufficientStock))

	item, err := table.Get("MED-001")
	require.NoError(t, err)
	assert.Equal(t, 5, item.Stock)
}

func TestTable_OrderFindDelete(t *testing.T) {
	table := NewTable[models.Notification]("notification")
	for _, id := range []string{"N-3", "N-1", "N-2"} {
		require.NoError(t, table.Insert(id, models.Notification{ID: id, Read: id == "N-1"}))
	}

	ids := func(rows []models.Notification) []string {
		out := make([]string, 0, len(rows))
		for _, row := range rows {
			out = append(out, row.ID)
		}
		return out
	}
	assert.Equal(t, []string{"N-3", "N-1", "N-2"}, ids(table.List()))
	assert.Equal(t, []string{"N-3", "N-2"}, ids(table.Find(func(n models.Notification) bool { return !n.Read })))

	changed := table.UpdateWhere(func(n models.Notification) bool { return !n.Read }, func(n *models.Notification) { n.Read = true })
	assert.Equal(t, 2, changed)

	require.NoError(t, table.Delete("N-1"))
	assert.Equal(t, []string{"N-3", "N-2"}, ids(table.List()))
	assert.Equal(t, 2, table.Len())
	assert.True(t, errors.Is(table.Delete("N-1"), models.ErrRecordNotFound))
}

func TestTable_ConcurrentUpdates(t *testing.T) {
	table := NewTable[models.InventoryItem]("inventory item")
	require.NoError(t, table.Insert("MED-001", models.InventoryItem{ID: "MED-001"}))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = table.Update("MED-001", func(item *models.InventoryItem) error {
				item.Stock++
				return nil
			})
		}()
	}
	wg.Wait()

	item, err := table.Get("MED-001")
	require.NoError(t, err)
	assert.Equal(t, 50, item.Stock)
}

func TestDB_NextID(t *testing.T) {
	db, err := InitDB(context.Background(), zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "P-0001", db.NextID("P", 4))
	assert.Equal(t, "P-0002", db.NextID("P", 4))
	assert.Equal(t, "MED-001", db.NextID("MED", 3))
	assert.Equal(t, 1, db.NextSequence("invoice-2026"))
}
