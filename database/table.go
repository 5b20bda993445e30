package database

import (
	"sync"

	"PalmCare/models"

	"github.com/pkg/errors"
)

// cloner is implemented by rows that carry slices, so a stored row never
// shares backing arrays with a caller.
type cloner[T any] interface {
	Clone() T
}

func clone[T any](row T) T {
	if c, ok := any(row).(cloner[T]); ok {
		return c.Clone()
	}
	return row
}

// Table is an in-memory keyed table that keeps insertion order.
type Table[T any] struct {
	mu    sync.RWMutex
	name  string
	rows  map[string]T
	order []string
}

func NewTable[T any](name string) *Table[T] {
	return &Table[T]{name: name, rows: make(map[string]T)}
}

// Insert stores a new row under id.
func (t *Table[T]) Insert(id string, row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[id]; exists {
		return errors.Wrapf(models.ErrDuplicateKey, "%s %s", t.name, id)
	}
	t.rows[id] = clone(row)
	t.order = append(t.order, id)
	return nil
}

// Get returns a copy of the row stored under id.
func (t *Table[T]) Get(id string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, errors.Wrapf(models.ErrRecordNotFound, "%s %s", t.name, id)
	}
	return clone(row), nil
}

// Update applies fn to a copy of the row and stores the copy when fn
// succeeds. The read-modify-write happens under the table lock.
func (t *Table[T]) Update(id string, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, errors.Wrapf(models.ErrRecordNotFound, "%s %s", t.name, id)
	}
	row = clone(row)
	if err := fn(&row); err != nil {
		var zero T
		return zero, err
	}
	t.rows[id] = row
	return clone(row), nil
}

// UpdateWhere applies fn to every row matching pred and returns the number of
// rows changed.
func (t *Table[T]) UpdateWhere(pred func(T) bool, fn func(*T)) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := 0
	for _, id := range t.order {
		row := t.rows[id]
		if !pred(row) {
			continue
		}
		row = clone(row)
		fn(&row)
		t.rows[id] = row
		changed++
	}
	return changed
}

// Delete removes the row stored under id.
func (t *Table[T]) Delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return errors.Wrapf(models.ErrRecordNotFound, "%s %s", t.name, id)
	}
	delete(t.rows, id)
	for i, key := range t.order {
		if key == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns copies of every row in insertion order.
func (t *Table[T]) List() []T {
	return t.Find(func(T) bool { return true })
}

// Find returns copies of the rows matching pred in insertion order.
func (t *Table[T]) Find(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		if row := t.rows[id]; pred(row) {
			rows = append(rows, clone(row))
		}
	}
	return rows
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
