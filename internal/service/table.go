package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/model"
)

// TablePersister mirrors the table collection after each mutation.
// Satisfied by *store.Store.
type TablePersister interface {
	SaveTables(tables []model.Table)
}

// TableRegistry holds the physical tables and their occupancy status.
// Status changes come from staff actions and from the order core's side
// effects; table records themselves are fixed for the session.
type TableRegistry struct {
	mu      sync.RWMutex
	tables  []model.Table
	persist TablePersister
}

// NewTableRegistry creates a registry over the given tables.
func NewTableRegistry(tables []model.Table, persist TablePersister) *TableRegistry {
	return &TableRegistry{tables: tables, persist: persist}
}

// GetTable looks up a table by ID.
func (r *TableRegistry) GetTable(id uuid.UUID) (model.Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tables {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Table{}, ErrTableNotFound
}

// UpdateTableStatus sets the table's status unconditionally.
func (r *TableRegistry) UpdateTableStatus(id uuid.UUID, status string) error {
	if !enum.IsValidTableStatus(status) {
		return ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.tables {
		if r.tables[i].ID == id {
			r.tables[i].Status = status
			if r.persist != nil {
				r.persist.SaveTables(r.tables)
			}
			return nil
		}
	}
	return ErrTableNotFound
}

// Tables returns a copy of the table collection.
func (r *TableRegistry) Tables() []model.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Table, len(r.tables))
	copy(out, r.tables)
	return out
}
