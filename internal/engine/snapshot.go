package engine

import (
	"sync/atomic"
	"time"

	"github.com/Veraticus/carpicker/internal/common"
	"github.com/Veraticus/carpicker/internal/model"
)

// Catalog is an immutable, loaded set of vehicles.
type Catalog struct {
	LoadedAt time.Time
	Source   string
	Vehicles []model.Vehicle
}

// Snapshot holds the current catalog. Reloads swap the whole catalog at
// once, so a query sees either the old catalog or the new one, never a mix.
type Snapshot struct {
	current atomic.Pointer[Catalog]
}

// NewSnapshot creates a snapshot holding vehicles.
func NewSnapshot(vehicles []model.Vehicle, source string) *Snapshot {
	s := &Snapshot{}
	s.Replace(vehicles, source)
	return s
}

// Replace installs a copy of vehicles as the current catalog.
func (s *Snapshot) Replace(vehicles []model.Vehicle, source string) {
	owned := make([]model.Vehicle, len(vehicles))
	copy(owned, vehicles)

	s.current.Store(&Catalog{
		Vehicles: owned,
		Source:   source,
		LoadedAt: time.Now(),
	})
}

// Load returns the current catalog, or common.ErrCatalogEmpty if none has
// been installed.
func (s *Snapshot) Load() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, common.ErrCatalogEmpty
	}
	return c, nil
}

// Query runs q through e against the current catalog.
func (s *Snapshot) Query(e *Engine, q model.Query) (*model.Result, error) {
	c, err := s.Load()
	if err != nil {
		return nil, err
	}
	return e.Run(c.Vehicles, q)
}
