package catalog

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// It is the default catalog source: deployments without a managed catalog
// table run on the seeded district set.
type InMemoryRepository struct {
	mu    sync.RWMutex
	areas map[string]*Area
}

// NewInMemoryRepository creates an in-memory repository seeded with the
// default district catalog.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithAreas(DefaultAreas())
}

// NewInMemoryRepositoryWithAreas creates an in-memory repository with the
// given areas.
func NewInMemoryRepositoryWithAreas(areas []*Area) *InMemoryRepository {
	repo := &InMemoryRepository{
		areas: make(map[string]*Area, len(areas)),
	}
	for _, a := range areas {
		repo.areas[a.ID] = a
	}
	return repo
}

// GetArea retrieves a single area by ID.
func (r *InMemoryRepository) GetArea(_ context.Context, id string) (*Area, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	area, ok := r.areas[id]
	if !ok {
		return nil, ErrAreaNotFound
	}
	return area, nil
}

// ListAreas retrieves all areas ordered by ID.
func (r *InMemoryRepository) ListAreas(_ context.Context) ([]*Area, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	areas := make([]*Area, 0, len(r.areas))
	for _, a := range r.areas {
		areas = append(areas, a)
	}
	sort.Slice(areas, func(i, j int) bool { return areas[i].ID < areas[j].ID })
	return areas, nil
}

// DefaultAreas returns the seeded district catalog. Coordinates are the
// district centers used for flow and incident feed lookups.
func DefaultAreas() []*Area {
	return []*Area{
		{
			ID:        "downtown",
			Name:      "Downtown Core",
			Lat:       52.3702,
			Lon:       4.8952,
			RoadTypes: []RoadType{RoadTypeArterial, RoadTypeLocal},
		},
		{
			ID:        "north-district",
			Name:      "North District",
			Lat:       52.4009,
			Lon:       4.9037,
			RoadTypes: []RoadType{RoadTypeHighway, RoadTypeArterial, RoadTypeResidential},
		},
		{
			ID:        "south-district",
			Name:      "South District",
			Lat:       52.3380,
			Lon:       4.8725,
			RoadTypes: []RoadType{RoadTypeHighway, RoadTypeArterial, RoadTypeResidential},
		},
		{
			ID:        "east-district",
			Name:      "East District",
			Lat:       52.3626,
			Lon:       4.9414,
			RoadTypes: []RoadType{RoadTypeArterial, RoadTypeLocal, RoadTypeResidential},
		},
		{
			ID:        "west-district",
			Name:      "West District",
			Lat:       52.3747,
			Lon:       4.8441,
			RoadTypes: []RoadType{RoadTypeHighway, RoadTypeLocal, RoadTypeResidential},
		},
		{
			ID:        "industrial-zone",
			Name:      "Industrial Zone",
			Lat:       52.4102,
			Lon:       4.8461,
			RoadTypes: []RoadType{RoadTypeHighway, RoadTypeArterial},
		},
	}
}
