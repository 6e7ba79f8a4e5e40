package catalog

import "context"

// Repository provides read access to the area catalog.
type Repository interface {
	// GetArea retrieves a single area by ID.
	GetArea(ctx context.Context, id string) (*Area, error)

	// ListAreas retrieves all areas in a stable order.
	ListAreas(ctx context.Context) ([]*Area, error)
}
