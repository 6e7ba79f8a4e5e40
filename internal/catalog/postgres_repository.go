package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository, for
// deployments that manage the area catalog in a table instead of the
// seeded defaults. The table is reference data: read at startup, never
// written by this service.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// GetArea retrieves a single area by ID.
func (r *PostgresRepository) GetArea(ctx context.Context, id string) (*Area, error) {
	query := `
		SELECT id, name, lat, lon, road_types
		FROM areas
		WHERE id = $1
	`

	var (
		area      Area
		roadTypes []string
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&area.ID,
		&area.Name,
		&area.Lat,
		&area.Lon,
		&roadTypes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAreaNotFound
		}
		return nil, err
	}

	area.RoadTypes = toRoadTypes(roadTypes)
	return &area, nil
}

// ListAreas retrieves all areas ordered by ID.
func (r *PostgresRepository) ListAreas(ctx context.Context) ([]*Area, error) {
	query := `
		SELECT id, name, lat, lon, road_types
		FROM areas
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []*Area
	for rows.Next() {
		var (
			area      Area
			roadTypes []string
		)

		if err := rows.Scan(&area.ID, &area.Name, &area.Lat, &area.Lon, &roadTypes); err != nil {
			return nil, err
		}

		area.RoadTypes = toRoadTypes(roadTypes)
		areas = append(areas, &area)
	}

	return areas, rows.Err()
}

// toRoadTypes converts the text[] column, dropping unknown values so a
// bad row cannot leak an invalid road type into the pipeline.
func toRoadTypes(values []string) []RoadType {
	roadTypes := make([]RoadType, 0, len(values))
	for _, v := range values {
		rt := RoadType(v)
		if rt.Valid() {
			roadTypes = append(roadTypes, rt)
		}
	}
	return roadTypes
}
