package traffic

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/citypulse/internal/catalog"
)

// FlowProvider fetches a flow-speed observation for a geographic point.
type FlowProvider interface {
	// GetFlow fetches the flow observation nearest to the point.
	GetFlow(ctx context.Context, lat, lon float64) (*FlowObservation, error)

	// Name returns the provider name for logging.
	Name() string
}

// IncidentProvider fetches traffic incidents around a geographic point.
type IncidentProvider interface {
	// GetIncidents fetches incidents within radiusMeters of the point.
	GetIncidents(ctx context.Context, lat, lon, radiusMeters float64) ([]*Incident, error)

	// Name returns the provider name for logging.
	Name() string
}

// Derivation constants. The exact coefficients are tuning values; the
// monotonic shape (higher congestion, lower speed, longer travel time)
// is the contract.
const (
	// DefaultCongestion is assumed when no flow data is available.
	DefaultCongestion = 50

	// DefaultIncidentRadiusMeters bounds the incident lookup per area.
	DefaultIncidentRadiusMeters = 5000

	speedBaseKmh       = 60.0
	speedPerCongestion = 0.5
	speedFloorKmh      = 5.0

	travelTimeBaseMin       = 10.0
	travelTimePerCongestion = 0.2
)

// roadTypeBaseVolume is the per-road-type hourly volume at zero congestion.
var roadTypeBaseVolume = map[catalog.RoadType]int{
	catalog.RoadTypeHighway:     1200,
	catalog.RoadTypeArterial:    800,
	catalog.RoadTypeLocal:       400,
	catalog.RoadTypeResidential: 200,
}

// ServiceConfig holds configuration for the aggregation service.
type ServiceConfig struct {
	// Catalog is the area catalog (required).
	Catalog catalog.Repository

	// Flow is the flow-speed feed adapter. Nil means unconfigured:
	// every area aggregates at the default congestion.
	Flow FlowProvider

	// Incidents is the incident feed adapter. Nil means unconfigured:
	// incident counts stay at zero.
	Incidents IncidentProvider

	// IncidentRadiusMeters is the incident lookup radius per area
	// (default: 5000).
	IncidentRadiusMeters float64

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service is the traffic aggregation pipeline.
type Service struct {
	catalog        catalog.Repository
	flow           FlowProvider
	incidents      IncidentProvider
	incidentRadius float64
	logger         zerolog.Logger
}

// NewService creates a new aggregation service.
func NewService(cfg ServiceConfig) *Service {
	radius := cfg.IncidentRadiusMeters
	if radius == 0 {
		radius = DefaultIncidentRadiusMeters
	}

	return &Service{
		catalog:        cfg.Catalog,
		flow:           cfg.Flow,
		incidents:      cfg.Incidents,
		incidentRadius: radius,
		logger:         cfg.Logger,
	}
}

// areaResult carries one area's feed data back from the fan-out.
type areaResult struct {
	area       *catalog.Area
	congestion int
	live       bool
	incidents  int
}

// Aggregate runs the pipeline and returns one record per matching
// (area, road type) combination. Adapter failures degrade to defaults per
// area and never abort aggregation for the others; partial results are
// valid. An error is returned only when the catalog itself is unreadable.
func (s *Service) Aggregate(ctx context.Context, filter Filter) ([]*Record, error) {
	areas, err := s.catalog.ListAreas(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*catalog.Area
	for _, a := range areas {
		if filter.wantsArea(a.ID) {
			candidates = append(candidates, a)
		}
	}

	// An unknown metric name can never be satisfied; skip the feed calls.
	if !filter.hasRequiredMetrics() {
		return []*Record{}, nil
	}

	// Adapter calls are independent and I/O-bound: fan out one goroutine
	// per area and join before deriving records.
	results := make([]areaResult, len(candidates))
	var wg sync.WaitGroup
	for i, area := range candidates {
		wg.Add(1)
		go func(i int, area *catalog.Area) {
			defer wg.Done()
			results[i] = s.observeArea(ctx, area)
		}(i, area)
	}
	wg.Wait()

	now := time.Now()
	records := make([]*Record, 0, len(candidates))
	for _, res := range results {
		for _, rt := range res.area.RoadTypes {
			if !filter.wantsRoadType(rt) {
				continue
			}
			if !filter.wantsSeverity(CongestionBucket(res.congestion)) {
				continue
			}
			records = append(records, newRecord(res, rt, now))
		}
	}

	return records, nil
}

// observeArea fetches both feeds for one area, mapping any adapter error
// to an explicit absence.
func (s *Service) observeArea(ctx context.Context, area *catalog.Area) areaResult {
	res := areaResult{
		area:       area,
		congestion: DefaultCongestion,
	}

	if s.flow != nil {
		obs, err := s.flow.GetFlow(ctx, area.Lat, area.Lon)
		switch {
		case err != nil:
			s.logger.Warn().
				Str("area", area.ID).
				Str("provider", s.flow.Name()).
				Err(err).
				Msg("flow feed unavailable, using default congestion")
		case obs != nil && obs.FreeFlowSpeed > 0:
			res.congestion = congestionFromFlow(obs)
			res.live = true
		}
	}

	if s.incidents != nil {
		incidents, err := s.incidents.GetIncidents(ctx, area.Lat, area.Lon, s.incidentRadius)
		if err != nil {
			s.logger.Warn().
				Str("area", area.ID).
				Str("provider", s.incidents.Name()).
				Err(err).
				Msg("incident feed unavailable, counting zero incidents")
		} else {
			res.incidents = len(incidents)
		}
	}

	return res
}

// congestionFromFlow derives a 0-100 congestion value from the ratio of
// current to free-flow speed.
func congestionFromFlow(obs *FlowObservation) int {
	c := int(math.Round(100 - obs.CurrentSpeed/obs.FreeFlowSpeed*100))
	return clampInt(0, 100, c)
}

// newRecord derives the dependent fields from congestion so they remain
// mutually consistent regardless of which feeds were present.
func newRecord(res areaResult, rt catalog.RoadType, ts time.Time) *Record {
	c := res.congestion

	speed := speedBaseKmh - float64(c)*speedPerCongestion
	if speed < speedFloorKmh {
		speed = speedFloorKmh
	}

	volume := roadTypeBaseVolume[rt]
	volume += volume * c / 100

	return &Record{
		AreaID:        res.area.ID,
		AreaName:      res.area.Name,
		RoadType:      rt,
		Congestion:    c,
		SpeedKmh:      speed,
		TravelTimeMin: travelTimeBaseMin + float64(c)*travelTimePerCongestion,
		VolumePerHour: volume,
		IncidentCount: res.incidents,
		Live:          res.live,
		Timestamp:     ts,
	}
}

// AverageCongestion returns the mean congestion across records, or the
// default when the slice is empty. The simulation engine feeds this in as
// the live override for the traffic scenario.
func AverageCongestion(records []*Record) int {
	if len(records) == 0 {
		return DefaultCongestion
	}
	sum := 0
	for _, r := range records {
		sum += r.Congestion
	}
	return sum / len(records)
}

func clampInt(minV, maxV, v int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
