package tomtom

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/citypulse/citypulse/internal/provider/resilience"
	"github.com/citypulse/citypulse/internal/traffic"
)

// IncidentProviderName identifies the incident adapter.
const IncidentProviderName = "tomtom-incidents"

// IncidentClientConfig holds configuration for the incident adapter.
type IncidentClientConfig struct {
	// APIKey is the TomTom API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to TomTom).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a single-attempt resilient client.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// IncidentClient is the incident details adapter.
type IncidentClient struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewIncidentClient creates a new incident adapter.
func NewIncidentClient(cfg IncidentClientConfig) *IncidentClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.AdapterClientConfig(IncidentProviderName, DefaultAdapterTimeout))
	}

	return &IncidentClient{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *IncidentClient) Name() string {
	return IncidentProviderName
}

// GetIncidents fetches incidents within radiusMeters of the point.
// The TomTom API takes a bounding box, so the radius is converted to a
// box around the point.
func (c *IncidentClient) GetIncidents(ctx context.Context, lat, lon, radiusMeters float64) ([]*traffic.Incident, error) {
	minLon, minLat, maxLon, maxLat := boundingBox(lat, lon, radiusMeters)

	url := fmt.Sprintf("%s/traffic/services/5/incidentDetails?bbox=%.6f,%.6f,%.6f,%.6f&fields={incidents{properties{id,magnitudeOfDelay,startTime,endTime,events{description}},geometry{coordinates}}}&key=%s",
		c.baseURL, minLon, minLat, maxLon, maxLat, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var ttResp incidentDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&ttResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	incidents := make([]*traffic.Incident, 0, len(ttResp.Incidents))
	for _, inc := range ttResp.Incidents {
		incidents = append(incidents, c.toIncident(&inc))
	}
	return incidents, nil
}

// toIncident converts a TomTom incident feature to the domain model.
func (c *IncidentClient) toIncident(inc *incidentFeature) *traffic.Incident {
	out := &traffic.Incident{
		ID:       inc.Properties.ID,
		Severity: mapMagnitude(inc.Properties.MagnitudeOfDelay),
	}

	if len(inc.Properties.Events) > 0 {
		out.Description = inc.Properties.Events[0].Description
	}

	if t, err := time.Parse(time.RFC3339, inc.Properties.StartTime); err == nil {
		out.StartTime = t
	}
	if inc.Properties.EndTime != "" {
		if t, err := time.Parse(time.RFC3339, inc.Properties.EndTime); err == nil {
			out.EndTime = &t
		}
	}

	// First coordinate of the geometry locates the incident.
	if coords := inc.Geometry.firstPoint(); coords != nil {
		out.Lon = coords[0]
		out.Lat = coords[1]
	}

	return out
}

// mapMagnitude collapses TomTom's magnitude-of-delay scale (0 unknown,
// 1 minor, 2 moderate, 3 major, 4 undefined/closure) into the severity
// buckets.
func mapMagnitude(magnitude int) traffic.Severity {
	switch magnitude {
	case 1:
		return traffic.SeverityLow
	case 2:
		return traffic.SeverityModerate
	case 3:
		return traffic.SeverityHigh
	case 4:
		return traffic.SeveritySevere
	default:
		return traffic.SeverityModerate
	}
}

// boundingBox converts a point-and-radius lookup into the minLon, minLat,
// maxLon, maxLat box the incident API expects.
func boundingBox(lat, lon, radiusMeters float64) (minLon, minLat, maxLon, maxLat float64) {
	const metersPerDegree = 111320.0

	dLat := radiusMeters / metersPerDegree
	dLon := radiusMeters / (metersPerDegree * math.Cos(lat*math.Pi/180))

	return lon - dLon, lat - dLat, lon + dLon, lat + dLat
}

// TomTom incident details response structures.

type incidentDetailsResponse struct {
	Incidents []incidentFeature `json:"incidents"`
}

type incidentFeature struct {
	Properties struct {
		ID               string `json:"id"`
		MagnitudeOfDelay int    `json:"magnitudeOfDelay"`
		StartTime        string `json:"startTime"`
		EndTime          string `json:"endTime"`
		Events           []struct {
			Description string `json:"description"`
		} `json:"events"`
	} `json:"properties"`
	Geometry incidentGeometry `json:"geometry"`
}

// incidentGeometry handles both Point and LineString coordinate shapes.
type incidentGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

func (g *incidentGeometry) firstPoint() []float64 {
	switch g.Type {
	case "Point":
		var point []float64
		if err := json.Unmarshal(g.Coordinates, &point); err == nil && len(point) >= 2 {
			return point
		}
	case "LineString":
		var line [][]float64
		if err := json.Unmarshal(g.Coordinates, &line); err == nil && len(line) > 0 && len(line[0]) >= 2 {
			return line[0]
		}
	}
	return nil
}
