package cityprofile

// MetricSpec declares one derived metric: its base value, the spread the
// location key modulates, and the hard range the result is clamped to.
type MetricSpec struct {
	Name   string
	Unit   string
	Base   float64
	Spread int
	Min    float64
	Max    float64
}

// Metric is a single derived scalar with its declared valid range.
type Metric struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Profile is the full derived baseline for one city.
type Profile struct {
	City    string   `json:"city"`
	Key     int      `json:"key"`
	Metrics []Metric `json:"metrics"`
}

// Metric names.
const (
	MetricGreenCoverage     = "green_coverage_pct"
	MetricParkAccessibility = "park_accessibility_pct"
	MetricAirQualityIndex   = "air_quality_index"
	MetricTransitCoverage   = "transit_coverage_pct"
	MetricAvgCommute        = "avg_commute_minutes"
	MetricCongestionIndex   = "congestion_index"
	MetricPopulationDensity = "population_density_per_km2"
	MetricRenewableShare    = "renewable_share_pct"
	MetricWaterQuality      = "water_quality_index"
	MetricGrowthRate        = "annual_growth_pct"
)

// specs is the metric table. Bases and spreads are tuning values chosen to
// land typical city names in plausible ranges; the min/max bounds are the
// contract.
var specs = []MetricSpec{
	{Name: MetricGreenCoverage, Unit: "%", Base: 15, Spread: 30, Min: 5, Max: 60},
	{Name: MetricParkAccessibility, Unit: "%", Base: 40, Spread: 45, Min: 10, Max: 95},
	{Name: MetricAirQualityIndex, Unit: "AQI", Base: 35, Spread: 60, Min: 10, Max: 150},
	{Name: MetricTransitCoverage, Unit: "%", Base: 30, Spread: 55, Min: 10, Max: 90},
	{Name: MetricAvgCommute, Unit: "min", Base: 20, Spread: 35, Min: 10, Max: 60},
	{Name: MetricCongestionIndex, Unit: "index", Base: 30, Spread: 50, Min: 0, Max: 100},
	{Name: MetricPopulationDensity, Unit: "people/km2", Base: 1500, Spread: 9500, Min: 200, Max: 12000},
	{Name: MetricRenewableShare, Unit: "%", Base: 10, Spread: 45, Min: 0, Max: 80},
	{Name: MetricWaterQuality, Unit: "index", Base: 55, Spread: 40, Min: 20, Max: 100},
	{Name: MetricGrowthRate, Unit: "%", Base: 0.5, Spread: 4, Min: -2, Max: 8},
}

// Derive computes the value of a single metric spec for a location key.
func Derive(key int, spec MetricSpec) Metric {
	value := spec.Base
	if spec.Spread > 0 {
		value += float64(key % spec.Spread)
	}
	return Metric{
		Name:  spec.Name,
		Unit:  spec.Unit,
		Value: clamp(spec.Min, spec.Max, value),
		Min:   spec.Min,
		Max:   spec.Max,
	}
}

// For returns the complete derived profile for a city display name.
// The name is used as-is apart from trimming; pass the city portion only,
// not a "city, country" string, so the key does not shift with the
// country suffix.
func For(city string) Profile {
	key := DeriveKey(city)
	metrics := make([]Metric, 0, len(specs))
	for _, spec := range specs {
		metrics = append(metrics, Derive(key, spec))
	}
	return Profile{
		City:    city,
		Key:     key,
		Metrics: metrics,
	}
}

// Specs returns the metric table. Callers treat it as read-only.
func Specs() []MetricSpec {
	return specs
}

func clamp(minV, maxV, v float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
