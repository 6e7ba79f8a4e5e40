package models

// CityMetric is one derived metric in a city profile.
type CityMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// CityProfile is the full derived profile for a named city.
type CityProfile struct {
	City    string       `json:"city"`
	Key     int          `json:"key"`
	Metrics []CityMetric `json:"metrics"`
}
