// Package catalog holds the static area reference data the traffic
// pipeline aggregates over: each entry names a district, its coordinates,
// and the road types that apply there. The catalog is loaded once at
// startup and treated as immutable.
package catalog

import "errors"

// Repository errors.
var (
	ErrAreaNotFound = errors.New("area not found")
)

// RoadType classifies the roads a traffic record describes.
type RoadType string

const (
	RoadTypeHighway     RoadType = "highway"
	RoadTypeArterial    RoadType = "arterial"
	RoadTypeLocal       RoadType = "local"
	RoadTypeResidential RoadType = "residential"
)

// AllRoadTypes lists every road type in a stable order.
var AllRoadTypes = []RoadType{
	RoadTypeHighway,
	RoadTypeArterial,
	RoadTypeLocal,
	RoadTypeResidential,
}

// Valid reports whether rt is a known road type.
func (rt RoadType) Valid() bool {
	switch rt {
	case RoadTypeHighway, RoadTypeArterial, RoadTypeLocal, RoadTypeResidential:
		return true
	}
	return false
}

// Area is one catalog entry: a named district with the coordinates used
// for feed lookups and the road types applicable to it.
type Area struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	RoadTypes []RoadType `json:"roadTypes"`
}

// HasRoadType reports whether the area carries the given road type.
func (a *Area) HasRoadType(rt RoadType) bool {
	for _, t := range a.RoadTypes {
		if t == rt {
			return true
		}
	}
	return false
}
