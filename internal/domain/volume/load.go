package volume

// Load describes how much lifetime work a muscle has seen.
type Load string

// Load buckets.
const (
	LoadNone     Load = "none"
	LoadActive   Load = "active"
	LoadBuilding Load = "building"
	LoadIntense  Load = "intense"
)

// Load thresholds in kg.
const (
	BuildingAboveKg = 500.0
	IntenseAboveKg  = 1000.0
)

// LoadOf buckets a muscle's accumulated volume for the body map.
func LoadOf(volumeKg float64) Load {
	switch {
	case volumeKg > IntenseAboveKg:
		return LoadIntense
	case volumeKg > BuildingAboveKg:
		return LoadBuilding
	case volumeKg > 0:
		return LoadActive
	default:
		return LoadNone
	}
}
