package location

import "context"

// Region is a map viewport: center coordinate plus latitude/longitude span.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitude_delta"`
	LongitudeDelta float64 `json:"longitude_delta"`
}

const (
	latitudeDelta  = 0.0922
	longitudeDelta = 0.0421
)

// DefaultRegion is shown when the device position is unavailable.
var DefaultRegion = Region{
	Latitude:       37.78825,
	Longitude:      -122.4324,
	LatitudeDelta:  latitudeDelta,
	LongitudeDelta: longitudeDelta,
}

const (
	// MsgPermissionDenied is the user-facing message when foreground
	// location permission is refused.
	MsgPermissionDenied = "Location permission is required to use the map. Please enable location access in your device settings."
	// MsgUnavailable is the user-facing message for any other acquisition
	// failure.
	MsgUnavailable = "Unable to get your location. Using default location."
)

type Position struct {
	Latitude  float64
	Longitude float64
}

// Source abstracts the device location service: a one-shot permission request
// followed by a one-shot position fetch.
type Source interface {
	RequestPermission(ctx context.Context) (bool, error)
	Current(ctx context.Context) (Position, error)
}

// Fix is the outcome of a one-shot acquisition. Region is always usable;
// Err carries a user-facing message when the fallback was taken.
type Fix struct {
	Position *Position
	Region   Region
	Err      string
}

type Provider struct {
	source Source
}

func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

// Acquire requests permission and fetches the current position once. Every
// failure path falls back to DefaultRegion; there are no retries.
func (p *Provider) Acquire(ctx context.Context) Fix {
	granted, err := p.source.RequestPermission(ctx)
	if err != nil {
		return Fix{Region: DefaultRegion, Err: MsgUnavailable}
	}
	if !granted {
		return Fix{Region: DefaultRegion, Err: MsgPermissionDenied}
	}

	pos, err := p.source.Current(ctx)
	if err != nil {
		return Fix{Region: DefaultRegion, Err: MsgUnavailable}
	}

	return Fix{
		Position: &pos,
		Region: Region{
			Latitude:       pos.Latitude,
			Longitude:      pos.Longitude,
			LatitudeDelta:  latitudeDelta,
			LongitudeDelta: longitudeDelta,
		},
	}
}
