package physical

import (
	"encoding/json"

	"planet-designer/internal/shared/validation"
)

// Params is a proposed set of physical parameters. A nil field is treated as absent.
type Params struct {
	Mass         *float64 `json:"mass" toml:"mass"`                   // kg
	Radius       *float64 `json:"radius" toml:"radius"`               // km
	Density      *float64 `json:"density" toml:"density"`             // kg/m³
	RotationRate *float64 `json:"rotation_rate" toml:"rotation_rate"` // hours
	AxialTilt    *float64 `json:"axial_tilt" toml:"axial_tilt"`       // degrees
}

// UnmarshalJSON accepts any JSON value per field; values that are not numbers are
// left for Validate to report instead of failing the decode
func (p *Params) UnmarshalJSON(data []byte) error {
	var raw struct {
		Mass         json.RawMessage `json:"mass"`
		Radius       json.RawMessage `json:"radius"`
		Density      json.RawMessage `json:"density"`
		RotationRate json.RawMessage `json:"rotation_rate"`
		AxialTilt    json.RawMessage `json:"axial_tilt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Params{
		Mass:         validation.NumberFromJSON(raw.Mass),
		Radius:       validation.NumberFromJSON(raw.Radius),
		Density:      validation.NumberFromJSON(raw.Density),
		RotationRate: validation.NumberFromJSON(raw.RotationRate),
		AxialTilt:    validation.NumberFromJSON(raw.AxialTilt),
	}
	return nil
}

// Properties are the quantities derived from a State
type Properties struct {
	SurfaceGravity    float64 `json:"surface_gravity"`    // m/s²
	EscapeVelocity    float64 `json:"escape_velocity"`    // km/s
	Volume            float64 `json:"volume"`             // km³
	DensityConsistent bool    `json:"density_consistent"` // mass/volume within DensityTolerance of density
}
