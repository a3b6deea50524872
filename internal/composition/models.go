package composition

import (
	"encoding/json"

	"planet-designer/internal/shared/validation"
)

// Params is a proposed composition. Nil sub-objects and fields are treated as absent.
type Params struct {
	Atmosphere *AtmosphereParams `json:"atmosphere"`
	Water      *WaterParams      `json:"water"`
	Surface    *SurfaceParams    `json:"surface"`
}

type AtmosphereParams struct {
	// Composition defaults to DefaultMixture when omitted
	Composition *Mixture `json:"composition,omitempty"`
	Pressure    *float64 `json:"pressure"`  // atm
	Thickness   *float64 `json:"thickness"` // km
}

func (a *AtmosphereParams) mixture() Mixture {
	if a.Composition == nil {
		return DefaultMixture()
	}
	return *a.Composition
}

// UnmarshalJSON keeps non-numeric pressure or thickness for Validate to report
func (a *AtmosphereParams) UnmarshalJSON(data []byte) error {
	var raw struct {
		Composition *Mixture        `json:"composition"`
		Pressure    json.RawMessage `json:"pressure"`
		Thickness   json.RawMessage `json:"thickness"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = AtmosphereParams{
		Composition: raw.Composition,
		Pressure:    validation.NumberFromJSON(raw.Pressure),
		Thickness:   validation.NumberFromJSON(raw.Thickness),
	}
	return nil
}

type WaterParams struct {
	Coverage *float64 `json:"coverage" toml:"coverage"` // percent
	Depth    *float64 `json:"depth" toml:"depth"`       // km
	IceCaps  *float64 `json:"ice_caps" toml:"ice_caps"` // percent
}

func (w *WaterParams) UnmarshalJSON(data []byte) error {
	var raw struct {
		Coverage json.RawMessage `json:"coverage"`
		Depth    json.RawMessage `json:"depth"`
		IceCaps  json.RawMessage `json:"ice_caps"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*w = WaterParams{
		Coverage: validation.NumberFromJSON(raw.Coverage),
		Depth:    validation.NumberFromJSON(raw.Depth),
		IceCaps:  validation.NumberFromJSON(raw.IceCaps),
	}
	return nil
}

type SurfaceParams struct {
	Albedo      *float64 `json:"albedo" toml:"albedo"`
	Temperature *float64 `json:"temperature" toml:"temperature"` // K
}

func (sp *SurfaceParams) UnmarshalJSON(data []byte) error {
	var raw struct {
		Albedo      json.RawMessage `json:"albedo"`
		Temperature json.RawMessage `json:"temperature"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*sp = SurfaceParams{
		Albedo:      validation.NumberFromJSON(raw.Albedo),
		Temperature: validation.NumberFromJSON(raw.Temperature),
	}
	return nil
}

type Atmosphere struct {
	Composition Mixture `json:"composition"`
	Pressure    float64 `json:"pressure"`
	Thickness   float64 `json:"thickness"`
}

type Water struct {
	Coverage float64 `json:"coverage"`
	Depth    float64 `json:"depth"`
	IceCaps  float64 `json:"ice_caps"`
}

type Surface struct {
	Albedo      float64 `json:"albedo"`
	Temperature float64 `json:"temperature"`
}

// Properties are the quantities derived from a State
type Properties struct {
	DominantGas           string    `json:"dominant_gas"`
	AtmosphereColor       Color     `json:"atmosphere_color"`
	GreenhouseEffect      float64   `json:"greenhouse_effect"`     // K
	EffectiveTemperature  float64   `json:"effective_temperature"` // K
	CanSupportLiquidWater bool      `json:"can_support_liquid_water"`
	Ocean                 OceanType `json:"ocean"`
	OceanColor            Color     `json:"ocean_color"`
}
