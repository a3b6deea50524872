package physical

import "planet-designer/internal/shared/validation"

// G is the gravitational constant in m³·kg⁻¹·s⁻²
const G = 6.674e-11

// DensityTolerance is the relative difference allowed between stored density and mass/volume
const DensityTolerance = 0.01

const (
	metersPerKilometer = 1000.0
	cubicMetersPerKm3  = 1e9
)

// Accepted input ranges
var (
	MassRange         = validation.Range{Min: 1e20, Max: 1e30, Unit: "kg"}
	RadiusRange       = validation.Range{Min: 100, Max: 100000, Unit: "km"}
	DensityRange      = validation.Range{Min: 500, Max: 15000, Unit: "kg/m³"}
	RotationRateRange = validation.Range{Min: 0.1, Max: 1000, Unit: "hours"}
	AxialTiltRange    = validation.Range{Min: 0, Max: 180, Unit: "degrees"}
)
