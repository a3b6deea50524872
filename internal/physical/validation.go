package physical

import "planet-designer/internal/shared/validation"

// Validate checks every field in a fixed order and never fails.
// Errors lists every violated constraint, not just the first.
func Validate(p Params) validation.Result {
	return collect(p).Result()
}

func collect(p Params) *validation.Collector {
	c := &validation.Collector{}
	c.Number("Mass", p.Mass, MassRange, true)
	c.Number("Radius", p.Radius, RadiusRange, true)
	c.Number("Density", p.Density, DensityRange, true)
	c.Number("Rotation rate", p.RotationRate, RotationRateRange, true)
	// axial tilt may be zero
	c.Number("Axial tilt", p.AxialTilt, AxialTiltRange, false)
	return c
}
