package composition

import (
	"math"

	"planet-designer/internal/shared/validation"
)

// Validate checks the atmosphere, water and surface groups in that order and never fails.
func Validate(p Params) validation.Result {
	return collect(p).Result()
}

func collect(p Params) *validation.Collector {
	c := &validation.Collector{}

	if p.Atmosphere == nil {
		c.Add("Atmosphere parameters are required")
	} else {
		mix := p.Atmosphere.mixture()

		sum := mix.Sum()
		if !(math.Abs(sum-100) <= CompositionSumTolerance) {
			c.Addf("Atmosphere composition must sum to 100%% (±%s), got %.2f%%",
				validation.FormatNumber(CompositionSumTolerance), sum)
		}

		for _, gas := range mix.shares {
			pct := gas.Percent
			if !validation.IsNumber(&pct) || !GasPercentRange.Contains(pct) {
				c.Addf("Gas percentage for %s must be %s", gas.Symbol, GasPercentRange)
			}
		}

		c.Number("Atmosphere pressure", p.Atmosphere.Pressure, PressureRange, false)
		c.Number("Atmosphere thickness", p.Atmosphere.Thickness, ThicknessRange, false)
	}

	if p.Water == nil {
		c.Add("Water parameters are required")
	} else {
		c.Number("Water coverage", p.Water.Coverage, CoverageRange, false)
		c.Number("Water depth", p.Water.Depth, DepthRange, false)
		c.Number("Ice cap coverage", p.Water.IceCaps, IceCapsRange, false)
	}

	if p.Surface == nil {
		c.Add("Surface parameters are required")
	} else {
		c.Number("Surface albedo", p.Surface.Albedo, AlbedoRange, false)
		c.Number("Surface temperature", p.Surface.Temperature, TemperatureRange, false)
	}

	return c
}
