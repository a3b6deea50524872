package composition

import "planet-designer/internal/shared/validation"

// Each preset returns fresh Params so callers never share a mutable table.

func EarthComposition() Params {
	mix := DefaultMixture()
	return Params{
		Atmosphere: &AtmosphereParams{
			Composition: &mix,
			Pressure:    validation.Float(1.0),
			Thickness:   validation.Float(100),
		},
		Water: &WaterParams{
			Coverage: validation.Float(71),
			Depth:    validation.Float(3.7),
			IceCaps:  validation.Float(10),
		},
		Surface: &SurfaceParams{
			Albedo:      validation.Float(0.3),
			Temperature: validation.Float(288),
		},
	}
}

func MarsComposition() Params {
	mix := NewMixture(
		GasShare{"CO2", 95.32},
		GasShare{"N2", 2.7},
		GasShare{"Ar", 1.6},
		GasShare{"O2", 0.13},
		GasShare{"other", 0.25},
	)
	return Params{
		Atmosphere: &AtmosphereParams{
			Composition: &mix,
			Pressure:    validation.Float(0.006),
			Thickness:   validation.Float(11),
		},
		Water: &WaterParams{
			Coverage: validation.Float(0),
			Depth:    validation.Float(0),
			IceCaps:  validation.Float(15),
		},
		Surface: &SurfaceParams{
			Albedo:      validation.Float(0.25),
			Temperature: validation.Float(210),
		},
	}
}

func VenusComposition() Params {
	mix := NewMixture(
		GasShare{"CO2", 96.5},
		GasShare{"N2", 3.5},
	)
	return Params{
		Atmosphere: &AtmosphereParams{
			Composition: &mix,
			Pressure:    validation.Float(92),
			Thickness:   validation.Float(250),
		},
		Water: &WaterParams{
			Coverage: validation.Float(0),
			Depth:    validation.Float(0),
			IceCaps:  validation.Float(0),
		},
		Surface: &SurfaceParams{
			Albedo:      validation.Float(0.77),
			Temperature: validation.Float(737),
		},
	}
}
