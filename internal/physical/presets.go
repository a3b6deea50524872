package physical

import "planet-designer/internal/shared/validation"

// Each preset returns a fresh Params so callers never share a mutable table.

func Earth() Params {
	return Params{
		Mass:         validation.Float(5.972e24),
		Radius:       validation.Float(6371),
		Density:      validation.Float(5514),
		RotationRate: validation.Float(24),
		AxialTilt:    validation.Float(23.44),
	}
}

func Mars() Params {
	return Params{
		Mass:         validation.Float(6.417e23),
		Radius:       validation.Float(3389.5),
		Density:      validation.Float(3933),
		RotationRate: validation.Float(24.62),
		AxialTilt:    validation.Float(25.19),
	}
}

func Jupiter() Params {
	return Params{
		Mass:         validation.Float(1.898e27),
		Radius:       validation.Float(69911),
		Density:      validation.Float(1326),
		RotationRate: validation.Float(9.93),
		AxialTilt:    validation.Float(3.13),
	}
}

func Moon() Params {
	return Params{
		Mass:         validation.Float(7.342e22),
		Radius:       validation.Float(1737.4),
		Density:      validation.Float(3344),
		RotationRate: validation.Float(655.7),
		AxialTilt:    validation.Float(6.68),
	}
}
