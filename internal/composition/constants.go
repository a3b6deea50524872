package composition

import "planet-designer/internal/shared/validation"

// CompositionSumTolerance is how far, in percentage points, the gas shares may sum away from 100
const CompositionSumTolerance = 1.0

const (
	waterFreezingPoint = 273.0 // K at 1 atm
	waterBoilingPoint  = 373.0 // K at 1 atm
	// minimum pressure for liquid water, roughly the triple point
	waterTriplePressure   = 0.006 // atm
	minGreenhousePressure = 0.01  // atm, floor for the logarithm

	co2GreenhouseFactor = 30.0
	ch4GreenhouseFactor = 20.0

	frozenIceCaps  = 80.0 // percent
	deepOceanDepth = 5.0  // km
	midOceanDepth  = 1.0  // km
)

// Accepted input ranges
var (
	GasPercentRange  = validation.Range{Min: 0, Max: 100}
	PressureRange    = validation.Range{Min: 0, Max: 100, Unit: "atm"}
	ThicknessRange   = validation.Range{Min: 0, Max: 1000, Unit: "km"}
	CoverageRange    = validation.Range{Min: 0, Max: 100, Unit: "%"}
	DepthRange       = validation.Range{Min: 0, Max: 100, Unit: "km"}
	IceCapsRange     = validation.Range{Min: 0, Max: 100, Unit: "%"}
	AlbedoRange      = validation.Range{Min: 0, Max: 1}
	TemperatureRange = validation.Range{Min: 0, Max: 1000, Unit: "K"}
)
