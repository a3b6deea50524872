package composition

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"planet-designer/internal/shared/validation"
)

// State is a fully validated composition snapshot. It is never modified;
// edits produce a new State through Update.
type State struct {
	atmosphere Atmosphere
	water      Water
	surface    Surface
}

// New validates p and returns the snapshot, or a *errors.ValidationError listing every violation.
// The composition is stored as given; it is never rebalanced here.
func New(p Params) (*State, error) {
	if err := collect(p).Err(); err != nil {
		return nil, err
	}

	return &State{
		atmosphere: Atmosphere{
			Composition: p.Atmosphere.mixture(),
			Pressure:    *p.Atmosphere.Pressure,
			Thickness:   *p.Atmosphere.Thickness,
		},
		water: Water{
			Coverage: *p.Water.Coverage,
			Depth:    *p.Water.Depth,
			IceCaps:  *p.Water.IceCaps,
		},
		surface: Surface{
			Albedo:      *p.Surface.Albedo,
			Temperature: *p.Surface.Temperature,
		},
	}, nil
}

func (s *State) Atmosphere() Atmosphere { return s.atmosphere }
func (s *State) Water() Water           { return s.water }
func (s *State) Surface() Surface       { return s.surface }

// Params returns a fresh copy of the stored fields
func (s *State) Params() Params {
	mix := NewMixture(s.atmosphere.Composition.shares...)
	return Params{
		Atmosphere: &AtmosphereParams{
			Composition: &mix,
			Pressure:    validation.Float(s.atmosphere.Pressure),
			Thickness:   validation.Float(s.atmosphere.Thickness),
		},
		Water: &WaterParams{
			Coverage: validation.Float(s.water.Coverage),
			Depth:    validation.Float(s.water.Depth),
			IceCaps:  validation.Float(s.water.IceCaps),
		},
		Surface: &SurfaceParams{
			Albedo:      validation.Float(s.surface.Albedo),
			Temperature: validation.Float(s.surface.Temperature),
		},
	}
}

// Update applies edit to a copy of the parameters and re-validates the whole set
func (s *State) Update(edit func(*Params)) (*State, error) {
	p := s.Params()
	edit(&p)
	return New(p)
}

func (s *State) DominantGas() string {
	return s.atmosphere.Composition.Dominant()
}

// AtmosphereColor classifies the sky colour; the first matching rule wins
func (s *State) AtmosphereColor() Color {
	mix := s.atmosphere.Composition
	n2 := mix.Percent("N2")
	o2, hasO2 := mix.Get("O2")
	co2 := mix.Percent("CO2")
	ch4, hasCH4 := mix.Get("CH4")

	switch {
	case n2 > 60 && o2 > 15:
		return ColorLightBlue
	case co2 > 50:
		return ColorOrangeRed
	case hasCH4 && ch4 > 30:
		return ColorOrange
	case n2 > 80 && (!hasO2 || o2 < 5):
		return ColorAmber
	default:
		return ColorPaleBlue
	}
}

// GreenhouseEffect returns the temperature delta in K. Below 1 atm the logarithm is
// negative, so thin atmospheres cool the surface in this model.
func (s *State) GreenhouseEffect() float64 {
	mix := s.atmosphere.Composition
	co2 := mix.Percent("CO2") / 100
	ch4 := mix.Percent("CH4") / 100
	return (co2*co2GreenhouseFactor + ch4*ch4GreenhouseFactor) *
		math.Log(math.Max(minGreenhousePressure, s.atmosphere.Pressure))
}

func (s *State) EffectiveTemperature() float64 {
	return s.surface.Temperature + s.GreenhouseEffect()
}

// CanSupportLiquidWater checks the effective temperature against a pressure-adjusted
// freezing/boiling band
func (s *State) CanSupportLiquidWater() bool {
	p := s.atmosphere.Pressure
	temp := s.EffectiveTemperature()
	lo := waterFreezingPoint - (1-p)*10
	hi := waterBoilingPoint + (p-1)*20
	return temp >= lo && temp <= hi && p > waterTriplePressure
}

func (s *State) OceanType() OceanType {
	switch {
	case s.EffectiveTemperature() < waterFreezingPoint || s.water.IceCaps > frozenIceCaps:
		return OceanFrozen
	case s.water.Depth > deepOceanDepth:
		return OceanDeep
	case s.water.Depth > midOceanDepth:
		return OceanMedium
	default:
		return OceanShallow
	}
}

// OceanColor returns the packed render colour of OceanType
func (s *State) OceanColor() uint32 {
	return s.OceanType().Packed()
}

func (s *State) Properties() Properties {
	ocean := s.OceanType()
	return Properties{
		DominantGas:           s.DominantGas(),
		AtmosphereColor:       s.AtmosphereColor(),
		GreenhouseEffect:      s.GreenhouseEffect(),
		EffectiveTemperature:  s.EffectiveTemperature(),
		CanSupportLiquidWater: s.CanSupportLiquidWater(),
		Ocean:                 ocean,
		OceanColor:            ocean.Color(),
	}
}

func (s *State) String() string {
	props := s.Properties()

	gases := make([]string, 0, s.atmosphere.Composition.Len())
	for _, g := range s.atmosphere.Composition.shares {
		gases = append(gases, fmt.Sprintf("%s %.2f%%", g.Symbol, g.Percent))
	}

	var b strings.Builder
	b.WriteString("Composition\n")
	fmt.Fprintf(&b, "  Atmosphere:        %s\n", strings.Join(gases, ", "))
	fmt.Fprintf(&b, "  Pressure:          %.3f atm\n", s.atmosphere.Pressure)
	fmt.Fprintf(&b, "  Thickness:         %.1f km\n", s.atmosphere.Thickness)
	fmt.Fprintf(&b, "  Water coverage:    %.1f%%\n", s.water.Coverage)
	fmt.Fprintf(&b, "  Water depth:       %.2f km\n", s.water.Depth)
	fmt.Fprintf(&b, "  Ice caps:          %.1f%%\n", s.water.IceCaps)
	fmt.Fprintf(&b, "  Albedo:            %.2f\n", s.surface.Albedo)
	fmt.Fprintf(&b, "  Temperature:       %.1f K\n", s.surface.Temperature)
	b.WriteString("Derived properties\n")
	fmt.Fprintf(&b, "  Dominant gas:      %s\n", props.DominantGas)
	fmt.Fprintf(&b, "  Atmosphere color:  %s\n", props.AtmosphereColor.Hex())
	fmt.Fprintf(&b, "  Greenhouse effect: %+.2f K\n", props.GreenhouseEffect)
	fmt.Fprintf(&b, "  Effective temp:    %.1f K\n", props.EffectiveTemperature)
	fmt.Fprintf(&b, "  Liquid water:      %t\n", props.CanSupportLiquidWater)
	fmt.Fprintf(&b, "  Ocean:             %s (%s)\n", props.Ocean, props.OceanColor.Hex())
	return b.String()
}

func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Params())
}

// UnmarshalJSON decodes Params and runs full validation, so a decoded State is always valid
func (s *State) UnmarshalJSON(data []byte) error {
	var p Params
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	state, err := New(p)
	if err != nil {
		return err
	}
	*s = *state
	return nil
}
