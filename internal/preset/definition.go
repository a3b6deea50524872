package preset

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
)

// Definition is one planet entry of a TOML file:
//
//	[[planet]]
//	name = "Ocean world"
//
//	[planet.physical]
//	mass = 8.1e24
//	...
//
//	[planet.atmosphere]
//	pressure = 1.4
//	thickness = 120
//
//	[[planet.atmosphere.gas]]
//	symbol = "N2"
//	percent = 80
type Definition struct {
	Name       string                     `toml:"name"`
	Physical   *physical.Params           `toml:"physical"`
	Atmosphere *AtmosphereDefinition      `toml:"atmosphere"`
	Water      *composition.WaterParams   `toml:"water"`
	Surface    *composition.SurfaceParams `toml:"surface"`
}

// AtmosphereDefinition lists gases as an array so their order survives decoding
type AtmosphereDefinition struct {
	Pressure  *float64               `toml:"pressure"`
	Thickness *float64               `toml:"thickness"`
	Gases     []composition.GasShare `toml:"gas"`
}

type file struct {
	Planets []Definition `toml:"planet"`
}

// ParseDefinitions decodes a TOML document of [[planet]] entries
func ParseDefinitions(data []byte) ([]Definition, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse planet definitions: %w", err)
	}

	for i, def := range f.Planets {
		if def.Name == "" {
			return nil, fmt.Errorf("planet definition %d has no name", i+1)
		}
	}

	return f.Planets, nil
}

func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read planet definitions: %w", err)
	}
	return ParseDefinitions(data)
}

// HasComposition reports whether any composition group is present
func (d Definition) HasComposition() bool {
	return d.Atmosphere != nil || d.Water != nil || d.Surface != nil
}

// CompositionParams converts the TOML layout into composition parameters.
// An atmosphere without gas entries gets the default mixture.
func (d Definition) CompositionParams() composition.Params {
	p := composition.Params{
		Water:   d.Water,
		Surface: d.Surface,
	}

	if d.Atmosphere != nil {
		p.Atmosphere = &composition.AtmosphereParams{
			Pressure:  d.Atmosphere.Pressure,
			Thickness: d.Atmosphere.Thickness,
		}
		if len(d.Atmosphere.Gases) > 0 {
			mix := composition.NewMixture(d.Atmosphere.Gases...)
			p.Atmosphere.Composition = &mix
		}
	}

	return p
}
