package preset

import (
	"fmt"
	"strings"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
)

// PhysicalPreset is a named, validated physical template
type PhysicalPreset struct {
	Name       string              `json:"name"`
	State      *physical.State     `json:"params"`
	Properties physical.Properties `json:"properties"`
}

// CompositionPreset is a named, validated composition template
type CompositionPreset struct {
	Name       string                 `json:"name"`
	State      *composition.State     `json:"params"`
	Properties composition.Properties `json:"properties"`
}

// Catalog holds read-only presets in display order. Lookups return fresh Params.
type Catalog struct {
	physical    []PhysicalPreset
	composition []CompositionPreset
}

type Listing struct {
	Physical    []PhysicalPreset    `json:"physical"`
	Composition []CompositionPreset `json:"composition"`
}

// Builtin returns the Earth, Mars, Jupiter and Moon physical presets and the
// Earth, Mars and Venus composition presets
func Builtin() *Catalog {
	c := &Catalog{}

	for _, p := range []struct {
		name   string
		params physical.Params
	}{
		{"Earth", physical.Earth()},
		{"Mars", physical.Mars()},
		{"Jupiter", physical.Jupiter()},
		{"Moon", physical.Moon()},
	} {
		if err := c.addPhysical(p.name, p.params); err != nil {
			panic(fmt.Sprintf("built-in preset %s: %v", p.name, err))
		}
	}

	for _, p := range []struct {
		name   string
		params composition.Params
	}{
		{"Earth", composition.EarthComposition()},
		{"Mars", composition.MarsComposition()},
		{"Venus", composition.VenusComposition()},
	} {
		if err := c.addComposition(p.name, p.params); err != nil {
			panic(fmt.Sprintf("built-in composition preset %s: %v", p.name, err))
		}
	}

	return c
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (c *Catalog) addPhysical(name string, params physical.Params) error {
	state, err := physical.New(params)
	if err != nil {
		return err
	}

	preset := PhysicalPreset{Name: name, State: state, Properties: state.Properties()}
	for i := range c.physical {
		if normalize(c.physical[i].Name) == normalize(name) {
			c.physical[i] = preset
			return nil
		}
	}
	c.physical = append(c.physical, preset)
	return nil
}

func (c *Catalog) addComposition(name string, params composition.Params) error {
	state, err := composition.New(params)
	if err != nil {
		return err
	}

	preset := CompositionPreset{Name: name, State: state, Properties: state.Properties()}
	for i := range c.composition {
		if normalize(c.composition[i].Name) == normalize(name) {
			c.composition[i] = preset
			return nil
		}
	}
	c.composition = append(c.composition, preset)
	return nil
}

// Merge validates and adds file definitions; a definition replaces a preset of the same name
func (c *Catalog) Merge(defs []Definition) error {
	for _, def := range defs {
		if def.Physical != nil {
			if err := c.addPhysical(def.Name, *def.Physical); err != nil {
				return fmt.Errorf("preset %s: %w", def.Name, err)
			}
		}
		if def.HasComposition() {
			if err := c.addComposition(def.Name, def.CompositionParams()); err != nil {
				return fmt.Errorf("composition preset %s: %w", def.Name, err)
			}
		}
	}
	return nil
}

func (c *Catalog) Physical(name string) (physical.Params, bool) {
	for _, p := range c.physical {
		if normalize(p.Name) == normalize(name) {
			return p.State.Params(), true
		}
	}
	return physical.Params{}, false
}

func (c *Catalog) Composition(name string) (composition.Params, bool) {
	for _, p := range c.composition {
		if normalize(p.Name) == normalize(name) {
			return p.State.Params(), true
		}
	}
	return composition.Params{}, false
}

func (c *Catalog) List() Listing {
	l := Listing{
		Physical:    make([]PhysicalPreset, len(c.physical)),
		Composition: make([]CompositionPreset, len(c.composition)),
	}
	copy(l.Physical, c.physical)
	copy(l.Composition, c.composition)
	return l
}

// Entry is everything the catalog holds under one name
type Entry struct {
	Name        string             `json:"name"`
	Physical    *PhysicalPreset    `json:"physical,omitempty"`
	Composition *CompositionPreset `json:"composition,omitempty"`
}

// Find returns the presets stored under name, if any
func (c *Catalog) Find(name string) (Entry, bool) {
	e := Entry{Name: name}
	for i := range c.physical {
		if normalize(c.physical[i].Name) == normalize(name) {
			p := c.physical[i]
			e.Name = p.Name
			e.Physical = &p
		}
	}
	for i := range c.composition {
		if normalize(c.composition[i].Name) == normalize(name) {
			p := c.composition[i]
			e.Name = p.Name
			e.Composition = &p
		}
	}
	return e, e.Physical != nil || e.Composition != nil
}
