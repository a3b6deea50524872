package preset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/shared/validation"
)

func TestBuiltinPresets(t *testing.T) {
	c := Builtin()

	for _, name := range []string{"Earth", "mars", "JUPITER", " Moon "} {
		_, ok := c.Physical(name)
		assert.True(t, ok, name)
	}
	for _, name := range []string{"earth", "Mars", "venus"} {
		_, ok := c.Composition(name)
		assert.True(t, ok, name)
	}

	_, ok := c.Physical("Pluto")
	assert.False(t, ok)

	earth, _ := c.Physical("earth")
	assert.Equal(t, physical.Earth(), earth)
}

func TestLookupReturnsCopies(t *testing.T) {
	c := Builtin()

	p, _ := c.Physical("earth")
	*p.Mass = 1
	again, _ := c.Physical("earth")
	assert.Equal(t, 5.972e24, *again.Mass)

	comp, _ := c.Composition("earth")
	comp.Water.Depth = validation.Float(99)
	fresh, _ := c.Composition("earth")
	assert.Equal(t, 3.7, *fresh.Water.Depth)
}

func TestListOrder(t *testing.T) {
	l := Builtin().List()

	names := func(ps []PhysicalPreset) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}
	assert.Equal(t, []string{"Earth", "Mars", "Jupiter", "Moon"}, names(l.Physical))
	require.Len(t, l.Composition, 3)
	assert.Equal(t, "Venus", l.Composition[2].Name)
	assert.Equal(t, "CO2", l.Composition[2].Properties.DominantGas)

	data, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"surface_gravity"`)
}

func TestLoadFileAndMerge(t *testing.T) {
	defs, err := LoadFile("testdata/worlds.toml")
	require.NoError(t, err)
	require.Len(t, defs, 2)

	ocean := defs[0]
	assert.Equal(t, "Ocean World", ocean.Name)
	require.NotNil(t, ocean.Physical)
	assert.Equal(t, 7200.0, *ocean.Physical.Radius)
	assert.True(t, ocean.HasComposition())

	params := ocean.CompositionParams()
	require.NotNil(t, params.Atmosphere.Composition)
	// equal shares resolve to the first gas listed
	assert.Equal(t, "O2", params.Atmosphere.Composition.Dominant())

	assert.False(t, defs[1].HasComposition())

	c := Builtin()
	require.NoError(t, c.Merge(defs))

	_, ok := c.Physical("ocean world")
	assert.True(t, ok)
	_, ok = c.Composition("Ocean World")
	assert.True(t, ok)

	mars, _ := c.Physical("Mars")
	assert.Equal(t, 30.0, *mars.AxialTilt, "file preset overrides built-in")
	assert.Len(t, c.List().Physical, 5)
}

func TestMergeRejectsInvalidDefinition(t *testing.T) {
	defs, err := ParseDefinitions([]byte(`
[[planet]]
name = "Broken"

[planet.physical]
mass = 1.0e40
radius = 6371.0
density = 5514.0
rotation_rate = 24.0
axial_tilt = 23.0
`))
	require.NoError(t, err)

	err = Builtin().Merge(defs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}

func TestParseDefinitionsRequiresName(t *testing.T) {
	_, err := ParseDefinitions([]byte("[[planet]]\n[planet.physical]\nmass = 1.0e24\n"))
	assert.Error(t, err)

	_, err = ParseDefinitions([]byte("[[planet"))
	assert.Error(t, err)
}

func TestCompositionParamsDefaultsMixture(t *testing.T) {
	def := Definition{
		Name: "Default air",
		Atmosphere: &AtmosphereDefinition{
			Pressure:  validation.Float(1),
			Thickness: validation.Float(80),
		},
	}

	p := def.CompositionParams()
	assert.Nil(t, p.Atmosphere.Composition)
	assert.Nil(t, p.Water)

	res := composition.Validate(p)
	assert.Equal(t, []string{"Water parameters are required", "Surface parameters are required"}, res.Errors)
}

func TestFindCombinesBothKinds(t *testing.T) {
	c := Builtin()

	entry, ok := c.Find(" MARS ")
	require.True(t, ok)
	assert.Equal(t, "Mars", entry.Name)
	require.NotNil(t, entry.Physical)
	require.NotNil(t, entry.Composition)

	entry, ok = c.Find("moon")
	require.True(t, ok)
	assert.Nil(t, entry.Composition)

	_, ok = c.Find("pluto")
	assert.False(t, ok)
}
