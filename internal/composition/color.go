package composition

import (
	"encoding/json"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple with each channel in [0,1]
type Color struct {
	R float64
	G float64
	B float64
}

var (
	ColorLightBlue = Color{0.3, 0.6, 1.0}
	ColorOrangeRed = Color{1.0, 0.5, 0.3}
	ColorOrange    = Color{1.0, 0.7, 0.4}
	ColorAmber     = Color{1.0, 0.8, 0.5}
	ColorPaleBlue  = Color{0.5, 0.7, 0.9}
)

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// Hex returns the colour as #rrggbb
func (c Color) Hex() string {
	return c.toColorful().Clamped().Hex()
}

// Packed returns the colour as 0xRRGGBB
func (c Color) Packed() uint32 {
	r, g, b := c.toColorful().Clamped().RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

func colorFromPacked(p uint32) Color {
	return Color{
		R: float64(p>>16&0xff) / 255,
		G: float64(p>>8&0xff) / 255,
		B: float64(p&0xff) / 255,
	}
}

func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		R   float64 `json:"r"`
		G   float64 `json:"g"`
		B   float64 `json:"b"`
		Hex string  `json:"hex"`
	}{c.R, c.G, c.B, c.Hex()})
}

// OceanType classifies the look of surface water
type OceanType string

const (
	OceanFrozen  OceanType = "frozen"
	OceanDeep    OceanType = "deep"
	OceanMedium  OceanType = "medium"
	OceanShallow OceanType = "shallow"
)

var oceanPacked = map[OceanType]uint32{
	OceanFrozen:  0xe0f0ff,
	OceanDeep:    0x001a4d,
	OceanMedium:  0x004080,
	OceanShallow: 0x0066aa,
}

// Packed returns the render colour of the ocean type as 0xRRGGBB
func (o OceanType) Packed() uint32 {
	return oceanPacked[o]
}

func (o OceanType) Color() Color {
	return colorFromPacked(o.Packed())
}
