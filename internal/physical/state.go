package physical

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"planet-designer/internal/shared/validation"
)

// State is a fully validated physical parameter snapshot. It is never modified;
// edits produce a new State through Update.
type State struct {
	mass         float64
	radius       float64
	density      float64
	rotationRate float64
	axialTilt    float64
}

// New validates p and returns the snapshot, or a *errors.ValidationError listing every violation.
func New(p Params) (*State, error) {
	if err := collect(p).Err(); err != nil {
		return nil, err
	}

	return &State{
		mass:         *p.Mass,
		radius:       *p.Radius,
		density:      *p.Density,
		rotationRate: *p.RotationRate,
		axialTilt:    *p.AxialTilt,
	}, nil
}

func (s *State) Mass() float64         { return s.mass }
func (s *State) Radius() float64       { return s.radius }
func (s *State) Density() float64      { return s.density }
func (s *State) RotationRate() float64 { return s.rotationRate }
func (s *State) AxialTilt() float64    { return s.axialTilt }

// Params returns a fresh copy of the stored fields
func (s *State) Params() Params {
	return Params{
		Mass:         validation.Float(s.mass),
		Radius:       validation.Float(s.radius),
		Density:      validation.Float(s.density),
		RotationRate: validation.Float(s.rotationRate),
		AxialTilt:    validation.Float(s.axialTilt),
	}
}

// Update applies edit to a copy of the parameters and re-validates the whole set
func (s *State) Update(edit func(*Params)) (*State, error) {
	p := s.Params()
	edit(&p)
	return New(p)
}

func (s *State) radiusMeters() float64 {
	return s.radius * metersPerKilometer
}

// SurfaceGravity returns the surface gravity in m/s²
func (s *State) SurfaceGravity() float64 {
	r := s.radiusMeters()
	return G * s.mass / (r * r)
}

// EscapeVelocity returns the escape velocity in km/s
func (s *State) EscapeVelocity() float64 {
	return math.Sqrt(2*G*s.mass/s.radiusMeters()) / metersPerKilometer
}

// Volume returns the volume in km³
func (s *State) Volume() float64 {
	return 4.0 / 3.0 * math.Pi * math.Pow(s.radius, 3)
}

// IsDensityConsistent reports whether mass over volume matches the stored density within DensityTolerance
func (s *State) IsDensityConsistent() bool {
	computed := s.mass / (s.Volume() * cubicMetersPerKm3)
	return math.Abs(computed-s.density)/s.density <= DensityTolerance
}

func (s *State) Properties() Properties {
	return Properties{
		SurfaceGravity:    s.SurfaceGravity(),
		EscapeVelocity:    s.EscapeVelocity(),
		Volume:            s.Volume(),
		DensityConsistent: s.IsDensityConsistent(),
	}
}

func (s *State) String() string {
	props := s.Properties()

	var b strings.Builder
	b.WriteString("Physical parameters\n")
	fmt.Fprintf(&b, "  Mass:              %.4e kg\n", s.mass)
	fmt.Fprintf(&b, "  Radius:            %.1f km\n", s.radius)
	fmt.Fprintf(&b, "  Density:           %.1f kg/m³\n", s.density)
	fmt.Fprintf(&b, "  Rotation:          %.2f hours\n", s.rotationRate)
	fmt.Fprintf(&b, "  Axial tilt:        %.2f°\n", s.axialTilt)
	b.WriteString("Derived properties\n")
	fmt.Fprintf(&b, "  Surface gravity:   %.2f m/s²\n", props.SurfaceGravity)
	fmt.Fprintf(&b, "  Escape velocity:   %.2f km/s\n", props.EscapeVelocity)
	fmt.Fprintf(&b, "  Volume:            %.4e km³\n", props.Volume)
	fmt.Fprintf(&b, "  Density consistent: %t\n", props.DensityConsistent)
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
