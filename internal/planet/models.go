package planet

import (
	"time"

	"github.com/google/uuid"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	"planet-designer/internal/shared/validation"
)

// EvaluateRequest is a proposed pair of parameter sets, as sent by the UI after each edit
type EvaluateRequest struct {
	Physical    physical.Params    `json:"physical"`
	Composition composition.Params `json:"composition"`
}

// Report is the snapshot the rendering layer reads after a validated edit
type Report struct {
	Physical    PhysicalReport    `json:"physical"`
	Composition CompositionReport `json:"composition"`
}

type PhysicalReport struct {
	State      *physical.State     `json:"params"`
	Properties physical.Properties `json:"properties"`
}

type CompositionReport struct {
	State      *composition.State     `json:"params"`
	Properties composition.Properties `json:"properties"`
}

// ValidationReport is the non-failing result of checking both parameter sets
type ValidationReport struct {
	IsValid     bool              `json:"is_valid"`
	Physical    validation.Result `json:"physical"`
	Composition validation.Result `json:"composition"`
}

// Design is a saved, fully validated planet
type Design struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Physical    *physical.State    `json:"physical"`
	Composition *composition.State `json:"composition"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type DesignRequest struct {
	Name        string             `json:"name"`
	Physical    physical.Params    `json:"physical"`
	Composition composition.Params `json:"composition"`
}

// CreatedDesign carries the token needed for later edits of the design
type CreatedDesign struct {
	Design    *Design `json:"design"`
	EditToken string  `json:"edit_token"`
}

const (
	maxDesignNameLength = 100
	defaultListLimit    = 100
)
