package planet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	apperrors "planet-designer/internal/shared/errors"
)

func TestEvaluateEarth(t *testing.T) {
	report, err := Evaluate(earthRequest())
	require.NoError(t, err)

	assert.InDelta(t, 9.82, report.Physical.Properties.SurfaceGravity, 0.05)
	assert.InDelta(t, 11.19, report.Physical.Properties.EscapeVelocity, 0.05)
	assert.Equal(t, "N2", report.Composition.Properties.DominantGas)
	assert.True(t, report.Composition.Properties.CanSupportLiquidWater)
	assert.Equal(t, composition.OceanMedium, report.Composition.Properties.Ocean)
}

func TestEvaluateReportsPhysicalViolationsFirst(t *testing.T) {
	req := earthRequest()
	req.Physical.Mass = nil
	req.Composition.Water = nil

	_, err := Evaluate(req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.GetType(err))
	assert.Equal(t, []string{
		"Mass must be a number",
		"Water parameters are required",
	}, apperrors.Violations(err))
}

func TestValidateNeverFails(t *testing.T) {
	req := EvaluateRequest{Physical: physical.Params{}, Composition: composition.Params{}}

	report := Validate(req)
	assert.False(t, report.IsValid)
	assert.Len(t, report.Physical.Errors, 5)
	assert.Equal(t, []string{
		"Atmosphere parameters are required",
		"Water parameters are required",
		"Surface parameters are required",
	}, report.Composition.Errors)

	report = Validate(earthRequest())
	assert.True(t, report.IsValid)
	assert.Empty(t, report.Physical.Errors)
	assert.Empty(t, report.Composition.Errors)
}
