package planet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planet-designer/internal/composition"
	"planet-designer/internal/physical"
	apperrors "planet-designer/internal/shared/errors"
)

func TestServiceEvaluateCachesValidReports(t *testing.T) {
	svc, cache := newTestService(t)
	ctx := context.Background()

	first, err := svc.Evaluate(ctx, earthRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	second, err := svc.Evaluate(ctx, earthRequest())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestServiceEvaluateDoesNotCacheInvalid(t *testing.T) {
	svc, cache := newTestService(t)

	req := earthRequest()
	req.Physical.Radius = nil

	_, err := svc.Evaluate(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, []string{"Radius must be a number"}, apperrors.Violations(err))
	assert.Equal(t, 0, cache.Len())
}

func designRequest(name string) DesignRequest {
	return DesignRequest{
		Name:        name,
		Physical:    physical.Mars(),
		Composition: composition.MarsComposition(),
	}
}

func TestDesignLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateDesign(ctx, designRequest("  Red planet  "))
	require.NoError(t, err)
	assert.Equal(t, "Red planet", created.Design.Name)
	assert.NotEmpty(t, created.EditToken)

	claims, err := svc.tokens.Validate(created.EditToken)
	require.NoError(t, err)
	assert.Equal(t, created.Design.ID.String(), claims.DesignID)

	got, err := svc.GetDesign(ctx, created.Design.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Design.Physical.Params(), got.Physical.Params())
	assert.Equal(t,
		composition.MarsComposition().Atmosphere.Composition.Shares(),
		got.Composition.Atmosphere().Composition.Shares(),
	)
	assert.True(t, created.Design.CreatedAt.Equal(got.CreatedAt))

	report, err := svc.GetDesignReport(ctx, created.Design.ID)
	require.NoError(t, err)
	assert.Equal(t, "CO2", report.Composition.Properties.DominantGas)

	update := designRequest("Terraformed")
	update.Physical.AxialTilt = floatPtr(10)
	updated, err := svc.UpdateDesign(ctx, created.Design.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Terraformed", updated.Name)
	assert.True(t, created.Design.CreatedAt.Equal(updated.CreatedAt))

	designs, err := svc.ListDesigns(ctx)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, 10.0, designs[0].Physical.AxialTilt())

	require.NoError(t, svc.DeleteDesign(ctx, created.Design.ID))

	_, err = svc.GetDesign(ctx, created.Design.ID)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func TestCreateDesignReportsAllViolations(t *testing.T) {
	svc, _ := newTestService(t)

	req := designRequest("   ")
	req.Physical.Mass = nil
	req.Composition.Surface = nil

	_, err := svc.CreateDesign(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, []string{
		"Name is required",
		"Mass must be a number",
		"Surface parameters are required",
	}, apperrors.Violations(err))

	designs, err := svc.ListDesigns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, designs)
}

func TestCreateDesignRejectsLongName(t *testing.T) {
	svc, _ := newTestService(t)

	name := make([]rune, maxDesignNameLength+1)
	for i := range name {
		name[i] = 'x'
	}

	_, err := svc.CreateDesign(context.Background(), designRequest(string(name)))
	assert.Equal(t, []string{"Name must be at most 100 characters"}, apperrors.Violations(err))
}

func TestMissingDesignIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.UpdateDesign(ctx, id, designRequest("ghost"))
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))

	err = svc.DeleteDesign(ctx, id)
	assert.Equal(t, apperrors.ErrorTypeNotFound, apperrors.GetType(err))
}

func floatPtr(v float64) *float64 {
	return &v
}
