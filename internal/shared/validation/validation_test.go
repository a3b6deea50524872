package validation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "planet-designer/internal/shared/errors"
)

func TestRangeString(t *testing.T) {
	assert.Equal(t, "between 1e+20 and 1e+30 kg", Range{Min: 1e20, Max: 1e30, Unit: "kg"}.String())
	assert.Equal(t, "between 0 and 100%", Range{Min: 0, Max: 100, Unit: "%"}.String())
	assert.Equal(t, "between 0 and 1", Range{Min: 0, Max: 1}.String())
	assert.Equal(t, "between 0.1 and 1000 hours", Range{Min: 0.1, Max: 1000, Unit: "hours"}.String())
}

func TestIsNumber(t *testing.T) {
	assert.False(t, IsNumber(nil))
	assert.False(t, IsNumber(Float(math.NaN())))
	assert.False(t, IsNumber(Float(math.Inf(1))))
	assert.True(t, IsNumber(Float(0)))
	assert.True(t, IsNumber(Float(-3.5)))
}

func TestCollectorNumber(t *testing.T) {
	r := Range{Min: 100, Max: 100000, Unit: "km"}

	tests := []struct {
		name     string
		value    *float64
		positive bool
		want     []string
	}{
		{"missing", nil, true, []string{"Radius must be a number"}},
		{"zero", Float(0), true, []string{"Radius must be positive", "Radius must be between 100 and 100000 km"}},
		{"too large", Float(2e5), true, []string{"Radius must be between 100 and 100000 km"}},
		{"in range", Float(6371), true, []string{}},
		{"zero without positivity", Float(0), false, []string{"Radius must be between 100 and 100000 km"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Collector
			c.Number("Radius", tt.value, r, tt.positive)
			res := c.Result()
			assert.Equal(t, tt.want, res.Errors)
			assert.Equal(t, len(tt.want) == 0, res.IsValid)
		})
	}
}

func TestCollectorErr(t *testing.T) {
	var c Collector
	require.NoError(t, c.Err())

	c.Add("first")
	c.Addf("second %d", 2)

	err := c.Err()
	require.Error(t, err)
	assert.Equal(t, []string{"first", "second 2"}, apperrors.Violations(err))
	assert.Equal(t, 2, c.Len())
}

func TestNumberFromJSON(t *testing.T) {
	assert.Nil(t, NumberFromJSON(nil))
	assert.Nil(t, NumberFromJSON([]byte(" null ")))

	v := NumberFromJSON([]byte("5.972e24"))
	require.NotNil(t, v)
	assert.Equal(t, 5.972e24, *v)

	for _, raw := range []string{`"heavy"`, `"12"`, `true`, `[1]`, `{}`} {
		v := NumberFromJSON([]byte(raw))
		require.NotNil(t, v, raw)
		assert.False(t, IsNumber(v), raw)
	}
}
