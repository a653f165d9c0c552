package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateHatchLength(t *testing.T) {
	positions := []float64{0, 1, 2, 3, 4}
	values := []float64{1, -2, 3, -4, 5}

	for density := 0; density <= 10; density++ {
		h, err := GenerateHatch(positions, values, density)
		require.NoError(t, err)
		assert.Equal(t, (len(positions)-1)*(density+2), h.Len())
		assert.Len(t, h.Values, h.Len())
	}
}

func TestGenerateHatchZeroDensity(t *testing.T) {
	positions := []float64{0, 1, 2}
	values := []float64{4, -2, 6}

	h, err := GenerateHatch(positions, values, 0)
	require.NoError(t, err)
	// every segment reproduces its own endpoints
	assert.Equal(t, []float64{0, 1, 1, 2}, h.Positions)
	assert.Equal(t, []float64{4, -2, -2, 6}, h.Values)
}

func TestGenerateHatchInterpolates(t *testing.T) {
	h, err := GenerateHatch([]float64{0, 1}, []float64{0, 10}, 3)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 0.25, 0.5, 0.75, 1}, h.Positions, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 2.5, 5, 7.5, 10}, h.Values, 1e-12)
	assert.Equal(t, 10.0, h.Values[4], "segment end is exact")
}

func TestGenerateHatchIsPure(t *testing.T) {
	positions := []float64{0, 1, 2}
	values := []float64{5, -3, 7}

	a, err := GenerateHatch(positions, values, 4)
	require.NoError(t, err)
	b, err := GenerateHatch(positions, values, 4)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, []float64{5, -3, 7}, values)
}

func TestGenerateHatchErrors(t *testing.T) {
	_, err := GenerateHatch([]float64{0, 1}, []float64{1, 2}, -1)
	assert.ErrorIs(t, err, ErrInvalidDensity)

	// density is checked before the series
	_, err = GenerateHatch(nil, nil, -3)
	assert.ErrorIs(t, err, ErrInvalidDensity)

	_, err = GenerateHatch([]float64{0}, []float64{1}, 2)
	assert.ErrorIs(t, err, ErrShortSeries)

	_, err = GenerateHatch([]float64{0, 1, 2}, []float64{1, 2}, 2)
	assert.ErrorIs(t, err, ErrShortSeries)
}

func TestInterpolatePath(t *testing.T) {
	axes, err := InterpolatePath(1,
		[]float64{0, 10},
		[]float64{2, 4},
		[]float64{5, 5},
	)
	require.NoError(t, err)
	require.Len(t, axes, 3)
	assert.Equal(t, []float64{0, 5, 10}, axes[0])
	assert.Equal(t, []float64{2, 3, 4}, axes[1])
	assert.Equal(t, []float64{5, 5, 5}, axes[2])

	_, err = InterpolatePath(1)
	assert.ErrorIs(t, err, ErrShortSeries)
}
