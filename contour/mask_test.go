package contour_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvseg/dicomflow/contour"
)

func square(x0, y0, x1, y1 float64) []contour.Point {
	return []contour.Point{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}
}

func TestToMask_Square(t *testing.T) {
	mask, err := contour.ToMask(square(1, 1, 4, 4), 6, 6)
	require.NoError(t, err)

	rows, cols := mask.Dims()
	require.Equal(t, 6, rows)
	require.Equal(t, 6, cols)

	// Pixel centers 1.5, 2.5, and 3.5 fall inside the square on each axis.
	var inside float64
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			inside += mask.At(y, x)
		}
	}
	assert.Equal(t, float64(9), inside)

	assert.Equal(t, float64(1), mask.At(2, 2))
	assert.Equal(t, float64(0), mask.At(0, 0))
	assert.Equal(t, float64(0), mask.At(5, 5))
	assert.Equal(t, float64(0), mask.At(2, 5), "pixels right of the square are outside")
}

func TestToMask_Triangle(t *testing.T) {
	triangle := []contour.Point{{X: 0, Y: 0}, {X: 8, Y: 0}, {X: 0, Y: 8}}

	mask, err := contour.ToMask(triangle, 8, 8)
	require.NoError(t, err)

	assert.Equal(t, float64(1), mask.At(0, 0), "near the right angle")
	assert.Equal(t, float64(0), mask.At(7, 7), "opposite corner")
	// The hypotenuse runs from (8,0) to (0,8); a center on the far side of
	// it stays clear.
	assert.Equal(t, float64(0), mask.At(6, 6))
	assert.Equal(t, float64(1), mask.At(1, 5))
}

func TestToMask_MatchesImageDimensions(t *testing.T) {
	mask, err := contour.ToMask(square(2, 2, 5, 5), 16, 10)
	require.NoError(t, err)

	rows, cols := mask.Dims()
	assert.Equal(t, 10, rows)
	assert.Equal(t, 16, cols)
}

func TestToMask_Errors(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		_, err := contour.ToMask([]contour.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, 8, 8)
		require.ErrorIs(t, err, contour.ErrDegenerate)
	})

	t.Run("zero area", func(t *testing.T) {
		collinear := []contour.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
		_, err := contour.ToMask(collinear, 8, 8)
		require.ErrorIs(t, err, contour.ErrDegenerate)
	})

	t.Run("bad dimensions", func(t *testing.T) {
		_, err := contour.ToMask(square(1, 1, 4, 4), 0, 8)
		require.Error(t, err)
		_, err = contour.ToMask(square(1, 1, 4, 4), 8, -1)
		require.Error(t, err)
	})
}
