package contour

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ToMask rasterizes polygon into a height×width binary matrix: 1 inside the
// polygon, 0 outside. Width and height are the dimensions of the image the
// contour annotates, so the mask is aligned pixel-for-pixel with it.
// Containment is decided by the even-odd rule at pixel centers.
//
// Polygons with fewer than three vertices or zero area return ErrDegenerate.
func ToMask(polygon []Point, width, height int) (*mat.Dense, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("mask dimensions %dx%d out of range", width, height)
	}
	if len(polygon) < 3 {
		return nil, fmt.Errorf("polygon has %d points, need at least 3: %w", len(polygon), ErrDegenerate)
	}
	if area(polygon) == 0 {
		return nil, fmt.Errorf("polygon encloses no area: %w", ErrDegenerate)
	}

	m := mat.NewDense(height, width, nil)
	for y := 0; y < height; y++ {
		cy := float64(y) + 0.5
		for x := 0; x < width; x++ {
			if inside(polygon, float64(x)+0.5, cy) {
				m.Set(y, x, 1)
			}
		}
	}
	return m, nil
}

// inside reports whether (x, y) is inside the polygon under the even-odd
// rule, by counting edge crossings of a ray cast in +x.
func inside(polygon []Point, x, y float64) bool {
	in := false
	j := len(polygon) - 1
	for i := range polygon {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			in = !in
		}
		j = i
	}
	return in
}

// area returns the absolute area enclosed by the polygon (shoelace formula).
func area(polygon []Point) float64 {
	var sum float64
	j := len(polygon) - 1
	for i := range polygon {
		sum += (polygon[j].X + polygon[i].X) * (polygon[j].Y - polygon[i].Y)
		j = i
	}
	return math.Abs(sum / 2)
}
