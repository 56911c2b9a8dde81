// Package contour parses contour annotation files and rasterizes them into
// pixel masks. An annotation file holds one polygon vertex per line as a
// whitespace-separated "x y" pair of pixel coordinates.
package contour

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrDegenerate is returned when a polygon cannot enclose any area.
var ErrDegenerate = errors.New("degenerate polygon")

// Point is a polygon vertex in pixel coordinates. X is the column and Y the
// row, matching the annotation file format.
type Point struct {
	X float64
	Y float64
}

// ParseFile reads the polygon from the annotation file at path. A polygon
// needs at least three vertices; files with malformed lines or too few
// points are errors.
func ParseFile(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var points []Point
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: want \"x y\", got %q", path, lineNo, line)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		points = append(points, Point{X: x, Y: y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(points) < 3 {
		return nil, fmt.Errorf("%s: polygon has %d points, need at least 3: %w", path, len(points), ErrDegenerate)
	}
	return points, nil
}
