// Package geometry reduces word quadrilaterals to axis-aligned rectangles.
package geometry

import (
	"math"

	"github.com/kailas-cloud/pagehighlight/internal/domain/ocr"
)

// Rect is an axis-aligned region in page-space units.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Array returns the rectangle as (x, y, width, height).
func (r Rect) Array() [4]float64 { return [4]float64{r.X, r.Y, r.Width, r.Height} }

// MergeBoundingBoxes returns the smallest rectangle enclosing every corner of polys.
// polys must be non-empty; an empty slice is a caller bug and panics.
func MergeBoundingBoxes(polys []ocr.Polygon) Rect {
	if len(polys) == 0 {
		panic("geometry: MergeBoundingBoxes called with no polygons")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range polys {
		for _, x := range p.Xs() {
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
		}
		for _, y := range p.Ys() {
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Bounds returns the enclosing rectangle of a single polygon.
func Bounds(p ocr.Polygon) Rect {
	return MergeBoundingBoxes([]ocr.Polygon{p})
}
