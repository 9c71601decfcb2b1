// Package geom holds the canvas geometry: points, rectangles given by two
// opposite corners, bounding boxes and strict containment tests.
package geom

import "math"

// Rect is an axis-aligned rectangle described by two opposite corners.
// The corners are not normalized: X1 may be larger than X2 and Y1 larger
// than Y2. Every function in this package accepts either ordering.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// BoundingBoxFromPoints returns the tightest rectangle around points, with
// the minimum corner in X1/Y1 and the maximum corner in X2/Y2.
// An empty slice yields the zero Rect.
func BoundingBoxFromPoints(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{
		X1: math.Inf(1),
		Y1: math.Inf(1),
		X2: math.Inf(-1),
		Y2: math.Inf(-1),
	}
	for _, p := range points {
		if p.X < r.X1 {
			r.X1 = p.X
		}
		if p.Y < r.Y1 {
			r.Y1 = p.Y
		}
		if p.X > r.X2 {
			r.X2 = p.X
		}
		if p.Y > r.Y2 {
			r.Y2 = p.Y
		}
	}
	return r
}

// ExpandRect moves every coordinate of r away from the opposite corner by
// amount. An axis on which both corners coincide does not grow. A negative
// amount shrinks the rectangle.
func ExpandRect(r Rect, amount float64) Rect {
	return Rect{
		X1: r.X1 + amount*sign(r.X1-r.X2),
		Y1: r.Y1 + amount*sign(r.Y1-r.Y2),
		X2: r.X2 + amount*sign(r.X2-r.X1),
		Y2: r.Y2 + amount*sign(r.Y2-r.Y1),
	}
}

// RectContainsPoint reports whether p lies strictly between the corners of r
// on both axes. Points on the boundary are outside.
func RectContainsPoint(r Rect, p Point) bool {
	// the corners lie on opposite sides of p exactly when the product is negative
	return (r.X1-p.X)*(r.X2-p.X) < 0 && (r.Y1-p.Y)*(r.Y2-p.Y) < 0
}

// RectContainsRect reports whether both defining corners of small are
// strictly inside big.
func RectContainsRect(big, small Rect) bool {
	return RectContainsPoint(big, Point{small.X1, small.Y1}) &&
		RectContainsPoint(big, Point{small.X2, small.Y2})
}

// Expand is ExpandRect(r, amount).
func (r Rect) Expand(amount float64) Rect { return ExpandRect(r, amount) }

// ContainsPoint is RectContainsPoint(r, p).
func (r Rect) ContainsPoint(p Point) bool { return RectContainsPoint(r, p) }

// ContainsRect is RectContainsRect(r, small).
func (r Rect) ContainsRect(small Rect) bool { return RectContainsRect(r, small) }

// Normalize returns the same rectangle with the minimum corner first.
func (r Rect) Normalize() Rect {
	return Rect{
		X1: min(r.X1, r.X2),
		Y1: min(r.Y1, r.Y2),
		X2: max(r.X1, r.X2),
		Y2: max(r.Y1, r.Y2),
	}
}

// Width returns X2 − X1. It may be negative.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns Y2 − Y1. It may be negative.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
