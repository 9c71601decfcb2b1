// Package canvas defines the drawable elements of a board.
//
// Elements form an open tagged union keyed by Kind. Consumers match on the
// concrete type:
//
//	switch e := el.(type) {
//	case *canvas.BrushStroke:
//		...
//	}
//
// Implementations are pointer types, so comparing two Element values compares
// identity. New kinds join the JSON codec through Register.
package canvas

import (
	"slices"

	"github.com/google/uuid"

	"LocalCanvas/internal/geom"
)

type Kind string

const KindBrushStroke Kind = "brush-stroke"

// Element is anything that can sit on the canvas.
type Element interface {
	Kind() Kind
	ElementID() string
	Bounds() geom.Rect
}

// StrokeAndFillStyling describes how an element is painted. Colours are
// packed 0xRRGGBB values; FillColor may be colorconv.NoFill.
type StrokeAndFillStyling struct {
	StrokeWidth  float64    `json:"strokeWidth"`
	StrokeColor  int        `json:"strokeColor"`
	FillColor    int        `json:"fillColor"`
	StripeWidths [2]float64 `json:"stripeWidths"`
}

// Striped reports whether the stripe pattern should be applied.
func (s StrokeAndFillStyling) Striped() bool {
	return s.StripeWidths[0] > 0 && s.StripeWidths[1] > 0
}

// BrushStroke is a freehand path.
type BrushStroke struct {
	ID          string               `json:"id"`
	BoundingBox geom.Rect            `json:"boundingBox"`
	Points      []geom.Point         `json:"points"`
	Style       StrokeAndFillStyling `json:"style"`
}

var _ Element = (*BrushStroke)(nil)

// NewBrushStroke copies points into a new stroke with a fresh ID and the
// bounding box of the points.
func NewBrushStroke(points []geom.Point, style StrokeAndFillStyling) *BrushStroke {
	pts := slices.Clone(points)
	if pts == nil {
		pts = []geom.Point{}
	}
	return &BrushStroke{
		ID:          uuid.NewString(),
		BoundingBox: geom.BoundingBoxFromPoints(pts),
		Points:      pts,
		Style:       style,
	}
}

func (s *BrushStroke) Kind() Kind { return KindBrushStroke }
func (s *BrushStroke) ElementID() string { return s.ID }
func (s *BrushStroke) Bounds() geom.Rect { return s.BoundingBox }

// ContainSameElements reports whether a and b have the same length and every
// element of a occurs somewhere in b. Multiplicity is ignored and membership
// is only checked from a into b.
func ContainSameElements[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		if !slices.Contains(b, x) {
			return false
		}
	}
	return true
}
