// Package capture turns fyne pointer input into brush strokes.
package capture

import (
	"fyne.io/fyne/v2"

	"LocalCanvas/internal/canvas"
	"LocalCanvas/internal/geom"
)

// Recorder follows one pointer. A press starts a stroke, drags extend it and
// the release hands it back. Drags and scrolls outside a stroke pan the view.
//
// Recorder is meant to be driven from the UI goroutine and does no locking.
type Recorder struct {
	style      canvas.StrokeAndFillStyling
	panX, panY float32
	drawing    bool
	points     []geom.Point
}

func NewRecorder(style canvas.StrokeAndFillStyling) *Recorder {
	return &Recorder{style: style}
}

// SetStyle changes the styling of strokes ended from now on.
func (r *Recorder) SetStyle(style canvas.StrokeAndFillStyling) { r.style = style }

func (r *Recorder) Style() canvas.StrokeAndFillStyling { return r.style }

// Begin starts a stroke at a widget position.
func (r *Recorder) Begin(pos fyne.Position) {
	r.drawing = true
	r.points = append(r.points[:0], r.toCanvas(pos))
}

func (r *Recorder) Drag(e *fyne.DragEvent) {
	if r.drawing {
		r.points = append(r.points, r.toCanvas(e.Position))
		return
	}
	r.panX += e.Dragged.DX
	r.panY += e.Dragged.DY
}

func (r *Recorder) Scroll(e *fyne.ScrollEvent) {
	r.panX += e.Scrolled.DX
	r.panY += e.Scrolled.DY
}

// End finishes the stroke. Strokes of fewer than two points are dropped and
// End reports false.
func (r *Recorder) End() (*canvas.BrushStroke, bool) {
	if !r.drawing {
		return nil, false
	}
	r.drawing = false
	defer func() { r.points = r.points[:0] }()
	if len(r.points) < 2 {
		return nil, false
	}
	return canvas.NewBrushStroke(r.points, r.style), true
}

// Cancel drops the stroke in progress.
func (r *Recorder) Cancel() {
	r.drawing = false
	r.points = r.points[:0]
}

func (r *Recorder) Drawing() bool { return r.drawing }

// Preview returns the bounding box of the stroke in progress.
func (r *Recorder) Preview() geom.Rect {
	return geom.BoundingBoxFromPoints(r.points)
}

// Pan returns the current view offset.
func (r *Recorder) Pan() fyne.Position { return fyne.NewPos(r.panX, r.panY) }

// ToScreen maps a canvas point to a widget position under the current pan.
func (r *Recorder) ToScreen(p geom.Point) fyne.Position {
	return fyne.NewPos(float32(p.X)+r.panX, float32(p.Y)+r.panY)
}

func (r *Recorder) toCanvas(pos fyne.Position) geom.Point {
	return geom.Pt(float64(pos.X-r.panX), float64(pos.Y-r.panY))
}
