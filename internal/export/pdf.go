// Package export writes board elements out as vector PDF or as a plain
// text summary.
package export

import (
	"io"
	"log/slog"

	"github.com/jung-kurt/gofpdf"

	"LocalCanvas/internal/canvas"
	"LocalCanvas/internal/colorconv"
	"LocalCanvas/internal/config"
	"LocalCanvas/internal/geom"
)

// Options control page setup and how canvas units map onto page units.
type Options struct {
	Orientation string
	Unit        string
	PageSize    string
	Scale       float64
	Margin      float64
	Logger      *slog.Logger
}

func OptionsFromConfig(c config.Export) Options {
	return Options{
		Orientation: c.Orientation,
		Unit:        c.Unit,
		PageSize:    c.PageSize,
		Scale:       c.Scale,
		Margin:      c.Margin,
	}
}

// transform maps canvas coordinates so that the top left of the drawing
// lands on the page margin.
type transform struct {
	origin geom.Point
	scale  float64
	margin float64
}

func newTransform(elems []canvas.Element, opt Options) transform {
	tf := transform{scale: opt.Scale, margin: opt.Margin}
	if tf.scale <= 0 {
		tf.scale = 1
	}
	first := true
	for _, e := range elems {
		if s, ok := e.(*canvas.BrushStroke); ok && len(s.Points) == 0 {
			continue
		}
		b := e.Bounds().Normalize()
		if first {
			tf.origin = geom.Pt(b.X1, b.Y1)
			first = false
			continue
		}
		tf.origin.X = min(tf.origin.X, b.X1)
		tf.origin.Y = min(tf.origin.Y, b.Y1)
	}
	return tf
}

func (tf transform) apply(p geom.Point) (float64, float64) {
	return (p.X-tf.origin.X)*tf.scale + tf.margin, (p.Y-tf.origin.Y)*tf.scale + tf.margin
}

// Write renders elems onto a single page, bottom to top.
func Write(w io.Writer, elems []canvas.Element, opt Options) error {
	pdf := render(elems, opt)
	return pdf.Output(w)
}

// WriteFile is Write to a file at path.
func WriteFile(path string, elems []canvas.Element, opt Options) error {
	pdf := render(elems, opt)
	return pdf.OutputFileAndClose(path)
}

func render(elems []canvas.Element, opt Options) *gofpdf.Fpdf {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	pdf := gofpdf.New(opt.Orientation, opt.Unit, opt.PageSize, "")
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	tf := newTransform(elems, opt)
	for _, e := range elems {
		switch e := e.(type) {
		case *canvas.BrushStroke:
			drawStroke(pdf, e, tf)
		default:
			log.Warn("[export] skipping element", "kind", e.Kind(), "id", e.ElementID())
		}
	}
	return pdf
}

func drawStroke(pdf *gofpdf.Fpdf, s *canvas.BrushStroke, tf transform) {
	if len(s.Points) == 0 {
		return
	}
	st := s.Style
	r, g, b := colorconv.NumberToRGB(st.StrokeColor)
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(st.StrokeWidth * tf.scale)
	if st.Striped() {
		pdf.SetDashPattern([]float64{st.StripeWidths[0] * tf.scale, st.StripeWidths[1] * tf.scale}, 0)
	} else {
		pdf.SetDashPattern([]float64{}, 0)
	}

	if len(s.Points) == 1 {
		x, y := tf.apply(s.Points[0])
		pdf.SetFillColor(r, g, b)
		pdf.Circle(x, y, st.StrokeWidth*tf.scale/2, "F")
		return
	}

	if st.FillColor != colorconv.NoFill && len(s.Points) >= 3 {
		fr, fg, fb := colorconv.NumberToRGB(st.FillColor)
		pdf.SetFillColor(fr, fg, fb)
		pts := make([]gofpdf.PointType, len(s.Points))
		for i, p := range s.Points {
			pts[i].X, pts[i].Y = tf.apply(p)
		}
		pdf.Polygon(pts, "F")
	}

	pdf.MoveTo(tf.apply(s.Points[0]))
	for _, p := range s.Points[1:] {
		pdf.LineTo(tf.apply(p))
	}
	pdf.DrawPath("D")
}
